package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Event describes one mutation for the audit trail.
type Event struct {
	Action    string                 `json:"action"`
	ActorID   string                 `json:"actorId"`
	TargetID  string                 `json:"targetId,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Sink receives audit events. Recording is fire-and-forget: a failing sink
// must never fail the operation that emitted the event.
type Sink interface {
	Record(ctx context.Context, event Event)
}

// LogSink writes audit events to the structured log. It is the synchronous
// sink used in development and tests.
type LogSink struct {
	Logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

func (s *LogSink) Record(_ context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	s.Logger.Info("audit",
		zap.String("action", event.Action),
		zap.String("actorId", event.ActorID),
		zap.String("targetId", event.TargetID),
		zap.Any("metadata", event.Metadata),
		zap.Time("timestamp", event.Timestamp),
	)
}
