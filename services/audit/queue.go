package audit

import (
	"context"
	"encoding/json"
	"time"

	auditRepo "forotrix/database/repository/audit"
	"forotrix/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeAuditRecord is the asynq task type for persisting audit events.
const TypeAuditRecord = "audit:record"

// QueueSink enqueues audit events for asynchronous persistence. Enqueue
// failures are logged and swallowed so mutations never block on the queue.
type QueueSink struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func NewQueueSink(client *asynq.Client, logger *zap.Logger) *QueueSink {
	return &QueueSink{Client: client, Logger: logger}
}

func (s *QueueSink) Record(_ context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.Logger.Warn("failed to marshal audit event", zap.Error(err))
		return
	}
	task := asynq.NewTask(TypeAuditRecord, payload)
	if _, err := s.Client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		s.Logger.Warn("failed to enqueue audit event",
			zap.String("action", event.Action), zap.Error(err))
	}
}

// Recorder persists queued audit events to the audit collection.
type Recorder struct {
	Repo auditRepo.AuditRepository
}

func NewRecorder(repo auditRepo.AuditRepository) *Recorder {
	return &Recorder{Repo: repo}
}

// HandleAuditRecordTask is the asynq handler for TypeAuditRecord tasks.
func (r *Recorder) HandleAuditRecordTask(ctx context.Context, task *asynq.Task) error {
	var event Event
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		return err
	}
	record := &models.AuditRecord{
		ID:        uuid.NewString(),
		Action:    event.Action,
		ActorID:   event.ActorID,
		TargetID:  event.TargetID,
		Metadata:  event.Metadata,
		Timestamp: event.Timestamp,
	}
	return r.Repo.Create(ctx, record)
}
