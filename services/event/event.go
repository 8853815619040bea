package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	eventRepo "forotrix/database/repository/eventlog"
	"forotrix/models"

	"github.com/google/uuid"
)

// LogInput is one analytics event as reported by a frontend visitor.
type LogInput struct {
	VisitorID string
	SessionID string
	Type      string
	Data      map[string]interface{}
	UserAgent string
	IP        string
	CreatedAt time.Time
}

// EventService stores analytics events.
type EventService interface {
	Store(ctx context.Context, in LogInput) (*models.EventLog, error)
}

// DefaultEventService is the production implementation.
type DefaultEventService struct {
	Repo eventRepo.EventLogRepository
}

// sanitizeEventData round-trips the payload through JSON so only plain
// serializable objects are stored; anything else collapses to nil.
func sanitizeEventData(data map[string]interface{}) map[string]interface{} {
	if data == nil {
		return nil
	}
	serialized, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(serialized, &parsed); err != nil {
		return nil
	}
	if len(parsed) == 0 {
		return nil
	}
	return parsed
}

// Store persists one event.
func (s *DefaultEventService) Store(ctx context.Context, in LogInput) (*models.EventLog, error) {
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	event := &models.EventLog{
		ID:        uuid.NewString(),
		VisitorID: strings.TrimSpace(in.VisitorID),
		SessionID: strings.TrimSpace(in.SessionID),
		Type:      strings.TrimSpace(in.Type),
		Data:      sanitizeEventData(in.Data),
		UserAgent: in.UserAgent,
		IP:        in.IP,
		CreatedAt: createdAt,
	}
	if err := s.Repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to store event: %w", err)
	}
	return event, nil
}
