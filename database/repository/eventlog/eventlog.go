package eventRepo

import (
	"context"

	"forotrix/models"
)

// EventLogRepository defines persistence for analytics events.
type EventLogRepository interface {
	Create(ctx context.Context, event *models.EventLog) error
}
