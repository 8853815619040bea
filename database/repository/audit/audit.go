package auditRepo

import (
	"context"

	"forotrix/models"
)

// AuditRepository persists audit records emitted by mutating operations.
type AuditRepository interface {
	Create(ctx context.Context, record *models.AuditRecord) error
}
