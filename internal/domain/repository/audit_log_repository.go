package repository

import (
	"context"

	"fieldscan-scheduler/internal/domain/entity"
)

// AuditLogRepository defines the interface for the audit/event sink
type AuditLogRepository interface {
	Append(ctx context.Context, entry *entity.AuditEntry) error
}
