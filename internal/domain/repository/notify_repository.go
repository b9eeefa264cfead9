package repository

import (
	"context"

	"fieldscan-scheduler/internal/domain/entity"
)

// NotifyRepository defines the interface for farmer-facing notifications
type NotifyRepository interface {
	// SendNotice delivers a notice and returns the delivery task id.
	SendNotice(ctx context.Context, notice *entity.Notice) (string, error)
}
