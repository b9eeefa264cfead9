package repository

import (
	"context"

	"fieldscan-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

// PilotRepository defines the interface for pilot capacity records
type PilotRepository interface {
	GetByPilotID(ctx context.Context, pilotID uuid.UUID) (*entity.PilotCapacity, error)
	FindByProvince(ctx context.Context, provinceCode string) ([]*entity.PilotCapacity, error)
}
