package repository

import (
	"context"

	"fieldscan-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

// MissionRepository defines the interface for mission persistence
type MissionRepository interface {
	GetByID(ctx context.Context, missionID uuid.UUID) (*entity.Mission, error)
	Save(ctx context.Context, mission *entity.Mission) error
}
