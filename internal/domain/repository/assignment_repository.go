package repository

import (
	"context"
	"time"

	"fieldscan-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

// AssignmentRepository defines the interface for pilot assignment facts.
// It doubles as the assignment-history provider the capacity queries run
// against; the backing store is the caller's concern.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.PilotAssignment) error
	FindByPilotAndRange(ctx context.Context, pilotID uuid.UUID, start, end time.Time) ([]entity.PilotAssignment, error)
	// UpdateScheduledDate moves the mission's assignment fact to a new
	// date, freeing the old operator-day and occupying the new one.
	UpdateScheduledDate(ctx context.Context, missionID uuid.UUID, newDate time.Time) error
}
