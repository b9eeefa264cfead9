package repository

import (
	"context"
	"fmt"
	"time"

	"fieldscan-scheduler/internal/domain/repository"
	"fieldscan-scheduler/internal/usecase"

	"github.com/google/uuid"
)

// CapacityAvailabilityChecker implements the AvailabilityChecker port by
// combining the pilot store, the assignment history and the capacity
// manager's pure check.
type CapacityAvailabilityChecker struct {
	pilotRepo      repository.PilotRepository
	assignmentRepo repository.AssignmentRepository
	capacity       *usecase.CapacityManager
}

// NewCapacityAvailabilityChecker creates a new availability checker
func NewCapacityAvailabilityChecker(
	pilotRepo repository.PilotRepository,
	assignmentRepo repository.AssignmentRepository,
	capacity *usecase.CapacityManager,
) repository.AvailabilityChecker {
	return &CapacityAvailabilityChecker{
		pilotRepo:      pilotRepo,
		assignmentRepo: assignmentRepo,
		capacity:       capacity,
	}
}

// IsAvailable reports whether the pilot can take one more mission on the
// date
func (c *CapacityAvailabilityChecker) IsAvailable(ctx context.Context, pilotID uuid.UUID, date time.Time) (bool, error) {
	pilot, err := c.pilotRepo.GetByPilotID(ctx, pilotID)
	if err != nil {
		return false, fmt.Errorf("load pilot %s: %w", pilotID, err)
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
	assignments, err := c.assignmentRepo.FindByPilotAndRange(ctx, pilotID, dayStart, dayEnd)
	if err != nil {
		return false, fmt.Errorf("load assignments for pilot %s: %w", pilotID, err)
	}

	result, err := c.capacity.CheckAvailability(*pilot, date, assignments)
	if err != nil {
		return false, err
	}
	return result.IsAvailable, nil
}
