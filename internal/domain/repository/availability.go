package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AvailabilityChecker answers whether an operator can take one more
// mission on a date. One capability; implementations are injected at
// construction.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, pilotID uuid.UUID, date time.Time) (bool, error)
}
