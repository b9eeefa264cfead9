package repository

import (
	"context"

	"fieldscan-scheduler/internal/domain/entity"
)

// ReplanQueue defines the interface for the reschedule request queue
type ReplanQueue interface {
	// Dequeue returns the next replan message, or nil when the queue is
	// empty.
	Dequeue(ctx context.Context) (*entity.ReplanMessage, error)
}
