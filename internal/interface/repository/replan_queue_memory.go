package repository

import (
	"context"

	"fieldscan-scheduler/internal/domain/entity"
	"fieldscan-scheduler/internal/domain/repository"
)

// MemoryReplanQueue is a buffered in-process replan queue. Producers
// (weather watchers, the farmer-facing API layer) enqueue; the replan
// worker drains. A broker-backed implementation can replace it behind the
// same port.
type MemoryReplanQueue struct {
	messages chan *entity.ReplanMessage
}

// NewMemoryReplanQueue creates a queue with the given buffer size
func NewMemoryReplanQueue(size int) *MemoryReplanQueue {
	if size <= 0 {
		size = 256
	}
	return &MemoryReplanQueue{
		messages: make(chan *entity.ReplanMessage, size),
	}
}

var _ repository.ReplanQueue = (*MemoryReplanQueue)(nil)

// Enqueue adds a message; blocks when the buffer is full.
func (q *MemoryReplanQueue) Enqueue(ctx context.Context, msg *entity.ReplanMessage) error {
	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue returns the next message, or nil when the queue is empty.
func (q *MemoryReplanQueue) Dequeue(ctx context.Context) (*entity.ReplanMessage, error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		return nil, nil
	}
}
