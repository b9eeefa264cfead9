package usecase

import (
	"context"

	"fieldscan-scheduler/internal/domain/repository"
	"fieldscan-scheduler/pkg/logger"
)

// HandlerResolver picks the replan handler for a message type.
type HandlerResolver interface {
	GetHandler(messageType string) ReplanHandler
}

// ReplanWorker drains the replan queue, dispatching each message to its
// handler. Messages with no registered handler are dropped with a warning.
type ReplanWorker struct {
	queue    repository.ReplanQueue
	resolver HandlerResolver
	logger   logger.Logger
}

// NewReplanWorker creates a new replan worker
func NewReplanWorker(queue repository.ReplanQueue, resolver HandlerResolver, logger logger.Logger) *ReplanWorker {
	return &ReplanWorker{
		queue:    queue,
		resolver: resolver,
		logger:   logger,
	}
}

// RunOnce processes at most one message. Returns false when the queue was
// empty.
func (w *ReplanWorker) RunOnce(ctx context.Context) (bool, error) {
	msg, err := w.queue.Dequeue(ctx)
	if err != nil {
		return false, err
	}
	if msg == nil {
		return false, nil
	}

	handler := w.resolver.GetHandler(msg.Type)
	if handler == nil {
		w.logger.Warn("No handler for replan message", "type", msg.Type, "missionId", msg.MissionID)
		return true, nil
	}

	if err := handler.Handle(ctx, msg); err != nil {
		w.logger.Error("Replan message failed", "type", msg.Type, "missionId", msg.MissionID, "error", err)
		return true, err
	}
	return true, nil
}

// Drain processes messages until the queue is empty or the context ends.
func (w *ReplanWorker) Drain(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		processed, err := w.RunOnce(ctx)
		if err != nil {
			return err
		}
		if !processed {
			return nil
		}
	}
}
