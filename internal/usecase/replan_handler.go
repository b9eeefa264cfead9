package usecase

import (
	"context"

	"fieldscan-scheduler/internal/domain/entity"
)

// ReplanHandler processes one class of replan queue message
type ReplanHandler interface {
	// CanHandle determines if this handler processes the given message type
	CanHandle(messageType string) bool

	// Handle processes the message
	Handle(ctx context.Context, msg *entity.ReplanMessage) error
}
