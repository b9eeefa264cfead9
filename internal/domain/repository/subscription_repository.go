package repository

import (
	"context"
	"time"

	"fieldscan-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

// SubscriptionRepository defines the interface for subscription persistence
type SubscriptionRepository interface {
	GetByID(ctx context.Context, subscriptionID uuid.UUID) (*entity.Subscription, error)
	Save(ctx context.Context, subscription *entity.Subscription) error
	// FindActiveDue returns ACTIVE subscriptions whose next due date falls
	// on or before the given instant, ordered by due date ascending.
	FindActiveDue(ctx context.Context, before time.Time) ([]*entity.Subscription, error)
}
