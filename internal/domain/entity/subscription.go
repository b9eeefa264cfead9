package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus is the lifecycle state of a seasonal subscription
type SubscriptionStatus string

const (
	SubscriptionPendingPayment SubscriptionStatus = "PENDING_PAYMENT"
	SubscriptionActive         SubscriptionStatus = "ACTIVE"
	SubscriptionCompleted      SubscriptionStatus = "COMPLETED"
	SubscriptionCancelled      SubscriptionStatus = "CANCELLED"
)

// SubscriptionPlanType distinguishes plan billing shapes
type SubscriptionPlanType string

const (
	PlanTypeSeasonal SubscriptionPlanType = "SEASONAL"
)

// DefaultRescheduleTokensPerSeason is the quota a seasonal plan starts with.
const DefaultRescheduleTokensPerSeason = 2

// Subscription is a farmer's seasonal survey plan for one field. Activation
// is payment-gated: the only way out of PENDING_PAYMENT is Activate().
// The remaining reschedule-token count is derived from the quota and the
// used counter, never stored.
type Subscription struct {
	SubscriptionID uuid.UUID
	FarmerUserID   uuid.UUID
	FieldID        uuid.UUID
	CropType       string
	AnalysisType   string
	ProvinceCode   string
	AreaM2         float64
	PlanType       SubscriptionPlanType

	IntervalDays int
	StartDate    time.Time
	EndDate      time.Time
	NextDueAt    time.Time
	Status       SubscriptionStatus

	ReschedTokensPerSeason int
	ReschedTokensUsed      int

	PriceSnapshotID uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Activate moves PENDING_PAYMENT -> ACTIVE. Any other prior state is an
// invalid transition.
func (s *Subscription) Activate() error {
	if s.Status != SubscriptionPendingPayment {
		return fmt.Errorf("cannot activate subscription in status %s: requires PENDING_PAYMENT", s.Status)
	}
	s.Status = SubscriptionActive
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete moves ACTIVE -> COMPLETED.
func (s *Subscription) Complete() error {
	if s.Status != SubscriptionActive {
		return fmt.Errorf("cannot complete subscription in status %s: requires ACTIVE", s.Status)
	}
	s.Status = SubscriptionCompleted
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Cancel moves ACTIVE -> CANCELLED.
func (s *Subscription) Cancel() error {
	if s.Status != SubscriptionActive {
		return fmt.Errorf("cannot cancel subscription in status %s: requires ACTIVE", s.Status)
	}
	s.Status = SubscriptionCancelled
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// RemainingRescheduleTokens is quota minus used, floored at zero.
func (s *Subscription) RemainingRescheduleTokens() int {
	remaining := s.ReschedTokensPerSeason - s.ReschedTokensUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ConsumeRescheduleToken spends exactly one token. Consuming past zero is a
// contract violation, not a business outcome: callers must pre-check.
func (s *Subscription) ConsumeRescheduleToken() error {
	if s.RemainingRescheduleTokens() == 0 {
		return fmt.Errorf("no reschedule tokens remaining for subscription %s", s.SubscriptionID)
	}
	s.ReschedTokensUsed++
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// AdvanceDueDate moves NextDueAt forward by the plan interval.
func (s *Subscription) AdvanceDueDate() {
	s.NextDueAt = s.NextDueAt.AddDate(0, 0, s.IntervalDays)
	s.UpdatedAt = time.Now().UTC()
}
