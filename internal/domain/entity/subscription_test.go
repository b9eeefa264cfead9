package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingSubscription() *Subscription {
	return &Subscription{
		SubscriptionID:         uuid.New(),
		FarmerUserID:           uuid.New(),
		FieldID:                uuid.New(),
		PlanType:               PlanTypeSeasonal,
		IntervalDays:           14,
		NextDueAt:              time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:                 SubscriptionPendingPayment,
		ReschedTokensPerSeason: DefaultRescheduleTokensPerSeason,
	}
}

func TestSubscription_ActivateRequiresPendingPayment(t *testing.T) {
	sub := newPendingSubscription()
	require.NoError(t, sub.Activate())
	assert.Equal(t, SubscriptionActive, sub.Status)

	err := sub.Activate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires PENDING_PAYMENT")

	cancelled := newPendingSubscription()
	cancelled.Status = SubscriptionCancelled
	require.Error(t, cancelled.Activate())
	assert.Equal(t, SubscriptionCancelled, cancelled.Status)
}

func TestSubscription_CompleteAndCancelRequireActive(t *testing.T) {
	sub := newPendingSubscription()
	require.Error(t, sub.Complete())
	require.Error(t, sub.Cancel())

	require.NoError(t, sub.Activate())
	require.NoError(t, sub.Complete())
	assert.Equal(t, SubscriptionCompleted, sub.Status)
	require.Error(t, sub.Cancel())

	other := newPendingSubscription()
	require.NoError(t, other.Activate())
	require.NoError(t, other.Cancel())
	assert.Equal(t, SubscriptionCancelled, other.Status)
}

func TestSubscription_RemainingTokensDerivedAndFloored(t *testing.T) {
	sub := newPendingSubscription()
	assert.Equal(t, 2, sub.RemainingRescheduleTokens())

	sub.ReschedTokensUsed = 1
	assert.Equal(t, 1, sub.RemainingRescheduleTokens())

	// A corrupted counter still never reports negative remaining.
	sub.ReschedTokensUsed = 5
	assert.Equal(t, 0, sub.RemainingRescheduleTokens())
}

func TestSubscription_ConsumeRescheduleToken(t *testing.T) {
	sub := newPendingSubscription()

	require.NoError(t, sub.ConsumeRescheduleToken())
	require.NoError(t, sub.ConsumeRescheduleToken())
	assert.Equal(t, 0, sub.RemainingRescheduleTokens())

	err := sub.ConsumeRescheduleToken()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reschedule tokens remaining")
	assert.Equal(t, 2, sub.ReschedTokensUsed)
}

func TestSubscription_AdvanceDueDate(t *testing.T) {
	sub := newPendingSubscription()
	sub.AdvanceDueDate()
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), sub.NextDueAt)
	sub.AdvanceDueDate()
	assert.Equal(t, time.Date(2026, time.March, 29, 0, 0, 0, 0, time.UTC), sub.NextDueAt)
}
