package usecase

import (
	"fieldscan-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

const msPerDay = 24 * 60 * 60 * 1000

// SeasonSlotBuilder turns a subscription's season bounds and interval into
// the sequence of target mission timestamps. Pure arithmetic: no I/O, no
// ports, fully replayable.
type SeasonSlotBuilder struct {
	intervalDays int
}

// NewSeasonSlotBuilder creates a builder; a non-positive interval falls
// back to the 14-day default.
func NewSeasonSlotBuilder(intervalDays int) *SeasonSlotBuilder {
	if intervalDays <= 0 {
		intervalDays = 14
	}
	return &SeasonSlotBuilder{intervalDays: intervalDays}
}

// BuildSeasonPlan emits timestamps from the season start, stepping by the
// interval, while the cursor stays on or before the season end.
func (b *SeasonSlotBuilder) BuildSeasonPlan(subscriptionID uuid.UUID, seasonYear int, seasonStartMs, seasonEndMs int64) entity.SeasonPlan {
	intervalMs := int64(b.intervalDays) * msPerDay
	var slots []int64
	for cursor := seasonStartMs; cursor <= seasonEndMs; cursor += intervalMs {
		slots = append(slots, cursor)
	}
	return entity.SeasonPlan{
		SubscriptionID: subscriptionID,
		SeasonYear:     seasonYear,
		MissionSlotsMs: slots,
	}
}

// UpcomingWindows widens each slot of the plan to a symmetric scan window
// of windowDays on either side. Purely derived from the plan.
func (b *SeasonSlotBuilder) UpcomingWindows(plan entity.SeasonPlan, windowDays int) entity.SeasonPreview {
	if windowDays <= 0 {
		windowDays = 3
	}
	windowMs := int64(windowDays) * msPerDay
	windows := make([]entity.UpcomingWindow, 0, len(plan.MissionSlotsMs))
	for _, slot := range plan.MissionSlotsMs {
		windows = append(windows, entity.UpcomingWindow{
			SlotMs:        slot,
			WindowStartMs: slot - windowMs,
			WindowEndMs:   slot + windowMs,
		})
	}
	return entity.SeasonPreview{
		SubscriptionID:  plan.SubscriptionID,
		SeasonYear:      plan.SeasonYear,
		UpcomingWindows: windows,
	}
}
