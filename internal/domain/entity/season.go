package entity

import "github.com/google/uuid"

// SeasonPlan is the precomputed sequence of target mission timestamps
// (epoch milliseconds) for one subscription season. Generated at fixed
// intervals between season start and end; fully deterministic.
type SeasonPlan struct {
	SubscriptionID uuid.UUID
	SeasonYear     int
	MissionSlotsMs []int64
}

// UpcomingWindow is one season slot widened to a symmetric scan window.
// Consumed by the auto-dispatch loop.
type UpcomingWindow struct {
	SlotMs        int64
	WindowStartMs int64
	WindowEndMs   int64
}

// SeasonPreview wraps the upcoming windows for one subscription season.
type SeasonPreview struct {
	SubscriptionID  uuid.UUID
	SeasonYear      int
	UpcomingWindows []UpcomingWindow
}
