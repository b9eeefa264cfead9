package entity

import (
	"time"

	"github.com/google/uuid"
)

// MissionDemand is one pending unit of work handed to the planning engine.
// Immutable once constructed; one per scheduling attempt.
type MissionDemand struct {
	DemandID                 uuid.UUID
	FieldID                  uuid.UUID
	ProvinceCode             string
	CropType                 string
	AreaM2                   float64
	Priority                 int // lower value = higher priority
	EarliestDate             time.Time
	LatestDate               time.Time
	EstimatedDurationMinutes int
}

// PilotSlot is one operator-day's offer of capacity. Remaining is
// decremented as assignments consume it; duration and area are
// informational only, one mission costs one unit.
type PilotSlot struct {
	PilotID           uuid.UUID
	Date              time.Time
	ProvinceCode      string
	DailyCapacity     int
	RemainingCapacity int
}

// ScheduledSlot is a demand matched to an operator on a date.
type ScheduledSlot struct {
	DemandID uuid.UUID
	PilotID  uuid.UUID
	Date     time.Time
}

// UnscheduledDemand is a demand the engine could not place, with the reason.
type UnscheduledDemand struct {
	DemandID uuid.UUID
	Reason   string
}

// ScheduleResult is the outcome of one planning run. Every input demand
// appears in exactly one of the two lists, exactly once.
type ScheduleResult struct {
	Scheduled   []ScheduledSlot
	Unscheduled []UnscheduledDemand
}
