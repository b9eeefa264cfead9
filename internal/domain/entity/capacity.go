package entity

import (
	"time"

	"github.com/google/uuid"
)

// PilotCapacity describes one operator's standing offer: which weekdays
// they fly and how many missions fit in a day. Independent of any single
// planning run.
type PilotCapacity struct {
	PilotID       uuid.UUID
	WorkDays      map[time.Weekday]bool
	DailyCapacity int
	ProvinceCode  string
}

// WorksOn reports whether the operator flies on the given weekday.
func (p PilotCapacity) WorksOn(day time.Weekday) bool {
	return p.WorkDays[day]
}

// PilotAssignment is the fact that a mission occupies one capacity unit of
// an operator-day. The count of these per (pilot, date) determines
// remaining capacity.
type PilotAssignment struct {
	PilotID       uuid.UUID
	MissionID     uuid.UUID
	ScheduledDate time.Time
}

// CapacityCheckResult answers "can this operator take one more unit on
// this date".
type CapacityCheckResult struct {
	IsAvailable bool
	Remaining   int
	Reason      string
}

// AvailabilitySlot is one open operator-day found in a range scan.
type AvailabilitySlot struct {
	Date      time.Time
	Remaining int
}

// CapacityPlan is the staffing estimate for a survey area: raw effort
// points and the number of pilots a single day of work requires.
type CapacityPlan struct {
	AreaDonum      float64
	EffortPoints   float64
	RequiredPilots int
}
