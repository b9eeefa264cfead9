package usecase

import (
	"fmt"
	"math"
	"time"

	"fieldscan-scheduler/internal/domain/entity"
)

// Capacity coefficients used by the staffing estimate.
const (
	defaultEffortPerDonum         = 1.0
	defaultMaxDailyEffortPerPilot = 200.0
)

// CapacityManager answers availability questions for one operator against
// caller-supplied assignment history. Pure queries; no stored state, no
// side effects.
type CapacityManager struct {
	effortPerDonum         float64
	maxDailyEffortPerPilot float64
}

// NewCapacityManager creates a capacity manager with default coefficients.
func NewCapacityManager() *CapacityManager {
	return &CapacityManager{
		effortPerDonum:         defaultEffortPerDonum,
		maxDailyEffortPerPilot: defaultMaxDailyEffortPerPilot,
	}
}

// sameDate compares only the calendar day, in each value's own location.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CheckAvailability reports whether the operator can take one more mission
// on the date, given the existing assignments. Fails closed on non-work
// days. A non-positive daily capacity is a configuration error, not an
// unavailable outcome.
func (c *CapacityManager) CheckAvailability(pilot entity.PilotCapacity, date time.Time, assignments []entity.PilotAssignment) (entity.CapacityCheckResult, error) {
	if pilot.DailyCapacity <= 0 {
		return entity.CapacityCheckResult{}, fmt.Errorf("daily_capacity must be positive, got %d", pilot.DailyCapacity)
	}

	if !pilot.WorksOn(date.Weekday()) {
		return entity.CapacityCheckResult{
			IsAvailable: false,
			Remaining:   0,
			Reason:      fmt.Sprintf("%s is not a work day for pilot %s", date.Weekday(), pilot.PilotID),
		}, nil
	}

	count := 0
	for _, a := range assignments {
		if a.PilotID == pilot.PilotID && sameDate(a.ScheduledDate, date) {
			count++
		}
	}

	if count >= pilot.DailyCapacity {
		return entity.CapacityCheckResult{
			IsAvailable: false,
			Remaining:   0,
			Reason:      fmt.Sprintf("daily capacity %d is full on %s", pilot.DailyCapacity, date.Format(time.DateOnly)),
		}, nil
	}

	return entity.CapacityCheckResult{
		IsAvailable: true,
		Remaining:   pilot.DailyCapacity - count,
	}, nil
}

// FindAvailableSlots scans the inclusive date range and returns the days
// on which the operator still has capacity. An inverted range is a
// configuration error and is never silently corrected.
func (c *CapacityManager) FindAvailableSlots(pilot entity.PilotCapacity, startDate, endDate time.Time, assignments []entity.PilotAssignment) ([]entity.AvailabilitySlot, error) {
	if startDate.After(endDate) {
		return nil, fmt.Errorf("start_date %s must not be after end_date %s",
			startDate.Format(time.DateOnly), endDate.Format(time.DateOnly))
	}

	var slots []entity.AvailabilitySlot
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		result, err := c.CheckAvailability(pilot, day, assignments)
		if err != nil {
			return nil, err
		}
		if result.IsAvailable {
			slots = append(slots, entity.AvailabilitySlot{Date: day, Remaining: result.Remaining})
		}
	}
	return slots, nil
}

// PlanCapacity estimates the staffing one day of survey work over the
// given area needs. Effort scales linearly with area; at least one pilot
// is always required.
func (c *CapacityManager) PlanCapacity(areaDonum float64) (entity.CapacityPlan, error) {
	if areaDonum <= 0 {
		return entity.CapacityPlan{}, fmt.Errorf("area_donum must be positive, got %v", areaDonum)
	}
	if c.effortPerDonum <= 0 || c.maxDailyEffortPerPilot <= 0 {
		return entity.CapacityPlan{}, fmt.Errorf("capacity coefficients must be positive")
	}

	effort := areaDonum * c.effortPerDonum
	required := int(math.Ceil(effort / c.maxDailyEffortPerPilot))
	if required < 1 {
		required = 1
	}

	return entity.CapacityPlan{
		AreaDonum:      areaDonum,
		EffortPoints:   effort,
		RequiredPilots: required,
	}, nil
}
