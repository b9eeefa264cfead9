package usecase

import (
	"fmt"
	"sort"
	"time"

	"fieldscan-scheduler/internal/domain/entity"
)

// Unscheduled reasons. They distinguish "a slot for this province existed
// but none fit the window or had capacity" from "no slot for this province
// at all".
const (
	ReasonNoCapacityInWindow = "no_capacity_in_window"
	ReasonNoProvinceMatch    = "no_province_match"
)

// PlanningEngine matches a batch of mission demands against a pool of
// dated operator slots. Greedy and deterministic: demands are taken in
// priority order (stable on input order), each takes the first slot, by
// input order, whose province matches, whose remaining capacity is
// positive and whose date falls inside the demand window. The engine never
// re-sorts slots; callers wanting earliest-date preference pre-sort the
// pool by date.
type PlanningEngine struct{}

// NewPlanningEngine creates a planning engine.
func NewPlanningEngine() *PlanningEngine {
	return &PlanningEngine{}
}

func validateDemand(d entity.MissionDemand) error {
	if d.AreaM2 <= 0 {
		return fmt.Errorf("demand %s: area_m2 must be positive, got %v", d.DemandID, d.AreaM2)
	}
	if d.EstimatedDurationMinutes <= 0 {
		return fmt.Errorf("demand %s: estimated_duration_minutes must be positive, got %d", d.DemandID, d.EstimatedDurationMinutes)
	}
	if d.EarliestDate.After(d.LatestDate) {
		return fmt.Errorf("demand %s: earliest_date is after latest_date", d.DemandID)
	}
	return nil
}

// inWindow reports whether the slot date falls inside the demand's
// inclusive [earliest, latest] window, comparing calendar days.
func inWindow(slotDate, earliest, latest time.Time) bool {
	if sameDate(slotDate, earliest) || sameDate(slotDate, latest) {
		return true
	}
	return slotDate.After(earliest) && slotDate.Before(latest)
}

// OptimizeSchedule runs one planning batch. The whole batch is validated
// before any slot is touched; a malformed demand fails the call atomically.
// Input slices are never mutated: the engine works on copies and returns
// fresh result structures.
func (e *PlanningEngine) OptimizeSchedule(demands []entity.MissionDemand, pilotSlots []entity.PilotSlot) (*entity.ScheduleResult, error) {
	for _, d := range demands {
		if err := validateDemand(d); err != nil {
			return nil, err
		}
	}
	for _, s := range pilotSlots {
		if s.DailyCapacity <= 0 {
			return nil, fmt.Errorf("slot for pilot %s on %s: daily_capacity must be positive", s.PilotID, s.Date.Format(time.DateOnly))
		}
		if s.RemainingCapacity < 0 || s.RemainingCapacity > s.DailyCapacity {
			return nil, fmt.Errorf("slot for pilot %s on %s: remaining_capacity %d out of range", s.PilotID, s.Date.Format(time.DateOnly), s.RemainingCapacity)
		}
	}

	slots := make([]entity.PilotSlot, len(pilotSlots))
	copy(slots, pilotSlots)

	ordered := make([]entity.MissionDemand, len(demands))
	copy(ordered, demands)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	result := &entity.ScheduleResult{
		Scheduled:   make([]entity.ScheduledSlot, 0, len(ordered)),
		Unscheduled: make([]entity.UnscheduledDemand, 0),
	}

	for _, demand := range ordered {
		matched := false
		provinceSeen := false

		for i := range slots {
			if slots[i].ProvinceCode != demand.ProvinceCode {
				continue
			}
			provinceSeen = true
			if slots[i].RemainingCapacity <= 0 {
				continue
			}
			if !inWindow(slots[i].Date, demand.EarliestDate, demand.LatestDate) {
				continue
			}

			slots[i].RemainingCapacity--
			result.Scheduled = append(result.Scheduled, entity.ScheduledSlot{
				DemandID: demand.DemandID,
				PilotID:  slots[i].PilotID,
				Date:     slots[i].Date,
			})
			matched = true
			break
		}

		if !matched {
			reason := ReasonNoProvinceMatch
			if provinceSeen {
				reason = ReasonNoCapacityInWindow
			}
			result.Unscheduled = append(result.Unscheduled, entity.UnscheduledDemand{
				DemandID: demand.DemandID,
				Reason:   reason,
			})
		}
	}

	return result, nil
}

// GenerateDateRange returns the inclusive sequence of days from start to
// end. An inverted range is a contract error.
func GenerateDateRange(start, end time.Time) ([]time.Time, error) {
	if start.After(end) {
		return nil, fmt.Errorf("start %s must not be after end %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	var days []time.Time
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days, nil
}
