package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MissionStatus is the lifecycle state of a survey mission
type MissionStatus string

const (
	MissionPlanned   MissionStatus = "PLANNED"
	MissionAssigned  MissionStatus = "ASSIGNED"
	MissionAcked     MissionStatus = "ACKED"
	MissionFlown     MissionStatus = "FLOWN"
	MissionUploaded  MissionStatus = "UPLOADED"
	MissionAnalyzing MissionStatus = "ANALYZING"
	MissionDone      MissionStatus = "DONE"
	MissionCancelled MissionStatus = "CANCELLED"
)

// AssignmentSource records which mechanism produced a pilot assignment
type AssignmentSource string

const (
	AssignmentSourceSystemSeed AssignmentSource = "SYSTEM_SEED"
	AssignmentSourcePull       AssignmentSource = "PULL"
)

// AssignmentReason records why a pilot assignment was made
type AssignmentReason string

const (
	AssignmentReasonAutoDispatch  AssignmentReason = "AUTO_DISPATCH"
	AssignmentReasonAdminOverride AssignmentReason = "ADMIN_OVERRIDE"
	AssignmentReasonReassignment  AssignmentReason = "REASSIGNMENT"
)

// Mission is a single aerial-survey job for one field. All status changes
// go through the guarded transition methods; callers never write Status
// directly.
type Mission struct {
	MissionID         uuid.UUID
	FieldID           uuid.UUID
	SubscriptionID    *uuid.UUID
	RequestedByUserID uuid.UUID
	CropType          string
	AnalysisType      string
	Status            MissionStatus

	AssignedPilotID  *uuid.UUID
	ScheduledDate    *time.Time
	AssignmentSource AssignmentSource
	AssignmentReason AssignmentReason

	// Bounds within which a reschedule may legally land. Distinct from the
	// demand date window used at planning time.
	ScheduleWindowStart *time.Time
	ScheduleWindowEnd   *time.Time

	PriceSnapshotID uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewMission creates a mission in PLANNED state.
func NewMission(fieldID, requestedBy, priceSnapshotID uuid.UUID, cropType, analysisType string, now time.Time) *Mission {
	return &Mission{
		MissionID:         uuid.New(),
		FieldID:           fieldID,
		RequestedByUserID: requestedBy,
		CropType:          cropType,
		AnalysisType:      analysisType,
		Status:            MissionPlanned,
		PriceSnapshotID:   priceSnapshotID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (m *Mission) transition(from, to MissionStatus) error {
	if m.Status != from {
		return fmt.Errorf("invalid status transition from %s to %s", m.Status, to)
	}
	m.Status = to
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// AssignPilot moves PLANNED -> ASSIGNED and records the assignment metadata.
func (m *Mission) AssignPilot(pilotID uuid.UUID, source AssignmentSource, reason AssignmentReason) error {
	if err := m.transition(MissionPlanned, MissionAssigned); err != nil {
		return err
	}
	m.AssignedPilotID = &pilotID
	m.AssignmentSource = source
	m.AssignmentReason = reason
	return nil
}

// Acknowledge moves ASSIGNED -> ACKED.
func (m *Mission) Acknowledge() error {
	return m.transition(MissionAssigned, MissionAcked)
}

// MarkFlown moves ACKED -> FLOWN.
func (m *Mission) MarkFlown() error {
	return m.transition(MissionAcked, MissionFlown)
}

// MarkUploaded moves FLOWN -> UPLOADED.
func (m *Mission) MarkUploaded() error {
	return m.transition(MissionFlown, MissionUploaded)
}

// StartAnalysis moves UPLOADED -> ANALYZING.
func (m *Mission) StartAnalysis() error {
	return m.transition(MissionUploaded, MissionAnalyzing)
}

// Complete moves ANALYZING -> DONE.
func (m *Mission) Complete() error {
	return m.transition(MissionAnalyzing, MissionDone)
}

// Cancel is reachable from any non-terminal state.
func (m *Mission) Cancel() error {
	if m.Status == MissionDone || m.Status == MissionCancelled {
		return fmt.Errorf("invalid status transition from %s to %s", m.Status, MissionCancelled)
	}
	m.Status = MissionCancelled
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// SetSchedule sets the scheduled date and the window a later reschedule
// must stay inside.
func (m *Mission) SetSchedule(date time.Time, windowStart, windowEnd time.Time) {
	d := date
	ws := windowStart
	we := windowEnd
	m.ScheduledDate = &d
	m.ScheduleWindowStart = &ws
	m.ScheduleWindowEnd = &we
	m.UpdatedAt = time.Now().UTC()
}
