package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlannedMission() *Mission {
	return NewMission(uuid.New(), uuid.New(), uuid.New(), "wheat", "NDVI", time.Now().UTC())
}

func TestMission_FullLifecycle(t *testing.T) {
	m := newPlannedMission()
	assert.Equal(t, MissionPlanned, m.Status)

	require.NoError(t, m.AssignPilot(uuid.New(), AssignmentSourceSystemSeed, AssignmentReasonAutoDispatch))
	assert.Equal(t, MissionAssigned, m.Status)
	require.NotNil(t, m.AssignedPilotID)

	require.NoError(t, m.Acknowledge())
	require.NoError(t, m.MarkFlown())
	require.NoError(t, m.MarkUploaded())
	require.NoError(t, m.StartAnalysis())
	require.NoError(t, m.Complete())
	assert.Equal(t, MissionDone, m.Status)
}

func TestMission_RejectsSkippedStates(t *testing.T) {
	m := newPlannedMission()

	err := m.MarkFlown()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status transition from PLANNED to FLOWN")
	assert.Equal(t, MissionPlanned, m.Status)

	require.NoError(t, m.AssignPilot(uuid.New(), AssignmentSourcePull, AssignmentReasonReassignment))
	err = m.Complete()
	require.Error(t, err)
	assert.Equal(t, MissionAssigned, m.Status)
}

func TestMission_CancelFromAnyNonTerminalState(t *testing.T) {
	m := newPlannedMission()
	require.NoError(t, m.Cancel())
	assert.Equal(t, MissionCancelled, m.Status)

	flying := newPlannedMission()
	require.NoError(t, flying.AssignPilot(uuid.New(), AssignmentSourceSystemSeed, AssignmentReasonAutoDispatch))
	require.NoError(t, flying.Acknowledge())
	require.NoError(t, flying.Cancel())
}

func TestMission_CancelBlockedOnTerminalStates(t *testing.T) {
	m := newPlannedMission()
	require.NoError(t, m.Cancel())
	require.Error(t, m.Cancel())

	done := newPlannedMission()
	require.NoError(t, done.AssignPilot(uuid.New(), AssignmentSourceSystemSeed, AssignmentReasonAutoDispatch))
	require.NoError(t, done.Acknowledge())
	require.NoError(t, done.MarkFlown())
	require.NoError(t, done.MarkUploaded())
	require.NoError(t, done.StartAnalysis())
	require.NoError(t, done.Complete())
	require.Error(t, done.Cancel())
	assert.Equal(t, MissionDone, done.Status)
}

func TestMission_SetScheduleRecordsWindow(t *testing.T) {
	m := newPlannedMission()
	scheduled := time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 18, 0, 0, 0, 0, time.UTC)

	m.SetSchedule(scheduled, start, end)

	require.NotNil(t, m.ScheduledDate)
	assert.Equal(t, scheduled, *m.ScheduledDate)
	assert.Equal(t, start, *m.ScheduleWindowStart)
	assert.Equal(t, end, *m.ScheduleWindowEnd)
}
