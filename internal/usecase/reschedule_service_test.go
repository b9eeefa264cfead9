package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldscan-scheduler/internal/domain/entity"
	"fieldscan-scheduler/pkg/logger"
)

type stubAvailability struct {
	available bool
	err       error
}

func (s *stubAvailability) IsAvailable(ctx context.Context, pilotID uuid.UUID, date time.Time) (bool, error) {
	return s.available, s.err
}

type recordingAudit struct {
	entries []*entity.AuditEntry
}

func (r *recordingAudit) Append(ctx context.Context, entry *entity.AuditEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func testSubscription(tokens, used int) *entity.Subscription {
	return &entity.Subscription{
		SubscriptionID:         uuid.New(),
		FarmerUserID:           uuid.New(),
		FieldID:                uuid.New(),
		Status:                 entity.SubscriptionActive,
		IntervalDays:           14,
		ReschedTokensPerSeason: tokens,
		ReschedTokensUsed:      used,
	}
}

func testAssignedMission() *entity.Mission {
	pilotID := uuid.New()
	scheduled := date(2026, time.January, 10)
	windowStart := date(2026, time.January, 1)
	windowEnd := date(2026, time.January, 31)
	return &entity.Mission{
		MissionID:           uuid.New(),
		FieldID:             uuid.New(),
		Status:              entity.MissionAssigned,
		AssignedPilotID:     &pilotID,
		ScheduledDate:       &scheduled,
		ScheduleWindowStart: &windowStart,
		ScheduleWindowEnd:   &windowEnd,
	}
}

func TestReschedule_ConsumesTokenOnSuccess(t *testing.T) {
	audit := &recordingAudit{}
	service := NewRescheduleService(&stubAvailability{available: true}, audit, logger.NewNop())
	sub := testSubscription(1, 0)
	mission := testAssignedMission()

	result, err := service.Reschedule(context.Background(), sub, mission, "2026-01-20", true)
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, entity.RescheduleOK, result.Reason)
	assert.Equal(t, 0, result.TokenRemaining)
	assert.Equal(t, date(2026, time.January, 20), *mission.ScheduledDate)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "mission.reschedule", audit.entries[0].EventType)
}

func TestReschedule_TokenExhaustionNoUnderflow(t *testing.T) {
	service := NewRescheduleService(&stubAvailability{available: true}, &recordingAudit{}, logger.NewNop())
	sub := testSubscription(2, 0)

	first, err := service.Reschedule(context.Background(), sub, testAssignedMission(), "2026-01-12", true)
	require.NoError(t, err)
	assert.True(t, first.OK)
	assert.Equal(t, 1, first.TokenRemaining)

	second, err := service.Reschedule(context.Background(), sub, testAssignedMission(), "2026-01-13", true)
	require.NoError(t, err)
	assert.True(t, second.OK)
	assert.Equal(t, 0, second.TokenRemaining)

	third, err := service.Reschedule(context.Background(), sub, testAssignedMission(), "2026-01-14", true)
	require.NoError(t, err)
	assert.False(t, third.OK)
	assert.Equal(t, entity.RescheduleNoTokens, third.Reason)
	assert.Equal(t, 0, third.TokenRemaining)
	assert.Equal(t, 2, sub.ReschedTokensUsed)
}

func TestReschedule_WeatherForcedKeepsTokens(t *testing.T) {
	service := NewRescheduleService(&stubAvailability{available: true}, &recordingAudit{}, logger.NewNop())
	sub := testSubscription(2, 2) // already exhausted
	mission := testAssignedMission()

	result, err := service.Reschedule(context.Background(), sub, mission, "2026-01-22", false)
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, 0, result.TokenRemaining)
	assert.Equal(t, 2, sub.ReschedTokensUsed)
	assert.Equal(t, date(2026, time.January, 22), *mission.ScheduledDate)
}

func TestReschedule_PilotUnavailableNoMutation(t *testing.T) {
	service := NewRescheduleService(&stubAvailability{available: false}, &recordingAudit{}, logger.NewNop())
	sub := testSubscription(2, 0)
	mission := testAssignedMission()
	originalDate := *mission.ScheduledDate

	result, err := service.Reschedule(context.Background(), sub, mission, "2026-01-20", true)
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.Equal(t, entity.ReschedulePilotUnavailable, result.Reason)
	assert.Equal(t, 2, result.TokenRemaining)
	assert.Equal(t, 0, sub.ReschedTokensUsed)
	assert.Equal(t, originalDate, *mission.ScheduledDate)
}

func TestReschedule_OutsideScheduleWindow(t *testing.T) {
	service := NewRescheduleService(&stubAvailability{available: true}, &recordingAudit{}, logger.NewNop())
	sub := testSubscription(2, 0)
	mission := testAssignedMission()

	result, err := service.Reschedule(context.Background(), sub, mission, "2026-02-15", true)
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.Equal(t, entity.RescheduleOutOfWindow, result.Reason)
	assert.Equal(t, 0, sub.ReschedTokensUsed)
}

func TestReschedule_InvalidDateIsContractError(t *testing.T) {
	service := NewRescheduleService(&stubAvailability{available: true}, &recordingAudit{}, logger.NewNop())

	_, err := service.Reschedule(context.Background(), testSubscription(2, 0), testAssignedMission(), "20-01-2026", true)
	require.Error(t, err)
}

func TestReschedule_UnassignedMissionIsContractError(t *testing.T) {
	service := NewRescheduleService(&stubAvailability{available: true}, &recordingAudit{}, logger.NewNop())
	mission := testAssignedMission()
	mission.AssignedPilotID = nil

	_, err := service.Reschedule(context.Background(), testSubscription(2, 0), mission, "2026-01-20", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no assigned pilot")
}
