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

type sliceQueue struct {
	messages []*entity.ReplanMessage
}

func (q *sliceQueue) Dequeue(ctx context.Context) (*entity.ReplanMessage, error) {
	if len(q.messages) == 0 {
		return nil, nil
	}
	msg := q.messages[0]
	q.messages = q.messages[1:]
	return msg, nil
}

type mapResolver map[string]ReplanHandler

func (m mapResolver) GetHandler(messageType string) ReplanHandler {
	return m[messageType]
}

type replanWorld struct {
	subs        *fakeSubscriptionRepo
	missions    *fakeMissionRepo
	assignments *fakeAssignmentRepo
	notify      *fakeNotify
	sub         *entity.Subscription
	mission     *entity.Mission
}

func newReplanWorld(t *testing.T, tokensUsed int) *replanWorld {
	t.Helper()
	sub := testSubscription(2, tokensUsed)
	mission := testAssignedMission()
	return &replanWorld{
		subs:     &fakeSubscriptionRepo{due: []*entity.Subscription{sub}},
		missions: &fakeMissionRepo{byID: map[uuid.UUID]*entity.Mission{mission.MissionID: mission}},
		assignments: &fakeAssignmentRepo{created: []*entity.PilotAssignment{{
			PilotID:       *mission.AssignedPilotID,
			MissionID:     mission.MissionID,
			ScheduledDate: *mission.ScheduledDate,
		}}},
		notify:  &fakeNotify{},
		sub:     sub,
		mission: mission,
	}
}

func TestReplanWorker_FarmerRequestConsumesToken(t *testing.T) {
	w := newReplanWorld(t, 0)
	service := NewRescheduleService(&stubAvailability{available: true}, &recordingAudit{}, logger.NewNop())
	handler := NewFarmerRescheduleHandler(w.subs, w.missions, w.assignments, w.notify, service, testMetrics, logger.NewNop())
	queue := &sliceQueue{messages: []*entity.ReplanMessage{{
		Type:           entity.ReplanTypeFarmerRequest,
		MissionID:      w.mission.MissionID,
		SubscriptionID: w.sub.SubscriptionID,
		NewDate:        "2026-01-20",
		Reason:         "irrigation scheduled",
	}}}
	worker := NewReplanWorker(queue, mapResolver{entity.ReplanTypeFarmerRequest: handler}, logger.NewNop())

	processed, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, processed)

	assert.Equal(t, 1, w.sub.ReschedTokensUsed)
	assert.Equal(t, date(2026, time.January, 20), *w.mission.ScheduledDate)
	assert.Len(t, w.subs.saved, 1)
	assert.Len(t, w.missions.saved, 1)

	// The capacity fact must follow the mission to its new day.
	require.Len(t, w.assignments.created, 1)
	assert.Equal(t, date(2026, time.January, 20), w.assignments.created[0].ScheduledDate)

	require.Len(t, w.notify.notices, 1)
	assert.Equal(t, w.sub.FarmerUserID.String(), w.notify.notices[0].RecipientID)
	assert.Contains(t, w.notify.notices[0].Text, "20 Jan 2026")
}

func TestReplanWorker_WeatherBlockBypassesTokens(t *testing.T) {
	w := newReplanWorld(t, 2) // quota exhausted
	audit := &recordingAudit{}
	service := NewRescheduleService(&stubAvailability{available: true}, audit, logger.NewNop())
	handler := NewWeatherBlockHandler(w.subs, w.missions, w.assignments, audit, w.notify, service, testMetrics, logger.NewNop())
	queue := &sliceQueue{messages: []*entity.ReplanMessage{{
		Type:           entity.ReplanTypeWeatherBlock,
		MissionID:      w.mission.MissionID,
		SubscriptionID: w.sub.SubscriptionID,
		NewDate:        "2026-01-21",
		Reason:         "sustained wind above limits",
	}}}
	worker := NewReplanWorker(queue, mapResolver{entity.ReplanTypeWeatherBlock: handler}, logger.NewNop())

	processed, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, processed)

	assert.Equal(t, 2, w.sub.ReschedTokensUsed)
	assert.Equal(t, date(2026, time.January, 21), *w.mission.ScheduledDate)
	// Weather path never mutates the subscription, so nothing to persist.
	assert.Empty(t, w.subs.saved)
	assert.Len(t, w.missions.saved, 1)

	require.Len(t, w.assignments.created, 1)
	assert.Equal(t, date(2026, time.January, 21), w.assignments.created[0].ScheduledDate)

	require.Len(t, w.notify.notices, 1)
	assert.Contains(t, w.notify.notices[0].Text, "sustained wind above limits")

	var eventTypes []string
	for _, e := range audit.entries {
		eventTypes = append(eventTypes, e.EventType)
	}
	assert.Contains(t, eventTypes, "weather_block.reported")
	assert.Contains(t, eventTypes, "mission.reschedule")
}

func TestReplanWorker_RejectedFarmerRequestPersistsNothing(t *testing.T) {
	w := newReplanWorld(t, 2) // no tokens left
	service := NewRescheduleService(&stubAvailability{available: true}, &recordingAudit{}, logger.NewNop())
	handler := NewFarmerRescheduleHandler(w.subs, w.missions, w.assignments, w.notify, service, testMetrics, logger.NewNop())
	queue := &sliceQueue{messages: []*entity.ReplanMessage{{
		Type:           entity.ReplanTypeFarmerRequest,
		MissionID:      w.mission.MissionID,
		SubscriptionID: w.sub.SubscriptionID,
		NewDate:        "2026-01-20",
	}}}
	worker := NewReplanWorker(queue, mapResolver{entity.ReplanTypeFarmerRequest: handler}, logger.NewNop())

	processed, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, processed)

	assert.Equal(t, date(2026, time.January, 10), *w.mission.ScheduledDate)
	assert.Equal(t, date(2026, time.January, 10), w.assignments.created[0].ScheduledDate)
	assert.Empty(t, w.subs.saved)
	assert.Empty(t, w.missions.saved)
	assert.Empty(t, w.notify.notices)
}

func TestReplanWorker_DropsUnroutableMessage(t *testing.T) {
	queue := &sliceQueue{messages: []*entity.ReplanMessage{{Type: "UNKNOWN", MissionID: uuid.New()}}}
	worker := NewReplanWorker(queue, mapResolver{}, logger.NewNop())

	processed, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, processed)

	processed, err = worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestReplanWorker_DrainEmptiesQueue(t *testing.T) {
	w := newReplanWorld(t, 0)
	service := NewRescheduleService(&stubAvailability{available: true}, &recordingAudit{}, logger.NewNop())
	handler := NewFarmerRescheduleHandler(w.subs, w.missions, w.assignments, w.notify, service, testMetrics, logger.NewNop())
	queue := &sliceQueue{messages: []*entity.ReplanMessage{
		{Type: entity.ReplanTypeFarmerRequest, MissionID: w.mission.MissionID, SubscriptionID: w.sub.SubscriptionID, NewDate: "2026-01-20"},
		{Type: entity.ReplanTypeFarmerRequest, MissionID: w.mission.MissionID, SubscriptionID: w.sub.SubscriptionID, NewDate: "2026-01-25"},
	}}
	worker := NewReplanWorker(queue, mapResolver{entity.ReplanTypeFarmerRequest: handler}, logger.NewNop())

	require.NoError(t, worker.Drain(context.Background()))

	assert.Empty(t, queue.messages)
	assert.Equal(t, 2, w.sub.ReschedTokensUsed)
	assert.Equal(t, date(2026, time.January, 25), *w.mission.ScheduledDate)
	assert.Equal(t, date(2026, time.January, 25), w.assignments.created[0].ScheduledDate)
}
