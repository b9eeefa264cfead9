package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldscan-scheduler/internal/domain/entity"
)

func TestMemoryReplanQueue_FIFO(t *testing.T) {
	queue := NewMemoryReplanQueue(4)
	ctx := context.Background()

	first := &entity.ReplanMessage{Type: entity.ReplanTypeFarmerRequest, MissionID: uuid.New()}
	second := &entity.ReplanMessage{Type: entity.ReplanTypeWeatherBlock, MissionID: uuid.New()}
	require.NoError(t, queue.Enqueue(ctx, first))
	require.NoError(t, queue.Enqueue(ctx, second))

	msg, err := queue.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.MissionID, msg.MissionID)

	msg, err = queue.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.MissionID, msg.MissionID)
}

func TestMemoryReplanQueue_EmptyReturnsNil(t *testing.T) {
	queue := NewMemoryReplanQueue(1)

	msg, err := queue.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestMemoryReplanQueue_EnqueueHonorsCancellation(t *testing.T) {
	queue := NewMemoryReplanQueue(1)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, queue.Enqueue(ctx, &entity.ReplanMessage{Type: entity.ReplanTypeFarmerRequest}))
	cancel()

	err := queue.Enqueue(ctx, &entity.ReplanMessage{Type: entity.ReplanTypeFarmerRequest})
	assert.ErrorIs(t, err, context.Canceled)
}
