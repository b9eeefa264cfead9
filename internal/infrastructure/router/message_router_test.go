package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"fieldscan-scheduler/internal/domain/entity"
	"fieldscan-scheduler/pkg/logger"
)

type staticHandler struct {
	messageType string
}

func (h *staticHandler) CanHandle(messageType string) bool {
	return messageType == h.messageType
}

func (h *staticHandler) Handle(ctx context.Context, msg *entity.ReplanMessage) error {
	return nil
}

func TestMessageRouter_RoutesByType(t *testing.T) {
	r := NewMessageRouter(logger.NewNop())
	weather := &staticHandler{messageType: entity.ReplanTypeWeatherBlock}
	farmer := &staticHandler{messageType: entity.ReplanTypeFarmerRequest}
	r.Register(weather)
	r.Register(farmer)

	assert.Same(t, weather, r.GetHandler(entity.ReplanTypeWeatherBlock))
	assert.Same(t, farmer, r.GetHandler(entity.ReplanTypeFarmerRequest))
	assert.Nil(t, r.GetHandler("UNKNOWN"))
}

func TestMessageRouter_FirstRegisteredWins(t *testing.T) {
	r := NewMessageRouter(logger.NewNop())
	first := &staticHandler{messageType: entity.ReplanTypeWeatherBlock}
	second := &staticHandler{messageType: entity.ReplanTypeWeatherBlock}
	r.Register(first)
	r.Register(second)

	assert.Same(t, first, r.GetHandler(entity.ReplanTypeWeatherBlock))
}
