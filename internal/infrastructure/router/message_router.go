package router

import (
	"fieldscan-scheduler/internal/usecase"
	"fieldscan-scheduler/pkg/logger"
)

// MessageRouter routes replan queue messages to the handler registered for
// their type
type MessageRouter struct {
	handlers []usecase.ReplanHandler
	logger   logger.Logger
}

// NewMessageRouter creates a new message router
func NewMessageRouter(logger logger.Logger) *MessageRouter {
	return &MessageRouter{
		handlers: make([]usecase.ReplanHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler for a message type
func (r *MessageRouter) Register(handler usecase.ReplanHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered replan handler", "handler", handler)
}

// GetHandler returns the handler for a given message type, or nil
func (r *MessageRouter) GetHandler(messageType string) usecase.ReplanHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(messageType) {
			return handler
		}
	}
	return nil
}
