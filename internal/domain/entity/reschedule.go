package entity

import "github.com/google/uuid"

// Reschedule outcome reasons. Business outcomes, never errors.
const (
	RescheduleOK               = "OK"
	RescheduleNoTokens         = "NO_TOKENS"
	ReschedulePilotUnavailable = "PILOT_UNAVAILABLE"
	RescheduleOutOfWindow      = "OUT_OF_WINDOW"
)

// RescheduleResult is the explicit outcome of one reschedule request.
type RescheduleResult struct {
	OK             bool
	Reason         string
	TokenRemaining int
}

// Replan message types routed to handlers by the replan worker.
const (
	ReplanTypeWeatherBlock  = "WEATHER_BLOCK"
	ReplanTypeFarmerRequest = "FARMER_REQUEST"
)

// ReplanMessage is one queued reschedule request. Weather blocks carry the
// blocking reason; farmer requests spend a token.
type ReplanMessage struct {
	Type           string
	MissionID      uuid.UUID
	SubscriptionID uuid.UUID
	NewDate        string // ISO date, YYYY-MM-DD
	Reason         string
	CorrelationID  string
}
