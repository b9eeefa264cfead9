package entity

import "time"

// AuditEntry is one compliance event appended to the audit sink. The sink's
// storage format is not owned here; this is only the append payload.
type AuditEntry struct {
	EventType     string
	CorrelationID string
	Payload       map[string]interface{}
	CreatedAt     time.Time
}

// Notice is a farmer-facing notification handed to the notify service.
type Notice struct {
	RecipientID string
	Text        string
	ScheduleAt  time.Time
}
