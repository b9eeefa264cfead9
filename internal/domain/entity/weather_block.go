package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WeatherBlockReport is the evidence record for a flight blocked by
// weather. Reschedules caused by it are force majeure and never consume a
// farmer's reschedule token.
type WeatherBlockReport struct {
	WeatherBlockID uuid.UUID
	MissionID      uuid.UUID
	FieldID        uuid.UUID
	ReportedAt     time.Time
	Reason         string // e.g. "wind_speed_exceeded", "rain", "fog"
	BlockStart     *time.Time
	BlockEnd       *time.Time
	Notes          string
	Resolved       bool
	CreatedAt      time.Time
}

// NewWeatherBlockReport validates and builds a report. A report without a
// reason carries no evidentiary value and is rejected.
func NewWeatherBlockReport(missionID, fieldID uuid.UUID, reason string, reportedAt time.Time) (*WeatherBlockReport, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, errors.New("reason is required for weather block report")
	}
	return &WeatherBlockReport{
		WeatherBlockID: uuid.New(),
		MissionID:      missionID,
		FieldID:        fieldID,
		ReportedAt:     reportedAt,
		Reason:         reason,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// Resolve marks the block as over.
func (w *WeatherBlockReport) Resolve() {
	w.Resolved = true
}
