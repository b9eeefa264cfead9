package templates

import (
	"fmt"
	"time"
)

const assignmentNoticeTemplate = `Your %s survey flight has been scheduled.

Flight date: %s

A pilot has been assigned to your field. You will be notified again when the flight is confirmed.`

const rescheduleNoticeTemplate = `Your survey flight has been moved.

New flight date: %s
Reason: %s

Reschedule rights remaining this season: %d`

const weatherNoticeTemplate = `Your survey flight was postponed due to weather (%s).

New flight date: %s

This does not use any of your reschedule rights.`

// AssignmentNotice builds the farmer message for a freshly scheduled
// mission.
func AssignmentNotice(cropType string, date time.Time) string {
	return fmt.Sprintf(assignmentNoticeTemplate, cropType, date.Format("02 Jan 2006"))
}

// RescheduleNotice builds the farmer message for a token-consuming date
// change.
func RescheduleNotice(newDate time.Time, reason string, tokensRemaining int) string {
	return fmt.Sprintf(rescheduleNoticeTemplate, newDate.Format("02 Jan 2006"), reason, tokensRemaining)
}

// WeatherNotice builds the farmer message for a weather-forced move.
func WeatherNotice(weatherReason string, newDate time.Time) string {
	return fmt.Sprintf(weatherNoticeTemplate, weatherReason, newDate.Format("02 Jan 2006"))
}
