package usecase

import (
	"context"
	"fmt"
	"time"

	"fieldscan-scheduler/internal/domain/entity"
	"fieldscan-scheduler/internal/domain/repository"
	"fieldscan-scheduler/pkg/logger"
)

// RescheduleService governs a single reschedule request: token policy
// first, then operator availability, then mutation. Farmer-initiated calls
// consume a token; weather-forced calls pass consumeToken=false and are
// exempt. Business outcomes come back as RescheduleResult values; errors
// are reserved for contract violations and port failures.
type RescheduleService struct {
	availability repository.AvailabilityChecker
	auditLog     repository.AuditLogRepository
	logger       logger.Logger
}

// NewRescheduleService creates a new reschedule service
func NewRescheduleService(availability repository.AvailabilityChecker, auditLog repository.AuditLogRepository, logger logger.Logger) *RescheduleService {
	return &RescheduleService{
		availability: availability,
		auditLog:     auditLog,
		logger:       logger,
	}
}

// Reschedule evaluates the request in policy order and, on success,
// consumes the token (when asked) and moves the mission's scheduled date.
// No mutation happens on any failure path.
func (s *RescheduleService) Reschedule(ctx context.Context, sub *entity.Subscription, mission *entity.Mission, newDateISO string, consumeToken bool) (entity.RescheduleResult, error) {
	newDate, err := time.Parse(time.DateOnly, newDateISO)
	if err != nil {
		return entity.RescheduleResult{}, fmt.Errorf("invalid date %q: %w", newDateISO, err)
	}
	if mission.AssignedPilotID == nil {
		return entity.RescheduleResult{}, fmt.Errorf("mission %s has no assigned pilot", mission.MissionID)
	}

	if consumeToken && sub.RemainingRescheduleTokens() == 0 {
		return s.finish(ctx, sub, mission, newDateISO, entity.RescheduleResult{
			OK:             false,
			Reason:         entity.RescheduleNoTokens,
			TokenRemaining: 0,
		})
	}

	if mission.ScheduleWindowStart != nil && mission.ScheduleWindowEnd != nil {
		if newDate.Before(*mission.ScheduleWindowStart) || newDate.After(*mission.ScheduleWindowEnd) {
			return s.finish(ctx, sub, mission, newDateISO, entity.RescheduleResult{
				OK:             false,
				Reason:         entity.RescheduleOutOfWindow,
				TokenRemaining: sub.RemainingRescheduleTokens(),
			})
		}
	}

	available, err := s.availability.IsAvailable(ctx, *mission.AssignedPilotID, newDate)
	if err != nil {
		return entity.RescheduleResult{}, fmt.Errorf("availability check failed: %w", err)
	}
	if !available {
		return s.finish(ctx, sub, mission, newDateISO, entity.RescheduleResult{
			OK:             false,
			Reason:         entity.ReschedulePilotUnavailable,
			TokenRemaining: sub.RemainingRescheduleTokens(),
		})
	}

	if consumeToken {
		if err := sub.ConsumeRescheduleToken(); err != nil {
			// The pre-check above makes this unreachable in a correct call.
			return entity.RescheduleResult{}, err
		}
	}

	d := newDate
	mission.ScheduledDate = &d
	mission.UpdatedAt = time.Now().UTC()

	return s.finish(ctx, sub, mission, newDateISO, entity.RescheduleResult{
		OK:             true,
		Reason:         entity.RescheduleOK,
		TokenRemaining: sub.RemainingRescheduleTokens(),
	})
}

// finish records the outcome in the audit sink and returns it. Audit
// failures are logged, not surfaced: the decision already stands.
func (s *RescheduleService) finish(ctx context.Context, sub *entity.Subscription, mission *entity.Mission, newDateISO string, result entity.RescheduleResult) (entity.RescheduleResult, error) {
	if s.auditLog != nil {
		err := s.auditLog.Append(ctx, &entity.AuditEntry{
			EventType:     "mission.reschedule",
			CorrelationID: mission.MissionID.String(),
			Payload: map[string]interface{}{
				"subscriptionId": sub.SubscriptionID.String(),
				"missionId":      mission.MissionID.String(),
				"newDate":        newDateISO,
				"ok":             result.OK,
				"reason":         result.Reason,
				"tokenRemaining": result.TokenRemaining,
			},
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			s.logger.Error("Failed to append reschedule audit entry", "missionId", mission.MissionID, "error", err)
		}
	}
	return result, nil
}
