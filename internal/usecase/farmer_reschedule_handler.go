package usecase

import (
	"context"
	"fmt"
	"time"

	"fieldscan-scheduler/internal/domain/entity"
	"fieldscan-scheduler/internal/domain/repository"
	"fieldscan-scheduler/pkg/logger"
	"fieldscan-scheduler/pkg/metrics"
	"fieldscan-scheduler/templates"
)

// FarmerRescheduleHandler processes farmer-initiated date changes, which
// spend one reschedule token from the subscription's seasonal quota.
type FarmerRescheduleHandler struct {
	subscriptionRepo repository.SubscriptionRepository
	missionRepo      repository.MissionRepository
	assignmentRepo   repository.AssignmentRepository
	notify           repository.NotifyRepository
	reschedule       *RescheduleService
	metrics          *metrics.Metrics
	logger           logger.Logger
}

// NewFarmerRescheduleHandler creates a new farmer reschedule handler
func NewFarmerRescheduleHandler(
	subscriptionRepo repository.SubscriptionRepository,
	missionRepo repository.MissionRepository,
	assignmentRepo repository.AssignmentRepository,
	notify repository.NotifyRepository,
	reschedule *RescheduleService,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *FarmerRescheduleHandler {
	return &FarmerRescheduleHandler{
		subscriptionRepo: subscriptionRepo,
		missionRepo:      missionRepo,
		assignmentRepo:   assignmentRepo,
		notify:           notify,
		reschedule:       reschedule,
		metrics:          metrics,
		logger:           logger,
	}
}

// CanHandle determines if this handler processes the given message type
func (h *FarmerRescheduleHandler) CanHandle(messageType string) bool {
	return messageType == entity.ReplanTypeFarmerRequest
}

// Handle runs the token-consuming reschedule and, on success, persists the
// mutated subscription and mission, moves the assignment fact to the new
// date and notifies the farmer.
func (h *FarmerRescheduleHandler) Handle(ctx context.Context, msg *entity.ReplanMessage) error {
	mission, err := h.missionRepo.GetByID(ctx, msg.MissionID)
	if err != nil {
		return fmt.Errorf("load mission %s: %w", msg.MissionID, err)
	}
	sub, err := h.subscriptionRepo.GetByID(ctx, msg.SubscriptionID)
	if err != nil {
		return fmt.Errorf("load subscription %s: %w", msg.SubscriptionID, err)
	}

	result, err := h.reschedule.Reschedule(ctx, sub, mission, msg.NewDate, true)
	if err != nil {
		return err
	}
	h.metrics.Reschedules.WithLabelValues(result.Reason).Inc()

	if !result.OK {
		h.logger.Info("Farmer reschedule rejected",
			"missionId", msg.MissionID,
			"reason", result.Reason,
			"tokenRemaining", result.TokenRemaining)
		return nil
	}

	if err := h.subscriptionRepo.Save(ctx, sub); err != nil {
		return fmt.Errorf("save subscription %s: %w", sub.SubscriptionID, err)
	}
	if err := h.missionRepo.Save(ctx, mission); err != nil {
		return fmt.Errorf("save mission %s: %w", mission.MissionID, err)
	}
	// The fact row backs every later capacity count; the old operator-day
	// must be released and the new one occupied.
	if err := h.assignmentRepo.UpdateScheduledDate(ctx, mission.MissionID, *mission.ScheduledDate); err != nil {
		return fmt.Errorf("move assignment for mission %s: %w", mission.MissionID, err)
	}

	notice := &entity.Notice{
		RecipientID: sub.FarmerUserID.String(),
		Text:        templates.RescheduleNotice(*mission.ScheduledDate, msg.Reason, result.TokenRemaining),
		ScheduleAt:  time.Now().UTC().Add(2 * time.Second),
	}
	if _, err := h.notify.SendNotice(ctx, notice); err != nil {
		h.logger.Error("Failed to send reschedule notice", "missionId", mission.MissionID, "error", err)
	}

	h.logger.Info("Farmer reschedule applied",
		"missionId", mission.MissionID,
		"newDate", msg.NewDate,
		"tokenRemaining", result.TokenRemaining)
	return nil
}
