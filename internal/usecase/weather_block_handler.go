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

// WeatherBlockHandler reschedules missions grounded by weather. This is
// the sanctioned force-majeure path: it never consumes a farmer's
// reschedule token.
type WeatherBlockHandler struct {
	subscriptionRepo repository.SubscriptionRepository
	missionRepo      repository.MissionRepository
	assignmentRepo   repository.AssignmentRepository
	auditLog         repository.AuditLogRepository
	notify           repository.NotifyRepository
	reschedule       *RescheduleService
	metrics          *metrics.Metrics
	logger           logger.Logger
}

// NewWeatherBlockHandler creates a new weather block handler
func NewWeatherBlockHandler(
	subscriptionRepo repository.SubscriptionRepository,
	missionRepo repository.MissionRepository,
	assignmentRepo repository.AssignmentRepository,
	auditLog repository.AuditLogRepository,
	notify repository.NotifyRepository,
	reschedule *RescheduleService,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *WeatherBlockHandler {
	return &WeatherBlockHandler{
		subscriptionRepo: subscriptionRepo,
		missionRepo:      missionRepo,
		assignmentRepo:   assignmentRepo,
		auditLog:         auditLog,
		notify:           notify,
		reschedule:       reschedule,
		metrics:          metrics,
		logger:           logger,
	}
}

// CanHandle determines if this handler processes the given message type
func (h *WeatherBlockHandler) CanHandle(messageType string) bool {
	return messageType == entity.ReplanTypeWeatherBlock
}

// Handle records the weather block as evidence, runs the token-exempt
// reschedule and, on success, moves the assignment fact and notifies the
// farmer.
func (h *WeatherBlockHandler) Handle(ctx context.Context, msg *entity.ReplanMessage) error {
	mission, err := h.missionRepo.GetByID(ctx, msg.MissionID)
	if err != nil {
		return fmt.Errorf("load mission %s: %w", msg.MissionID, err)
	}
	sub, err := h.subscriptionRepo.GetByID(ctx, msg.SubscriptionID)
	if err != nil {
		return fmt.Errorf("load subscription %s: %w", msg.SubscriptionID, err)
	}

	report, err := entity.NewWeatherBlockReport(mission.MissionID, mission.FieldID, msg.Reason, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := h.auditLog.Append(ctx, &entity.AuditEntry{
		EventType:     "weather_block.reported",
		CorrelationID: msg.CorrelationID,
		Payload: map[string]interface{}{
			"weatherBlockId": report.WeatherBlockID.String(),
			"missionId":      report.MissionID.String(),
			"reason":         report.Reason,
		},
		CreatedAt: report.CreatedAt,
	}); err != nil {
		h.logger.Error("Failed to audit weather block", "missionId", msg.MissionID, "error", err)
	}

	result, err := h.reschedule.Reschedule(ctx, sub, mission, msg.NewDate, false)
	if err != nil {
		return err
	}
	h.metrics.Reschedules.WithLabelValues(result.Reason).Inc()

	if !result.OK {
		h.logger.Warn("Weather replan rejected", "missionId", msg.MissionID, "reason", result.Reason)
		return nil
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
		Text:        templates.WeatherNotice(msg.Reason, *mission.ScheduledDate),
		ScheduleAt:  time.Now().UTC().Add(2 * time.Second),
	}
	if _, err := h.notify.SendNotice(ctx, notice); err != nil {
		h.logger.Error("Failed to send weather notice", "missionId", mission.MissionID, "error", err)
	}

	h.logger.Info("Weather replan applied", "missionId", mission.MissionID, "newDate", msg.NewDate)
	return nil
}
