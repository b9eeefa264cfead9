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

	"github.com/google/uuid"
)

// DispatchOrchestrator runs one auto-dispatch cycle: collects
// subscriptions whose scan window is due, turns them into mission demands,
// derives dated pilot slots from capacity and assignment history, runs the
// planning engine and applies the resulting assignments. The caller wraps
// each run in a transactional boundary; the orchestrator itself only
// computes and persists through the injected repositories.
type DispatchOrchestrator struct {
	subscriptionRepo repository.SubscriptionRepository
	missionRepo      repository.MissionRepository
	pilotRepo        repository.PilotRepository
	assignmentRepo   repository.AssignmentRepository
	auditLog         repository.AuditLogRepository
	notify           repository.NotifyRepository
	capacity         *CapacityManager
	engine           *PlanningEngine
	metrics          *metrics.Metrics
	logger           logger.Logger
	windowDays       int
	slotIntervalDays int
}

// NewDispatchOrchestrator creates a new dispatch orchestrator
func NewDispatchOrchestrator(
	subscriptionRepo repository.SubscriptionRepository,
	missionRepo repository.MissionRepository,
	pilotRepo repository.PilotRepository,
	assignmentRepo repository.AssignmentRepository,
	auditLog repository.AuditLogRepository,
	notify repository.NotifyRepository,
	capacity *CapacityManager,
	engine *PlanningEngine,
	metrics *metrics.Metrics,
	logger logger.Logger,
	windowDays int,
	slotIntervalDays int,
) *DispatchOrchestrator {
	if windowDays <= 0 {
		windowDays = 3
	}
	if slotIntervalDays <= 0 {
		slotIntervalDays = 14
	}
	return &DispatchOrchestrator{
		subscriptionRepo: subscriptionRepo,
		missionRepo:      missionRepo,
		pilotRepo:        pilotRepo,
		assignmentRepo:   assignmentRepo,
		auditLog:         auditLog,
		notify:           notify,
		capacity:         capacity,
		engine:           engine,
		metrics:          metrics,
		logger:           logger,
		windowDays:       windowDays,
		slotIntervalDays: slotIntervalDays,
	}
}

func estimateDurationMinutes(areaM2 float64) int {
	// One donum is 1000 m2; flight time grows with area on top of a fixed
	// setup cost.
	return 30 + int(areaM2/1000.0/10.0)
}

// RunOnce executes one dispatch cycle at the given instant.
func (o *DispatchOrchestrator) RunOnce(ctx context.Context, now time.Time) error {
	started := time.Now()
	defer func() {
		o.metrics.PlanningDuration.Observe(time.Since(started).Seconds())
	}()

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	horizon := today.AddDate(0, 0, o.windowDays)

	subs, err := o.subscriptionRepo.FindActiveDue(ctx, horizon)
	if err != nil {
		o.metrics.ErrorsCount.WithLabelValues("find_active_due").Inc()
		return fmt.Errorf("find due subscriptions: %w", err)
	}
	if len(subs) == 0 {
		o.logger.Debug("No subscriptions due", "horizon", horizon)
		return nil
	}
	o.logger.Info("Dispatch cycle started", "due", len(subs), "horizon", horizon)

	demands := make([]entity.MissionDemand, 0, len(subs))
	subByDemand := make(map[uuid.UUID]*entity.Subscription, len(subs))
	for i, sub := range subs {
		earliest, latest := o.demandWindow(sub)
		if earliest.Before(today) {
			earliest = today
		}
		if latest.Before(earliest) {
			// Whole window already in the past; nothing to plan.
			o.logger.Warn("Skipping subscription with expired window",
				"subscriptionId", sub.SubscriptionID, "nextDueAt", sub.NextDueAt)
			continue
		}

		demand := entity.MissionDemand{
			DemandID:                 uuid.New(),
			FieldID:                  sub.FieldID,
			ProvinceCode:             sub.ProvinceCode,
			CropType:                 sub.CropType,
			AreaM2:                   sub.AreaM2,
			Priority:                 i,
			EarliestDate:             earliest,
			LatestDate:               latest,
			EstimatedDurationMinutes: estimateDurationMinutes(sub.AreaM2),
		}
		demands = append(demands, demand)
		subByDemand[demand.DemandID] = sub
	}

	slots, err := o.buildSlots(ctx, demands)
	if err != nil {
		o.metrics.ErrorsCount.WithLabelValues("build_slots").Inc()
		return err
	}

	result, err := o.engine.OptimizeSchedule(demands, slots)
	if err != nil {
		o.metrics.ErrorsCount.WithLabelValues("optimize_schedule").Inc()
		return fmt.Errorf("optimize schedule: %w", err)
	}

	demandByID := make(map[uuid.UUID]entity.MissionDemand, len(demands))
	for _, d := range demands {
		demandByID[d.DemandID] = d
	}

	for _, scheduled := range result.Scheduled {
		if err := o.applyAssignment(ctx, subByDemand[scheduled.DemandID], demandByID[scheduled.DemandID], scheduled); err != nil {
			o.metrics.ErrorsCount.WithLabelValues("apply_assignment").Inc()
			o.logger.Error("Failed to apply assignment", "demandId", scheduled.DemandID, "error", err)
			continue
		}
		o.metrics.MissionsScheduled.Inc()
	}

	for _, unscheduled := range result.Unscheduled {
		o.metrics.DemandsUnscheduled.WithLabelValues(unscheduled.Reason).Inc()
		sub := subByDemand[unscheduled.DemandID]
		o.logger.Warn("Demand left unscheduled",
			"demandId", unscheduled.DemandID,
			"subscriptionId", sub.SubscriptionID,
			"province", sub.ProvinceCode,
			"reason", unscheduled.Reason)
	}

	o.logger.Info("Dispatch cycle finished",
		"scheduled", len(result.Scheduled),
		"unscheduled", len(result.Unscheduled))
	return nil
}

// demandWindow derives the permissible date window for a subscription's
// next mission from its season plan: the upcoming scan window that covers
// the due date. When the due date falls outside every season window the
// plain due date ± window fallback applies.
func (o *DispatchOrchestrator) demandWindow(sub *entity.Subscription) (time.Time, time.Time) {
	interval := sub.IntervalDays
	if interval <= 0 {
		interval = o.slotIntervalDays
	}
	builder := NewSeasonSlotBuilder(interval)
	plan := builder.BuildSeasonPlan(
		sub.SubscriptionID,
		sub.StartDate.Year(),
		sub.StartDate.UnixMilli(),
		sub.EndDate.UnixMilli(),
	)
	preview := builder.UpcomingWindows(plan, o.windowDays)

	dueMs := sub.NextDueAt.UnixMilli()
	for _, w := range preview.UpcomingWindows {
		if dueMs >= w.WindowStartMs && dueMs <= w.WindowEndMs {
			return time.UnixMilli(w.WindowStartMs).UTC(), time.UnixMilli(w.WindowEndMs).UTC()
		}
	}
	return sub.NextDueAt.AddDate(0, 0, -o.windowDays), sub.NextDueAt.AddDate(0, 0, o.windowDays)
}

// buildSlots derives the dated slot pool for the demand batch. Slots come
// out of FindAvailableSlots in ascending date order per pilot, so the
// engine's first-match rule prefers earlier dates.
func (o *DispatchOrchestrator) buildSlots(ctx context.Context, demands []entity.MissionDemand) ([]entity.PilotSlot, error) {
	type window struct{ earliest, latest time.Time }
	provinces := make(map[string]window)
	for _, d := range demands {
		w, ok := provinces[d.ProvinceCode]
		if !ok {
			provinces[d.ProvinceCode] = window{d.EarliestDate, d.LatestDate}
			continue
		}
		if d.EarliestDate.Before(w.earliest) {
			w.earliest = d.EarliestDate
		}
		if d.LatestDate.After(w.latest) {
			w.latest = d.LatestDate
		}
		provinces[d.ProvinceCode] = w
	}

	var slots []entity.PilotSlot
	for province, w := range provinces {
		pilots, err := o.pilotRepo.FindByProvince(ctx, province)
		if err != nil {
			return nil, fmt.Errorf("find pilots for province %s: %w", province, err)
		}
		for _, pilot := range pilots {
			history, err := o.assignmentRepo.FindByPilotAndRange(ctx, pilot.PilotID, w.earliest, w.latest)
			if err != nil {
				return nil, fmt.Errorf("load assignments for pilot %s: %w", pilot.PilotID, err)
			}
			available, err := o.capacity.FindAvailableSlots(*pilot, w.earliest, w.latest, history)
			if err != nil {
				return nil, fmt.Errorf("find slots for pilot %s: %w", pilot.PilotID, err)
			}
			for _, s := range available {
				slots = append(slots, entity.PilotSlot{
					PilotID:           pilot.PilotID,
					Date:              s.Date,
					ProvinceCode:      pilot.ProvinceCode,
					DailyCapacity:     pilot.DailyCapacity,
					RemainingCapacity: s.Remaining,
				})
			}
		}
	}
	return slots, nil
}

// applyAssignment turns one scheduled slot into a persisted mission,
// assignment fact, advanced subscription cursor, audit event and farmer
// notice.
func (o *DispatchOrchestrator) applyAssignment(ctx context.Context, sub *entity.Subscription, demand entity.MissionDemand, scheduled entity.ScheduledSlot) error {
	mission := entity.NewMission(sub.FieldID, sub.FarmerUserID, sub.PriceSnapshotID, sub.CropType, sub.AnalysisType, time.Now().UTC())
	subID := sub.SubscriptionID
	mission.SubscriptionID = &subID

	if err := mission.AssignPilot(scheduled.PilotID, entity.AssignmentSourceSystemSeed, entity.AssignmentReasonAutoDispatch); err != nil {
		return err
	}
	mission.SetSchedule(scheduled.Date, demand.EarliestDate, demand.LatestDate)

	if err := o.missionRepo.Save(ctx, mission); err != nil {
		return fmt.Errorf("save mission: %w", err)
	}
	if err := o.assignmentRepo.Create(ctx, &entity.PilotAssignment{
		PilotID:       scheduled.PilotID,
		MissionID:     mission.MissionID,
		ScheduledDate: scheduled.Date,
	}); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}

	sub.AdvanceDueDate()
	if err := o.subscriptionRepo.Save(ctx, sub); err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}

	if err := o.auditLog.Append(ctx, &entity.AuditEntry{
		EventType:     "mission.assigned",
		CorrelationID: mission.MissionID.String(),
		Payload: map[string]interface{}{
			"missionId":        mission.MissionID.String(),
			"subscriptionId":   sub.SubscriptionID.String(),
			"pilotId":          scheduled.PilotID.String(),
			"scheduledDate":    scheduled.Date.Format(time.DateOnly),
			"assignmentSource": string(mission.AssignmentSource),
			"assignmentReason": string(mission.AssignmentReason),
		},
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		o.logger.Error("Failed to audit assignment", "missionId", mission.MissionID, "error", err)
	}

	notice := &entity.Notice{
		RecipientID: sub.FarmerUserID.String(),
		Text:        templates.AssignmentNotice(sub.CropType, scheduled.Date),
		ScheduleAt:  time.Now().UTC().Add(2 * time.Second),
	}
	if _, err := o.notify.SendNotice(ctx, notice); err != nil {
		o.logger.Error("Failed to send assignment notice", "missionId", mission.MissionID, "error", err)
	}

	return nil
}
