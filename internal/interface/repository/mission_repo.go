package repository

import (
	"context"
	"time"

	"fieldscan-scheduler/internal/domain/entity"
	"fieldscan-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMissionRepository implements the MissionRepository interface
type GormMissionRepository struct {
	db *gorm.DB
}

// NewGormMissionRepository creates a new GORM mission repository
func NewGormMissionRepository(db *gorm.DB) repository.MissionRepository {
	return &GormMissionRepository{
		db: db,
	}
}

// Missions GORM model for database mapping
type Missions struct {
	MissionID           string     `gorm:"column:mission_id;primaryKey"`
	FieldID             string     `gorm:"column:field_id;index"`
	SubscriptionID      *string    `gorm:"column:subscription_id;index"`
	RequestedByUserID   string     `gorm:"column:requested_by_user_id"`
	CropType            string     `gorm:"column:crop_type"`
	AnalysisType        string     `gorm:"column:analysis_type"`
	Status              string     `gorm:"column:status;index"`
	AssignedPilotID     *string    `gorm:"column:assigned_pilot_id;index"`
	ScheduledDate       *time.Time `gorm:"column:scheduled_date"`
	AssignmentSource    string     `gorm:"column:assignment_source"`
	AssignmentReason    string     `gorm:"column:assignment_reason"`
	ScheduleWindowStart *time.Time `gorm:"column:schedule_window_start"`
	ScheduleWindowEnd   *time.Time `gorm:"column:schedule_window_end"`
	PriceSnapshotID     string     `gorm:"column:price_snapshot_id"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName overrides the default table name
func (Missions) TableName() string {
	return "missions"
}

func missionToEntity(model Missions) (*entity.Mission, error) {
	missionID, err := uuid.Parse(model.MissionID)
	if err != nil {
		return nil, err
	}
	fieldID, err := uuid.Parse(model.FieldID)
	if err != nil {
		return nil, err
	}
	requestedBy, err := uuid.Parse(model.RequestedByUserID)
	if err != nil {
		return nil, err
	}
	priceID, err := uuid.Parse(model.PriceSnapshotID)
	if err != nil {
		return nil, err
	}

	mission := &entity.Mission{
		MissionID:           missionID,
		FieldID:             fieldID,
		RequestedByUserID:   requestedBy,
		CropType:            model.CropType,
		AnalysisType:        model.AnalysisType,
		Status:              entity.MissionStatus(model.Status),
		ScheduledDate:       model.ScheduledDate,
		AssignmentSource:    entity.AssignmentSource(model.AssignmentSource),
		AssignmentReason:    entity.AssignmentReason(model.AssignmentReason),
		ScheduleWindowStart: model.ScheduleWindowStart,
		ScheduleWindowEnd:   model.ScheduleWindowEnd,
		PriceSnapshotID:     priceID,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
	if model.SubscriptionID != nil {
		subID, err := uuid.Parse(*model.SubscriptionID)
		if err != nil {
			return nil, err
		}
		mission.SubscriptionID = &subID
	}
	if model.AssignedPilotID != nil {
		pilotID, err := uuid.Parse(*model.AssignedPilotID)
		if err != nil {
			return nil, err
		}
		mission.AssignedPilotID = &pilotID
	}
	return mission, nil
}

func missionToModel(mission *entity.Mission) Missions {
	model := Missions{
		MissionID:           mission.MissionID.String(),
		FieldID:             mission.FieldID.String(),
		RequestedByUserID:   mission.RequestedByUserID.String(),
		CropType:            mission.CropType,
		AnalysisType:        mission.AnalysisType,
		Status:              string(mission.Status),
		ScheduledDate:       mission.ScheduledDate,
		AssignmentSource:    string(mission.AssignmentSource),
		AssignmentReason:    string(mission.AssignmentReason),
		ScheduleWindowStart: mission.ScheduleWindowStart,
		ScheduleWindowEnd:   mission.ScheduleWindowEnd,
		PriceSnapshotID:     mission.PriceSnapshotID.String(),
		CreatedAt:           mission.CreatedAt,
		UpdatedAt:           mission.UpdatedAt,
	}
	if mission.SubscriptionID != nil {
		s := mission.SubscriptionID.String()
		model.SubscriptionID = &s
	}
	if mission.AssignedPilotID != nil {
		p := mission.AssignedPilotID.String()
		model.AssignedPilotID = &p
	}
	return model
}

// GetByID finds a mission by id
func (r *GormMissionRepository) GetByID(ctx context.Context, missionID uuid.UUID) (*entity.Mission, error) {
	var model Missions
	result := r.db.WithContext(ctx).Where("mission_id = ?", missionID.String()).First(&model)
	if result.Error != nil {
		return nil, result.Error
	}
	return missionToEntity(model)
}

// Save upserts a mission
func (r *GormMissionRepository) Save(ctx context.Context, mission *entity.Mission) error {
	model := missionToModel(mission)
	result := r.db.WithContext(ctx).Save(&model)
	return result.Error
}
