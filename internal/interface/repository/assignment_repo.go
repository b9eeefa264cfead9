package repository

import (
	"context"
	"fmt"
	"time"

	"fieldscan-scheduler/internal/domain/entity"
	"fieldscan-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAssignmentRepository implements the AssignmentRepository interface
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM assignment repository
func NewGormAssignmentRepository(db *gorm.DB) repository.AssignmentRepository {
	return &GormAssignmentRepository{
		db: db,
	}
}

// PilotAssignments GORM model for database mapping
type PilotAssignments struct {
	gorm.Model
	PilotID       string    `gorm:"column:pilot_id;index:idx_pilot_date"`
	MissionID     string    `gorm:"column:mission_id;uniqueIndex"`
	ScheduledDate time.Time `gorm:"column:scheduled_date;index:idx_pilot_date"`
}

// TableName overrides the default table name
func (PilotAssignments) TableName() string {
	return "pilot_assignments"
}

// Create inserts a new assignment fact
func (r *GormAssignmentRepository) Create(ctx context.Context, assignment *entity.PilotAssignment) error {
	model := PilotAssignments{
		PilotID:       assignment.PilotID.String(),
		MissionID:     assignment.MissionID.String(),
		ScheduledDate: assignment.ScheduledDate,
	}
	result := r.db.WithContext(ctx).Create(&model)
	return result.Error
}

// UpdateScheduledDate moves the mission's assignment fact to a new date
func (r *GormAssignmentRepository) UpdateScheduledDate(ctx context.Context, missionID uuid.UUID, newDate time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&PilotAssignments{}).
		Where("mission_id = ?", missionID.String()).
		Update("scheduled_date", newDate)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no assignment fact for mission %s", missionID)
	}
	return nil
}

// FindByPilotAndRange returns assignment facts for a pilot inside the
// inclusive date range
func (r *GormAssignmentRepository) FindByPilotAndRange(ctx context.Context, pilotID uuid.UUID, start, end time.Time) ([]entity.PilotAssignment, error) {
	var models []PilotAssignments
	result := r.db.WithContext(ctx).
		Where("pilot_id = ?", pilotID.String()).
		Where("scheduled_date >= ?", start).
		Where("scheduled_date <= ?", end).
		Order("scheduled_date").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	var entities []entity.PilotAssignment
	for _, model := range models {
		pid, err := uuid.Parse(model.PilotID)
		if err != nil {
			return nil, err
		}
		mid, err := uuid.Parse(model.MissionID)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity.PilotAssignment{
			PilotID:       pid,
			MissionID:     mid,
			ScheduledDate: model.ScheduledDate,
		})
	}
	return entities, nil
}
