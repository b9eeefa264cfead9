package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"fieldscan-scheduler/internal/domain/entity"
	"fieldscan-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPilotRepository implements the PilotRepository interface
type GormPilotRepository struct {
	db *gorm.DB
}

// NewGormPilotRepository creates a new GORM pilot repository
func NewGormPilotRepository(db *gorm.DB) repository.PilotRepository {
	return &GormPilotRepository{
		db: db,
	}
}

// PilotCapacities GORM model for database mapping. Work days are stored
// as a comma-separated list of weekday numbers (time.Weekday, Sunday=0).
type PilotCapacities struct {
	gorm.Model
	PilotID       string `gorm:"column:pilot_id;uniqueIndex"`
	WorkDays      string `gorm:"column:work_days"`
	DailyCapacity int    `gorm:"column:daily_capacity"`
	ProvinceCode  string `gorm:"column:province_code;index"`
}

// TableName overrides the default table name
func (PilotCapacities) TableName() string {
	return "pilot_capacities"
}

func parseWorkDays(csv string) map[time.Weekday]bool {
	days := make(map[time.Weekday]bool)
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		days[time.Weekday(n)] = true
	}
	return days
}

func (r *GormPilotRepository) toEntity(model PilotCapacities) (*entity.PilotCapacity, error) {
	pilotID, err := uuid.Parse(model.PilotID)
	if err != nil {
		return nil, err
	}
	return &entity.PilotCapacity{
		PilotID:       pilotID,
		WorkDays:      parseWorkDays(model.WorkDays),
		DailyCapacity: model.DailyCapacity,
		ProvinceCode:  model.ProvinceCode,
	}, nil
}

// GetByPilotID finds a pilot capacity record by pilot id
func (r *GormPilotRepository) GetByPilotID(ctx context.Context, pilotID uuid.UUID) (*entity.PilotCapacity, error) {
	var model PilotCapacities
	result := r.db.WithContext(ctx).Where("pilot_id = ?", pilotID.String()).First(&model)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.toEntity(model)
}

// FindByProvince finds all pilot capacity records for a province
func (r *GormPilotRepository) FindByProvince(ctx context.Context, provinceCode string) ([]*entity.PilotCapacity, error) {
	var models []PilotCapacities
	result := r.db.WithContext(ctx).
		Where("province_code = ?", provinceCode).
		Order("pilot_id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	var entities []*entity.PilotCapacity
	for _, model := range models {
		pilot, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, pilot)
	}
	return entities, nil
}
