package repository

import (
	"context"
	"time"

	"fieldscan-scheduler/internal/domain/entity"
	"fieldscan-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements the SubscriptionRepository interface
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GORM subscription repository
func NewGormSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &GormSubscriptionRepository{
		db: db,
	}
}

// Subscriptions GORM model for database mapping. The remaining token count
// is never stored; it is derived from the quota and the used counter.
type Subscriptions struct {
	SubscriptionID         string    `gorm:"column:subscription_id;primaryKey"`
	FarmerUserID           string    `gorm:"column:farmer_user_id;index"`
	FieldID                string    `gorm:"column:field_id;index"`
	CropType               string    `gorm:"column:crop_type"`
	AnalysisType           string    `gorm:"column:analysis_type"`
	ProvinceCode           string    `gorm:"column:province_code;index"`
	AreaM2                 float64   `gorm:"column:area_m2"`
	PlanType               string    `gorm:"column:plan_type"`
	IntervalDays           int       `gorm:"column:interval_days"`
	StartDate              time.Time `gorm:"column:start_date"`
	EndDate                time.Time `gorm:"column:end_date"`
	NextDueAt              time.Time `gorm:"column:next_due_at;index"`
	Status                 string    `gorm:"column:status;index"`
	ReschedTokensPerSeason int       `gorm:"column:reschedule_tokens_per_season"`
	ReschedTokensUsed      int       `gorm:"column:reschedule_tokens_used"`
	PriceSnapshotID        string    `gorm:"column:price_snapshot_id"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TableName overrides the default table name
func (Subscriptions) TableName() string {
	return "subscriptions"
}

func subscriptionToEntity(model Subscriptions) (*entity.Subscription, error) {
	subID, err := uuid.Parse(model.SubscriptionID)
	if err != nil {
		return nil, err
	}
	farmerID, err := uuid.Parse(model.FarmerUserID)
	if err != nil {
		return nil, err
	}
	fieldID, err := uuid.Parse(model.FieldID)
	if err != nil {
		return nil, err
	}
	priceID, err := uuid.Parse(model.PriceSnapshotID)
	if err != nil {
		return nil, err
	}
	return &entity.Subscription{
		SubscriptionID:         subID,
		FarmerUserID:           farmerID,
		FieldID:                fieldID,
		CropType:               model.CropType,
		AnalysisType:           model.AnalysisType,
		ProvinceCode:           model.ProvinceCode,
		AreaM2:                 model.AreaM2,
		PlanType:               entity.SubscriptionPlanType(model.PlanType),
		IntervalDays:           model.IntervalDays,
		StartDate:              model.StartDate,
		EndDate:                model.EndDate,
		NextDueAt:              model.NextDueAt,
		Status:                 entity.SubscriptionStatus(model.Status),
		ReschedTokensPerSeason: model.ReschedTokensPerSeason,
		ReschedTokensUsed:      model.ReschedTokensUsed,
		PriceSnapshotID:        priceID,
		CreatedAt:              model.CreatedAt,
		UpdatedAt:              model.UpdatedAt,
	}, nil
}

func subscriptionToModel(sub *entity.Subscription) Subscriptions {
	return Subscriptions{
		SubscriptionID:         sub.SubscriptionID.String(),
		FarmerUserID:           sub.FarmerUserID.String(),
		FieldID:                sub.FieldID.String(),
		CropType:               sub.CropType,
		AnalysisType:           sub.AnalysisType,
		ProvinceCode:           sub.ProvinceCode,
		AreaM2:                 sub.AreaM2,
		PlanType:               string(sub.PlanType),
		IntervalDays:           sub.IntervalDays,
		StartDate:              sub.StartDate,
		EndDate:                sub.EndDate,
		NextDueAt:              sub.NextDueAt,
		Status:                 string(sub.Status),
		ReschedTokensPerSeason: sub.ReschedTokensPerSeason,
		ReschedTokensUsed:      sub.ReschedTokensUsed,
		PriceSnapshotID:        sub.PriceSnapshotID.String(),
		CreatedAt:              sub.CreatedAt,
		UpdatedAt:              sub.UpdatedAt,
	}
}

// GetByID finds a subscription by id
func (r *GormSubscriptionRepository) GetByID(ctx context.Context, subscriptionID uuid.UUID) (*entity.Subscription, error) {
	var model Subscriptions
	result := r.db.WithContext(ctx).Where("subscription_id = ?", subscriptionID.String()).First(&model)
	if result.Error != nil {
		return nil, result.Error
	}
	return subscriptionToEntity(model)
}

// Save upserts a subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *entity.Subscription) error {
	model := subscriptionToModel(sub)
	result := r.db.WithContext(ctx).Save(&model)
	return result.Error
}

// FindActiveDue returns ACTIVE subscriptions due on or before the instant
func (r *GormSubscriptionRepository) FindActiveDue(ctx context.Context, before time.Time) ([]*entity.Subscription, error) {
	var models []Subscriptions
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.SubscriptionActive)).
		Where("next_due_at <= ?", before).
		Order("next_due_at").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	var entities []*entity.Subscription
	for _, model := range models {
		sub, err := subscriptionToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, sub)
	}
	return entities, nil
}
