package repository

import (
	"context"

	"github.com/mothernatural/wellness-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameConfigRepository interface {
	ListRewardTypes(ctx context.Context) ([]model.RewardType, error)
	FindRewardType(ctx context.Context, id string) (*model.RewardType, error)
	UpsertRewardType(ctx context.Context, rt *model.RewardType) error
	ListManifestations(ctx context.Context) ([]model.Manifestation, error)
	FindManifestation(ctx context.Context, id string) (*model.Manifestation, error)
	UpsertManifestation(ctx context.Context, m *model.Manifestation) error
}

type gameConfigRepository struct {
	db *gorm.DB
}

func NewGameConfigRepository(db *gorm.DB) GameConfigRepository {
	return &gameConfigRepository{db: db}
}

func (r *gameConfigRepository) ListRewardTypes(ctx context.Context) ([]model.RewardType, error) {
	var list []model.RewardType
	if err := r.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *gameConfigRepository) FindRewardType(ctx context.Context, id string) (*model.RewardType, error) {
	var rt model.RewardType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *gameConfigRepository) UpsertRewardType(ctx context.Context, rt *model.RewardType) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "target_days"}),
		}).
		Create(rt).Error
}

func (r *gameConfigRepository) ListManifestations(ctx context.Context) ([]model.Manifestation, error) {
	var list []model.Manifestation
	if err := r.db.WithContext(ctx).Order("display_order, id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *gameConfigRepository) FindManifestation(ctx context.Context, id string) (*model.Manifestation, error) {
	var m model.Manifestation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gameConfigRepository) UpsertManifestation(ctx context.Context, m *model.Manifestation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "plant_type", "plant_image", "display_order"}),
		}).
		Create(m).Error
}
