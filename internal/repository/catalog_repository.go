package repository

import (
	"context"

	"github.com/mothernatural/wellness-backend/internal/model"
	"gorm.io/gorm"
)

// CatalogRepository is a read-only view over the storefront catalog tables.
// The admin screens that manage them live outside this service.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListServices(ctx context.Context) ([]model.ServiceOffering, error)
	ListClasses(ctx context.Context) ([]model.Class, error)
	ListRetreats(ctx context.Context) ([]model.Retreat, error)
	RewardExists(ctx context.Context, rewardType, rewardID string) (bool, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	var list []model.Product
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("name").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *catalogRepository) ListServices(ctx context.Context) ([]model.ServiceOffering, error) {
	var list []model.ServiceOffering
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("name").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *catalogRepository) ListClasses(ctx context.Context) ([]model.Class, error) {
	var list []model.Class
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("name").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *catalogRepository) ListRetreats(ctx context.Context) ([]model.Retreat, error) {
	var list []model.Retreat
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("name").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *catalogRepository) RewardExists(ctx context.Context, rewardType, rewardID string) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx)
	switch rewardType {
	case "product":
		q = q.Model(&model.Product{})
	case "service":
		q = q.Model(&model.ServiceOffering{})
	case "class":
		q = q.Model(&model.Class{})
	case "retreat":
		q = q.Model(&model.Retreat{})
	default:
		return false, nil
	}
	if err := q.Where("id = ? AND active = ?", rewardID, true).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
