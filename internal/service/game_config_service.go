package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/mothernatural/wellness-backend/internal/repository"
)

type GameConfigService interface {
	RewardTypes(ctx context.Context) ([]model.RewardType, error)
	Manifestations(ctx context.Context) ([]model.Manifestation, error)
	SaveRewardType(ctx context.Context, rt *model.RewardType) error
	SaveManifestation(ctx context.Context, m *model.Manifestation) error
}

type gameConfigService struct {
	repo repository.GameConfigRepository
}

func NewGameConfigService(repo repository.GameConfigRepository) GameConfigService {
	return &gameConfigService{repo: repo}
}

func (s *gameConfigService) RewardTypes(ctx context.Context) ([]model.RewardType, error) {
	return s.repo.ListRewardTypes(ctx)
}

func (s *gameConfigService) Manifestations(ctx context.Context) ([]model.Manifestation, error) {
	return s.repo.ListManifestations(ctx)
}

func (s *gameConfigService) SaveRewardType(ctx context.Context, rt *model.RewardType) error {
	rt.ID = strings.TrimSpace(strings.ToLower(rt.ID))
	if rt.ID == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(rt.Name) == "" {
		return errors.New("name is required")
	}
	if rt.TargetDays <= 0 {
		return errors.New("targetDays must be positive")
	}
	return s.repo.UpsertRewardType(ctx, rt)
}

func (s *gameConfigService) SaveManifestation(ctx context.Context, m *model.Manifestation) error {
	m.ID = strings.TrimSpace(strings.ToLower(m.ID))
	if m.ID == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(m.PlantType) == "" {
		return errors.New("plantType is required")
	}
	return s.repo.UpsertManifestation(ctx, m)
}
