package service

import (
	"context"

	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/mothernatural/wellness-backend/internal/repository"
)

// RewardItem is the flattened shape the start-game selector consumes,
// regardless of which catalog table the reward lives in.
type RewardItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
}

type CatalogService interface {
	Products(ctx context.Context) ([]model.Product, error)
	Services(ctx context.Context) ([]model.ServiceOffering, error)
	Classes(ctx context.Context) ([]model.Class, error)
	Retreats(ctx context.Context) ([]model.Retreat, error)
	Rewards(ctx context.Context, rewardType string) ([]RewardItem, error)
}

type catalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) Products(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *catalogService) Services(ctx context.Context) ([]model.ServiceOffering, error) {
	return s.repo.ListServices(ctx)
}

func (s *catalogService) Classes(ctx context.Context) ([]model.Class, error) {
	return s.repo.ListClasses(ctx)
}

func (s *catalogService) Retreats(ctx context.Context) ([]model.Retreat, error) {
	return s.repo.ListRetreats(ctx)
}

func (s *catalogService) Rewards(ctx context.Context, rewardType string) ([]RewardItem, error) {
	switch rewardType {
	case "product":
		list, err := s.repo.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]RewardItem, 0, len(list))
		for _, p := range list {
			out = append(out, RewardItem{ID: p.ID, Name: p.Name, Description: p.Description, PriceCents: p.PriceCents})
		}
		return out, nil
	case "service":
		list, err := s.repo.ListServices(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]RewardItem, 0, len(list))
		for _, v := range list {
			out = append(out, RewardItem{ID: v.ID, Name: v.Name, Description: v.Description, PriceCents: v.PriceCents})
		}
		return out, nil
	case "class":
		list, err := s.repo.ListClasses(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]RewardItem, 0, len(list))
		for _, cl := range list {
			out = append(out, RewardItem{ID: cl.ID, Name: cl.Name, Description: cl.Description, PriceCents: cl.PriceCents})
		}
		return out, nil
	case "retreat":
		list, err := s.repo.ListRetreats(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]RewardItem, 0, len(list))
		for _, rt := range list {
			out = append(out, RewardItem{ID: rt.ID, Name: rt.Name, Description: rt.Description, PriceCents: rt.PriceCents})
		}
		return out, nil
	default:
		return nil, ErrUnknownRewardType
	}
}
