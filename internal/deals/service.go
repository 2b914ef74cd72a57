// Package deals fronts the upstream deal CRUD for the admin console.
package deals

import (
	"context"
	"fmt"
	"time"

	"github.com/mercaline/storefront-gateway/internal/listview"
	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
)

// API is the slice of the upstream client the service depends on.
type API interface {
	ListDeals(ctx context.Context) ([]upstream.Deal, error)
	CreateDeal(ctx context.Context, deal upstream.Deal) (*upstream.Deal, error)
	UpdateDeal(ctx context.Context, dealID string, deal upstream.Deal) (*upstream.Deal, error)
	DeleteDeal(ctx context.Context, dealID string) error
}

// Filters are the admin list screen's selections.
type Filters struct {
	Search string
	Status string
}

type Service struct {
	clients func(token string) API
	logg    *logger.Logger
}

func NewService(clients func(token string) API, logg *logger.Logger) (*Service, error) {
	if clients == nil {
		return nil, fmt.Errorf("client factory is required")
	}
	return &Service{clients: clients, logg: logg}, nil
}

// List fetches every deal and applies the screen's filters, newest first.
func (s *Service) List(ctx context.Context, token string, filters Filters) ([]upstream.Deal, error) {
	deals, err := s.clients(token).ListDeals(ctx)
	if err != nil {
		return nil, err
	}

	filtered := listview.Filter(deals,
		listview.TextMatch(filters.Search, func(d upstream.Deal) []string {
			return []string{d.Title}
		}),
		listview.Equals(filters.Status, func(d upstream.Deal) string { return d.Status }),
	)
	listview.SortByTime(filtered, func(d upstream.Deal) time.Time { return d.CreatedAt }, true)
	return filtered, nil
}

func (s *Service) Create(ctx context.Context, token string, deal upstream.Deal) (*upstream.Deal, error) {
	return s.clients(token).CreateDeal(ctx, deal)
}

func (s *Service) Update(ctx context.Context, token, dealID string, deal upstream.Deal) (*upstream.Deal, error) {
	return s.clients(token).UpdateDeal(ctx, dealID, deal)
}

func (s *Service) Delete(ctx context.Context, token, dealID string) error {
	return s.clients(token).DeleteDeal(ctx, dealID)
}
