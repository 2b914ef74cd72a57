// Package reports assembles the admin dashboard from live upstream data.
// The three source fetches fan out concurrently; failures are combined so
// the caller sees every broken source, not just the first.
package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/pagination"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Orders beyond this many pages are ignored rather than hammering upstream.
const maxOrderPages = 20

// API is the slice of the upstream client the service depends on.
type API interface {
	ListOrders(ctx context.Context, query upstream.OrderQuery) (*upstream.OrderPage, error)
	ListDeals(ctx context.Context) ([]upstream.Deal, error)
	ListUsers(ctx context.Context) ([]upstream.User, error)
}

// OrderStats buckets orders by fulfillment status and sums paid revenue.
type OrderStats struct {
	Total      int             `json:"total"`
	Pending    int             `json:"pending"`
	Processing int             `json:"processing"`
	Completed  int             `json:"completed"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// DealStats summarizes the deal catalog's review activity.
type DealStats struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// UserStats summarizes the account directory.
type UserStats struct {
	Total  int `json:"total"`
	Admins int `json:"admins"`
}

// Dashboard is the assembled admin overview.
type Dashboard struct {
	Orders OrderStats `json:"orders"`
	Deals  DealStats  `json:"deals"`
	Users  UserStats  `json:"users"`
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

// Dashboard fetches orders, deals, and users concurrently and aggregates
// them. A failure in any source fails the report; the returned error carries
// every source failure.
func (s *Service) Dashboard(ctx context.Context, token string) (*Dashboard, error) {
	client := s.clients(token)

	var (
		orderStats OrderStats
		dealStats  DealStats
		userStats  UserStats

		ordersErr error
		dealsErr  error
		usersErr  error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orderStats, ordersErr = collectOrderStats(gctx, client)
		return ordersErr
	})
	g.Go(func() error {
		dealStats, dealsErr = collectDealStats(gctx, client)
		return dealsErr
	})
	g.Go(func() error {
		userStats, usersErr = collectUserStats(gctx, client)
		return usersErr
	})
	_ = g.Wait()

	if err := multierr.Combine(ordersErr, dealsErr, usersErr); err != nil {
		return nil, err
	}

	return &Dashboard{
		Orders: orderStats,
		Deals:  dealStats,
		Users:  userStats,
	}, nil
}

func collectOrderStats(ctx context.Context, client API) (OrderStats, error) {
	stats := OrderStats{Revenue: decimal.Zero}

	for page := 1; page <= maxOrderPages; page++ {
		result, err := client.ListOrders(ctx, upstream.OrderQuery{Page: page, Limit: pagination.MaxLimit})
		if err != nil {
			return OrderStats{}, err
		}

		for _, order := range result.Orders {
			stats.Total++
			switch strings.ToLower(order.Status) {
			case "pending":
				stats.Pending++
			case "processing":
				stats.Processing++
			case "completed", "delivered":
				stats.Completed++
			}
			if order.IsPaid {
				stats.Revenue = stats.Revenue.Add(order.Total)
			}
		}

		if result.TotalPages <= page || len(result.Orders) == 0 {
			break
		}
	}

	stats.Revenue = stats.Revenue.Round(2)
	return stats, nil
}

func collectDealStats(ctx context.Context, client API) (DealStats, error) {
	deals, err := client.ListDeals(ctx)
	if err != nil {
		return DealStats{}, err
	}

	stats := DealStats{Total: len(deals)}
	ratingSum := 0.0
	rated := 0
	for _, deal := range deals {
		if strings.EqualFold(deal.Status, "active") {
			stats.Active++
		}
		stats.ReviewCount += deal.ReviewCount
		if deal.ReviewCount > 0 {
			ratingSum += deal.Rating
			rated++
		}
	}
	if rated > 0 {
		stats.AverageRating = ratingSum / float64(rated)
	}
	return stats, nil
}

func collectUserStats(ctx context.Context, client API) (UserStats, error) {
	users, err := client.ListUsers(ctx)
	if err != nil {
		return UserStats{}, err
	}

	stats := UserStats{Total: len(users)}
	for _, user := range users {
		if user.IsAdmin {
			stats.Admins++
		}
	}
	return stats, nil
}
