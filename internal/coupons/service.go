// Package coupons fronts the upstream coupon definitions for the admin
// console.
package coupons

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
	ListCoupons(ctx context.Context) ([]upstream.CouponDefinition, error)
	CreateCoupon(ctx context.Context, coupon upstream.CouponDefinition) (*upstream.CouponDefinition, error)
	UpdateCoupon(ctx context.Context, couponID string, coupon upstream.CouponDefinition) (*upstream.CouponDefinition, error)
	DeleteCoupon(ctx context.Context, couponID string) error
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

// List fetches every coupon definition, filtered by code substring, newest
// first.
func (s *Service) List(ctx context.Context, token, search string) ([]upstream.CouponDefinition, error) {
	coupons, err := s.clients(token).ListCoupons(ctx)
	if err != nil {
		return nil, err
	}

	filtered := listview.Filter(coupons,
		listview.TextMatch(search, func(c upstream.CouponDefinition) []string {
			return []string{c.Code}
		}),
	)
	listview.SortByTime(filtered, func(c upstream.CouponDefinition) time.Time { return c.CreatedAt }, true)
	return filtered, nil
}

func (s *Service) Create(ctx context.Context, token string, coupon upstream.CouponDefinition) (*upstream.CouponDefinition, error) {
	return s.clients(token).CreateCoupon(ctx, coupon)
}

func (s *Service) Update(ctx context.Context, token, couponID string, coupon upstream.CouponDefinition) (*upstream.CouponDefinition, error) {
	return s.clients(token).UpdateCoupon(ctx, couponID, coupon)
}

func (s *Service) Delete(ctx context.Context, token, couponID string) error {
	return s.clients(token).DeleteCoupon(ctx, couponID)
}
