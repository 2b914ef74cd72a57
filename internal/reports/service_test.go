package reports

import (
	"context"
	"strings"
	"testing"

	pkgerrors "github.com/mercaline/storefront-gateway/pkg/errors"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
	"github.com/shopspring/decimal"
)

type stubReportsAPI struct {
	pages    []upstream.OrderPage
	deals    []upstream.Deal
	users    []upstream.User
	orderErr error
	dealErr  error
	userErr  error
}

func (s *stubReportsAPI) ListOrders(ctx context.Context, query upstream.OrderQuery) (*upstream.OrderPage, error) {
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	if query.Page < 1 || query.Page > len(s.pages) {
		return &upstream.OrderPage{Page: query.Page, TotalPages: len(s.pages)}, nil
	}
	clone := s.pages[query.Page-1]
	return &clone, nil
}

func (s *stubReportsAPI) ListDeals(ctx context.Context) ([]upstream.Deal, error) {
	return s.deals, s.dealErr
}

func (s *stubReportsAPI) ListUsers(ctx context.Context) ([]upstream.User, error) {
	return s.users, s.userErr
}

func newTestService(t *testing.T, api *stubReportsAPI) *Service {
	t.Helper()
	svc, err := NewService(func(token string) API { return api }, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func money(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestDashboardAggregatesAcrossOrderPages(t *testing.T) {
	api := &stubReportsAPI{
		pages: []upstream.OrderPage{
			{
				Orders: []upstream.Order{
					{Status: "pending", IsPaid: false, Total: money("100")},
					{Status: "processing", IsPaid: true, Total: money("249.50")},
				},
				Page: 1, TotalPages: 2,
			},
			{
				Orders: []upstream.Order{
					{Status: "completed", IsPaid: true, Total: money("50.25")},
				},
				Page: 2, TotalPages: 2,
			},
		},
		deals: []upstream.Deal{
			{Status: "active", Rating: 4.0, ReviewCount: 10},
			{Status: "expired", Rating: 2.0, ReviewCount: 2},
			{Status: "active"},
		},
		users: []upstream.User{
			{IsAdmin: true},
			{}, {},
		},
	}
	svc := newTestService(t, api)

	dash, err := svc.Dashboard(context.Background(), "tok")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if dash.Orders.Total != 3 || dash.Orders.Pending != 1 || dash.Orders.Processing != 1 || dash.Orders.Completed != 1 {
		t.Fatalf("unexpected order buckets: %+v", dash.Orders)
	}
	if !dash.Orders.Revenue.Equal(money("299.75")) {
		t.Fatalf("expected paid revenue 299.75, got %s", dash.Orders.Revenue)
	}
	if dash.Deals.Total != 3 || dash.Deals.Active != 2 || dash.Deals.ReviewCount != 12 {
		t.Fatalf("unexpected deal stats: %+v", dash.Deals)
	}
	if dash.Deals.AverageRating != 3.0 {
		t.Fatalf("expected average rating over rated deals 3.0, got %f", dash.Deals.AverageRating)
	}
	if dash.Users.Total != 3 || dash.Users.Admins != 1 {
		t.Fatalf("unexpected user stats: %+v", dash.Users)
	}
}

func TestDashboardCombinesSourceFailures(t *testing.T) {
	api := &stubReportsAPI{
		orderErr: pkgerrors.New(pkgerrors.CodeDependency, "orders down"),
		userErr:  pkgerrors.New(pkgerrors.CodeDependency, "users down"),
	}
	svc := newTestService(t, api)

	_, err := svc.Dashboard(context.Background(), "tok")
	if err == nil {
		t.Fatalf("expected combined failure")
	}
	msg := err.Error()
	if !strings.Contains(msg, "orders down") || !strings.Contains(msg, "users down") {
		t.Fatalf("expected both source failures reported, got %q", msg)
	}
}
