// Package orders fronts the upstream order book: buyer history, admin
// transitions, and invoice downloads.
package orders

import (
	"context"
	"fmt"

	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/pagination"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
)

// API is the slice of the upstream client the service depends on.
type API interface {
	ListOrders(ctx context.Context, query upstream.OrderQuery) (*upstream.OrderPage, error)
	ListMyOrders(ctx context.Context, page, limit int) (*upstream.OrderPage, error)
	GetOrder(ctx context.Context, orderID string) (*upstream.Order, error)
	MarkOrderPaid(ctx context.Context, orderID string) (*upstream.Order, error)
	MarkOrderDelivered(ctx context.Context, orderID string) (*upstream.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (*upstream.Order, error)
	DownloadInvoice(ctx context.Context, orderID string) (*upstream.InvoiceFile, error)
}

// Page is one server page of orders plus its pagination block.
type Page struct {
	Orders []upstream.Order `json:"orders"`
	Meta   pagination.Meta  `json:"meta"`
}

// Service exposes order reads and admin transitions.
type Service struct {
	clients func(token string) API
	logg    *logger.Logger
}

// NewService builds the orders service over a token-scoped client factory.
func NewService(clients func(token string) API, logg *logger.Logger) (*Service, error) {
	if clients == nil {
		return nil, fmt.Errorf("client factory is required")
	}
	return &Service{clients: clients, logg: logg}, nil
}

// ListAll fetches one page of every order, optionally filtered by status (admin).
func (s *Service) ListAll(ctx context.Context, token string, page, limit int, status string) (*Page, error) {
	params := pagination.Normalize(pagination.Params{Page: page, Limit: limit})
	result, err := s.clients(token).ListOrders(ctx, upstream.OrderQuery{
		Page:   params.Page,
		Limit:  params.Limit,
		Status: status,
	})
	if err != nil {
		return nil, err
	}
	return toPage(result, params.Limit), nil
}

// ListMine fetches the authenticated buyer's order history.
func (s *Service) ListMine(ctx context.Context, token string, page, limit int) (*Page, error) {
	params := pagination.Normalize(pagination.Params{Page: page, Limit: limit})
	result, err := s.clients(token).ListMyOrders(ctx, params.Page, params.Limit)
	if err != nil {
		return nil, err
	}
	return toPage(result, params.Limit), nil
}

// Get fetches a single order.
func (s *Service) Get(ctx context.Context, token, orderID string) (*upstream.Order, error) {
	return s.clients(token).GetOrder(ctx, orderID)
}

// MarkPaid flips the payment flag (admin).
func (s *Service) MarkPaid(ctx context.Context, token, orderID string) (*upstream.Order, error) {
	return s.clients(token).MarkOrderPaid(ctx, orderID)
}

// MarkDelivered flips the delivery flag (admin).
func (s *Service) MarkDelivered(ctx context.Context, token, orderID string) (*upstream.Order, error) {
	return s.clients(token).MarkOrderDelivered(ctx, orderID)
}

// SetStatus sets the fulfillment status (admin).
func (s *Service) SetStatus(ctx context.Context, token, orderID, status string) (*upstream.Order, error) {
	return s.clients(token).UpdateOrderStatus(ctx, orderID, status)
}

// Invoice downloads the order invoice. The upstream client already resolves
// the PDF-or-JSON content-type branch; this passes the file or the coded
// rejection through untouched.
func (s *Service) Invoice(ctx context.Context, token, orderID string) (*upstream.InvoiceFile, error) {
	return s.clients(token).DownloadInvoice(ctx, orderID)
}

func toPage(result *upstream.OrderPage, limit int) *Page {
	return &Page{
		Orders: result.Orders,
		Meta: pagination.Meta{
			Page:       result.Page,
			Limit:      limit,
			TotalPages: result.TotalPages,
			TotalItems: result.TotalItems,
		},
	}
}
