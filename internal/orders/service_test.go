package orders

import (
	"context"
	"testing"

	pkgerrors "github.com/mercaline/storefront-gateway/pkg/errors"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
)

type stubOrdersAPI struct {
	lastQuery  upstream.OrderQuery
	page       upstream.OrderPage
	invoice    *upstream.InvoiceFile
	invoiceErr error
}

func (s *stubOrdersAPI) ListOrders(ctx context.Context, query upstream.OrderQuery) (*upstream.OrderPage, error) {
	s.lastQuery = query
	clone := s.page
	return &clone, nil
}

func (s *stubOrdersAPI) ListMyOrders(ctx context.Context, page, limit int) (*upstream.OrderPage, error) {
	s.lastQuery = upstream.OrderQuery{Page: page, Limit: limit}
	clone := s.page
	return &clone, nil
}

func (s *stubOrdersAPI) GetOrder(ctx context.Context, orderID string) (*upstream.Order, error) {
	return &upstream.Order{ID: orderID}, nil
}

func (s *stubOrdersAPI) MarkOrderPaid(ctx context.Context, orderID string) (*upstream.Order, error) {
	return &upstream.Order{ID: orderID, IsPaid: true}, nil
}

func (s *stubOrdersAPI) MarkOrderDelivered(ctx context.Context, orderID string) (*upstream.Order, error) {
	return &upstream.Order{ID: orderID, IsDelivered: true}, nil
}

func (s *stubOrdersAPI) UpdateOrderStatus(ctx context.Context, orderID, status string) (*upstream.Order, error) {
	return &upstream.Order{ID: orderID, Status: status}, nil
}

func (s *stubOrdersAPI) DownloadInvoice(ctx context.Context, orderID string) (*upstream.InvoiceFile, error) {
	return s.invoice, s.invoiceErr
}

func newTestService(t *testing.T, api *stubOrdersAPI) *Service {
	t.Helper()
	svc, err := NewService(func(token string) API { return api }, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestListAllNormalizesAndForwardsStatus(t *testing.T) {
	api := &stubOrdersAPI{page: upstream.OrderPage{Page: 1, TotalPages: 2, TotalItems: 30}}
	svc := newTestService(t, api)

	page, err := svc.ListAll(context.Background(), "tok", 0, 0, "pending")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if api.lastQuery.Page != 1 || api.lastQuery.Limit != 25 {
		t.Fatalf("expected normalized paging, got %+v", api.lastQuery)
	}
	if api.lastQuery.Status != "pending" {
		t.Fatalf("expected status forwarded, got %q", api.lastQuery.Status)
	}
	if page.Meta.TotalItems != 30 {
		t.Fatalf("expected server totals kept, got %+v", page.Meta)
	}
}

func TestInvoicePassesFileThrough(t *testing.T) {
	api := &stubOrdersAPI{invoice: &upstream.InvoiceFile{
		Filename:    "invoice-o1.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4"),
	}}
	svc := newTestService(t, api)

	file, err := svc.Invoice(context.Background(), "tok", "o1")
	if err != nil {
		t.Fatalf("invoice: %v", err)
	}
	if file.ContentType != "application/pdf" || len(file.Data) == 0 {
		t.Fatalf("expected pdf bytes passed through, got %+v", file)
	}
}

func TestInvoicePassesRejectionThrough(t *testing.T) {
	api := &stubOrdersAPI{invoiceErr: pkgerrors.New(pkgerrors.CodeUpstream, "invoice not ready")}
	svc := newTestService(t, api)

	_, err := svc.Invoice(context.Background(), "tok", "o1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUpstream {
		t.Fatalf("expected upstream rejection surfaced, got %v", err)
	}
	if typed.Message() != "invoice not ready" {
		t.Fatalf("expected verbatim upstream message, got %q", typed.Message())
	}
}
