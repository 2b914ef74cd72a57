package catalog

import (
	"context"
	"testing"

	"github.com/mercaline/storefront-gateway/pkg/upstream"
)

type stubCatalogAPI struct {
	lastQuery upstream.ProductQuery
	page      upstream.ProductPage
	err       error
}

func (s *stubCatalogAPI) ListProducts(ctx context.Context, query upstream.ProductQuery) (*upstream.ProductPage, error) {
	s.lastQuery = query
	if s.err != nil {
		return nil, s.err
	}
	clone := s.page
	return &clone, nil
}

func (s *stubCatalogAPI) GetProduct(ctx context.Context, productID string) (*upstream.Product, error) {
	return &upstream.Product{ID: productID}, nil
}

func (s *stubCatalogAPI) ListCategories(ctx context.Context) ([]upstream.Category, error) {
	return []upstream.Category{{ID: "c1", Name: "Lighting"}}, nil
}

func (s *stubCatalogAPI) CreateProduct(ctx context.Context, product upstream.Product) (*upstream.Product, error) {
	product.ID = "created"
	return &product, nil
}

func (s *stubCatalogAPI) UpdateProduct(ctx context.Context, productID string, product upstream.Product) (*upstream.Product, error) {
	product.ID = productID
	return &product, nil
}

func (s *stubCatalogAPI) DeleteProduct(ctx context.Context, productID string) error {
	return nil
}

func newTestService(t *testing.T, api *stubCatalogAPI) *Service {
	t.Helper()
	svc, err := NewService(func(token string) API { return api }, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestListNormalizesPageAndLimit(t *testing.T) {
	api := &stubCatalogAPI{page: upstream.ProductPage{Page: 1, TotalPages: 4, TotalItems: 100}}
	svc := newTestService(t, api)

	if _, err := svc.List(context.Background(), "", Query{Page: 0, Limit: 0}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if api.lastQuery.Page != 1 {
		t.Fatalf("expected page floored at 1, got %d", api.lastQuery.Page)
	}
	if api.lastQuery.Limit != 25 {
		t.Fatalf("expected default limit 25, got %d", api.lastQuery.Limit)
	}

	if _, err := svc.List(context.Background(), "", Query{Page: 3, Limit: 5000}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if api.lastQuery.Limit != 100 {
		t.Fatalf("expected limit capped at 100, got %d", api.lastQuery.Limit)
	}
}

func TestListReplacesRowsAndCountsVerbatim(t *testing.T) {
	api := &stubCatalogAPI{page: upstream.ProductPage{
		Products:   []upstream.Product{{ID: "p1"}, {ID: "p2"}},
		Page:       2,
		TotalPages: 7,
		TotalItems: 161,
	}}
	svc := newTestService(t, api)

	page, err := svc.List(context.Background(), "", Query{Page: 2, Limit: 25})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(page.Products))
	}
	if page.Meta.Page != 2 || page.Meta.TotalPages != 7 || page.Meta.TotalItems != 161 {
		t.Fatalf("expected server-given counts, got %+v", page.Meta)
	}
}

func TestListForwardsFilterSelections(t *testing.T) {
	api := &stubCatalogAPI{}
	svc := newTestService(t, api)

	if _, err := svc.List(context.Background(), "", Query{Search: "lamp", Category: "lighting", Sort: "price-asc"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if api.lastQuery.Search != "lamp" || api.lastQuery.Category != "lighting" || api.lastQuery.Sort != "price-asc" {
		t.Fatalf("expected selections forwarded, got %+v", api.lastQuery)
	}
}
