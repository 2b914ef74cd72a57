// Package catalog fronts the upstream product catalog. Lists are
// server-paginated: each fetch replaces the previous rows and page count
// verbatim, with no client-side merging across pages.
package catalog

import (
	"context"
	"fmt"

	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/pagination"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
	"github.com/shopspring/decimal"
)

// API is the slice of the upstream client the service depends on.
type API interface {
	ListProducts(ctx context.Context, query upstream.ProductQuery) (*upstream.ProductPage, error)
	GetProduct(ctx context.Context, productID string) (*upstream.Product, error)
	ListCategories(ctx context.Context) ([]upstream.Category, error)
	CreateProduct(ctx context.Context, product upstream.Product) (*upstream.Product, error)
	UpdateProduct(ctx context.Context, productID string, product upstream.Product) (*upstream.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// Query carries the storefront's filter/sort/page selections. Changing any
// filter resets the page; callers pass Page 1 when they do.
type Query struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Sort     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Page is one server page of products plus its pagination block.
type Page struct {
	Products []upstream.Product `json:"products"`
	Meta     pagination.Meta    `json:"meta"`
}

// Service exposes catalog reads for the storefront and writes for the admin
// console.
type Service struct {
	clients func(token string) API
	logg    *logger.Logger
}

// NewService builds the catalog service over a token-scoped client factory.
func NewService(clients func(token string) API, logg *logger.Logger) (*Service, error) {
	if clients == nil {
		return nil, fmt.Errorf("client factory is required")
	}
	return &Service{clients: clients, logg: logg}, nil
}

// List fetches one catalog page. The returned rows and counts come straight
// from the server response.
func (s *Service) List(ctx context.Context, token string, query Query) (*Page, error) {
	params := pagination.Normalize(pagination.Params{Page: query.Page, Limit: query.Limit})

	page, err := s.clients(token).ListProducts(ctx, upstream.ProductQuery{
		Page:     params.Page,
		Limit:    params.Limit,
		Search:   query.Search,
		Category: query.Category,
		Sort:     query.Sort,
		MinPrice: query.MinPrice,
		MaxPrice: query.MaxPrice,
	})
	if err != nil {
		return nil, err
	}

	return &Page{
		Products: page.Products,
		Meta: pagination.Meta{
			Page:       page.Page,
			Limit:      params.Limit,
			TotalPages: page.TotalPages,
			TotalItems: page.TotalItems,
		},
	}, nil
}

// Get fetches a single product.
func (s *Service) Get(ctx context.Context, token, productID string) (*upstream.Product, error) {
	return s.clients(token).GetProduct(ctx, productID)
}

// Categories fetches the category taxonomy.
func (s *Service) Categories(ctx context.Context, token string) ([]upstream.Category, error) {
	return s.clients(token).ListCategories(ctx)
}

// Create adds a catalog entry (admin).
func (s *Service) Create(ctx context.Context, token string, product upstream.Product) (*upstream.Product, error) {
	return s.clients(token).CreateProduct(ctx, product)
}

// Update replaces a catalog entry (admin).
func (s *Service) Update(ctx context.Context, token, productID string, product upstream.Product) (*upstream.Product, error) {
	return s.clients(token).UpdateProduct(ctx, productID, product)
}

// Delete removes a catalog entry (admin).
func (s *Service) Delete(ctx context.Context, token, productID string) error {
	return s.clients(token).DeleteProduct(ctx, productID)
}
