package upstream

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	pkgerrors "github.com/mercaline/storefront-gateway/pkg/errors"
	"github.com/shopspring/decimal"
)

// ProductQuery carries the UI's filter/sort/page selections, translated
// one-to-one into query parameters for the list-fetch call.
type ProductQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Sort     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

func (q ProductQuery) values() url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		values.Set("search", s)
	}
	if c := strings.TrimSpace(q.Category); c != "" {
		values.Set("category", c)
	}
	if s := strings.TrimSpace(q.Sort); s != "" {
		values.Set("sort", s)
	}
	if q.MinPrice != nil {
		values.Set("minPrice", q.MinPrice.String())
	}
	if q.MaxPrice != nil {
		values.Set("maxPrice", q.MaxPrice.String())
	}
	return values
}

// ListProducts fetches one page of the catalog.
func (c *Client) ListProducts(ctx context.Context, query ProductQuery) (*ProductPage, error) {
	var page ProductPage
	if err := c.get(ctx, "/products", query.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetProduct fetches a single catalog entry.
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	var product Product
	if err := c.get(ctx, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories fetches the category taxonomy.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateProduct adds a catalog entry (admin).
func (c *Client) CreateProduct(ctx context.Context, product Product) (*Product, error) {
	var created Product
	if err := c.post(ctx, "/products", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces a catalog entry (admin).
func (c *Client) UpdateProduct(ctx context.Context, productID string, product Product) (*Product, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	var updated Product
	if err := c.put(ctx, "/products/"+url.PathEscape(id), product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a catalog entry (admin).
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	id := strings.TrimSpace(productID)
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return c.del(ctx, "/products/"+url.PathEscape(id), nil)
}
