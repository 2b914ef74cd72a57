package upstream

import (
	"context"
	"net/url"
	"strings"

	pkgerrors "github.com/mercaline/storefront-gateway/pkg/errors"
)

// GetWishlist returns the favorited product ids for the authenticated user.
func (c *Client) GetWishlist(ctx context.Context) ([]string, error) {
	var payload struct {
		ProductIDs []string `json:"product_ids"`
	}
	if err := c.get(ctx, "/wishlist", nil, &payload); err != nil {
		return nil, err
	}
	return payload.ProductIDs, nil
}

// AddWishlistItem favorites a product.
func (c *Client) AddWishlistItem(ctx context.Context, productID string) error {
	id := strings.TrimSpace(productID)
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return c.post(ctx, "/wishlist/"+url.PathEscape(id), nil, nil)
}

// RemoveWishlistItem unfavorites a product.
func (c *Client) RemoveWishlistItem(ctx context.Context, productID string) error {
	id := strings.TrimSpace(productID)
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return c.del(ctx, "/wishlist/"+url.PathEscape(id), nil)
}
