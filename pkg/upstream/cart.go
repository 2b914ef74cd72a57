package upstream

import (
	"context"
	"net/url"
	"strings"

	pkgerrors "github.com/mercaline/storefront-gateway/pkg/errors"
	"github.com/shopspring/decimal"
)

// GetCart fetches the durable cart for the authenticated user.
func (c *Client) GetCart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.get(ctx, "/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem sends a product and quantity; the server merges into any
// existing line and returns the authoritative cart.
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) (*Cart, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	payload := map[string]any{"product_id": id, "quantity": quantity}
	var cart Cart
	if err := c.post(ctx, "/cart/add", payload, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem replaces a line's quantity and returns the authoritative cart.
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) (*Cart, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	payload := map[string]any{"product_id": id, "quantity": quantity}
	var cart Cart
	if err := c.put(ctx, "/cart/update", payload, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartItem deletes a line entirely and returns the authoritative cart.
func (c *Client) RemoveCartItem(ctx context.Context, productID string) (*Cart, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	var cart Cart
	if err := c.del(ctx, "/cart/remove/"+url.PathEscape(id), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart empties the durable cart, coupon included.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.del(ctx, "/cart/clear", nil)
}

// ApplyCartCoupon validates and attaches a coupon to the cart in a single
// round-trip. The returned cart reflects the applied discount.
func (c *Client) ApplyCartCoupon(ctx context.Context, code string) (*Cart, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	payload := map[string]string{"code": normalized}
	var cart Cart
	if err := c.post(ctx, "/cart/apply-coupon", payload, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartCoupon detaches any applied coupon and returns the cart.
func (c *Client) RemoveCartCoupon(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.del(ctx, "/cart/remove-coupon", &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ValidateCoupon checks a code against a cart total without attaching it.
func (c *Client) ValidateCoupon(ctx context.Context, code string, cartTotal decimal.Decimal) (*Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	payload := map[string]any{"code": normalized, "cart_total": cartTotal}
	var coupon Coupon
	if err := c.post(ctx, "/coupons/apply", payload, &coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}
