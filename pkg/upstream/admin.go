package upstream

import (
	"context"
	"net/url"
	"strings"

	pkgerrors "github.com/mercaline/storefront-gateway/pkg/errors"
)

// Blogs

func (c *Client) ListBlogs(ctx context.Context) ([]Blog, error) {
	var blogs []Blog
	if err := c.get(ctx, "/blogs", nil, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (c *Client) GetBlog(ctx context.Context, blogID string) (*Blog, error) {
	id, err := requireID(blogID, "blog id is required")
	if err != nil {
		return nil, err
	}
	var blog Blog
	if err := c.get(ctx, "/blogs/"+url.PathEscape(id), nil, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (c *Client) CreateBlog(ctx context.Context, blog Blog) (*Blog, error) {
	var created Blog
	if err := c.post(ctx, "/blogs", blog, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateBlog(ctx context.Context, blogID string, blog Blog) (*Blog, error) {
	id, err := requireID(blogID, "blog id is required")
	if err != nil {
		return nil, err
	}
	var updated Blog
	if err := c.put(ctx, "/blogs/"+url.PathEscape(id), blog, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteBlog(ctx context.Context, blogID string) error {
	id, err := requireID(blogID, "blog id is required")
	if err != nil {
		return err
	}
	return c.del(ctx, "/blogs/"+url.PathEscape(id), nil)
}

// Deals

func (c *Client) ListDeals(ctx context.Context) ([]Deal, error) {
	var deals []Deal
	if err := c.get(ctx, "/deals", nil, &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

func (c *Client) CreateDeal(ctx context.Context, deal Deal) (*Deal, error) {
	var created Deal
	if err := c.post(ctx, "/deals", deal, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateDeal(ctx context.Context, dealID string, deal Deal) (*Deal, error) {
	id, err := requireID(dealID, "deal id is required")
	if err != nil {
		return nil, err
	}
	var updated Deal
	if err := c.put(ctx, "/deals/"+url.PathEscape(id), deal, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteDeal(ctx context.Context, dealID string) error {
	id, err := requireID(dealID, "deal id is required")
	if err != nil {
		return err
	}
	return c.del(ctx, "/deals/"+url.PathEscape(id), nil)
}

// Coupon definitions

func (c *Client) ListCoupons(ctx context.Context) ([]CouponDefinition, error) {
	var coupons []CouponDefinition
	if err := c.get(ctx, "/coupons", nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (c *Client) CreateCoupon(ctx context.Context, coupon CouponDefinition) (*CouponDefinition, error) {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	var created CouponDefinition
	if err := c.post(ctx, "/coupons", coupon, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateCoupon(ctx context.Context, couponID string, coupon CouponDefinition) (*CouponDefinition, error) {
	id, err := requireID(couponID, "coupon id is required")
	if err != nil {
		return nil, err
	}
	var updated CouponDefinition
	if err := c.put(ctx, "/coupons/"+url.PathEscape(id), coupon, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCoupon(ctx context.Context, couponID string) error {
	id, err := requireID(couponID, "coupon id is required")
	if err != nil {
		return err
	}
	return c.del(ctx, "/coupons/"+url.PathEscape(id), nil)
}

// Users

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	id, err := requireID(userID, "user id is required")
	if err != nil {
		return nil, err
	}
	var user User
	if err := c.get(ctx, "/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, userID string, user User) (*User, error) {
	id, err := requireID(userID, "user id is required")
	if err != nil {
		return nil, err
	}
	var updated User
	if err := c.put(ctx, "/users/"+url.PathEscape(id), user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	id, err := requireID(userID, "user id is required")
	if err != nil {
		return err
	}
	return c.del(ctx, "/users/"+url.PathEscape(id), nil)
}

func requireID(raw, message string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, message)
	}
	return id, nil
}
