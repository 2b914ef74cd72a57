package controllers

import (
	"context"
	"net/http"

	"github.com/mercaline/storefront-gateway/api/responses"
	"github.com/mercaline/storefront-gateway/api/validators"
	"github.com/mercaline/storefront-gateway/internal/cart"
	"github.com/mercaline/storefront-gateway/internal/session"
	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
	"github.com/shopspring/decimal"
)

// CouponChecker validates a code against a cart total without attaching it.
type CouponChecker interface {
	ValidateCoupon(ctx context.Context, code string, cartTotal decimal.Decimal) (*upstream.Coupon, error)
}

// cartView is the response shape for every cart endpoint: items, coupon,
// and the freshly recomputed totals.
type cartView struct {
	Items  []cart.LineItem `json:"items"`
	Coupon *cart.Coupon    `json:"coupon,omitempty"`
	Totals cart.Totals     `json:"totals"`
	Count  int             `json:"count"`
}

func viewOf(sess *session.Session) cartView {
	return cartView{
		Items:  sess.Cart.Items(),
		Coupon: sess.Cart.Coupon(),
		Totals: sess.Cart.Totals(),
		Count:  sess.Cart.Count(),
	}
}

type cartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type couponRequest struct {
	Code string `json:"code" validate:"required"`
}

// CartFetch refreshes the session cart from upstream and returns it.
func CartFetch(registry SessionRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := sess.Cart.Fetch(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(sess))
	}
}

// CartAdd puts a product in the cart, merging quantities server-side.
func CartAdd(registry SessionRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sess.Cart.Add(r.Context(), payload.ProductID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(sess))
	}
}

// CartUpdate replaces a line's quantity.
func CartUpdate(registry SessionRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sess.Cart.UpdateQuantity(r.Context(), payload.ProductID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(sess))
	}
}

// CartRemove deletes a line entirely.
func CartRemove(registry SessionRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := sess.Cart.Remove(r.Context(), pathParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(sess))
	}
}

// CartClear empties the cart, coupon included.
func CartClear(registry SessionRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := sess.Cart.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(sess))
	}
}

// CartApplyCoupon validates and attaches a coupon in one round-trip.
func CartApplyCoupon(registry SessionRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload couponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sess.Cart.ApplyCoupon(r.Context(), payload.Code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(sess))
	}
}

// CartPreviewCoupon checks a code against the current cart total without
// touching the cart's coupon state.
func CartPreviewCoupon(registry SessionRegistry, checker func(token string) CouponChecker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload couponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := checker(sess.Token).ValidateCoupon(r.Context(), payload.Code, sess.Cart.Totals().Subtotal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, coupon)
	}
}

// CartRemoveCoupon detaches any applied coupon.
func CartRemoveCoupon(registry SessionRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := sess.Cart.ClearCoupon(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(sess))
	}
}
