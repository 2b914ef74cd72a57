package controllers

import (
	"net/http"
	"time"

	"github.com/mercaline/storefront-gateway/api/responses"
	"github.com/mercaline/storefront-gateway/api/validators"
	couponsvc "github.com/mercaline/storefront-gateway/internal/coupons"
	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
	"github.com/shopspring/decimal"
)

type couponDefinitionRequest struct {
	Code      string          `json:"code" validate:"required"`
	Discount  decimal.Decimal `json:"discount" validate:"required"`
	MinSpend  decimal.Decimal `json:"min_spend"`
	IsActive  *bool           `json:"is_active,omitempty"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

func (c couponDefinitionRequest) toCoupon() upstream.CouponDefinition {
	coupon := upstream.CouponDefinition{
		Code:      c.Code,
		Discount:  c.Discount,
		MinSpend:  c.MinSpend,
		IsActive:  true,
		ExpiresAt: c.ExpiresAt,
	}
	if c.IsActive != nil {
		coupon.IsActive = *c.IsActive
	}
	return coupon
}

// AdminCouponList serves the coupon definitions filtered by code.
func AdminCouponList(registry SessionRegistry, svc *couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupons, err := svc.List(r.Context(), sess.Token, queryParam(r, "search"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, coupons)
	}
}

// AdminCouponCreate adds a coupon definition.
func AdminCouponCreate(registry SessionRegistry, svc *couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload couponDefinitionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.Create(r.Context(), sess.Token, payload.toCoupon())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, coupon)
	}
}

// AdminCouponUpdate replaces a coupon definition.
func AdminCouponUpdate(registry SessionRegistry, svc *couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload couponDefinitionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.Update(r.Context(), sess.Token, pathParam(r, "couponId"), payload.toCoupon())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, coupon)
	}
}

// AdminCouponDelete removes a coupon definition.
func AdminCouponDelete(registry SessionRegistry, svc *couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), sess.Token, pathParam(r, "couponId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
