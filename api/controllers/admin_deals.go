package controllers

import (
	"net/http"
	"time"

	"github.com/mercaline/storefront-gateway/api/responses"
	"github.com/mercaline/storefront-gateway/api/validators"
	dealsvc "github.com/mercaline/storefront-gateway/internal/deals"
	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
	"github.com/shopspring/decimal"
)

type dealRequest struct {
	Title     string          `json:"title" validate:"required"`
	ProductID string          `json:"product_id" validate:"required"`
	Discount  decimal.Decimal `json:"discount" validate:"required"`
	Status    string          `json:"status,omitempty"`
	StartsAt  time.Time       `json:"starts_at" validate:"required"`
	EndsAt    time.Time       `json:"ends_at" validate:"required"`
}

func (d dealRequest) toDeal() upstream.Deal {
	status := d.Status
	if status == "" {
		status = "active"
	}
	return upstream.Deal{
		Title:     d.Title,
		ProductID: d.ProductID,
		Discount:  d.Discount,
		Status:    status,
		StartsAt:  d.StartsAt,
		EndsAt:    d.EndsAt,
	}
}

// AdminDealList serves the filtered deal list.
func AdminDealList(registry SessionRegistry, svc *dealsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deals, err := svc.List(r.Context(), sess.Token, dealsvc.Filters{
			Search: queryParam(r, "search"),
			Status: queryParam(r, "status"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deals)
	}
}

// AdminDealCreate adds a deal.
func AdminDealCreate(registry SessionRegistry, svc *dealsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload dealRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deal, err := svc.Create(r.Context(), sess.Token, payload.toDeal())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, deal)
	}
}

// AdminDealUpdate replaces a deal.
func AdminDealUpdate(registry SessionRegistry, svc *dealsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload dealRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deal, err := svc.Update(r.Context(), sess.Token, pathParam(r, "dealId"), payload.toDeal())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

// AdminDealDelete removes a deal.
func AdminDealDelete(registry SessionRegistry, svc *dealsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), sess.Token, pathParam(r, "dealId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
