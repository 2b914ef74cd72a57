package controllers

import (
	"net/http"

	"github.com/mercaline/storefront-gateway/api/responses"
	reportsvc "github.com/mercaline/storefront-gateway/internal/reports"
	"github.com/mercaline/storefront-gateway/pkg/logger"
)

// AdminDashboard serves the aggregated admin overview.
func AdminDashboard(registry SessionRegistry, svc *reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dashboard, err := svc.Dashboard(r.Context(), sess.Token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dashboard)
	}
}
