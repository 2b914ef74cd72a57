package controllers

import (
	"net/http"

	"github.com/mercaline/storefront-gateway/api/responses"
	"github.com/mercaline/storefront-gateway/pkg/config"
	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		status := map[string]string{"status": "ready", "redis": "ok"}
		code := http.StatusOK

		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				if logg != nil {
					logg.Error(r.Context(), "health.redis unavailable", err)
				}
				status["status"] = "degraded"
				status["redis"] = "unavailable"
				code = http.StatusServiceUnavailable
			}
		}

		responses.WriteSuccessStatus(w, code, status)
	}
}
