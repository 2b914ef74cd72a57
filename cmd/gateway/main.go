package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mercaline/storefront-gateway/api/routes"
	"github.com/mercaline/storefront-gateway/internal/blogs"
	"github.com/mercaline/storefront-gateway/internal/cart"
	"github.com/mercaline/storefront-gateway/internal/catalog"
	"github.com/mercaline/storefront-gateway/internal/coupons"
	"github.com/mercaline/storefront-gateway/internal/deals"
	"github.com/mercaline/storefront-gateway/internal/orders"
	"github.com/mercaline/storefront-gateway/internal/reports"
	"github.com/mercaline/storefront-gateway/internal/session"
	"github.com/mercaline/storefront-gateway/internal/users"
	"github.com/mercaline/storefront-gateway/pkg/config"
	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/metrics"
	"github.com/mercaline/storefront-gateway/pkg/redis"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	upstreamClient, err := upstream.NewClient(cfg.Upstream.BaseURL, upstream.WithTimeout(cfg.Upstream.Timeout))
	if err != nil {
		logg.Error(context.Background(), "failed to build upstream client", err)
		os.Exit(1)
	}

	registry, err := session.NewRegistry(session.RegistryParams{
		Auth: upstreamClient,
		ClientForTok: func(token string) session.Client {
			return upstreamClient.WithToken(token)
		},
		Store: redisClient,
		Keyer: redisClient,
		PricingRules: cart.PricingRules{
			FreeShippingThreshold: cfg.Pricing.Threshold(),
			FlatShippingFee:       cfg.Pricing.FlatFee(),
			TaxRate:               cfg.Pricing.TaxRate(),
		},
		SessionTTL: cfg.JWT.SessionTTL(),
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create session registry", err)
		os.Exit(1)
	}

	svcs, err := buildServices(upstreamClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront gateway")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, registry, upstreamClient, svcs, httpMetrics, promRegistry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "gateway server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildServices(client *upstream.Client, logg *logger.Logger) (routes.Services, error) {
	catalogSvc, err := catalog.NewService(func(token string) catalog.API {
		return client.WithToken(token)
	}, logg)
	if err != nil {
		return routes.Services{}, err
	}
	ordersSvc, err := orders.NewService(func(token string) orders.API {
		return client.WithToken(token)
	}, logg)
	if err != nil {
		return routes.Services{}, err
	}
	blogsSvc, err := blogs.NewService(func(token string) blogs.API {
		return client.WithToken(token)
	}, logg)
	if err != nil {
		return routes.Services{}, err
	}
	dealsSvc, err := deals.NewService(func(token string) deals.API {
		return client.WithToken(token)
	}, logg)
	if err != nil {
		return routes.Services{}, err
	}
	couponsSvc, err := coupons.NewService(func(token string) coupons.API {
		return client.WithToken(token)
	}, logg)
	if err != nil {
		return routes.Services{}, err
	}
	usersSvc, err := users.NewService(func(token string) users.API {
		return client.WithToken(token)
	}, logg)
	if err != nil {
		return routes.Services{}, err
	}
	reportsSvc, err := reports.NewService(func(token string) reports.API {
		return client.WithToken(token)
	}, logg)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Catalog: catalogSvc,
		Orders:  ordersSvc,
		Blogs:   blogsSvc,
		Deals:   dealsSvc,
		Coupons: couponsSvc,
		Users:   usersSvc,
		Reports: reportsSvc,
	}, nil
}
