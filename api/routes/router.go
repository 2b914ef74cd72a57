package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mercaline/storefront-gateway/api/controllers"
	"github.com/mercaline/storefront-gateway/api/middleware"
	"github.com/mercaline/storefront-gateway/internal/blogs"
	"github.com/mercaline/storefront-gateway/internal/catalog"
	"github.com/mercaline/storefront-gateway/internal/coupons"
	"github.com/mercaline/storefront-gateway/internal/deals"
	"github.com/mercaline/storefront-gateway/internal/orders"
	"github.com/mercaline/storefront-gateway/internal/reports"
	"github.com/mercaline/storefront-gateway/internal/users"
	"github.com/mercaline/storefront-gateway/pkg/config"
	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/metrics"
	"github.com/mercaline/storefront-gateway/pkg/redis"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
)

// sessionRegistry is the session surface the router wires into handlers and
// middleware.
type sessionRegistry interface {
	controllers.SessionRegistry
	HasSession(ctx context.Context, sessionID string) (bool, error)
}

// Services groups the domain services behind the HTTP surface.
type Services struct {
	Catalog *catalog.Service
	Orders  *orders.Service
	Blogs   *blogs.Service
	Deals   *deals.Service
	Coupons *coupons.Service
	Users   *users.Service
	Reports *reports.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	registry sessionRegistry,
	identity *upstream.Client,
	svcs Services,
	httpMetrics *metrics.HTTPMetrics,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(registry, cfg.JWT, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(registry, cfg.JWT, logg))
		r.Post("/send-otp", controllers.AuthSendOTP(identity, logg))
		r.Post("/verify-otp", controllers.AuthVerifyOTP(identity, logg))
		r.Post("/forgot-password", controllers.AuthForgotPassword(identity, logg))
		r.Put("/reset-password/{token}", controllers.AuthResetPassword(identity, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, registry, logg))
			r.Post("/logout", controllers.AuthLogout(registry, logg))
			r.Post("/refresh", controllers.AuthRefresh(registry, cfg.JWT, logg))
			r.Get("/me", controllers.AuthMe(registry, logg))
		})
	})

	// Catalog browsing is public.
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(svcs.Catalog, logg))
		r.Get("/{productId}", controllers.ProductDetail(svcs.Catalog, logg))
	})
	r.Get("/api/v1/categories", controllers.CategoryList(svcs.Catalog, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, registry, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(registry, logg))
			r.Post("/items", controllers.CartAdd(registry, logg))
			r.Put("/items", controllers.CartUpdate(registry, logg))
			r.Delete("/items/{productId}", controllers.CartRemove(registry, logg))
			r.Delete("/", controllers.CartClear(registry, logg))
			r.Post("/coupon", controllers.CartApplyCoupon(registry, logg))
			r.Post("/coupon/preview", controllers.CartPreviewCoupon(registry, func(token string) controllers.CouponChecker {
				return identity.WithToken(token)
			}, logg))
			r.Delete("/coupon", controllers.CartRemoveCoupon(registry, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(registry, logg))
			r.Post("/{productId}", controllers.WishlistAdd(registry, logg))
			r.Delete("/{productId}", controllers.WishlistRemove(registry, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.MyOrders(registry, svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(registry, svcs.Orders, logg))
			r.Get("/{orderId}/invoice", controllers.OrderInvoice(registry, svcs.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, registry, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminProductCreate(registry, svcs.Catalog, logg))
			r.Put("/{productId}", controllers.AdminProductUpdate(registry, svcs.Catalog, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(registry, svcs.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(registry, svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(registry, svcs.Orders, logg))
			r.Put("/{orderId}/pay", controllers.AdminOrderPay(registry, svcs.Orders, logg))
			r.Put("/{orderId}/deliver", controllers.AdminOrderDeliver(registry, svcs.Orders, logg))
			r.Put("/{orderId}/status", controllers.AdminOrderStatus(registry, svcs.Orders, logg))
			r.Get("/{orderId}/invoice", controllers.OrderInvoice(registry, svcs.Orders, logg))
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", controllers.AdminBlogList(registry, svcs.Blogs, logg))
			r.Post("/", controllers.AdminBlogCreate(registry, svcs.Blogs, logg))
			r.Get("/{blogId}", controllers.AdminBlogDetail(registry, svcs.Blogs, logg))
			r.Put("/{blogId}", controllers.AdminBlogUpdate(registry, svcs.Blogs, logg))
			r.Delete("/{blogId}", controllers.AdminBlogDelete(registry, svcs.Blogs, logg))
		})

		r.Route("/deals", func(r chi.Router) {
			r.Get("/", controllers.AdminDealList(registry, svcs.Deals, logg))
			r.Post("/", controllers.AdminDealCreate(registry, svcs.Deals, logg))
			r.Put("/{dealId}", controllers.AdminDealUpdate(registry, svcs.Deals, logg))
			r.Delete("/{dealId}", controllers.AdminDealDelete(registry, svcs.Deals, logg))
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", controllers.AdminCouponList(registry, svcs.Coupons, logg))
			r.Post("/", controllers.AdminCouponCreate(registry, svcs.Coupons, logg))
			r.Put("/{couponId}", controllers.AdminCouponUpdate(registry, svcs.Coupons, logg))
			r.Delete("/{couponId}", controllers.AdminCouponDelete(registry, svcs.Coupons, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUserList(registry, svcs.Users, logg))
			r.Get("/{userId}", controllers.AdminUserDetail(registry, svcs.Users, logg))
			r.Put("/{userId}", controllers.AdminUserUpdate(registry, svcs.Users, logg))
			r.Delete("/{userId}", controllers.AdminUserDelete(registry, svcs.Users, logg))
		})

		r.Get("/reports/dashboard", controllers.AdminDashboard(registry, svcs.Reports, logg))
	})

	return r
}
