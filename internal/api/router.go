package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/pres-portal/auth-gateway/docs"
	"github.com/pres-portal/auth-gateway/internal/api/handler"
	"github.com/pres-portal/auth-gateway/internal/api/middleware"
	"github.com/pres-portal/auth-gateway/internal/core/domain"
	"github.com/pres-portal/auth-gateway/internal/core/ports"
	"github.com/pres-portal/auth-gateway/internal/core/service"
)

// Deps carries the wired collaborators the router needs.
type Deps struct {
	Log      zerolog.Logger
	Users    ports.UserRepository
	Chain    *service.Chain
	Policy   *service.Policy
	Sessions *service.SessionManager
	Audit    ports.AuditSink

	// Metrics overrides the Prometheus registerer for request metrics;
	// nil means the default registry.
	Metrics prometheus.Registerer

	PG    *sql.DB
	Redis *redis.Client
	Mongo *mongo.Database
}

// DefaultPolicy is the gateway's declarative security configuration.
//
// The search group is stateless and only the directory provider may
// authenticate it; the user group accepts both providers and reuses
// sessions. Both snapshots of the original configuration disagreed on
// whether the directory provider belongs to the user group; it is included
// here, per the later snapshot.
func DefaultPolicy() *service.Policy {
	rules := []service.Rule{
		{
			Name:        "search_api",
			Prefix:      "/api/v1/search/",
			Authorities: []string{domain.AuthorityAPIUser, domain.AuthoritySysAdmin},
			Providers:   []service.ProviderKind{service.ProviderDirectory},
			Sessions:    false,
		},
		{
			Name:        "user_api",
			Prefix:      "/api/v1/user/",
			Authorities: []string{domain.AuthorityReadOnlyUser, domain.AuthoritySysAdmin},
			Providers:   []service.ProviderKind{service.ProviderLocal, service.ProviderDirectory},
			Sessions:    true,
		},
	}
	public := []string{
		"/static/",
		"/health",
		"/metrics",
		"/swagger/",
		"/logout",
	}
	return service.NewPolicy(rules, public)
}

// NewRouter builds and returns the Echo instance with all routes
// registered behind the route guard.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	// Permit-all CORS and no CSRF protection reproduce the configuration
	// under test; both are known hardening gaps.
	e.Use(echomiddleware.CORS())

	registerer := d.Metrics
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "authgw",
		Registerer: registerer,
	}))
	e.Use(middleware.Guard(middleware.GuardDeps{
		Policy:   d.Policy,
		Chain:    d.Chain,
		Sessions: d.Sessions,
		Audit:    d.Audit,
		Log:      d.Log,
	}))

	// --- Guarded API routes ---
	userHandler := handler.NewUserHandler(d.Users)
	e.GET("/api/v1/user/home/:username", userHandler.Home)

	searchHandler := handler.NewSearchHandler()
	e.GET("/api/v1/search/", searchHandler.Search)

	// --- Session lifecycle ---
	sessionHandler := handler.NewSessionHandler(d.Sessions)
	e.POST("/logout", sessionHandler.Logout)

	// --- Public surface ---
	e.Static("/static", "static")
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.PG, d.Redis, d.Mongo)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
