package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shoplite/catalog-system/internal/api/handler"
	"github.com/shoplite/catalog-system/internal/api/middleware"
	"github.com/shoplite/catalog-system/internal/core/domain"
	"github.com/shoplite/catalog-system/internal/core/ports"
	"github.com/shoplite/catalog-system/internal/infrastructure/http/handlers"
	"github.com/shoplite/catalog-system/pkg/gatekeeper"
)

// IdentityRouterConfig wires the identity service's HTTP surface.
type IdentityRouterConfig struct {
	Identity   ports.IdentityService
	Audit      ports.AuditService
	Gatekeeper *gatekeeper.Gatekeeper
	Mongo      *mongo.Database
	Logger     zerolog.Logger
}

// NewIdentityRouter builds the Echo instance for the identity service.
// Every route carries an explicit gatekeeper requirement, public routes
// included, so the enforcement path is uniform.
func NewIdentityRouter(cfg IdentityRouterConfig) *echo.Echo {
	e := newEcho(cfg.Logger)
	gk := cfg.Gatekeeper

	authHandler := handler.NewAuthHandler(cfg.Identity, cfg.Audit)

	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login, middleware.Require(gk, gatekeeper.None()))
	auth.POST("/register", authHandler.Register, middleware.Require(gk, gatekeeper.None()))
	auth.POST("/register-privileged", authHandler.RegisterPrivileged, middleware.Require(gk, gatekeeper.AnyRole(domain.RoleAdmin)))
	auth.GET("/profile", authHandler.Profile, middleware.Require(gk, gatekeeper.Authenticated()))
	auth.GET("/users/:id", authHandler.GetUser, middleware.Require(gk, gatekeeper.AnyRole(domain.RoleAdmin)))
	auth.DELETE("/users/:id", authHandler.DeactivateUser, middleware.Require(gk, gatekeeper.AnyRole(domain.RoleAdmin)))
	auth.GET("/audit", authHandler.ListAudit, middleware.Require(gk, gatekeeper.AnyRole(domain.RoleAdmin)))

	registerHealth(e, cfg.Mongo, nil)
	return e
}

// CatalogRouterConfig wires the catalog resource service's HTTP surface.
type CatalogRouterConfig struct {
	Products   ports.ProductService
	Gatekeeper *gatekeeper.Gatekeeper
	Mongo      *mongo.Database
	Redis      *redis.Client
	Logger     zerolog.Logger
}

// NewCatalogRouter builds the Echo instance for the catalog service. The
// service re-checks authorization on every operation with its own
// fine-grained requirements; it never trusts the edge's coarse decision.
func NewCatalogRouter(cfg CatalogRouterConfig) *echo.Echo {
	e := newEcho(cfg.Logger)
	gk := cfg.Gatekeeper

	productHandler := handler.NewProductHandler(cfg.Products)

	products := e.Group("/v1/products")
	products.GET("", productHandler.List, middleware.Require(gk, gatekeeper.Authenticated()))
	products.GET("/:id", productHandler.Get, middleware.Require(gk, gatekeeper.Authenticated()))
	products.POST("", productHandler.Create, middleware.Require(gk, gatekeeper.AnyRole(domain.RoleAdmin, domain.RoleManager)))
	products.PUT("/:id", productHandler.Update, middleware.Require(gk, gatekeeper.AnyRole(domain.RoleAdmin, domain.RoleManager)))
	products.DELETE("/:id", productHandler.Delete, middleware.Require(gk, gatekeeper.AnyRole(domain.RoleAdmin)))

	registerHealth(e, cfg.Mongo, cfg.Redis)
	return e
}

// newEcho applies the global middleware stack, validator and the single
// error boundary shared by every service.
func newEcho(log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

func registerHealth(e *echo.Echo, db *mongo.Database, rdb *redis.Client) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
}
