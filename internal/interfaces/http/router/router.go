package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/motodesk/backend/internal/infrastructure/auth"
	"github.com/motodesk/backend/internal/infrastructure/logger"
	"github.com/motodesk/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes under the versioned API group
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// RateLimitSettings configures the global request rate limiter. A zero
// RequestsPerWindow disables rate limiting.
type RateLimitSettings struct {
	RequestsPerWindow int
	Window            time.Duration
}

// MiddlewareConfig carries the dependencies of the global middleware chain
type MiddlewareConfig struct {
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	CORSOrigins    []string
	TracingEnabled bool
	BodyLimitBytes int64
	RateLimit      RateLimitSettings
}

// NewEngine builds a gin engine with the global middleware chain applied
// in order: request ID, security headers, CORS, body limit, tracing,
// logging, recovery, authentication, span enrichment and rate limiting.
// Authentication runs before span enrichment so identity attributes are
// available to the tracer.
func NewEngine(cfg MiddlewareConfig) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.BodyLimitBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.BodyLimitBytes))
	}

	if cfg.TracingEnabled {
		engine.Use(middleware.Tracing())
	}

	if cfg.Logger != nil {
		engine.Use(logger.GinMiddleware(cfg.Logger))
		engine.Use(logger.Recovery(cfg.Logger))
	} else {
		engine.Use(gin.Recovery())
	}

	if cfg.JWTService != nil {
		jwtConfig := middleware.DefaultJWTConfig(cfg.JWTService)
		jwtConfig.TokenBlacklist = cfg.TokenBlacklist
		engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	}

	if cfg.TracingEnabled {
		engine.Use(middleware.TracingAttributeInjector())
		engine.Use(middleware.SpanErrorMarker())
	}

	if cfg.RateLimit.RequestsPerWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.Window)
		engine.Use(middleware.RateLimit(limiter))
	}

	return engine
}
