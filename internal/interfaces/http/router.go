// Package http assembles the REST API: router, middleware chain, and the
// server lifecycle.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estatehub/propevd/internal/domain/client"
	"github.com/estatehub/propevd/internal/domain/contract"
	"github.com/estatehub/propevd/internal/domain/property"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/prometheus"
	"github.com/estatehub/propevd/internal/interfaces/http/handlers"
	"github.com/estatehub/propevd/internal/interfaces/http/middleware"
)

// Deps carries everything the router needs.
type Deps struct {
	Clients    client.Repository
	Properties property.Repository
	Contracts  contract.Repository
	Store      handlers.HealthChecker
	Logger     logging.Logger
	Version    string

	// Metrics are optional; when nil the instrumentation middleware and the
	// exposition endpoint are not mounted.
	Metrics        *prometheus.AppMetrics
	MetricsHandler http.Handler
	MetricsPath    string
}

// NewRouter builds the gin engine with the full middleware chain and all
// routes mounted under /api/v1.
func NewRouter(mode string, deps Deps) *gin.Engine {
	gin.SetMode(mode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogging(deps.Logger, middleware.DefaultLoggingConfig()))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	handlers.NewHealthHandler(deps.Store, deps.Version).RegisterRoutes(r)
	if deps.MetricsHandler != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(deps.MetricsHandler))
	}

	api := r.Group("/api/v1")
	handlers.NewClientHandler(deps.Clients, deps.Contracts, deps.Logger).RegisterRoutes(api)
	handlers.NewPropertyHandler(deps.Properties, deps.Contracts, deps.Logger).RegisterRoutes(api)
	handlers.NewContractHandler(deps.Contracts, deps.Clients, deps.Properties, deps.Logger).RegisterRoutes(api)

	return r
}
