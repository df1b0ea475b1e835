package server

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/projectflow-dev/projectflow/internal/api/handler"
	"github.com/projectflow-dev/projectflow/internal/metrics"
	"github.com/projectflow-dev/projectflow/internal/server/middleware"
	"github.com/projectflow-dev/projectflow/pkg/renderer"
)

// New builds the chi router and huma API for the given stores. The router
// serves the JSON API under /v1, the HTML form preview, and /metrics.
func New(cfg Config) (chi.Router, huma.API) {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	api := humachi.New(r, huma.DefaultConfig("Project Flow API", "1.0.0"))
	api.UseMiddleware(middleware.MetricsMW)

	handler.RegisterForms(api, &handler.FormHandler{Store: cfg.Forms})
	handler.RegisterCatalog(api, &handler.CatalogHandler{})
	handler.RegisterProjects(api, &handler.ProjectHandler{Store: cfg.Projects})
	handler.RegisterUsers(api, &handler.UserHandler{Store: cfg.Users})

	rend := cfg.Renderer
	if rend == nil {
		rend = renderer.New(renderer.WithResolver(renderer.NewResolver()))
	}
	preview := &handler.PreviewHandler{Store: cfg.Forms, Renderer: rend}
	r.Get("/v1/forms/{id}/preview", preview.ServeHTTP)

	metrics.StartFormGauge(context.Background(), cfg.Forms)

	return r, api
}
