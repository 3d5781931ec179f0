package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"slices"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/persona-insights/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// Registrar mounts additional routes, such as the A2A agent endpoint.
type Registrar interface {
	RegisterRoutes(r gin.IRouter)
}

// NewRouter builds the gin engine with the form, API, download and health routes.
func NewRouter(logger *slog.Logger, insights *InsightHandler, health *HealthHandler, extra ...Registrar) (*gin.Engine, error) {
	if err := RegisterValidations(); err != nil {
		return nil, fmt.Errorf("register validations: %w", err)
	}

	tmpl, err := Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger, "/health", "/health/ready", "/favicon.ico"))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/health"})))
	router.SetHTMLTemplate(tmpl)

	health.RegisterRoutes(router)
	insights.RegisterRoutes(router)
	for _, r := range extra {
		r.RegisterRoutes(router)
	}
	return router, nil
}

// Templates parses the embedded HTML templates.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"contains": func(values []string, v string) bool { return slices.Contains(values, v) },
		"dict":     dict,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// dict builds a map from alternating keys and values so a template can pass several values to a
// nested template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
