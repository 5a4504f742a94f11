// Package api assembles the /api module: REST routes for every resource
// kind, the screen session routes, and the generated OpenAPI document.
package api

import (
	"net/http"

	"github.com/JaimeStill/tour-desk/internal/config"
	"github.com/JaimeStill/tour-desk/internal/infrastructure"
	"github.com/JaimeStill/tour-desk/pkg/auth"
	"github.com/JaimeStill/tour-desk/pkg/middleware"
	"github.com/JaimeStill/tour-desk/pkg/module"
	"github.com/JaimeStill/tour-desk/pkg/openapi"
)

func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, cfg)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, runtime, domain, cfg)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}

	// The OpenAPI document stays public so the reference page can load it.
	root := http.NewServeMux()
	root.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))
	root.Handle("/", auth.Require(runtime.Verifier, runtime.Logger)(mux))

	m := module.New(cfg.API.BasePath, root)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.RateLimit(&cfg.API.RateLimit, runtime.Logger))

	return m, nil
}
