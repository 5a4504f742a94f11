package main

import (
	"net/http"

	"github.com/JaimeStill/tour-desk/internal/api"
	"github.com/JaimeStill/tour-desk/internal/config"
	"github.com/JaimeStill/tour-desk/internal/infrastructure"
	"github.com/JaimeStill/tour-desk/pkg/blobstore"
	"github.com/JaimeStill/tour-desk/pkg/middleware"
	"github.com/JaimeStill/tour-desk/pkg/module"
	"github.com/JaimeStill/tour-desk/pkg/routes"
	"github.com/JaimeStill/tour-desk/web/scalar"
)

// Modules holds the mounted application modules.
type Modules struct {
	API    *module.Module
	Scalar *module.Module

	// Blobs is nil unless stored objects are served locally.
	Blobs *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	scalarModule, err := scalar.NewModule("/scalar", scalar.Page{
		Title:   cfg.API.OpenAPI.Title,
		SpecURL: cfg.API.BasePath + "/openapi.json",
	})
	if err != nil {
		return nil, err
	}

	modules := &Modules{API: apiModule, Scalar: scalarModule}

	if infra.Files != nil {
		mux := http.NewServeMux()
		routes.Register(mux, "", nil, blobstore.NewHandler(infra.Files, infra.Logger).Routes())

		blobs := module.New("/blobs", mux)
		blobs.Use(middleware.Logger(infra.Logger))
		modules.Blobs = blobs
	}

	return modules, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
	if m.Blobs != nil {
		router.Mount(m.Blobs)
	}
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	router.HandleNative("GET /metrics", infra.Metrics.Handler().ServeHTTP)

	return router
}
