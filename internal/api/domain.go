package api

import (
	"github.com/JaimeStill/tour-desk/internal/catalog"
	"github.com/JaimeStill/tour-desk/internal/config"
	"github.com/JaimeStill/tour-desk/internal/resource"
	"github.com/JaimeStill/tour-desk/internal/screens"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Controllers []*resource.Controller
	Screens     *screens.Registry
}

// NewDomain creates a controller for every catalog kind and the screen
// registry over them.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	files := resource.NewAttachments(runtime.Blobs, runtime.Compressor, runtime.Logger)

	kinds := catalog.Kinds()
	controllers := make([]*resource.Controller, 0, len(kinds))
	for _, kind := range kinds {
		repo := resource.NewRepository(kind, runtime.Store, runtime.Logger)
		controllers = append(controllers, resource.NewController(repo, files, runtime.Metrics, runtime.Logger))
	}

	registry := screens.NewBoundedRegistry(controllers, screens.Options{
		PageSize: runtime.Pagination.DefaultPageSize,
		Location: cfg.View.Location(),
	}, screens.Limits{
		MaxScreens: cfg.View.MaxScreens,
		IdleTTL:    cfg.View.ScreenTTLDuration(),
	}, runtime.Logger)
	registry.Start(runtime.Lifecycle)

	return &Domain{
		Controllers: controllers,
		Screens:     registry,
	}
}
