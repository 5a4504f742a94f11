package api

import (
	"net/http"

	"github.com/JaimeStill/tour-desk/internal/catalog"
	"github.com/JaimeStill/tour-desk/internal/config"
	"github.com/JaimeStill/tour-desk/internal/resource"
	"github.com/JaimeStill/tour-desk/internal/screens"
	"github.com/JaimeStill/tour-desk/pkg/handlers"
	"github.com/JaimeStill/tour-desk/pkg/openapi"
	"github.com/JaimeStill/tour-desk/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	handlerCfg := resource.HandlerConfig{
		Pagination:    runtime.Pagination,
		Location:      cfg.View.Location(),
		MaxUploadSize: cfg.Blobs.MaxUploadSizeBytes(),
	}

	groups := make([]routes.Group, 0, len(domain.Controllers)+2)
	for _, ctrl := range domain.Controllers {
		groups = append(groups, resource.NewHandler(ctrl, handlerCfg, runtime.Logger).Routes())
		spec.Components.AddSchemas(resource.Schemas(ctrl.Kind()))
	}

	screensHandler := screens.NewHandler(domain.Screens, cfg.Blobs.MaxUploadSizeBytes(), runtime.Logger)
	groups = append(groups, screensHandler.Routes(), kindsGroup())
	spec.Components.AddSchemas(screens.Schemas())

	routes.Register(mux, cfg.API.BasePath, spec, groups...)
}

// kindsGroup lists the resource kinds so clients can build navigation and
// forms from field metadata.
func kindsGroup() routes.Group {
	return routes.Group{
		Prefix: "/kinds",
		Tags:   []string{"Kinds"},
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "",
				Handler: func(w http.ResponseWriter, r *http.Request) {
					handlers.RespondJSON(w, http.StatusOK, catalog.Kinds())
				},
				OpenAPI: &openapi.Operation{
					Summary:     "List resource kinds",
					Description: "Field definitions and screen behavior of every managed collection",
					Responses: map[int]*openapi.Response{
						200: {Description: "Resource kinds"},
					},
				},
			},
		},
	}
}
