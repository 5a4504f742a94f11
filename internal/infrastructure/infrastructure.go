// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, metrics, document and object
// stores, image compression, authentication) that domain systems require.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	fb "firebase.google.com/go/v4"

	"github.com/JaimeStill/tour-desk/internal/config"
	"github.com/JaimeStill/tour-desk/pkg/auth"
	"github.com/JaimeStill/tour-desk/pkg/blobstore"
	"github.com/JaimeStill/tour-desk/pkg/blobstore/cloudinary"
	"github.com/JaimeStill/tour-desk/pkg/blobstore/gcs"
	"github.com/JaimeStill/tour-desk/pkg/compress"
	"github.com/JaimeStill/tour-desk/pkg/database"
	"github.com/JaimeStill/tour-desk/pkg/docstore"
	"github.com/JaimeStill/tour-desk/pkg/docstore/firestoredb"
	"github.com/JaimeStill/tour-desk/pkg/docstore/mongodb"
	"github.com/JaimeStill/tour-desk/pkg/docstore/postgres"
	"github.com/JaimeStill/tour-desk/pkg/firebase"
	"github.com/JaimeStill/tour-desk/pkg/lifecycle"
	"github.com/JaimeStill/tour-desk/pkg/logging"
	"github.com/JaimeStill/tour-desk/pkg/metrics"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Store      docstore.System
	Blobs      blobstore.System
	Compressor *compress.Compressor

	// Verifier is nil when authentication is disabled.
	Verifier auth.Verifier

	// Files serves stored objects when the filesystem driver is selected;
	// nil otherwise.
	Files blobstore.Retriever

	database database.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	logger := logging.New(&cfg.Logging)

	infra := &Infrastructure{
		Lifecycle:  lifecycle.New(),
		Logger:     logger,
		Metrics:    metrics.New("tourdesk"),
		Compressor: compress.New(&cfg.Images),
	}

	var app *fb.App
	if cfg.Firebase.Enabled() {
		a, err := firebase.NewApp(ctx, &cfg.Firebase)
		if err != nil {
			return nil, err
		}
		app = a
	}

	if err := infra.initStore(ctx, cfg, app); err != nil {
		return nil, fmt.Errorf("store init failed: %w", err)
	}
	if err := infra.initBlobs(ctx, cfg, app); err != nil {
		return nil, fmt.Errorf("blobs init failed: %w", err)
	}
	if err := infra.initAuth(ctx, cfg, app); err != nil {
		return nil, fmt.Errorf("auth init failed: %w", err)
	}

	logger.Info(
		"infrastructure initialized",
		"store", cfg.Store.Driver,
		"blobs", cfg.Blobs.Driver,
		"auth", cfg.Auth.Mode,
	)
	return infra, nil
}

// Start initializes all infrastructure systems and registers them with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.database != nil {
		if err := i.database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	if err := i.Store.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("store start failed: %w", err)
	}
	if err := i.Blobs.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("blobs start failed: %w", err)
	}
	return nil
}

func (i *Infrastructure) initStore(ctx context.Context, cfg *config.Config, app *fb.App) error {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.New(&cfg.Store.Postgres, i.Logger)
		if err != nil {
			return err
		}
		i.database = db
		i.Store = postgres.New(db, i.Logger)
	case config.StoreMongoDB:
		store, err := mongodb.New(&cfg.Store.MongoDB, i.Logger)
		if err != nil {
			return err
		}
		i.Store = store
	case config.StoreFirestore:
		store, err := firestoredb.New(ctx, app, i.Logger)
		if err != nil {
			return err
		}
		i.Store = store
	default:
		i.Store = docstore.NewMemory(i.Logger)
	}
	return nil
}

func (i *Infrastructure) initBlobs(ctx context.Context, cfg *config.Config, app *fb.App) error {
	switch cfg.Blobs.Driver {
	case config.BlobsCloudinary:
		store, err := cloudinary.New(&cfg.Blobs.Cloudinary, i.Logger)
		if err != nil {
			return err
		}
		i.Blobs = store
	case config.BlobsFirebase:
		store, err := gcs.New(ctx, app, cfg.Firebase.StorageBucket, i.Logger)
		if err != nil {
			return err
		}
		i.Blobs = store
	default:
		fs, err := blobstore.NewFilesystem(&cfg.Blobs.Filesystem, i.Logger)
		if err != nil {
			return err
		}
		i.Blobs = fs
		i.Files = fs
	}
	return nil
}

func (i *Infrastructure) initAuth(ctx context.Context, cfg *config.Config, app *fb.App) error {
	switch cfg.Auth.Mode {
	case auth.ModeFirebase:
		client, err := app.Auth(ctx)
		if err != nil {
			return fmt.Errorf("firebase auth client: %w", err)
		}
		i.Verifier = auth.NewFirebaseVerifier(client)
	case auth.ModeJWT:
		i.Verifier = auth.NewJWTVerifier(cfg.Auth.Secret, cfg.Auth.Issuer)
	default:
		i.Logger.Warn("authentication disabled; every request is admitted")
	}
	return nil
}
