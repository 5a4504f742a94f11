// Package firebase initializes the shared Firebase app used by the Firestore
// document store, the Cloud Storage blob store, and ID token verification.
package firebase

import (
	"context"
	"errors"
	"fmt"

	fb "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// ErrNotConfigured is returned when a Firebase-backed component is selected
// without a project id.
var ErrNotConfigured = errors.New("firebase: project not configured")

// NewApp creates a Firebase app for cfg. Credentials come from
// CredentialsFile when set, otherwise from application default credentials.
func NewApp(ctx context.Context, cfg *Config) (*fb.App, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	appCfg := &fb.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := fb.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	return app, nil
}
