package infrastructure_test

import (
	"context"
	"testing"
	"time"

	"github.com/JaimeStill/tour-desk/internal/config"
	"github.com/JaimeStill/tour-desk/internal/infrastructure"
	"github.com/JaimeStill/tour-desk/pkg/auth"
)

func TestNew_LocalDrivers(t *testing.T) {
	cfg := &config.Config{}
	cfg.Blobs.Filesystem.BasePath = t.TempDir()
	cfg.Auth = auth.Config{Mode: auth.ModeJWT, Secret: "0123456789abcdef"}
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}

	infra, err := infrastructure.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Store == nil || infra.Blobs == nil || infra.Files == nil {
		t.Fatal("memory store and filesystem blobs expected")
	}
	if _, ok := infra.Verifier.(*auth.JWTVerifier); !ok {
		t.Errorf("Verifier = %T, want *auth.JWTVerifier", infra.Verifier)
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	infra.Lifecycle.WaitForStartup()

	if err := infra.Lifecycle.Shutdown(5 * time.Second); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNew_AuthDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Blobs.Filesystem.BasePath = t.TempDir()
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}

	infra, err := infrastructure.New(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if infra.Verifier != nil {
		t.Errorf("Verifier = %T, want nil", infra.Verifier)
	}
}
