package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JaimeStill/tour-desk/pkg/auth"
	"github.com/JaimeStill/tour-desk/pkg/logging"
)

const secret = "0123456789abcdef0123"

func TestJWTVerifier(t *testing.T) {
	v := auth.NewJWTVerifier(secret, "tour-desk")
	ctx := context.Background()

	valid, err := v.Sign(auth.User{ID: "op-1", Email: "op@example.com"}, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	if err != nil {
		t.Fatal(err)
	}

	user, err := v.Verify(ctx, valid)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if user.ID != "op-1" || user.Email != "op@example.com" {
		t.Errorf("user = %+v", user)
	}

	expired, _ := v.Sign(auth.User{ID: "op-1"}, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	if _, err := v.Verify(ctx, expired); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("expired Verify() error = %v", err)
	}

	other := auth.NewJWTVerifier("another-secret-value!!", "tour-desk")
	forged, _ := other.Sign(auth.User{ID: "op-1"}, jwt.RegisteredClaims{})
	if _, err := v.Verify(ctx, forged); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("forged Verify() error = %v", err)
	}
}

func TestRequire(t *testing.T) {
	v := auth.NewJWTVerifier(secret, "")
	token, _ := v.Sign(auth.User{ID: "op-7"}, jwt.RegisteredClaims{})

	var seen string
	handler := auth.Require(v, logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, _ := auth.UserFromContext(r.Context())
		seen = u.ID
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"invalid", "Bearer garbage", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.status == http.StatusOK && seen != "op-7" {
				t.Errorf("user in context = %q", seen)
			}
		})
	}
}

func TestRequire_NilVerifier(t *testing.T) {
	handler := auth.Require(nil, logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d", w.Code)
	}
}

func TestConfig_Finalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     auth.Config
		wantErr bool
	}{
		{"default disabled", auth.Config{}, false},
		{"firebase", auth.Config{Mode: auth.ModeFirebase}, false},
		{"jwt short secret", auth.Config{Mode: auth.ModeJWT, Secret: "short"}, true},
		{"jwt", auth.Config{Mode: auth.ModeJWT, Secret: secret}, false},
		{"unknown", auth.Config{Mode: "oauth"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Finalize(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
