// Package auth authenticates dashboard operators from a bearer token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"

	"github.com/JaimeStill/tour-desk/pkg/handlers"
)

var (
	// ErrMissingToken indicates the request carried no bearer token.
	ErrMissingToken = errors.New("authorization bearer token required")

	// ErrInvalidToken indicates the token failed verification.
	ErrInvalidToken = errors.New("invalid token")
)

// User is the authenticated operator.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Verifier turns a raw bearer token into a User.
type Verifier interface {
	Verify(ctx context.Context, token string) (User, error)
}

type contextKey struct{}

// WithUser returns ctx carrying user.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(contextKey{}).(User)
	return u, ok
}

// Require rejects requests without a verified bearer token. A nil verifier
// admits every request.
func Require(v Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if v == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearer(r.Header.Get("Authorization"))
			if !ok {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrMissingToken)
				return
			}

			user, err := v.Verify(r.Context(), token)
			if err != nil {
				handlers.RespondError(w, logger, http.StatusUnauthorized, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// FirebaseVerifier checks Firebase Authentication ID tokens.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier wraps an auth client obtained from a Firebase app.
func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (f *FirebaseVerifier) Verify(ctx context.Context, token string) (User, error) {
	t, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	email, _ := t.Claims["email"].(string)
	return User{ID: t.UID, Email: email}, nil
}

// JWTVerifier checks HS256 tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier creates a verifier for tokens signed with secret. When
// issuer is non-empty the iss claim must match it.
func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), issuer: issuer}
}

// Claims carried by operator tokens.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (j *JWTVerifier) Verify(ctx context.Context, token string) (User, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return User{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return User{ID: claims.Subject, Email: claims.Email}, nil
}

// Sign issues an HS256 token for user. Used by tooling and tests.
func (j *JWTVerifier) Sign(user User, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = user.ID
	if j.issuer != "" {
		claims.Issuer = j.issuer
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: user.Email, RegisteredClaims: claims})
	return t.SignedString(j.secret)
}
