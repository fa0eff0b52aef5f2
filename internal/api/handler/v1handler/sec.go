package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"instagrab/internal/config"
	"instagrab/pkg/domain"
	"instagrab/pkg/serrors"
)

// SecHandlerOptions configure bearer-token verification for v1 endpoints.
type SecHandlerOptions struct {
	// PublicKey is the PEM-encoded RSA public key tokens must verify
	// against. When empty, authentication is disabled.
	PublicKey string
}

// NewSecHandlerOptions constructs SecHandlerOptions from the application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// userIDContextKey is the context key type for the authenticated user ID.
type userIDContextKey struct{}

// UserIDKey is the context key under which the authenticated user ID is stored.
var UserIDKey = userIDContextKey{} //nolint: gochecknoglobals

// SecHandler verifies RS256 bearer tokens and attaches the authenticated
// user ID to the request context.
type SecHandler struct {
	publicKey *rsa.PublicKey
}

// NewSecHandler parses the configured public key. A nil key disables
// authentication, which is useful for local development.
func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil || opts.PublicKey == "" {
		return &SecHandler{}, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse JWT public key: %w", err)
	}

	return &SecHandler{publicKey: key}, nil
}

// Authenticate validates the bearer token and returns a context carrying the
// authenticated user ID. The token's subject must be a UUID.
func (s *SecHandler) Authenticate(ctx context.Context, token string) (context.Context, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	return context.WithValue(ctx, UserIDKey, domain.UserID(uid)), nil
}

// Middleware returns a gin middleware enforcing bearer authentication. It is
// a no-op when no public key is configured.
func (s *SecHandler) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.publicKey == nil {
			c.Next()

			return
		}

		auth := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			writeError(c, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		ctx, err := s.Authenticate(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)

			return
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUserIDFromContext returns the authenticated user ID, or the zero ID when
// authentication is disabled.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	if uid, ok := ctx.Value(UserIDKey).(domain.UserID); ok {
		return uid
	}

	return domain.UserID{}
}
