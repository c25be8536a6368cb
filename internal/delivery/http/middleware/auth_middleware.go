package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinic-admin-api/internal/domain/repository"
	"clinic-admin-api/pkg/jwt"
	"clinic-admin-api/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	AdminIDKey contextKey = "admin_id"
	ClaimsKey  contextKey = "claims"
)

type AuthMiddleware struct {
	log        *logrus.Logger
	jwtService *jwt.JWTService
	tokenRepo  repository.TokenRepository
}

func NewAuthMiddleware(log *logrus.Logger, jwtService *jwt.JWTService, tokenRepo repository.TokenRepository) *AuthMiddleware {
	return &AuthMiddleware{
		log:        log,
		jwtService: jwtService,
		tokenRepo:  tokenRepo,
	}
}

// Authenticate answers 401 when no bearer token is presented and 403 when the
// token does not verify or was revoked by a logout.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Access denied")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(w, "Access denied")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Forbidden(w, "Invalid token")
			return
		}

		revoked, err := m.tokenRepo.IsRevoked(r.Context(), claims.TokenID)
		if err != nil {
			m.log.Warnf("Failed to check token revocation: %+v", err)
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if revoked {
			response.Forbidden(w, "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// WithClaims stores the verified token claims in ctx.
func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, AdminIDKey, claims.AdminID)
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	return ctx
}

// GetAdminIDFromContext extracts admin ID from context
func GetAdminIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	adminID, ok := ctx.Value(AdminIDKey).(uuid.UUID)
	return adminID, ok
}

func GetClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims)
	return claims, ok
}
