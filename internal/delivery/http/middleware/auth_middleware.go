package middleware

import (
	"context"
	"net/http"
	"strings"

	"medical-imaging-backend/internal/domain/entity"
	"medical-imaging-backend/internal/domain/repository"
	"medical-imaging-backend/internal/infrastructure/cache"
	"medical-imaging-backend/pkg/jwt"
	"medical-imaging-backend/pkg/response"
)

type contextKey string

const (
	UserKey    contextKey = "user"
	TokenIDKey contextKey = "token_id"
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	tokenStore cache.TokenStore
	userRepo   repository.UserRepository
}

func NewAuthMiddleware(jwtService *jwt.JWTService, tokenStore cache.TokenStore, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		tokenStore: tokenStore,
		userRepo:   userRepo,
	}
}

// Authenticate verifies the bearer token and resolves the claimed subject
// to a stored user. Any failure (missing header, bad signature, expiry,
// revocation, unknown subject) is a 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Token is invalid or expired")
			return
		}

		exists, err := m.tokenStore.Exists(r.Context(), claims.Subject, claims.TokenID)
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if !exists {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		user, err := m.userRepo.FindByUsername(r.Context(), claims.Subject)
		if err != nil {
			response.Unauthorized(w, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok
}

// GetTokenIDFromContext extracts the token id from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
