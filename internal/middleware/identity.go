package middleware

import (
	"context"
	"net/http"
	"strconv"

	"parakeet/internal/domain"

	"go.uber.org/zap"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "user_role"
	IsAdminKey  contextKey = "is_admin"
)

// UserResolver looks up the account behind an incoming request.
type UserResolver interface {
	GetUser(ctx context.Context, id int64) (domain.User, error)
}

// Identity resolves the current user into the request context. There is no
// real session layer; the configured demo user is assumed, with an optional
// X-User-ID header override so the seeded admin account can be exercised.
func Identity(resolver UserResolver, demoUserID int64, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := demoUserID
			if header := r.Header.Get("X-User-ID"); header != "" {
				parsed, err := strconv.ParseInt(header, 10, 64)
				if err != nil || parsed < 1 {
					RespondWithError(w, http.StatusBadRequest, "invalid user id header")
					return
				}
				userID = parsed
			}

			user, err := resolver.GetUser(r.Context(), userID)
			if err != nil {
				logger.Debug("Unknown user on request",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
				RespondWithError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, UserRoleKey, user.Role)
			ctx = context.WithValue(ctx, IsAdminKey, user.IsAdmin)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the resolved user ID from the request context
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// GetUserRole extracts the resolved user role from the request context
func GetUserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(UserRoleKey).(string)
	return role, ok
}

// IsAdmin reports whether the resolved user has the admin flag
func IsAdmin(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(IsAdminKey).(bool)
	return ok && isAdmin
}
