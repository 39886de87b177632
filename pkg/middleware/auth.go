package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mlarsson/splittab/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user ID
	UserIDKey ContextKey = "user_id"
)

// devUserID is the fallback identity when no header is provided (DEV ONLY)
const devUserID = "00000000-0000-0000-0000-000000000001"

// TestUserMiddleware resolves the caller identity from the X-Test-User-ID
// header (DEV ONLY). This makes it easy to exercise the API as different
// users without real auth; a session-backed identity provider replaces this
// middleware in production deployments.
func TestUserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-Test-User-ID")
		if userID == "" {
			userID = devUserID
		}
		if _, err := uuid.Parse(userID); err != nil {
			response.Unauthorized(w, "Invalid user ID")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user ID from the request context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
