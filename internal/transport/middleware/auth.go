package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/lingosteps/backend/pkg/ctxutil"
)

type sessionValidator interface {
	ValidateSessionToken(token string) (uuid.UUID, error)
}

// Auth returns middleware that resolves the current user from the session
// cookie (or, as a fallback, a Bearer token) and stores the user ID in the
// request context. Requests without a token pass through anonymously;
// handlers that need a user reject them via ctxutil.UserIDFromCtx.
func Auth(validator sessionValidator, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractSessionToken(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			userID, err := validator.ValidateSessionToken(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractSessionToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
