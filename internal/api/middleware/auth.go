package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	appErr "github.com/contactbook/engine/pkg/errors"
)

type userKeyType string

const UserIDKey userKeyType = "user_id"

// TokenVerifier resolves a bearer token to the user it was issued for.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// Auth requires a valid Bearer token and adds the user id to the context.
func Auth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if len(ah) < len("bearer ") || !strings.EqualFold(ah[:len("bearer ")], "bearer ") {
				writeError(w, http.StatusUnauthorized, appErr.CodeUnauthorized, "missing bearer token")
				return
			}
			uid, err := tokens.Verify(strings.TrimSpace(ah[len("bearer "):]))
			if err != nil {
				writeError(w, http.StatusUnauthorized, appErr.CodeUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
		})
	}
}

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// GetUserID returns the authenticated user, or uuid.Nil outside Auth.
func GetUserID(ctx context.Context) uuid.UUID {
	if v, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}
