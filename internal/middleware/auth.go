package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/debtplanner/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// UserIDKey is the context key for the token subject of an authenticated call.
const UserIDKey contextKey = "user_id"

// callerKey holds a *string that RequireAuth fills with the token subject,
// so interceptors wrapped around it can read the caller after the call.
type callerKey struct{}

func withCallerSlot(ctx context.Context) (context.Context, *string) {
	slot := new(string)
	return context.WithValue(ctx, callerKey{}, slot), slot
}

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// RequireAuth returns an interceptor that rejects calls without a valid
// bearer token and stores the token subject in the context.
func RequireAuth(issuer *auth.Issuer) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := issuer.Verify(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			if slot, ok := ctx.Value(callerKey{}).(*string); ok {
				*slot = claims.Subject
			}
			ctx = context.WithValue(ctx, UserIDKey, claims.Subject)
			return next(ctx, req)
		}
	}
}
