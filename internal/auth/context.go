package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const claimsContextKey contextKey = "session_claims"

// ContextWithClaims adds verified session claims to the context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext retrieves session claims from the context.
// Returns nil if not present.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// UserIDFromContext returns the authenticated user ID, or false when the
// request carried no valid token.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return 0, false
	}
	return claims.UserID, true
}
