package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/handcraftedhaven/haven/pkg/auth"
	"github.com/handcraftedhaven/haven/pkg/response"
)

type claimsKey struct{}

// Auth rejects requests without a valid Bearer token and stores the claims
// in the request context for downstream handlers.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := bearerClaims(r)
		if !ok {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// OptionalAuth attaches claims when a valid token is present but lets
// anonymous requests through. Used for review submission, where signed-in
// buyers are linked to their review and guests supply a display name.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := bearerClaims(r); ok {
			r = r.WithContext(withClaims(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}

func bearerClaims(r *http.Request) (*auth.Claims, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return nil, false
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromCtx returns the authenticated claims, if any.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// UserIDFromCtx returns the authenticated user ID, if any.
func UserIDFromCtx(ctx context.Context) (uint, bool) {
	if claims, ok := ClaimsFromCtx(ctx); ok {
		return claims.UserID, true
	}
	return 0, false
}

// RoleFromCtx returns the authenticated user's role, if any.
func RoleFromCtx(ctx context.Context) (string, bool) {
	if claims, ok := ClaimsFromCtx(ctx); ok {
		return claims.Role, true
	}
	return "", false
}
