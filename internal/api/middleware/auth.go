package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/wildpost/wildpost/internal/api/models"
	"github.com/wildpost/wildpost/internal/auth"
)

// adminEmailKey is the context key for the authenticated admin email.
type adminEmailKey struct{}

// AdminAuth creates authentication middleware for the admin API. It
// validates the JWT bearer token and then checks the email claim against
// the allow-list, so revoking an address takes effect on the next request
// regardless of outstanding tokens.
func AdminAuth(jwtService *auth.JWTService, allowlist auth.Allowlist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract bearer token from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, r, "missing authorization header")
				return
			}

			// Check for Bearer prefix (case-insensitive)
			const bearerPrefix = "Bearer "
			if len(authHeader) < len(bearerPrefix) ||
				!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
				writeUnauthorized(w, r, "invalid authorization header format")
				return
			}

			tokenString := authHeader[len(bearerPrefix):]
			if tokenString == "" {
				writeUnauthorized(w, r, "missing bearer token")
				return
			}

			// Validate the token
			claims, err := jwtService.ValidateSessionToken(tokenString)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrSessionTokenExpired):
					writeUnauthorized(w, r, "session token has expired")
				case errors.Is(err, auth.ErrInvalidSessionToken):
					writeUnauthorized(w, r, "invalid session token")
				default:
					writeUnauthorized(w, r, "authentication failed")
				}
				return
			}

			// Check allow-list membership
			allowed, err := allowlist.IsAllowed(r.Context(), claims.Email)
			if err != nil {
				writeInternal(w, r, "allow-list check failed")
				return
			}
			if !allowed {
				writeForbidden(w, r, "email is not on the admin allow-list")
				return
			}

			// Add admin email to context
			ctx := context.WithValue(r.Context(), adminEmailKey{}, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// The 401/403 writers are implemented directly here to avoid an import
// cycle with the response package.

func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	traceID := GetRequestID(r.Context())
	problem := models.NewUnauthorized(traceID, detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}

func writeForbidden(w http.ResponseWriter, r *http.Request, detail string) {
	traceID := GetRequestID(r.Context())
	problem := models.NewForbidden(traceID, detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}

func writeInternal(w http.ResponseWriter, r *http.Request, detail string) {
	traceID := GetRequestID(r.Context())
	problem := models.NewInternalError(traceID, detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}

// GetAdminEmail retrieves the authenticated admin email from the context.
// Returns an empty string if not authenticated.
func GetAdminEmail(ctx context.Context) string {
	if email, ok := ctx.Value(adminEmailKey{}).(string); ok {
		return email
	}
	return ""
}
