package middleware

import (
	"bank-backoffice/internal/domain/auth"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

const (
	SessionCookie   = "session"
	CaptchaIDCookie = "captcha_id"
)

// Session resolves the caller from the session cookie or a Bearer header. Anonymous and
// invalid tokens pass through without an identity; the role guards decide what to do.
func Session(authenticator auth.Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				logger.DebugContext(r.Context(), "Session: ignoring invalid token", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// SessionToken returns the raw token a request carries, empty when it has none.
func SessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireRole sends anyone without the role back to the login page.
func RequireRole(role auth.Role, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFrom(r.Context())
			if !ok || !id.Is(role) {
				logger.WarnContext(r.Context(), "RequireRole: redirecting caller", "path", r.URL.Path, "required", role)
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoleAPI is RequireRole for JSON endpoints: it answers 401 instead of redirecting.
func RequireRoleAPI(role auth.Role, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFrom(r.Context())
			if !ok || !id.Is(role) {
				logger.WarnContext(r.Context(), "RequireRoleAPI: unauthorized caller", "path", r.URL.Path, "required", role)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error": map[string]string{
						"message": "Unauthorized",
					},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
