// ABOUTME: Feature flag middleware makes the flag manager available to handlers

package middleware

import (
	"net/http"

	"shoplist-api/pkg/featureflags"
)

// FeatureFlagsMiddleware stores manager in every request context
func FeatureFlagsMiddleware(manager featureflags.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(featureflags.WithManager(r.Context(), manager)))
		})
	}
}
