package middlewares

import (
	"context"
	"crypto/subtle"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// APIKeyAuth turns a valid X-API-Key into the admin actor. Requests without
// the header pass through untouched so bearer authentication can run.
func (m *Middlewares) APIKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderXAPIKey)
		if apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !m.validAPIKey(apiKey) {
			utils.LogSecurityEvent(m.Log, "invalid_api_key", utils.GetRequestID(r.Context()), "medium",
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_API_KEY_AUTH_KEY, true)
		ctx = utils.WithActor(ctx, models.AdminActor(constvars.ActorSubjectAPIKeyAdmin, ""))

		m.Log.Info("API Key authentication successful",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middlewares) validAPIKey(apiKey string) bool {
	expected := m.InternalConfig.App.AdminAPIKey
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) == 1
}

func isAPIKeyAuthenticated(ctx context.Context) bool {
	authenticated, ok := ctx.Value(constvars.CONTEXT_API_KEY_AUTH_KEY).(bool)
	return ok && authenticated
}
