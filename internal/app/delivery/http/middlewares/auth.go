package middlewares

import (
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the caller from a bearer token issued by the
// identity provider. No token means an anonymous patient; a token that
// fails verification is rejected.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isAPIKeyAuthenticated(r.Context()) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			next.ServeHTTP(w, r.WithContext(utils.WithActor(r.Context(), models.AnonymousPatient())))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.BearerPrefix))
		actor, err := utils.ParseActorJWT(token, m.InternalConfig.JWT.Secret, m.InternalConfig.JWT.AdminRole)
		if err != nil {
			utils.LogSecurityEvent(m.Log, "invalid_bearer_token", utils.GetRequestID(r.Context()), "low",
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithActor(r.Context(), actor)))
	})
}

func (m *Middlewares) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := utils.GetActor(r.Context())
		if !actor.IsAdmin {
			utils.LogSecurityEvent(m.Log, "admin_access_denied", utils.GetRequestID(r.Context()), "medium",
				zap.String(constvars.LoggingActorKey, actor.Label()),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrActorNotAdmin(nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}
