package middlewares

import (
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testAPIKey = "test-admin-api-key-12345"

func newTestMiddlewares() *Middlewares {
	return NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		App: config.App{
			AdminAPIKey:                testAPIKey,
			RequestBodyLimitInMegabyte: 1,
		},
		JWT: config.AppJWT{
			Secret:    "test-secret",
			AdminRole: "admin",
		},
	})
}

func TestAPIKeyAuth(t *testing.T) {
	middlewares := newTestMiddlewares()

	var captured models.Actor
	var apiKeyAuth bool
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = utils.GetActor(r.Context())
		apiKeyAuth = isAPIKeyAuthenticated(r.Context())
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("Valid API Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/confirm-stage1", nil)
		req.Header.Set(constvars.HeaderXAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		middlewares.APIKeyAuth(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, apiKeyAuth)
		assert.True(t, captured.IsAdmin)
		assert.Equal(t, constvars.ActorSubjectAPIKeyAdmin, captured.Subject)
	})

	t.Run("No API Key passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cases", nil)

		rr := httptest.NewRecorder()
		middlewares.APIKeyAuth(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, apiKeyAuth)
		assert.False(t, captured.IsAdmin)
	})

	rejected := []struct {
		name   string
		apiKey string
	}{
		{name: "Invalid API Key", apiKey: "invalid-api-key"},
		{name: "Case Sensitivity", apiKey: "TEST-ADMIN-API-KEY-12345"},
		{name: "Whitespace in API Key", apiKey: " " + testAPIKey + " "},
	}
	for _, tc := range rejected {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/confirm-stage1", nil)
			req.Header.Set(constvars.HeaderXAPIKey, tc.apiKey)

			rr := httptest.NewRecorder()
			middlewares.APIKeyAuth(testHandler).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}

	t.Run("Unconfigured key rejects everything", func(t *testing.T) {
		unconfigured := NewMiddlewares(zap.NewNop(), &config.InternalConfig{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/confirm-stage1", nil)
		req.Header.Set(constvars.HeaderXAPIKey, "anything")

		rr := httptest.NewRecorder()
		unconfigured.APIKeyAuth(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
