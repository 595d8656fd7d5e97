package routers

import (
	"fmt"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/delivery/http/controllers"
	"medtour-service/internal/app/delivery/http/middlewares"
	"medtour-service/internal/pkg/constvars"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	caseController *controllers.CaseController,
	adminController *controllers.AdminController,
	cityController *controllers.CityController,
	paymentController *controllers.PaymentController,
	webhookController *controllers.WebhookController,
	documentController *controllers.DocumentController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPut, constvars.MethodDelete, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXCSRFToken, constvars.HeaderXAPIKey, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RequestID)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	normalLimiter, apiKeyLimiter := middlewares.CreateRateLimiters()
	submissionLimiter := middlewares.RouteRateLimiter("case_submission", internalConfig.App.CaseSubmissionRatePerMinute, time.Minute)
	webhookLimiter := middlewares.RouteRateLimiter("paypal_webhook", internalConfig.App.WebhookRatePerMinute, 10*time.Second)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/webhooks", func(r chi.Router) {
				attachWebhookRoutes(r, middlewares, webhookController, webhookLimiter)
			})

			r.Group(func(r chi.Router) {
				r.Use(middlewares.APIKeyAuth)
				r.Use(middlewares.ConditionalRateLimit(normalLimiter, apiKeyLimiter))
				r.Use(middlewares.Authenticate)

				r.Route("/cases", func(r chi.Router) {
					attachCaseRoutes(r, middlewares, caseController, paymentController, submissionLimiter)
				})

				r.Route("/documents", func(r chi.Router) {
					attachDocumentRoutes(r, middlewares, documentController)
				})

				r.Route("/meta", func(r chi.Router) {
					attachMetaRoutes(r, middlewares, cityController)
				})

				r.Route("/admin", func(r chi.Router) {
					attachAdminRoutes(r, middlewares, adminController, cityController)
				})
			})
		})
	})
}
