package routers

import (
	"medtour-service/internal/app/delivery/http/controllers"
	"medtour-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachWebhookRoutes(router chi.Router, middlewares *middlewares.Middlewares, webhookController *controllers.WebhookController, webhookLimiter *middlewares.RateLimiter) {
	router.With(webhookLimiter.Limit, middlewares.BodyBuffer).Post("/paypal", webhookController.HandlePaypalWebhook)
}
