package routers

import (
	"medtour-service/internal/app/delivery/http/controllers"
	"medtour-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachCaseRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	caseController *controllers.CaseController,
	paymentController *controllers.PaymentController,
	submissionLimiter *middlewares.RateLimiter,
) {
	router.With(submissionLimiter.Limit).Post("/", caseController.SubmitCase)
	router.Get("/user/{email}", caseController.FindLatestByEmail)
	router.Get("/lookup/{email}", caseController.LookupByEmail)
	router.Get("/{caseID}", caseController.FindByID)
	router.Post("/{caseID}/companion-details", caseController.AttachCompanion)
	router.Get("/{caseID}/payment-intent", paymentController.GetPaymentIntent)
	router.Post("/{caseID}/payments", paymentController.ReportPayment)
}
