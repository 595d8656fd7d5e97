package routers

import (
	"medtour-service/internal/app/delivery/http/controllers"
	"medtour-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAdminRoutes(router chi.Router, middlewares *middlewares.Middlewares, adminController *controllers.AdminController, cityController *controllers.CityController) {
	router.Use(middlewares.RequireAdmin)

	router.Get("/all-cases", adminController.FindAllCases)
	router.Get("/stale-authorizations", adminController.FindStaleAuthorizations)
	router.Get("/cases/{caseID}/events", adminController.FindCaseEvents)

	router.Post("/confirm-stage1", adminController.ConfirmStage1)
	router.Post("/confirm-stage2", adminController.ConfirmStage2)
	router.Post("/capture-stage2", adminController.CaptureStage2)
	router.Post("/void-stage2", adminController.VoidStage2)
	router.Post("/confirm-stage3", adminController.ConfirmStage3)

	router.Post("/meta/cities", cityController.CreateCity)
	router.Post("/meta/hospitals", cityController.CreateHospital)
}
