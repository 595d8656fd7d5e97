package routers

import (
	"medtour-service/internal/app/delivery/http/controllers"
	"medtour-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachMetaRoutes(router chi.Router, middlewares *middlewares.Middlewares, cityController *controllers.CityController) {
	router.Get("/hospitals", cityController.FindHospitalsByCity)
}
