package controllers

import (
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type CityController struct {
	Log            *zap.Logger
	CityUsecase    contracts.CityUsecase
	InternalConfig *config.InternalConfig
}

func NewCityController(logger *zap.Logger, cityUsecase contracts.CityUsecase, internalConfig *config.InternalConfig) *CityController {
	return &CityController{
		Log:            logger,
		CityUsecase:    cityUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *CityController) FindHospitalsByCity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.CityUsecase.FindHospitalsByCity(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetHospitalsSuccessMessage, response)
}

func (ctrl *CityController) CreateCity(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateCity)
	if err := decodeJSON(r, request); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request.Name = strings.TrimSpace(request.Name)
	if err := utils.ValidateStruct(request); err != nil {
		writeError(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.CityUsecase.CreateCity(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateCitySuccessMessage, response)
}

func (ctrl *CityController) CreateHospital(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateHospital)
	if err := decodeJSON(r, request); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreateHospitalRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		writeError(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.CityUsecase.CreateHospital(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateHospitalSuccessMessage, response)
}
