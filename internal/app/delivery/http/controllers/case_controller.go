package controllers

import (
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type CaseController struct {
	Log            *zap.Logger
	CaseUsecase    contracts.CaseUsecase
	InternalConfig *config.InternalConfig
}

func NewCaseController(logger *zap.Logger, caseUsecase contracts.CaseUsecase, internalConfig *config.InternalConfig) *CaseController {
	return &CaseController{
		Log:            logger,
		CaseUsecase:    caseUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *CaseController) SubmitCase(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.SubmitCase)
	if err := decodeJSON(r, request); err != nil {
		ctrl.Log.Error("CaseController.SubmitCase failed to parse request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeSubmitCaseRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		writeError(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.CaseUsecase.SubmitDraft(ctx, utils.GetActor(r.Context()), request)
	if err != nil {
		ctrl.Log.Error("CaseController.SubmitCase usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeError(ctrl.Log, w, err)
		return
	}

	statusCode := constvars.StatusCreated
	if response.Reused {
		statusCode = constvars.StatusOK
	}
	utils.BuildSuccessResponse(w, statusCode, constvars.CaseSubmittedSuccessMessage, response)
}

func (ctrl *CaseController) FindByID(w http.ResponseWriter, r *http.Request) {
	caseID, err := caseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.CaseUsecase.FindByID(ctx, caseID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCaseSuccessMessage, response)
}

func (ctrl *CaseController) FindLatestByEmail(w http.ResponseWriter, r *http.Request) {
	email, err := emailParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.CaseUsecase.FindLatestByEmail(ctx, email)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCaseSuccessMessage, response)
}

func (ctrl *CaseController) LookupByEmail(w http.ResponseWriter, r *http.Request) {
	email, err := emailParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.CaseUsecase.LookupByEmail(ctx, email)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCaseLookupSuccessMessage, response)
}

func (ctrl *CaseController) AttachCompanion(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	caseID, err := caseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.AttachCompanion)
	if err := decodeJSON(r, request); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeAttachCompanionRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		writeError(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.CaseUsecase.AttachCompanion(ctx, utils.GetActor(r.Context()), caseID, request)
	if err != nil {
		ctrl.Log.Error("CaseController.AttachCompanion usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, caseID),
			zap.Error(err),
		)
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AttachCompanionSuccessMessage, response)
}
