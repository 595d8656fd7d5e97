package controllers

import (
	"context"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type AdminController struct {
	Log              *zap.Logger
	AdminUsecase     contracts.AdminUsecase
	CaseEventUsecase contracts.CaseEventUsecase
	InternalConfig   *config.InternalConfig
}

func NewAdminController(logger *zap.Logger, adminUsecase contracts.AdminUsecase, caseEventUsecase contracts.CaseEventUsecase, internalConfig *config.InternalConfig) *AdminController {
	return &AdminController{
		Log:              logger,
		AdminUsecase:     adminUsecase,
		CaseEventUsecase: caseEventUsecase,
		InternalConfig:   internalConfig,
	}
}

type caseAction func(ctx context.Context, actor models.Actor, caseID string) (*responses.Case, error)

func (ctrl *AdminController) FindAllCases(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.AdminUsecase.FindAllCases(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAllCasesSuccessMessage, response)
}

func (ctrl *AdminController) FindStaleAuthorizations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.AdminUsecase.FindStaleAuthorizations(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStaleAuthorizationsSuccessMessage, response)
}

func (ctrl *AdminController) FindCaseEvents(w http.ResponseWriter, r *http.Request) {
	caseID, err := caseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.CaseEventUsecase.FindByCaseID(ctx, caseID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCaseEventsSuccessMessage, response)
}

func (ctrl *AdminController) ConfirmStage1(w http.ResponseWriter, r *http.Request) {
	ctrl.handleCaseAction(w, r, "ConfirmStage1", ctrl.AdminUsecase.ConfirmStage1, constvars.ConfirmStage1SuccessMessage)
}

func (ctrl *AdminController) CaptureStage2(w http.ResponseWriter, r *http.Request) {
	ctrl.handleCaseAction(w, r, "CaptureStage2", ctrl.AdminUsecase.CaptureStage2, constvars.CaptureStage2SuccessMessage)
}

func (ctrl *AdminController) VoidStage2(w http.ResponseWriter, r *http.Request) {
	ctrl.handleCaseAction(w, r, "VoidStage2", ctrl.AdminUsecase.VoidStage2, constvars.VoidStage2SuccessMessage)
}

func (ctrl *AdminController) ConfirmStage3(w http.ResponseWriter, r *http.Request) {
	ctrl.handleCaseAction(w, r, "ConfirmStage3", ctrl.AdminUsecase.ConfirmStage3, constvars.ConfirmStage3SuccessMessage)
}

func (ctrl *AdminController) ConfirmStage2(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.ConfirmStage2)
	if err := decodeJSON(r, request); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeConfirmStage2Request(request)
	if err := utils.ValidateStruct(request); err != nil {
		writeError(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := ctrl.actionContext(r)
	defer cancel()

	actor := utils.GetActor(r.Context())
	response, err := ctrl.AdminUsecase.ConfirmStage2(ctx, actor, request.CaseID, request.AuthID)
	if err != nil {
		ctrl.Log.Error("AdminController.ConfirmStage2 usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, request.CaseID),
			zap.String(constvars.LoggingActorKey, actor.Label()),
			zap.Error(err),
		)
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ConfirmStage2SuccessMessage, response)
}

func (ctrl *AdminController) handleCaseAction(w http.ResponseWriter, r *http.Request, name string, action caseAction, successMessage string) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.CaseAction)
	if err := decodeJSON(r, request); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		writeError(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := ctrl.actionContext(r)
	defer cancel()

	actor := utils.GetActor(r.Context())
	response, err := action(ctx, actor, request.CaseID)
	if err != nil {
		ctrl.Log.Error("AdminController."+name+" usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, request.CaseID),
			zap.String(constvars.LoggingActorKey, actor.Label()),
			zap.String(constvars.LoggingErrorCodeKey, exceptions.ErrorCodeOf(err)),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, response)
}

// actionContext leaves room for one payment gateway round trip on top of
// the normal request budget.
func (ctrl *AdminController) actionContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds+ctrl.InternalConfig.PaymentGateway.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}
