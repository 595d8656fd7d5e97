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

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
	InternalConfig *config.InternalConfig
}

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase, internalConfig *config.InternalConfig) *PaymentController {
	return &PaymentController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *PaymentController) GetPaymentIntent(w http.ResponseWriter, r *http.Request) {
	caseID, err := caseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.PaymentUsecase.GetPaymentIntent(ctx, caseID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPaymentIntentSuccessMessage, response)
}

func (ctrl *PaymentController) ReportPayment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	caseID, err := caseIDParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.ReportPayment)
	if err := decodeJSON(r, request); err != nil {
		ctrl.Log.Error("PaymentController.ReportPayment failed to parse request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, caseID),
			zap.Error(err),
		)
		writeError(ctrl.Log, w, err)
		return
	}

	utils.SanitizeReportPaymentRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		writeError(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.PaymentUsecase.ReportPayment(ctx, utils.GetActor(r.Context()), caseID, request)
	if err != nil {
		ctrl.Log.Error("PaymentController.ReportPayment usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, caseID),
			zap.Int(constvars.LoggingStageKey, request.Stage),
			zap.String(constvars.LoggingErrorCodeKey, exceptions.ErrorCodeOf(err)),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReportPaymentSuccessMessage, response)
}
