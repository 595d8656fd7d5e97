package controllers

import (
	"io"
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

type WebhookController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
	InternalConfig *config.InternalConfig
}

func NewWebhookController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase, internalConfig *config.InternalConfig) *WebhookController {
	return &WebhookController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
		InternalConfig: internalConfig,
	}
}

// HandlePaypalWebhook processes POST /webhooks/paypal. The raw body is
// passed through untouched because PayPal signs the exact bytes.
func (ctrl *WebhookController) HandlePaypalWebhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	utils.LogSecurityEvent(ctrl.Log, "paypal_webhook_received", requestID, "info",
		zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
		zap.String(constvars.LoggingUserAgentKey, r.UserAgent()),
	)

	raw, ok := r.Context().Value(constvars.CONTEXT_RAW_BODY).([]byte)
	if !ok {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(ctrl.Log, w, exceptions.ErrReadBody(err))
			return
		}
		raw = body
	}

	headers := requests.PaypalWebhookHeaders{
		AuthAlgo:         r.Header.Get(constvars.HeaderPaypalAuthAlgo),
		CertURL:          r.Header.Get(constvars.HeaderPaypalCertURL),
		TransmissionID:   r.Header.Get(constvars.HeaderPaypalTransmissionID),
		TransmissionSig:  r.Header.Get(constvars.HeaderPaypalTransmissionSig),
		TransmissionTime: r.Header.Get(constvars.HeaderPaypalTransmissionTime),
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	ack, err := ctrl.PaymentUsecase.HandlePaypalWebhook(ctx, headers, raw)
	if err != nil {
		ctrl.Log.Error("WebhookController.HandlePaypalWebhook usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorCodeKey, exceptions.ErrorCodeOf(err)),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeError(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "paypal_webhook_handled", requestID,
		zap.String(constvars.LoggingPaypalEventIDKey, ack.EventID),
		zap.Bool("processed", ack.Processed),
		zap.String("reason", ack.Reason),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WebhookReceivedSuccessMessage, ack)
}
