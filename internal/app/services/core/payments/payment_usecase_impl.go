package payments

import (
	"context"
	"errors"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/app/services/core/stages"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	webhookReasonIgnoredType    = "event type is not handled"
	webhookReasonNoPurposeTag   = "resource has no recognisable purpose tag"
	webhookReasonAlreadyHandled = "event already handled"
	webhookReasonUnknownCase    = "purpose tag names an unknown case"
)

type paymentUsecase struct {
	CaseRepository        contracts.CaseRepository
	CaseEventUsecase      contracts.CaseEventUsecase
	PaymentGatewayService contracts.PaymentGatewayService
	LockerService         contracts.LockerService
	Engine                *stages.Engine
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

// NewPaymentUsecase accepts a nil locker; webhook deliveries are then
// deduplicated only by the one-report-per-stage rule.
func NewPaymentUsecase(
	caseRepository contracts.CaseRepository,
	caseEventUsecase contracts.CaseEventUsecase,
	paymentGatewayService contracts.PaymentGatewayService,
	lockerService contracts.LockerService,
	engine *stages.Engine,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	return &paymentUsecase{
		CaseRepository:        caseRepository,
		CaseEventUsecase:      caseEventUsecase,
		PaymentGatewayService: paymentGatewayService,
		LockerService:         lockerService,
		Engine:                engine,
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func (uc *paymentUsecase) GetPaymentIntent(ctx context.Context, caseID string) (*responses.PaymentIntent, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.GetPaymentIntent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, caseID),
	)

	current, err := uc.CaseRepository.FindByID(ctx, caseID)
	if err != nil {
		uc.Log.Error("paymentUsecase.GetPaymentIntent error fetching case",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if current == nil {
		return nil, exceptions.ErrCaseNotFound(nil, caseID)
	}

	expected := uc.Engine.NextPayment(current)
	if expected == nil {
		return &responses.PaymentIntent{CaseID: current.ID, Payable: false}, nil
	}

	response := expected.ConvertIntoResponse()
	uc.Log.Info("paymentUsecase.GetPaymentIntent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, caseID),
		zap.Int(constvars.LoggingStageKey, response.Stage),
	)
	return &response, nil
}

func (uc *paymentUsecase) ReportPayment(ctx context.Context, actor models.Actor, caseID string, request *requests.ReportPayment) (*responses.Case, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.ReportPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, caseID),
		zap.Int(constvars.LoggingStageKey, request.Stage),
	)

	amount, err := decimal.NewFromString(request.Amount)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	report := models.PaymentReport{
		Stage:            request.Stage,
		Intent:           models.PaymentIntent(request.Intent),
		GatewayReference: request.GatewayReference,
		Amount:           amount,
		Currency:         strings.ToUpper(request.Currency),
		PurposeTag:       request.PurposeTag,
		Source:           models.PaymentReportSourceClient,
	}

	saved, err := uc.recordReport(ctx, actor, caseID, report)
	if err != nil {
		uc.Log.Info("paymentUsecase.ReportPayment report not accepted",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, caseID),
			zap.Error(err),
		)
		return nil, exceptions.TranslateTransitionError(err)
	}

	response := saved.ConvertIntoResponse()
	return &response, nil
}

// HandlePaypalWebhook turns a verified PayPal notification into a payment
// report. Reports the case cannot accept are acknowledged so PayPal stops
// redelivering them; only infrastructure failures are returned as errors.
func (uc *paymentUsecase) HandlePaypalWebhook(ctx context.Context, headers requests.PaypalWebhookHeaders, body []byte) (*responses.WebhookAck, error) {
	requestID := utils.GetRequestID(ctx)

	verified, err := uc.PaymentGatewayService.VerifyWebhookSignature(ctx, headers, body)
	if err != nil {
		uc.Log.Error("paymentUsecase.HandlePaypalWebhook error verifying signature",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !verified {
		utils.LogSecurityEvent(uc.Log, "paypal_webhook_signature_rejected", requestID, "medium",
			zap.String("transmission_id", headers.TransmissionID),
		)
		return nil, exceptions.ErrWebhookSignatureInvalid(nil)
	}

	var event requests.PaypalWebhookEvent
	err = json.Unmarshal(body, &event)
	if err != nil || event.ID == "" {
		return nil, exceptions.ErrWebhookPayloadInvalid(err)
	}

	uc.Log.Info("paymentUsecase.HandlePaypalWebhook called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaypalEventIDKey, event.ID),
		zap.String(constvars.LoggingPaypalEventTypeKey, event.EventType),
	)

	ack := &responses.WebhookAck{EventID: event.ID}

	var intent models.PaymentIntent
	switch event.EventType {
	case constvars.PaypalEventAuthorizationCreated:
		intent = models.PaymentIntentAuthorize
	case constvars.PaypalEventCaptureCompleted:
		intent = models.PaymentIntentCapture
	default:
		ack.Reason = webhookReasonIgnoredType
		return ack, nil
	}

	caseID, stage, err := stages.ParsePurposeTag(event.Resource.CustomID)
	if err != nil {
		ack.Reason = webhookReasonNoPurposeTag
		return ack, nil
	}

	amount, err := decimal.NewFromString(event.Resource.Amount.Value)
	if err != nil {
		return nil, exceptions.ErrWebhookPayloadInvalid(err)
	}

	release, fresh, err := uc.claimEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	if !fresh {
		ack.Reason = webhookReasonAlreadyHandled
		return ack, nil
	}

	report := models.PaymentReport{
		Stage:            stage,
		Intent:           intent,
		GatewayReference: event.Resource.ID,
		Amount:           amount,
		Currency:         strings.ToUpper(event.Resource.Amount.CurrencyCode),
		PurposeTag:       event.Resource.CustomID,
		Source:           models.PaymentReportSourceWebhook,
	}

	_, err = uc.recordReport(ctx, models.SystemActor(constvars.ActorSubjectPaypalWebhook), caseID, report)
	if err != nil {
		var duplicateErr *exceptions.DuplicateConfirmationError
		var guardErr *exceptions.GuardRejectedError
		if errors.As(err, &duplicateErr) || errors.As(err, &guardErr) {
			uc.Log.Info("paymentUsecase.HandlePaypalWebhook report not accepted",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaypalEventIDKey, event.ID),
				zap.String(constvars.LoggingCaseIDKey, caseID),
				zap.Error(err),
			)
			ack.Reason = err.Error()
			return ack, nil
		}

		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) && customErr.StatusCode == constvars.StatusNotFound {
			uc.Log.Warn("paymentUsecase.HandlePaypalWebhook case not found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaypalEventIDKey, event.ID),
				zap.String(constvars.LoggingCaseIDKey, caseID),
			)
			ack.Reason = webhookReasonUnknownCase
			return ack, nil
		}

		release()
		uc.Log.Error("paymentUsecase.HandlePaypalWebhook error recording report",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaypalEventIDKey, event.ID),
			zap.Error(err),
		)
		return nil, exceptions.TranslateTransitionError(err)
	}

	ack.Processed = true
	return ack, nil
}

func (uc *paymentUsecase) recordReport(ctx context.Context, actor models.Actor, caseID string, report models.PaymentReport) (*models.Case, error) {
	transition := stages.RecordPayment{Report: report}

	var before *models.Case
	saved, err := uc.CaseRepository.ApplyTransition(ctx, caseID, func(current *models.Case) (*models.Case, error) {
		before = current
		return uc.Engine.Apply(current, transition, actor)
	})
	if err != nil {
		return nil, err
	}

	uc.CaseEventUsecase.Record(ctx, actor, transition.Name(), before, saved)
	return saved, nil
}

// claimEvent marks a webhook event as seen. The returned release undoes the
// claim so a redelivery can be processed after an infrastructure failure.
func (uc *paymentUsecase) claimEvent(ctx context.Context, eventID string) (func(), bool, error) {
	if uc.LockerService == nil {
		return func() {}, true, nil
	}

	key := constvars.RedisKeyPaypalWebhookPrefix + eventID
	ttl := time.Duration(uc.InternalConfig.App.WebhookDedupeTTLInHours) * time.Hour
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, key, ttl)
	if err != nil {
		return nil, false, err
	}
	if !acquired {
		return nil, false, nil
	}

	return func() {
		err := uc.LockerService.Unlock(context.WithoutCancel(ctx), key, lockValue)
		if err != nil {
			uc.Log.Warn("paymentUsecase.claimEvent error releasing webhook claim",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}, true, nil
}
