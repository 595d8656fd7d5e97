package payments

import (
	"context"
	"errors"
	"fmt"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/app/services/core/cases"
	"medtour-service/internal/app/services/core/stages"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
	"medtour-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPaymentGatewayService struct {
	mock.Mock
}

func (m *MockPaymentGatewayService) CaptureAuthorization(ctx context.Context, authorizationID string) error {
	return m.Called(ctx, authorizationID).Error(0)
}

func (m *MockPaymentGatewayService) VoidAuthorization(ctx context.Context, authorizationID string) error {
	return m.Called(ctx, authorizationID).Error(0)
}

func (m *MockPaymentGatewayService) VerifyWebhookSignature(ctx context.Context, headers requests.PaypalWebhookHeaders, body []byte) (bool, error) {
	args := m.Called(ctx, headers, body)
	return args.Bool(0), args.Error(1)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	return m.Called(ctx, key, lockValue).Error(0)
}

type noopCaseEventUsecase struct{}

func (noopCaseEventUsecase) Record(ctx context.Context, actor models.Actor, transition string, before, after *models.Case) {
}

func (noopCaseEventUsecase) FindByCaseID(ctx context.Context, caseID string) ([]responses.CaseEvent, error) {
	return nil, nil
}

var testPatient = models.Actor{Subject: "p-1", Email: "a@x.com", Role: models.ActorRolePatient}

type paymentFixture struct {
	usecase    *paymentUsecase
	repository contracts.CaseRepository
	gateway    *MockPaymentGatewayService
	engine     *stages.Engine
	caseID     string
}

func newPaymentFixture(t *testing.T, locker contracts.LockerService) *paymentFixture {
	repository := cases.NewCaseMemoryRepository()
	engine := stages.NewEngine(stages.DefaultPricing())
	gateway := new(MockPaymentGatewayService)
	internalConfig := &config.InternalConfig{App: config.App{WebhookDedupeTTLInHours: 72}}

	saved, _, err := repository.CreateOrReuseDraft(context.Background(), "a@x.com", func(current *models.Case) (*models.Case, error) {
		return engine.Apply(current, stages.CreateDraft{UserEmail: "a@x.com", Symptoms: "fever"}, testPatient)
	})
	require.NoError(t, err)

	uc := NewPaymentUsecase(repository, noopCaseEventUsecase{}, gateway, locker, engine, internalConfig, zap.NewNop()).(*paymentUsecase)
	return &paymentFixture{usecase: uc, repository: repository, gateway: gateway, engine: engine, caseID: saved.ID}
}

func stage1Report(caseID string) *requests.ReportPayment {
	return &requests.ReportPayment{
		Stage:            models.Stage1,
		Intent:           string(models.PaymentIntentCapture),
		GatewayReference: "CAP-1",
		Amount:           "30.00",
		Currency:         "usd",
		PurposeTag:       stages.PurposeTag(caseID, models.Stage1),
	}
}

func TestPaymentUsecase_GetPaymentIntent(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t, nil)

	intent, err := f.usecase.GetPaymentIntent(ctx, f.caseID)
	require.NoError(t, err)
	assert.True(t, intent.Payable)
	assert.Equal(t, models.Stage1, intent.Stage)
	assert.Equal(t, "CAPTURE", intent.Intent)
	assert.Equal(t, "30.00", intent.Amount)
	assert.Equal(t, f.caseID+":stage_1", intent.PurposeTag)

	_, err = f.usecase.ReportPayment(ctx, testPatient, f.caseID, stage1Report(f.caseID))
	require.NoError(t, err)

	intent, err = f.usecase.GetPaymentIntent(ctx, f.caseID)
	require.NoError(t, err)
	assert.False(t, intent.Payable, "a reported stage waits for confirmation")

	_, err = f.usecase.GetPaymentIntent(ctx, "c7a0c2a4-3c6f-4d0d-8a0e-0c5b0f9b8e11")
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
}

func TestPaymentUsecase_ReportPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepted once", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		updated, err := f.usecase.ReportPayment(ctx, testPatient, f.caseID, stage1Report(f.caseID))
		require.NoError(t, err)
		require.Len(t, updated.PaymentReports, 1)
		assert.Equal(t, "USD", updated.PaymentReports[0].Currency)
		assert.False(t, updated.Stage1Paid)

		_, err = f.usecase.ReportPayment(ctx, testPatient, f.caseID, stage1Report(f.caseID))
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
		assert.Equal(t, constvars.ErrCodeDuplicateConfirmation, customErr.ErrorCode)
	})

	t.Run("Wrong amount", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		request := stage1Report(f.caseID)
		request.Amount = "3.00"
		_, err := f.usecase.ReportPayment(ctx, testPatient, f.caseID, request)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.ErrCodeDuplicateConfirmation, customErr.ErrorCode)
	})
}

func webhookBody(eventID, eventType, customID, value string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"event_type": %q,
		"resource_type": "capture",
		"resource": {"id": "CAP-9", "status": "COMPLETED", "custom_id": %q, "amount": {"currency_code": "USD", "value": %q}}
	}`, eventID, eventType, customID, value))
}

func TestPaymentUsecase_HandlePaypalWebhook(t *testing.T) {
	ctx := context.Background()
	headers := requests.PaypalWebhookHeaders{TransmissionID: "tx-1"}

	t.Run("Capture completed records stage 1 report", func(t *testing.T) {
		locker := new(MockLockerService)
		locker.On("TryLock", ctx, constvars.RedisKeyPaypalWebhookPrefix+"WH-1", 72*time.Hour).Return(true, "claim-1", nil)
		f := newPaymentFixture(t, locker)
		body := webhookBody("WH-1", constvars.PaypalEventCaptureCompleted, stages.PurposeTag(f.caseID, models.Stage1), "30.00")
		f.gateway.On("VerifyWebhookSignature", ctx, headers, body).Return(true, nil)

		ack, err := f.usecase.HandlePaypalWebhook(ctx, headers, body)
		require.NoError(t, err)
		assert.True(t, ack.Processed)

		stored, err := f.repository.FindByID(ctx, f.caseID)
		require.NoError(t, err)
		report := stored.PaymentReportFor(models.Stage1)
		require.NotNil(t, report)
		assert.Equal(t, models.PaymentReportSourceWebhook, report.Source)
		assert.Equal(t, "CAP-9", report.GatewayReference)
	})

	t.Run("Redelivered event is acknowledged without processing", func(t *testing.T) {
		locker := new(MockLockerService)
		locker.On("TryLock", ctx, constvars.RedisKeyPaypalWebhookPrefix+"WH-2", 72*time.Hour).Return(false, "", nil)
		f := newPaymentFixture(t, locker)
		body := webhookBody("WH-2", constvars.PaypalEventCaptureCompleted, stages.PurposeTag(f.caseID, models.Stage1), "30.00")
		f.gateway.On("VerifyWebhookSignature", ctx, headers, body).Return(true, nil)

		ack, err := f.usecase.HandlePaypalWebhook(ctx, headers, body)
		require.NoError(t, err)
		assert.False(t, ack.Processed)
		assert.Equal(t, webhookReasonAlreadyHandled, ack.Reason)
	})

	t.Run("Mismatched amount is acknowledged", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		body := webhookBody("WH-3", constvars.PaypalEventCaptureCompleted, stages.PurposeTag(f.caseID, models.Stage1), "1.00")
		f.gateway.On("VerifyWebhookSignature", ctx, headers, body).Return(true, nil)

		ack, err := f.usecase.HandlePaypalWebhook(ctx, headers, body)
		require.NoError(t, err)
		assert.False(t, ack.Processed)
		assert.NotEmpty(t, ack.Reason)
	})

	t.Run("Unhandled event type", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		body := webhookBody("WH-4", "CHECKOUT.ORDER.APPROVED", stages.PurposeTag(f.caseID, models.Stage1), "30.00")
		f.gateway.On("VerifyWebhookSignature", ctx, headers, body).Return(true, nil)

		ack, err := f.usecase.HandlePaypalWebhook(ctx, headers, body)
		require.NoError(t, err)
		assert.Equal(t, webhookReasonIgnoredType, ack.Reason)
	})

	t.Run("Bad signature", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		body := webhookBody("WH-5", constvars.PaypalEventCaptureCompleted, stages.PurposeTag(f.caseID, models.Stage1), "30.00")
		f.gateway.On("VerifyWebhookSignature", ctx, headers, body).Return(false, nil)

		_, err := f.usecase.HandlePaypalWebhook(ctx, headers, body)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
	})

	t.Run("Unknown case is acknowledged and keeps the claim", func(t *testing.T) {
		locker := new(MockLockerService)
		locker.On("TryLock", ctx, constvars.RedisKeyPaypalWebhookPrefix+"WH-6", 72*time.Hour).Return(true, "claim-6", nil)
		f := newPaymentFixture(t, locker)
		body := webhookBody("WH-6", constvars.PaypalEventCaptureCompleted, stages.PurposeTag("0d3d0c6e-9c1e-4a3b-8f5e-2b6c7d8e9f10", models.Stage1), "30.00")
		f.gateway.On("VerifyWebhookSignature", ctx, headers, body).Return(true, nil)

		ack, err := f.usecase.HandlePaypalWebhook(ctx, headers, body)
		require.NoError(t, err)
		assert.False(t, ack.Processed)
		assert.Equal(t, webhookReasonUnknownCase, ack.Reason)
		locker.AssertExpectations(t)
		locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
	})
}
