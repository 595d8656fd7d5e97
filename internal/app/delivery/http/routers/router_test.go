package routers

import (
	"bytes"
	"context"
	"io"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/delivery/http/controllers"
	"medtour-service/internal/app/delivery/http/middlewares"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
	"medtour-service/internal/pkg/exceptions"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testAPIKey = "test-admin-api-key-12345"
	testCaseID = "0f8fad5b-d9cb-469f-a165-70867728950e"
)

type MockCaseUsecase struct {
	mock.Mock
}

func (m *MockCaseUsecase) SubmitDraft(ctx context.Context, actor models.Actor, request *requests.SubmitCase) (*responses.CaseSubmitted, error) {
	args := m.Called(ctx, actor, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.CaseSubmitted), args.Error(1)
}

func (m *MockCaseUsecase) FindByID(ctx context.Context, caseID string) (*responses.Case, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Case), args.Error(1)
}

func (m *MockCaseUsecase) FindLatestByEmail(ctx context.Context, email string) (*responses.Case, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Case), args.Error(1)
}

func (m *MockCaseUsecase) LookupByEmail(ctx context.Context, email string) (*responses.CaseLookup, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.CaseLookup), args.Error(1)
}

func (m *MockCaseUsecase) AttachCompanion(ctx context.Context, actor models.Actor, caseID string, request *requests.AttachCompanion) (*responses.Case, error) {
	args := m.Called(ctx, actor, caseID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Case), args.Error(1)
}

type MockAdminUsecase struct {
	mock.Mock
}

func (m *MockAdminUsecase) caseResult(args mock.Arguments) (*responses.Case, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Case), args.Error(1)
}

func (m *MockAdminUsecase) FindAllCases(ctx context.Context) ([]responses.Case, error) {
	args := m.Called(ctx)
	return args.Get(0).([]responses.Case), args.Error(1)
}

func (m *MockAdminUsecase) FindStaleAuthorizations(ctx context.Context) ([]responses.StaleAuthorization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]responses.StaleAuthorization), args.Error(1)
}

func (m *MockAdminUsecase) ConfirmStage1(ctx context.Context, actor models.Actor, caseID string) (*responses.Case, error) {
	return m.caseResult(m.Called(ctx, actor, caseID))
}

func (m *MockAdminUsecase) ConfirmStage2(ctx context.Context, actor models.Actor, caseID, authID string) (*responses.Case, error) {
	return m.caseResult(m.Called(ctx, actor, caseID, authID))
}

func (m *MockAdminUsecase) CaptureStage2(ctx context.Context, actor models.Actor, caseID string) (*responses.Case, error) {
	return m.caseResult(m.Called(ctx, actor, caseID))
}

func (m *MockAdminUsecase) VoidStage2(ctx context.Context, actor models.Actor, caseID string) (*responses.Case, error) {
	return m.caseResult(m.Called(ctx, actor, caseID))
}

func (m *MockAdminUsecase) ConfirmStage3(ctx context.Context, actor models.Actor, caseID string) (*responses.Case, error) {
	return m.caseResult(m.Called(ctx, actor, caseID))
}

type MockCaseEventUsecase struct {
	mock.Mock
}

func (m *MockCaseEventUsecase) Record(ctx context.Context, actor models.Actor, transition string, before, after *models.Case) {
	m.Called(ctx, actor, transition, before, after)
}

func (m *MockCaseEventUsecase) FindByCaseID(ctx context.Context, caseID string) ([]responses.CaseEvent, error) {
	args := m.Called(ctx, caseID)
	return args.Get(0).([]responses.CaseEvent), args.Error(1)
}

type MockCityUsecase struct {
	mock.Mock
}

func (m *MockCityUsecase) FindHospitalsByCity(ctx context.Context) (map[string][]string, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string][]string), args.Error(1)
}

func (m *MockCityUsecase) HospitalBelongsToCity(ctx context.Context, cityName, hospitalName string) (bool, error) {
	args := m.Called(ctx, cityName, hospitalName)
	return args.Bool(0), args.Error(1)
}

func (m *MockCityUsecase) CreateCity(ctx context.Context, request *requests.CreateCity) (*responses.City, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.City), args.Error(1)
}

func (m *MockCityUsecase) CreateHospital(ctx context.Context, request *requests.CreateHospital) (*responses.Hospital, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Hospital), args.Error(1)
}

type MockPaymentUsecase struct {
	mock.Mock
}

func (m *MockPaymentUsecase) GetPaymentIntent(ctx context.Context, caseID string) (*responses.PaymentIntent, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.PaymentIntent), args.Error(1)
}

func (m *MockPaymentUsecase) ReportPayment(ctx context.Context, actor models.Actor, caseID string, request *requests.ReportPayment) (*responses.Case, error) {
	args := m.Called(ctx, actor, caseID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Case), args.Error(1)
}

func (m *MockPaymentUsecase) HandlePaypalWebhook(ctx context.Context, headers requests.PaypalWebhookHeaders, body []byte) (*responses.WebhookAck, error) {
	args := m.Called(ctx, headers, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.WebhookAck), args.Error(1)
}

type MockDocumentUsecase struct {
	mock.Mock
}

func (m *MockDocumentUsecase) UploadPassport(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader) (*responses.DocumentUploaded, error) {
	args := m.Called(ctx, file, fileHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.DocumentUploaded), args.Error(1)
}

type routerFixture struct {
	router    *chi.Mux
	cases     *MockCaseUsecase
	admin     *MockAdminUsecase
	events    *MockCaseEventUsecase
	cities    *MockCityUsecase
	payments  *MockPaymentUsecase
	documents *MockDocumentUsecase
}

func newRouterFixture() *routerFixture {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			Version:                     "v1",
			EndpointPrefix:              "api",
			AdminAPIKey:                 testAPIKey,
			MaxRequests:                 1000,
			AdminMaxRequests:            1000,
			RequestTimeoutInSeconds:     5,
			RequestBodyLimitInMegabyte:  1,
			CaseSubmissionRatePerMinute: 1000,
			WebhookRatePerMinute:        1000,
		},
		JWT: config.AppJWT{
			Secret:    "test-secret",
			AdminRole: "admin",
		},
		Minio: config.AppMinio{
			PassportMaxUploadSizeInMB: 1,
		},
	}

	fixture := &routerFixture{
		router:    chi.NewRouter(),
		cases:     new(MockCaseUsecase),
		admin:     new(MockAdminUsecase),
		events:    new(MockCaseEventUsecase),
		cities:    new(MockCityUsecase),
		payments:  new(MockPaymentUsecase),
		documents: new(MockDocumentUsecase),
	}

	SetupRoutes(
		fixture.router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		controllers.NewCaseController(logger, fixture.cases, internalConfig),
		controllers.NewAdminController(logger, fixture.admin, fixture.events, internalConfig),
		controllers.NewCityController(logger, fixture.cities, internalConfig),
		controllers.NewPaymentController(logger, fixture.payments, internalConfig),
		controllers.NewWebhookController(logger, fixture.payments, internalConfig),
		controllers.NewDocumentController(logger, fixture.documents, internalConfig),
	)
	return fixture
}

func (f *routerFixture) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func errorCodeOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	var body exceptions.CustomError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.ErrorCode
}

func validSubmitCase() requests.SubmitCase {
	return requests.SubmitCase{
		UserEmail:      "patient@example.com",
		PatientName:    "Jane Doe",
		Symptoms:       "Chronic back pain",
		TargetCity:     "Beijing",
		TargetHospital: "Peking Union Medical College Hospital",
	}
}

func TestCaseRoutes(t *testing.T) {
	t.Run("Submit case creates a draft", func(t *testing.T) {
		f := newRouterFixture()
		f.cases.On("SubmitDraft", mock.Anything, mock.MatchedBy(func(actor models.Actor) bool {
			return actor.IsAnonymous() && !actor.IsAdmin
		}), mock.AnythingOfType("*requests.SubmitCase")).Return(&responses.CaseSubmitted{CaseID: testCaseID}, nil)

		rr := f.do(http.MethodPost, "/api/v1/cases", validSubmitCase(), nil)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
		f.cases.AssertExpectations(t)
	})

	t.Run("Submit case reusing the draft answers 200", func(t *testing.T) {
		f := newRouterFixture()
		f.cases.On("SubmitDraft", mock.Anything, mock.Anything, mock.Anything).Return(&responses.CaseSubmitted{CaseID: testCaseID, Reused: true}, nil)

		rr := f.do(http.MethodPost, "/api/v1/cases", validSubmitCase(), nil)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Submit case with invalid email", func(t *testing.T) {
		f := newRouterFixture()
		request := validSubmitCase()
		request.UserEmail = "not-an-email"

		rr := f.do(http.MethodPost, "/api/v1/cases", request, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, constvars.ErrCodeValidation, errorCodeOf(t, rr))
		f.cases.AssertNotCalled(t, "SubmitDraft", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Case id must be a uuid", func(t *testing.T) {
		f := newRouterFixture()

		rr := f.do(http.MethodGet, "/api/v1/cases/not-a-uuid", nil, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Unknown case is not found", func(t *testing.T) {
		f := newRouterFixture()
		f.cases.On("FindByID", mock.Anything, testCaseID).Return(nil, exceptions.ErrCaseNotFound(nil, testCaseID))

		rr := f.do(http.MethodGet, "/api/v1/cases/"+testCaseID, nil, nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, constvars.ErrCodeNotFound, errorCodeOf(t, rr))
	})

	t.Run("Lookup by email", func(t *testing.T) {
		f := newRouterFixture()
		f.cases.On("LookupByEmail", mock.Anything, "patient@example.com").Return(&responses.CaseLookup{NoCase: true}, nil)

		rr := f.do(http.MethodGet, "/api/v1/cases/lookup/patient@example.com", nil, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"no_case":true`)
	})

	t.Run("Invalid bearer token is rejected", func(t *testing.T) {
		f := newRouterFixture()

		rr := f.do(http.MethodGet, "/api/v1/cases/"+testCaseID, nil, map[string]string{
			constvars.HeaderAuthorization: constvars.BearerPrefix + "garbage",
		})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Replayed payment report", func(t *testing.T) {
		f := newRouterFixture()
		duplicate := &exceptions.DuplicateConfirmationError{Stage: 1, Reason: "stage 1 is already paid"}
		f.payments.On("ReportPayment", mock.Anything, mock.Anything, testCaseID, mock.AnythingOfType("*requests.ReportPayment")).
			Return(nil, exceptions.TranslateTransitionError(duplicate))

		rr := f.do(http.MethodPost, "/api/v1/cases/"+testCaseID+"/payments", requests.ReportPayment{
			Stage:            1,
			Intent:           "capture",
			GatewayReference: "CAP-1",
			Amount:           "30.00",
			Currency:         "usd",
			PurposeTag:       testCaseID + ":stage_1",
		}, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Equal(t, constvars.ErrCodeDuplicateConfirmation, errorCodeOf(t, rr))
	})
}

func TestAdminRoutes(t *testing.T) {
	adminHeaders := map[string]string{constvars.HeaderXAPIKey: testAPIKey}

	t.Run("Anonymous caller is forbidden", func(t *testing.T) {
		f := newRouterFixture()

		rr := f.do(http.MethodGet, "/api/v1/admin/all-cases", nil, nil)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		f.admin.AssertNotCalled(t, "FindAllCases", mock.Anything)
	})

	t.Run("API key admin lists cases", func(t *testing.T) {
		f := newRouterFixture()
		f.admin.On("FindAllCases", mock.Anything).Return([]responses.Case{{ID: testCaseID}}, nil)

		rr := f.do(http.MethodGet, "/api/v1/admin/all-cases", nil, adminHeaders)

		assert.Equal(t, http.StatusOK, rr.Code)
		f.admin.AssertExpectations(t)
	})

	t.Run("Capture rejected by guard", func(t *testing.T) {
		f := newRouterFixture()
		guard := &exceptions.GuardRejectedError{Transition: "SETTLE_STAGE2", Precondition: "stage2_status = authorized"}
		f.admin.On("CaptureStage2", mock.Anything, mock.MatchedBy(func(actor models.Actor) bool {
			return actor.IsAdmin
		}), testCaseID).Return(nil, exceptions.TranslateTransitionError(guard))

		rr := f.do(http.MethodPost, "/api/v1/admin/capture-stage2", requests.CaseAction{CaseID: testCaseID}, adminHeaders)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, constvars.ErrCodeGuardRejected, errorCodeOf(t, rr))
	})

	t.Run("Confirm stage 2 requires auth id", func(t *testing.T) {
		f := newRouterFixture()

		rr := f.do(http.MethodPost, "/api/v1/admin/confirm-stage2", requests.ConfirmStage2{CaseID: testCaseID}, adminHeaders)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		f.admin.AssertNotCalled(t, "ConfirmStage2", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Confirm stage 1", func(t *testing.T) {
		f := newRouterFixture()
		f.admin.On("ConfirmStage1", mock.Anything, mock.Anything, testCaseID).Return(&responses.Case{ID: testCaseID, Stage1Paid: true}, nil)

		rr := f.do(http.MethodPost, "/api/v1/admin/confirm-stage1", requests.CaseAction{CaseID: testCaseID}, adminHeaders)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"stage1_paid":true`)
	})

	t.Run("Create hospital under unknown city", func(t *testing.T) {
		f := newRouterFixture()
		f.cities.On("CreateHospital", mock.Anything, mock.AnythingOfType("*requests.CreateHospital")).Return(nil, exceptions.ErrCityNotFound(nil, "Atlantis"))

		rr := f.do(http.MethodPost, "/api/v1/admin/meta/hospitals", requests.CreateHospital{CityName: "Atlantis", HospitalName: "Deep Clinic"}, adminHeaders)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestMetaAndWebhookRoutes(t *testing.T) {
	t.Run("Hospitals by city", func(t *testing.T) {
		f := newRouterFixture()
		f.cities.On("FindHospitalsByCity", mock.Anything).Return(map[string][]string{
			"Beijing": {"Peking Union Medical College Hospital"},
		}, nil)

		rr := f.do(http.MethodGet, "/api/v1/meta/hospitals", nil, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Peking Union Medical College Hospital")
	})

	t.Run("PayPal webhook passes the raw body", func(t *testing.T) {
		f := newRouterFixture()
		payload := []byte(`{"id":"WH-1","event_type":"PAYMENT.CAPTURE.COMPLETED"}`)
		f.payments.On("HandlePaypalWebhook", mock.Anything, mock.MatchedBy(func(headers requests.PaypalWebhookHeaders) bool {
			return headers.TransmissionID == "tx-1"
		}), payload).Return(&responses.WebhookAck{EventID: "WH-1", Processed: true}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/paypal", bytes.NewReader(payload))
		req.Header.Set(constvars.HeaderPaypalTransmissionID, "tx-1")
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		f.payments.AssertExpectations(t)
	})

	t.Run("PayPal webhook with bad signature", func(t *testing.T) {
		f := newRouterFixture()
		f.payments.On("HandlePaypalWebhook", mock.Anything, mock.Anything, mock.Anything).Return(nil, exceptions.ErrWebhookSignatureInvalid(nil))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/paypal", bytes.NewReader([]byte(`{}`)))
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
