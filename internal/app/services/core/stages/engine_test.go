package stages

import (
	"errors"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow     = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	testAdmin   = models.AdminActor("admin-1", "ops@medtour.test")
	testPatient = models.Actor{Subject: "patient-1", Email: "a@x.com", Role: models.ActorRolePatient}
)

func newTestEngine() *Engine {
	engine := NewEngine(DefaultPricing()).WithClock(func() time.Time { return testNow })
	engine.newID = func() string { return "7f1c1f43-8f4b-4d4e-9a37-1d5bde0d8a11" }
	return engine
}

func apply(t *testing.T, engine *Engine, current *models.Case, transition Transition, actor models.Actor) *models.Case {
	t.Helper()
	next, err := engine.Apply(current, transition, actor)
	require.NoError(t, err, "transition %s should be accepted", transition.Name())
	return next
}

func assertGuardRejected(t *testing.T, err error, precondition string) {
	t.Helper()
	var guardErr *exceptions.GuardRejectedError
	require.True(t, errors.As(err, &guardErr), "expected GuardRejectedError, got %v", err)
	assert.Equal(t, precondition, guardErr.Precondition)
}

func newDraft(t *testing.T, engine *Engine) *models.Case {
	return apply(t, engine, nil, CreateDraft{
		UserEmail:      " A@x.com ",
		PatientName:    "Ana",
		Symptoms:       "knee pain",
		TargetCity:     "Beijing",
		TargetHospital: "Peking Union Medical College Hospital",
	}, testPatient)
}

func TestEngine_CreateDraft(t *testing.T) {
	engine := newTestEngine()

	t.Run("New draft starts unpaid", func(t *testing.T) {
		draft := newDraft(t, engine)
		assert.Equal(t, "a@x.com", draft.UserEmail)
		assert.False(t, draft.Stage1Paid)
		assert.Equal(t, models.Stage2NotStarted, draft.Stage2Status)
		assert.Equal(t, models.Stage3NotStarted, draft.Stage3Status)
		assert.Equal(t, models.CaseStatusDraft, draft.Status)
		assert.Equal(t, testNow, draft.CreatedAt)
		assert.NotNil(t, draft.PaymentReports)
	})

	t.Run("Rejected while an unpaid draft exists", func(t *testing.T) {
		draft := newDraft(t, engine)
		_, err := engine.Apply(draft, CreateDraft{UserEmail: "a@x.com"}, testPatient)
		assertGuardRejected(t, err, PreconditionNoUnpaidDraft)
	})

	t.Run("Allowed once the previous case is paid", func(t *testing.T) {
		paid := apply(t, engine, newDraft(t, engine), ConfirmStage1{}, testAdmin)
		_, err := engine.Apply(paid, CreateDraft{UserEmail: "a@x.com"}, testPatient)
		assert.NoError(t, err)
	})

	t.Run("Missing email", func(t *testing.T) {
		_, err := engine.Apply(nil, CreateDraft{UserEmail: "  "}, models.AnonymousPatient())
		var fieldErr *exceptions.FieldValidationError
		assert.True(t, errors.As(err, &fieldErr))
	})

	t.Run("Authenticated patient cannot file for another email", func(t *testing.T) {
		_, err := engine.Apply(nil, CreateDraft{UserEmail: "b@x.com"}, testPatient)
		assertGuardRejected(t, err, PreconditionActorOwnsCase)
	})
}

func TestEngine_UpdateDraftAndCompanion(t *testing.T) {
	engine := newTestEngine()
	draft := newDraft(t, engine)

	updated := apply(t, engine, draft, UpdateDraft{Symptoms: "back pain", TargetCity: "Shanghai", TargetHospital: "Ruijin Hospital"}, testPatient)
	assert.Equal(t, "back pain", updated.Symptoms)
	assert.Equal(t, "knee pain", draft.Symptoms, "input case must not be mutated")

	paid := apply(t, engine, updated, ConfirmStage1{}, testAdmin)
	_, err := engine.Apply(paid, UpdateDraft{Symptoms: "x"}, testPatient)
	assertGuardRejected(t, err, PreconditionUnpaidDraft)

	withCompanion := apply(t, engine, paid, AttachCompanion{Companion: models.CompanionRequest{
		Contact: "+86 100", Gender: models.CompanionGenderFemale, Duration: models.CompanionDurationMorning,
	}}, testPatient)
	require.NotNil(t, withCompanion.CompanionRequest)
	assert.Nil(t, paid.CompanionRequest)

	_, err = engine.Apply(paid, AttachCompanion{Companion: models.CompanionRequest{Contact: "x"}}, models.Actor{Email: "other@x.com"})
	assertGuardRejected(t, err, PreconditionActorOwnsCase)
}

func TestEngine_AdminOnly(t *testing.T) {
	engine := newTestEngine()
	draft := newDraft(t, engine)

	for _, transition := range []Transition{ConfirmStage1{}, ConfirmStage2{AuthID: "AUTH1"}, CaptureStage2{}, VoidStage2{}, ConfirmStage3{}} {
		_, err := engine.Apply(draft, transition, testPatient)
		assertGuardRejected(t, err, PreconditionActorIsAdmin)
	}
}

func TestEngine_MissingCase(t *testing.T) {
	_, err := newTestEngine().Apply(nil, ConfirmStage1{}, testAdmin)
	assertGuardRejected(t, err, PreconditionCaseExists)
}

func TestEngine_ConfirmStage1IsNotRepeatable(t *testing.T) {
	engine := newTestEngine()
	paid := apply(t, engine, newDraft(t, engine), ConfirmStage1{}, testAdmin)
	assert.Equal(t, models.CaseStatusPendingStage2, paid.Status)

	snapshot := paid.Clone()
	_, err := engine.Apply(paid, ConfirmStage1{}, testAdmin)
	assertGuardRejected(t, err, PreconditionStage1Unpaid)
	assert.Equal(t, snapshot, paid)
}

func TestEngine_CaptureBeforeAuthorization(t *testing.T) {
	engine := newTestEngine()
	paid := apply(t, engine, newDraft(t, engine), ConfirmStage1{}, testAdmin)

	_, err := engine.Apply(paid, CaptureStage2{}, testAdmin)
	assertGuardRejected(t, err, PreconditionStage2Authorized)
	assert.Equal(t, models.Stage2NotStarted, paid.Stage2Status)
}

func TestEngine_ConfirmStage2RequiresStage1(t *testing.T) {
	engine := newTestEngine()
	draft := newDraft(t, engine)
	snapshot := draft.Clone()

	_, err := engine.Apply(draft, ConfirmStage2{AuthID: "AUTH1"}, testAdmin)
	assertGuardRejected(t, err, PreconditionStage1Paid)
	assert.Equal(t, snapshot, draft)

	_, err = engine.Apply(draft, ConfirmStage2{}, testAdmin)
	var fieldErr *exceptions.FieldValidationError
	assert.True(t, errors.As(err, &fieldErr))
}

func TestEngine_ConfirmStage3RequiresCompanion(t *testing.T) {
	engine := newTestEngine()
	c := apply(t, engine, newDraft(t, engine), ConfirmStage1{}, testAdmin)
	c = apply(t, engine, c, ConfirmStage2{AuthID: "AUTH1"}, testAdmin)
	assert.Equal(t, models.Stage2Authorized, c.Stage2Status)
	assert.Equal(t, "AUTH1", c.Stage2AuthID)
	require.NotNil(t, c.Stage2AuthorizedAt)

	c = apply(t, engine, c, CaptureStage2{}, testAdmin)
	assert.Equal(t, models.Stage2Captured, c.Stage2Status)

	_, err := engine.Apply(c, ConfirmStage3{}, testAdmin)
	assertGuardRejected(t, err, PreconditionCompanionPresent)
}

func TestEngine_HappyPath(t *testing.T) {
	engine := newTestEngine()
	c := newDraft(t, engine)
	c = apply(t, engine, c, ConfirmStage1{}, testAdmin)
	c = apply(t, engine, c, ConfirmStage2{AuthID: "AUTH1"}, testAdmin)
	assert.Equal(t, models.CaseStatusEscrowSecured, c.Status)
	c = apply(t, engine, c, CaptureStage2{}, testAdmin)
	assert.Equal(t, models.CaseStatusEscrowCaptured, c.Status)
	c = apply(t, engine, c, AttachCompanion{Companion: models.CompanionRequest{
		Contact: "+86 100", Gender: models.CompanionGenderNoPreference, Duration: models.CompanionDurationFullDay,
	}}, testPatient)
	c = apply(t, engine, c, ConfirmStage3{}, testAdmin)

	assert.Equal(t, models.Stage3Paid, c.Stage3Status)
	assert.Equal(t, models.CaseStatusCompleted, c.Status)

	_, err := engine.Apply(c, AttachCompanion{Companion: models.CompanionRequest{Contact: "x"}}, testPatient)
	assertGuardRejected(t, err, PreconditionStage3NotPaid)
	_, err = engine.Apply(c, ConfirmStage3{}, testAdmin)
	assertGuardRejected(t, err, PreconditionStage3NotStarted)
}

func TestEngine_VoidIsTerminal(t *testing.T) {
	engine := newTestEngine()
	c := apply(t, engine, newDraft(t, engine), ConfirmStage1{}, testAdmin)
	c = apply(t, engine, c, ConfirmStage2{AuthID: "AUTH1"}, testAdmin)
	c = apply(t, engine, c, AttachCompanion{Companion: models.CompanionRequest{Contact: "x", Duration: models.CompanionDurationMorning}}, testPatient)
	c = apply(t, engine, c, VoidStage2{}, testAdmin)
	assert.Equal(t, models.Stage2Voided, c.Stage2Status)
	assert.Equal(t, models.CaseStatusEscrowVoided, c.Status)

	_, err := engine.Apply(c, ConfirmStage3{}, testAdmin)
	assertGuardRejected(t, err, PreconditionStage2Captured)
	_, err = engine.Apply(c, CaptureStage2{}, testAdmin)
	assertGuardRejected(t, err, PreconditionStage2Authorized)
	_, err = engine.Apply(c, VoidStage2{}, testAdmin)
	assertGuardRejected(t, err, PreconditionStage2Authorized)
	_, err = engine.Apply(c, ConfirmStage2{AuthID: "AUTH2"}, testAdmin)
	assertGuardRejected(t, err, PreconditionStage2NotStarted)
}

func TestEngine_RecordPayment(t *testing.T) {
	engine := newTestEngine()
	draft := newDraft(t, engine)

	report := models.PaymentReport{
		Stage:            models.Stage1,
		Intent:           models.PaymentIntentCapture,
		GatewayReference: "CAP-1",
		Amount:           decimal.RequireFromString("30"),
		Currency:         "usd",
		PurposeTag:       PurposeTag(draft.ID, models.Stage1),
	}

	recorded := apply(t, engine, draft, RecordPayment{Report: report}, testPatient)
	require.Len(t, recorded.PaymentReports, 1)
	assert.Equal(t, models.PaymentReportSourceClient, recorded.PaymentReports[0].Source)
	assert.Equal(t, testNow, recorded.PaymentReports[0].ReportedAt)
	assert.False(t, recorded.Stage1Paid, "a report never settles a stage on its own")
	assert.Empty(t, draft.PaymentReports)

	_, err := engine.Apply(recorded, RecordPayment{Report: report}, testPatient)
	var duplicateErr *exceptions.DuplicateConfirmationError
	assert.True(t, errors.As(err, &duplicateErr))
}

func TestEngine_Stage3DurationFrozenAfterReport(t *testing.T) {
	engine := newTestEngine()
	c := apply(t, engine, newDraft(t, engine), ConfirmStage1{}, testAdmin)
	c = apply(t, engine, c, ConfirmStage2{AuthID: "AUTH1"}, testAdmin)
	c = apply(t, engine, c, CaptureStage2{}, testAdmin)
	c = apply(t, engine, c, AttachCompanion{Companion: models.CompanionRequest{
		Contact: "+86 100", Gender: models.CompanionGenderFemale, Duration: models.CompanionDurationMorning,
	}}, testPatient)
	c = apply(t, engine, c, RecordPayment{Report: models.PaymentReport{
		Stage:            models.Stage3,
		Intent:           models.PaymentIntentCapture,
		GatewayReference: "CAP-3",
		Amount:           decimal.RequireFromString("120.00"),
		Currency:         "USD",
		PurposeTag:       PurposeTag(c.ID, models.Stage3),
	}}, testPatient)

	t.Run("Duration change rejected once a report is on file", func(t *testing.T) {
		_, err := engine.Apply(c, AttachCompanion{Companion: models.CompanionRequest{
			Contact: "+86 100", Gender: models.CompanionGenderFemale, Duration: models.CompanionDurationFullDay,
		}}, testPatient)
		assertGuardRejected(t, err, PreconditionStage3DurationSet)
	})

	t.Run("Contact change keeps the paid duration", func(t *testing.T) {
		updated := apply(t, engine, c, AttachCompanion{Companion: models.CompanionRequest{
			Contact: "+86 200", Gender: models.CompanionGenderFemale, Duration: models.CompanionDurationMorning,
		}}, testPatient)
		assert.Equal(t, "+86 200", updated.CompanionRequest.Contact)
	})

	t.Run("Confirm requires the report to match the current price", func(t *testing.T) {
		drifted := c.Clone()
		drifted.CompanionRequest.Duration = models.CompanionDurationFullDay
		_, err := engine.Apply(drifted, ConfirmStage3{}, testAdmin)
		assertGuardRejected(t, err, PreconditionStage3PriceMatch)

		paid := apply(t, engine, c, ConfirmStage3{}, testAdmin)
		assert.Equal(t, models.Stage3Paid, paid.Stage3Status)
	})
}
