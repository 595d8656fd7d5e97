// Package stages holds the staged payment state machine. It performs no I/O
// and keeps no global state, so every guard can be exercised directly.
package stages

import (
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/exceptions"
	"time"

	"github.com/google/uuid"
)

type Engine struct {
	pricing Pricing
	now     func() time.Time
	newID   func() string
}

func NewEngine(pricing Pricing) *Engine {
	return &Engine{
		pricing: pricing,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// WithClock returns a copy of the engine reading time from now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	clone := *e
	clone.now = now
	return &clone
}

func (e *Engine) Pricing() Pricing {
	return e.pricing
}

// Apply evaluates the transition's guard against current and returns the
// next case. current is never modified. A nil current is only valid for
// CreateDraft.
func (e *Engine) Apply(current *models.Case, transition Transition, actor models.Actor) (*models.Case, error) {
	if transition.requiresAdmin() && !actor.IsAdmin {
		return nil, reject(transition, PreconditionActorIsAdmin)
	}

	if _, isCreate := transition.(CreateDraft); !isCreate {
		if current == nil {
			return nil, reject(transition, PreconditionCaseExists)
		}
		if !actor.IsAdmin && actor.Email != "" && !current.IsOwnedBy(actor.Email) {
			return nil, reject(transition, PreconditionActorOwnsCase)
		}
	}

	var next *models.Case
	var err error
	switch t := transition.(type) {
	case CreateDraft:
		next, err = e.createDraft(current, t, actor)
	case UpdateDraft:
		next, err = e.updateDraft(current, t)
	case AttachCompanion:
		next, err = e.attachCompanion(current, t)
	case ConfirmStage1:
		next, err = e.confirmStage1(current, t)
	case ConfirmStage2:
		next, err = e.confirmStage2(current, t)
	case CaptureStage2:
		next, err = e.settleStage2(current, t, models.Stage2Captured)
	case VoidStage2:
		next, err = e.settleStage2(current, t, models.Stage2Voided)
	case ConfirmStage3:
		next, err = e.confirmStage3(current, t)
	case RecordPayment:
		next, err = e.recordPayment(current, t)
	default:
		return nil, &exceptions.FieldValidationError{Field: "transition", Reason: "is not supported"}
	}
	if err != nil {
		return nil, err
	}

	next.Status = next.DeriveStatus()
	next.UpdatedAt = e.now()
	return next, nil
}

// Check evaluates the guard only, for callers that must act on an external
// system before committing.
func (e *Engine) Check(current *models.Case, transition Transition, actor models.Actor) error {
	_, err := e.Apply(current, transition, actor)
	return err
}

func (e *Engine) createDraft(current *models.Case, t CreateDraft, actor models.Actor) (*models.Case, error) {
	if current != nil && current.IsUnpaidDraft() {
		return nil, reject(t, PreconditionNoUnpaidDraft)
	}
	email := models.NormalizeEmail(t.UserEmail)
	if email == "" {
		return nil, &exceptions.FieldValidationError{Field: "user_email", Reason: "is required"}
	}
	if !actor.IsAdmin && actor.Email != "" && actor.Email != email {
		return nil, reject(t, PreconditionActorOwnsCase)
	}

	now := e.now()
	return &models.Case{
		ID:             e.newID(),
		UserEmail:      email,
		PatientName:    t.PatientName,
		Symptoms:       t.Symptoms,
		TargetCity:     t.TargetCity,
		TargetHospital: t.TargetHospital,
		PassportURL:    t.PassportURL,
		Stage1Paid:     false,
		Stage2Status:   models.Stage2NotStarted,
		Stage3Status:   models.Stage3NotStarted,
		PaymentReports: []models.PaymentReport{},
		CreatedAt:      now,
	}, nil
}

func (e *Engine) updateDraft(current *models.Case, t UpdateDraft) (*models.Case, error) {
	if !current.IsUnpaidDraft() {
		return nil, reject(t, PreconditionUnpaidDraft)
	}
	next := current.Clone()
	next.Symptoms = t.Symptoms
	next.TargetCity = t.TargetCity
	next.TargetHospital = t.TargetHospital
	return next, nil
}

func (e *Engine) attachCompanion(current *models.Case, t AttachCompanion) (*models.Case, error) {
	if current.Stage3Status == models.Stage3Paid {
		return nil, reject(t, PreconditionStage3NotPaid)
	}
	if t.Companion.Contact == "" {
		return nil, &exceptions.FieldValidationError{Field: "contact", Reason: "is required"}
	}
	// The stage 3 price depends on the duration, so it is frozen once paid for.
	if current.PaymentReportFor(models.Stage3) != nil && current.CompanionRequest != nil &&
		current.CompanionRequest.Duration != t.Companion.Duration {
		return nil, reject(t, PreconditionStage3DurationSet)
	}
	next := current.Clone()
	companion := t.Companion
	next.CompanionRequest = &companion
	return next, nil
}

func (e *Engine) confirmStage1(current *models.Case, t ConfirmStage1) (*models.Case, error) {
	if current.Stage1Paid {
		return nil, reject(t, PreconditionStage1Unpaid)
	}
	next := current.Clone()
	next.Stage1Paid = true
	return next, nil
}

func (e *Engine) confirmStage2(current *models.Case, t ConfirmStage2) (*models.Case, error) {
	if t.AuthID == "" {
		return nil, &exceptions.FieldValidationError{Field: "auth_id", Reason: "is required"}
	}
	if !current.Stage1Paid {
		return nil, reject(t, PreconditionStage1Paid)
	}
	if !current.Stage2Status.CanTransitionTo(models.Stage2Authorized) {
		return nil, reject(t, PreconditionStage2NotStarted)
	}
	next := current.Clone()
	authorizedAt := e.now()
	next.Stage2Status = models.Stage2Authorized
	next.Stage2AuthID = t.AuthID
	next.Stage2AuthorizedAt = &authorizedAt
	return next, nil
}

func (e *Engine) settleStage2(current *models.Case, t Transition, target models.Stage2Status) (*models.Case, error) {
	if !current.Stage2Status.CanTransitionTo(target) || current.Stage2AuthID == "" {
		return nil, reject(t, PreconditionStage2Authorized)
	}
	next := current.Clone()
	next.Stage2Status = target
	return next, nil
}

func (e *Engine) confirmStage3(current *models.Case, t ConfirmStage3) (*models.Case, error) {
	if current.Stage2Status != models.Stage2Captured {
		return nil, reject(t, PreconditionStage2Captured)
	}
	if current.CompanionRequest == nil {
		return nil, reject(t, PreconditionCompanionPresent)
	}
	if current.Stage3Status != models.Stage3NotStarted {
		return nil, reject(t, PreconditionStage3NotStarted)
	}
	if report := current.PaymentReportFor(models.Stage3); report != nil {
		amount, ok := e.pricing.AmountFor(current, models.Stage3)
		if !ok || !report.Amount.Equal(amount) {
			return nil, reject(t, PreconditionStage3PriceMatch)
		}
	}
	next := current.Clone()
	next.Stage3Status = models.Stage3Paid
	return next, nil
}

func (e *Engine) recordPayment(current *models.Case, t RecordPayment) (*models.Case, error) {
	err := e.ValidateReport(current, t.Report)
	if err != nil {
		return nil, err
	}
	report := t.Report
	if report.ReportedAt.IsZero() {
		report.ReportedAt = e.now()
	}
	if report.Source == "" {
		report.Source = models.PaymentReportSourceClient
	}
	next := current.Clone()
	next.PaymentReports = append(next.PaymentReports, report)
	return next, nil
}

func reject(t Transition, precondition string) error {
	return &exceptions.GuardRejectedError{Transition: t.Name(), Precondition: precondition}
}
