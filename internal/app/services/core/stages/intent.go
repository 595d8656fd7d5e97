package stages

import (
	"fmt"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/exceptions"
	"strconv"
	"strings"
)

const purposeTagStageSeparator = ":stage_"

// IntentFor resolves the gateway intent for the case's stage-2 payment.
// A second AUTHORIZE is never offered once an authorization exists.
func IntentFor(c *models.Case) models.PaymentIntent {
	if c.Stage2Status == models.Stage2NotStarted {
		return models.PaymentIntentAuthorize
	}
	return models.PaymentIntentCapture
}

// IntentForStage resolves stage 1 and stage 3 to CAPTURE unconditionally.
func IntentForStage(c *models.Case, stage int) models.PaymentIntent {
	if stage == models.Stage2 {
		return IntentFor(c)
	}
	return models.PaymentIntentCapture
}

func PurposeTag(caseID string, stage int) string {
	return fmt.Sprintf("%s%s%d", caseID, purposeTagStageSeparator, stage)
}

func ParsePurposeTag(tag string) (string, int, error) {
	index := strings.LastIndex(tag, purposeTagStageSeparator)
	if index <= 0 {
		return "", 0, &exceptions.FieldValidationError{Field: "purpose_tag", Reason: "is malformed"}
	}
	stage, err := strconv.Atoi(tag[index+len(purposeTagStageSeparator):])
	if err != nil || stage < models.Stage1 || stage > models.Stage3 {
		return "", 0, &exceptions.FieldValidationError{Field: "purpose_tag", Reason: "has an unknown stage"}
	}
	return tag[:index], stage, nil
}

// NextPayment returns the payment the case currently accepts, or nil when
// nothing is payable. A stage whose report is already on file waits for an
// admin confirmation and is not offered again.
func (e *Engine) NextPayment(c *models.Case) *models.ExpectedPayment {
	if c == nil {
		return nil
	}

	var stage int
	switch {
	case !c.Stage1Paid:
		stage = models.Stage1
	case c.Stage2Status == models.Stage2NotStarted:
		stage = models.Stage2
	case (c.Stage2Status == models.Stage2Authorized || c.Stage2Status == models.Stage2Captured) &&
		c.CompanionRequest != nil && c.Stage3Status == models.Stage3NotStarted:
		stage = models.Stage3
	default:
		return nil
	}

	if c.PaymentReportFor(stage) != nil {
		return nil
	}

	amount, ok := e.pricing.AmountFor(c, stage)
	if !ok {
		return nil
	}

	return &models.ExpectedPayment{
		CaseID:     c.ID,
		Stage:      stage,
		Intent:     IntentForStage(c, stage),
		Amount:     amount,
		Currency:   e.pricing.Currency,
		PurposeTag: PurposeTag(c.ID, stage),
	}
}

// ValidateReport accepts a report only when it describes exactly the
// payment NextPayment would ask for. Everything else, replays included,
// is a DuplicateConfirmationError.
func (e *Engine) ValidateReport(c *models.Case, report models.PaymentReport) error {
	caseID, stage, err := ParsePurposeTag(report.PurposeTag)
	if err != nil || caseID != c.ID || stage != report.Stage {
		return duplicate(report.Stage, "purpose tag does not belong to this case and stage")
	}

	if stageSettled(c, stage) {
		return duplicate(stage, "stage is already settled")
	}
	if c.PaymentReportFor(stage) != nil {
		return duplicate(stage, "a report for this stage is already on file")
	}

	expected := e.NextPayment(c)
	if expected == nil || expected.Stage != stage {
		return duplicate(stage, "stage is not currently payable")
	}
	if report.Intent != expected.Intent {
		return duplicate(stage, fmt.Sprintf("intent %s does not match expected %s", report.Intent, expected.Intent))
	}
	if !strings.EqualFold(report.Currency, expected.Currency) {
		return duplicate(stage, fmt.Sprintf("currency %s does not match expected %s", report.Currency, expected.Currency))
	}
	if !report.Amount.Equal(expected.Amount) {
		return duplicate(stage, fmt.Sprintf("amount %s does not match expected %s", report.Amount.StringFixed(2), expected.Amount.StringFixed(2)))
	}
	return nil
}

func stageSettled(c *models.Case, stage int) bool {
	switch stage {
	case models.Stage1:
		return c.Stage1Paid
	case models.Stage2:
		return c.Stage2Status != models.Stage2NotStarted
	case models.Stage3:
		return c.Stage3Status == models.Stage3Paid
	}
	return true
}

func duplicate(stage int, reason string) error {
	return &exceptions.DuplicateConfirmationError{Stage: stage, Reason: reason}
}
