package models

import (
	"medtour-service/internal/pkg/dto/responses"
	"strings"
	"time"
)

type Stage2Status string

const (
	Stage2NotStarted Stage2Status = "not_started"
	Stage2Authorized Stage2Status = "authorized"
	Stage2Captured   Stage2Status = "captured"
	Stage2Voided     Stage2Status = "voided"
)

// stage2Transitions lists the forward moves allowed from each escrow status.
var stage2Transitions = map[Stage2Status][]Stage2Status{
	Stage2NotStarted: {Stage2Authorized},
	Stage2Authorized: {Stage2Captured, Stage2Voided},
	Stage2Captured:   {},
	Stage2Voided:     {},
}

func (s Stage2Status) CanTransitionTo(next Stage2Status) bool {
	for _, allowed := range stage2Transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Stage2Status) IsValid() bool {
	_, ok := stage2Transitions[s]
	return ok
}

type Stage3Status string

const (
	Stage3NotStarted Stage3Status = "not_started"
	Stage3Paid       Stage3Status = "paid"
)

type CaseStatus string

const (
	CaseStatusDraft          CaseStatus = "draft"
	CaseStatusPendingStage2  CaseStatus = "pending_stage2"
	CaseStatusEscrowSecured  CaseStatus = "escrow_secured"
	CaseStatusEscrowCaptured CaseStatus = "escrow_captured"
	CaseStatusEscrowVoided   CaseStatus = "escrow_voided"
	CaseStatusCompleted      CaseStatus = "completed"
)

type Case struct {
	ID                 string            `json:"id"`
	UserEmail          string            `json:"user_email"`
	PatientName        string            `json:"patient_name"`
	Symptoms           string            `json:"symptoms"`
	TargetCity         string            `json:"target_city"`
	TargetHospital     string            `json:"target_hospital"`
	PassportURL        string            `json:"passport_url"`
	Status             CaseStatus        `json:"status"`
	Stage1Paid         bool              `json:"stage1_paid"`
	Stage2Status       Stage2Status      `json:"stage2_status"`
	Stage2AuthID       string            `json:"stage2_auth_id,omitempty"`
	Stage2AuthorizedAt *time.Time        `json:"stage2_authorized_at,omitempty"`
	Stage3Status       Stage3Status      `json:"stage3_status"`
	CompanionRequest   *CompanionRequest `json:"companion_request,omitempty"`
	PaymentReports     []PaymentReport   `json:"payment_reports"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// DeriveStatus summarises the furthest completed stage. It is the only
// source of the Status field.
func (c *Case) DeriveStatus() CaseStatus {
	switch {
	case c.Stage3Status == Stage3Paid:
		return CaseStatusCompleted
	case c.Stage2Status == Stage2Voided:
		return CaseStatusEscrowVoided
	case c.Stage2Status == Stage2Captured:
		return CaseStatusEscrowCaptured
	case c.Stage2Status == Stage2Authorized:
		return CaseStatusEscrowSecured
	case c.Stage1Paid:
		return CaseStatusPendingStage2
	default:
		return CaseStatusDraft
	}
}

func (c *Case) IsUnpaidDraft() bool {
	return !c.Stage1Paid
}

func (c *Case) IsOwnedBy(email string) bool {
	return NormalizeEmail(c.UserEmail) == NormalizeEmail(email)
}

func (c *Case) PaymentReportFor(stage int) *PaymentReport {
	for i := range c.PaymentReports {
		if c.PaymentReports[i].Stage == stage {
			return &c.PaymentReports[i]
		}
	}
	return nil
}

// Clone returns a deep copy so callers can mutate the result freely.
func (c *Case) Clone() *Case {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Stage2AuthorizedAt != nil {
		authorizedAt := *c.Stage2AuthorizedAt
		clone.Stage2AuthorizedAt = &authorizedAt
	}
	if c.CompanionRequest != nil {
		companion := *c.CompanionRequest
		clone.CompanionRequest = &companion
	}
	clone.PaymentReports = make([]PaymentReport, len(c.PaymentReports))
	copy(clone.PaymentReports, c.PaymentReports)
	return &clone
}

func (c *Case) ConvertIntoResponse() responses.Case {
	response := responses.Case{
		ID:                 c.ID,
		UserEmail:          c.UserEmail,
		PatientName:        c.PatientName,
		Symptoms:           c.Symptoms,
		TargetCity:         c.TargetCity,
		TargetHospital:     c.TargetHospital,
		PassportURL:        c.PassportURL,
		Status:             string(c.Status),
		Stage1Paid:         c.Stage1Paid,
		Stage2Status:       string(c.Stage2Status),
		Stage2AuthID:       c.Stage2AuthID,
		Stage2AuthorizedAt: c.Stage2AuthorizedAt,
		Stage3Status:       string(c.Stage3Status),
		PaymentReports:     make([]responses.PaymentReport, len(c.PaymentReports)),
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
	if c.CompanionRequest != nil {
		companion := c.CompanionRequest.ConvertIntoResponse()
		response.CompanionRequest = &companion
	}
	for i, report := range c.PaymentReports {
		response.PaymentReports[i] = report.ConvertIntoResponse()
	}
	return response
}

func (c *Case) ConvertIntoLookupResponse() responses.CaseLookup {
	return responses.CaseLookup{
		ID:         c.ID,
		Stage1Paid: c.Stage1Paid,
		Status:     string(c.Status),
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
