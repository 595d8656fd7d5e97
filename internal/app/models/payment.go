package models

import (
	"medtour-service/internal/pkg/dto/responses"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentIntent string

const (
	PaymentIntentAuthorize PaymentIntent = "AUTHORIZE"
	PaymentIntentCapture   PaymentIntent = "CAPTURE"
)

const (
	Stage1 = 1
	Stage2 = 2
	Stage3 = 3
)

const (
	PaymentReportSourceClient  = "client"
	PaymentReportSourceWebhook = "webhook"
)

// PaymentReport is a gateway operation the patient or the gateway said
// completed. Accepted reports are appended to the case and never edited.
type PaymentReport struct {
	Stage            int             `json:"stage"`
	Intent           PaymentIntent   `json:"intent"`
	GatewayReference string          `json:"gateway_reference"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	PurposeTag       string          `json:"purpose_tag"`
	Source           string          `json:"source"`
	ReportedAt       time.Time       `json:"reported_at"`
}

func (r PaymentReport) ConvertIntoResponse() responses.PaymentReport {
	return responses.PaymentReport{
		Stage:            r.Stage,
		Intent:           string(r.Intent),
		GatewayReference: r.GatewayReference,
		Amount:           r.Amount.StringFixed(2),
		Currency:         r.Currency,
		PurposeTag:       r.PurposeTag,
		Source:           r.Source,
		ReportedAt:       r.ReportedAt,
	}
}

// ExpectedPayment is the next gateway operation a case accepts.
type ExpectedPayment struct {
	CaseID     string
	Stage      int
	Intent     PaymentIntent
	Amount     decimal.Decimal
	Currency   string
	PurposeTag string
}

func (p *ExpectedPayment) ConvertIntoResponse() responses.PaymentIntent {
	return responses.PaymentIntent{
		CaseID:     p.CaseID,
		Payable:    true,
		Stage:      p.Stage,
		Intent:     string(p.Intent),
		Amount:     p.Amount.StringFixed(2),
		Currency:   p.Currency,
		PurposeTag: p.PurposeTag,
	}
}
