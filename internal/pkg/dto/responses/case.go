package responses

import "time"

type Case struct {
	ID                 string            `json:"id"`
	UserEmail          string            `json:"user_email"`
	PatientName        string            `json:"patient_name"`
	Symptoms           string            `json:"symptoms"`
	TargetCity         string            `json:"target_city"`
	TargetHospital     string            `json:"target_hospital"`
	PassportURL        string            `json:"passport_url"`
	Status             string            `json:"status"`
	Stage1Paid         bool              `json:"stage1_paid"`
	Stage2Status       string            `json:"stage2_status"`
	Stage2AuthID       string            `json:"stage2_auth_id,omitempty"`
	Stage2AuthorizedAt *time.Time        `json:"stage2_authorized_at,omitempty"`
	Stage3Status       string            `json:"stage3_status"`
	CompanionRequest   *CompanionRequest `json:"companion_request,omitempty"`
	PaymentReports     []PaymentReport   `json:"payment_reports"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type CompanionRequest struct {
	Contact  string `json:"contact"`
	Gender   string `json:"gender"`
	Duration string `json:"duration"`
}

type PaymentReport struct {
	Stage            int       `json:"stage"`
	Intent           string    `json:"intent"`
	GatewayReference string    `json:"gateway_reference"`
	Amount           string    `json:"amount"`
	Currency         string    `json:"currency"`
	PurposeTag       string    `json:"purpose_tag"`
	Source           string    `json:"source"`
	ReportedAt       time.Time `json:"reported_at"`
}

type CaseSubmitted struct {
	CaseID string `json:"case_id"`
	Reused bool   `json:"reused"`
}

type CaseLookup struct {
	ID         string `json:"id,omitempty"`
	Stage1Paid bool   `json:"stage1_paid"`
	Status     string `json:"status,omitempty"`
	NoCase     bool   `json:"no_case,omitempty"`
}

type StaleAuthorization struct {
	Case            Case    `json:"case"`
	AuthorizedHours float64 `json:"authorized_hours"`
}

type CaseEvent struct {
	ID         string    `json:"id"`
	CaseID     string    `json:"case_id"`
	Transition string    `json:"transition"`
	Actor      string    `json:"actor"`
	ActorRole  string    `json:"actor_role"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	OccurredAt time.Time `json:"occurred_at"`
}
