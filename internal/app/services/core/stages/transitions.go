package stages

import "medtour-service/internal/app/models"

const (
	TransitionCreateDraft     = "create_draft"
	TransitionUpdateDraft     = "update_draft"
	TransitionAttachCompanion = "attach_companion"
	TransitionConfirmStage1   = "confirm_stage1"
	TransitionConfirmStage2   = "confirm_stage2"
	TransitionCaptureStage2   = "capture_stage2"
	TransitionVoidStage2      = "void_stage2"
	TransitionConfirmStage3   = "confirm_stage3"
	TransitionRecordPayment   = "record_payment"
)

// Transition is one row of the stage table. The set of implementations is
// closed; each carries only the fields its guard needs.
type Transition interface {
	Name() string
	requiresAdmin() bool
}

type CreateDraft struct {
	UserEmail      string
	PatientName    string
	Symptoms       string
	TargetCity     string
	TargetHospital string
	PassportURL    string
}

type UpdateDraft struct {
	Symptoms       string
	TargetCity     string
	TargetHospital string
}

type AttachCompanion struct {
	Companion models.CompanionRequest
}

type ConfirmStage1 struct{}

type ConfirmStage2 struct {
	AuthID string
}

type CaptureStage2 struct{}

type VoidStage2 struct{}

type ConfirmStage3 struct{}

type RecordPayment struct {
	Report models.PaymentReport
}

func (CreateDraft) Name() string     { return TransitionCreateDraft }
func (UpdateDraft) Name() string     { return TransitionUpdateDraft }
func (AttachCompanion) Name() string { return TransitionAttachCompanion }
func (ConfirmStage1) Name() string   { return TransitionConfirmStage1 }
func (ConfirmStage2) Name() string   { return TransitionConfirmStage2 }
func (CaptureStage2) Name() string   { return TransitionCaptureStage2 }
func (VoidStage2) Name() string      { return TransitionVoidStage2 }
func (ConfirmStage3) Name() string   { return TransitionConfirmStage3 }
func (RecordPayment) Name() string   { return TransitionRecordPayment }

func (CreateDraft) requiresAdmin() bool     { return false }
func (UpdateDraft) requiresAdmin() bool     { return false }
func (AttachCompanion) requiresAdmin() bool { return false }
func (ConfirmStage1) requiresAdmin() bool   { return true }
func (ConfirmStage2) requiresAdmin() bool   { return true }
func (CaptureStage2) requiresAdmin() bool   { return true }
func (VoidStage2) requiresAdmin() bool      { return true }
func (ConfirmStage3) requiresAdmin() bool   { return true }
func (RecordPayment) requiresAdmin() bool   { return false }

// Guard preconditions, reported verbatim in GuardRejectedError.
const (
	PreconditionActorIsAdmin      = "actor is admin"
	PreconditionActorOwnsCase     = "actor owns case"
	PreconditionCaseExists        = "case exists"
	PreconditionNoUnpaidDraft     = "no unpaid draft exists for identity"
	PreconditionUnpaidDraft       = "unpaid draft exists for identity"
	PreconditionStage3NotPaid     = "stage3_status != paid"
	PreconditionStage1Unpaid      = "stage1_paid = false"
	PreconditionStage1Paid        = "stage1_paid = true"
	PreconditionStage2NotStarted  = "stage2_status = not_started"
	PreconditionStage2Authorized  = "stage2_status = authorized"
	PreconditionStage2Captured    = "stage2_status = captured"
	PreconditionCompanionPresent  = "companion_request present"
	PreconditionStage3NotStarted  = "stage3_status = not_started"
	PreconditionStage3DurationSet = "duration unchanged once stage 3 is reported"
	PreconditionStage3PriceMatch  = "stage 3 payment report matches current price"
)
