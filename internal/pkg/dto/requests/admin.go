package requests

type CaseAction struct {
	CaseID string `json:"case_id" validate:"required,uuid"`
}

type ConfirmStage2 struct {
	CaseID string `json:"case_id" validate:"required,uuid"`
	AuthID string `json:"auth_id" validate:"required,max=255"`
}
