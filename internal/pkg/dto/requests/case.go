package requests

type SubmitCase struct {
	UserEmail      string `json:"user_email" validate:"required,email,max=255"`
	PatientName    string `json:"patient_name" validate:"required,max=255"`
	Symptoms       string `json:"symptoms" validate:"required,max=5000"`
	TargetCity     string `json:"target_city" validate:"required,max=100"`
	TargetHospital string `json:"target_hospital" validate:"required,max=255"`
	PassportURL    string `json:"passport_url" validate:"omitempty,url"`
}

type AttachCompanion struct {
	Contact  string `json:"contact" validate:"required,max=255"`
	Gender   string `json:"gender" validate:"required,companion_gender"`
	Duration string `json:"duration" validate:"required,companion_session"`
}
