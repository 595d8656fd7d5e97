package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	CaseSubmittedSuccessMessage          = "case submitted successfully"
	GetCaseSuccessMessage                = "get case successfully"
	GetCaseLookupSuccessMessage          = "case lookup successfully"
	AttachCompanionSuccessMessage        = "companion request saved successfully"
	GetAllCasesSuccessMessage            = "get all cases successfully"
	GetStaleAuthorizationsSuccessMessage = "get stale authorizations successfully"
	GetCaseEventsSuccessMessage          = "get case events successfully"
	ConfirmStage1SuccessMessage          = "stage 1 confirmed successfully"
	ConfirmStage2SuccessMessage          = "stage 2 authorization confirmed successfully"
	CaptureStage2SuccessMessage          = "stage 2 captured successfully"
	VoidStage2SuccessMessage             = "stage 2 voided successfully"
	ConfirmStage3SuccessMessage          = "stage 3 confirmed successfully"
	GetPaymentIntentSuccessMessage       = "get payment intent successfully"
	ReportPaymentSuccessMessage          = "payment report accepted successfully"
	WebhookReceivedSuccessMessage        = "webhook received successfully"
	GetHospitalsSuccessMessage           = "get hospitals successfully"
	CreateCitySuccessMessage             = "city created successfully"
	CreateHospitalSuccessMessage         = "hospital created successfully"
	UploadDocumentSuccessMessage         = "document uploaded successfully"
)
