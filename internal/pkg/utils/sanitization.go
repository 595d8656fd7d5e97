package utils

import (
	"medtour-service/internal/pkg/dto/requests"
	"strings"
)

func SanitizeSubmitCaseRequest(request *requests.SubmitCase) {
	request.UserEmail = strings.ToLower(strings.TrimSpace(request.UserEmail))
	request.PatientName = strings.TrimSpace(request.PatientName)
	request.Symptoms = strings.TrimSpace(request.Symptoms)
	request.TargetCity = strings.TrimSpace(request.TargetCity)
	request.TargetHospital = strings.TrimSpace(request.TargetHospital)
	request.PassportURL = strings.TrimSpace(request.PassportURL)
}

func SanitizeAttachCompanionRequest(request *requests.AttachCompanion) {
	request.Contact = strings.TrimSpace(request.Contact)
	request.Gender = strings.TrimSpace(request.Gender)
	request.Duration = strings.TrimSpace(request.Duration)
}

func SanitizeConfirmStage2Request(request *requests.ConfirmStage2) {
	request.CaseID = strings.TrimSpace(request.CaseID)
	request.AuthID = strings.TrimSpace(request.AuthID)
}

func SanitizeReportPaymentRequest(request *requests.ReportPayment) {
	request.Intent = strings.ToUpper(strings.TrimSpace(request.Intent))
	request.Currency = strings.ToUpper(strings.TrimSpace(request.Currency))
	request.GatewayReference = strings.TrimSpace(request.GatewayReference)
	request.Amount = strings.TrimSpace(request.Amount)
	request.PurposeTag = strings.TrimSpace(request.PurposeTag)
}

func SanitizeCreateHospitalRequest(request *requests.CreateHospital) {
	request.CityName = strings.TrimSpace(request.CityName)
	request.HospitalName = strings.TrimSpace(request.HospitalName)
}
