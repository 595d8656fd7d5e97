package models

import "medtour-service/internal/pkg/dto/responses"

const (
	CompanionGenderNoPreference = "No Preference"
	CompanionGenderFemale       = "Female"
	CompanionGenderMale         = "Male"
)

const (
	CompanionDurationMorning = "morning"
	CompanionDurationFullDay = "full_day"
)

var (
	CompanionGenders   = []string{CompanionGenderNoPreference, CompanionGenderFemale, CompanionGenderMale}
	CompanionDurations = []string{CompanionDurationMorning, CompanionDurationFullDay}
)

type CompanionRequest struct {
	Contact  string `json:"contact"`
	Gender   string `json:"gender"`
	Duration string `json:"duration"`
}

func (c CompanionRequest) ConvertIntoResponse() responses.CompanionRequest {
	return responses.CompanionRequest{
		Contact:  c.Contact,
		Gender:   c.Gender,
		Duration: c.Duration,
	}
}
