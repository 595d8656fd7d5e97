package utils

import (
	"medtour-service/internal/pkg/constvars"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate            *validator.Validate
	purposeTagPattern   = regexp.MustCompile(constvars.RegexPurposeTag)
	decimalAmountRegexp = regexp.MustCompile(constvars.RegexDecimalAmount)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("companion_gender", validateCompanionGender)
	validate.RegisterValidation("companion_session", validateCompanionSession)
	validate.RegisterValidation("decimal_amount", validateDecimalAmount)
	validate.RegisterValidation("purpose_tag", validatePurposeTag)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateCompanionGender(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "No Preference", "Female", "Male":
		return true
	}
	return false
}

func validateCompanionSession(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "morning" || value == "full_day"
}

func validateDecimalAmount(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !decimalAmountRegexp.MatchString(value) {
		return false
	}
	amount, err := decimal.NewFromString(value)
	return err == nil && amount.IsPositive()
}

func validatePurposeTag(fl validator.FieldLevel) bool {
	return purposeTagPattern.MatchString(fl.Field().String())
}

// ValidateVar checks a single value, typically a URL param, against a tag.
func ValidateVar(value interface{}, tag string) error {
	return validate.Var(value, tag)
}
