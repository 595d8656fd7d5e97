package exceptions

import (
	"errors"
	"fmt"
	"medtour-service/internal/pkg/constvars"
)

// GuardRejectedError reports that the case exists but a transition's
// precondition was false when it was evaluated. The case is left unchanged.
type GuardRejectedError struct {
	Transition   string
	Precondition string
}

func (e *GuardRejectedError) Error() string {
	return fmt.Sprintf("%s rejected: precondition %q not met", e.Transition, e.Precondition)
}

// DuplicateConfirmationError reports a payment report that does not match
// what the case currently expects, usually a replay.
type DuplicateConfirmationError struct {
	Stage  int
	Reason string
}

func (e *DuplicateConfirmationError) Error() string {
	return fmt.Sprintf("stage %d payment report rejected: %s", e.Stage, e.Reason)
}

// FieldValidationError is a malformed input detected below the HTTP layer.
type FieldValidationError struct {
	Field  string
	Reason string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

var (
	ErrGuardRejected = func(err error) *CustomError {
		return BuildNewCustomErrorWithCode(err, constvars.StatusConflict, constvars.ErrCodeGuardRejected, clientMessageOf(err), constvars.ErrDevGuardRejected)
	}
	ErrDuplicateConfirmation = func(err error) *CustomError {
		return BuildNewCustomErrorWithCode(err, constvars.StatusUnprocessableEntity, constvars.ErrCodeDuplicateConfirmation, clientMessageOf(err), constvars.ErrDevDuplicateConfirmation)
	}
	ErrFieldValidation = func(err error) *CustomError {
		return BuildNewCustomErrorWithCode(err, constvars.StatusBadRequest, constvars.ErrCodeValidation, clientMessageOf(err), constvars.ErrDevValidationFailed)
	}
)

// TranslateTransitionError classifies errors produced by the stage engine.
// Anything it does not recognise is returned untouched.
func TranslateTransitionError(err error) error {
	if err == nil {
		return nil
	}

	var customErr *CustomError
	if errors.As(err, &customErr) {
		return err
	}

	var guardErr *GuardRejectedError
	if errors.As(err, &guardErr) {
		return ErrGuardRejected(err)
	}

	var duplicateErr *DuplicateConfirmationError
	if errors.As(err, &duplicateErr) {
		return ErrDuplicateConfirmation(err)
	}

	var fieldErr *FieldValidationError
	if errors.As(err, &fieldErr) {
		return ErrFieldValidation(err)
	}

	return err
}

func clientMessageOf(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}
	return err.Error()
}
