package exceptions

import (
	"errors"
	"fmt"
	"medtour-service/internal/pkg/constvars"
	"runtime"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ErrorCode     string     `json:"error_code"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	last := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, last.File, last.Line, last.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// BuildNewCustomError derives the error code from the status code.
// Wrapping an existing CustomError keeps its classification and only
// records the new call site.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return buildCustomError(err, statusCode, errorCodeForStatus(statusCode), clientMessage, devMessage)
}

func BuildNewCustomErrorWithCode(err error, statusCode int, errorCode, clientMessage, devMessage string) *CustomError {
	return buildCustomError(err, statusCode, errorCode, clientMessage, devMessage)
}

func buildCustomError(err error, statusCode int, errorCode, clientMessage, devMessage string) *CustomError {
	location := getLocation(4)

	var existing *CustomError
	if errors.As(err, &existing) {
		existing.Locations = append(existing.Locations, location)
		return existing
	}

	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}

	return &CustomError{
		StatusCode:    statusCode,
		ErrorCode:     errorCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{location},
		Err:           err,
	}
}

// ErrorCodeOf returns the error code carried by err, or the internal error
// code when err was never classified.
func ErrorCodeOf(err error) string {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.ErrorCode
	}
	return constvars.ErrCodeInternal
}

func errorCodeForStatus(statusCode int) string {
	switch statusCode {
	case constvars.StatusBadRequest, constvars.StatusRequestTooLarge:
		return constvars.ErrCodeValidation
	case constvars.StatusUnauthorized:
		return constvars.ErrCodeUnauthorized
	case constvars.StatusForbidden:
		return constvars.ErrCodeForbidden
	case constvars.StatusNotFound:
		return constvars.ErrCodeNotFound
	case constvars.StatusConflict:
		return constvars.ErrCodeConflict
	case constvars.StatusBadGateway:
		return constvars.ErrCodeUpstreamGateway
	case constvars.StatusGatewayTimeout:
		return constvars.ErrCodeTimeout
	case constvars.StatusTooManyRequests:
		return constvars.ErrCodeRateLimited
	default:
		return constvars.ErrCodeInternal
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
