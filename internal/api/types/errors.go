package types

import (
	"errors"
	"net/http"

	appErr "github.com/contactbook/engine/pkg/errors"
)

// FromAppError converts err into the wire error. Messages of internal and
// unknown errors are not exposed.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	code := appErr.CodeOf(err)
	switch code {
	case appErr.CodeInternal, appErr.CodeUnknown:
		return &APIError{Code: string(appErr.CodeInternal), Message: "internal server error"}
	}
	var e *appErr.AppError
	errors.As(err, &e)
	return &APIError{Code: string(code), Message: e.Message}
}

// HTTPStatus maps an error code to its response status.
func HTTPStatus(code appErr.Code) int {
	switch code {
	case appErr.CodeInvalid, appErr.CodeMalformedInput,
		appErr.CodeDuplicateEmail, appErr.CodeDuplicateContact, appErr.CodeDuplicateCategory:
		return http.StatusBadRequest
	case appErr.CodeInvalidCredentials, appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
