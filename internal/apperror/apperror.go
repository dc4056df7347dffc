package apperror

import (
	"errors"
	"net/http"
)

type Error struct {
	Code       string
	Message    string
	StatusCode int
	Internal   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Internal
}

var (
	ErrBadRequest = &Error{
		Code:       "bad_request",
		Message:    "Invalid request",
		StatusCode: http.StatusBadRequest,
	}

	ErrMissingFile = &Error{
		Code:       "missing_file",
		Message:    "No file was uploaded",
		StatusCode: http.StatusBadRequest,
	}

	ErrUnsupportedMedia = &Error{
		Code:       "unsupported_media",
		Message:    "The uploaded file is not a supported image format",
		StatusCode: http.StatusUnsupportedMediaType,
	}

	ErrFileTooLarge = &Error{
		Code:       "file_too_large",
		Message:    "The uploaded file exceeds the size limit",
		StatusCode: http.StatusRequestEntityTooLarge,
	}

	ErrConversionFailed = &Error{
		Code:       "conversion_failed",
		Message:    "Image conversion failed",
		StatusCode: http.StatusUnprocessableEntity,
	}

	ErrInternal = &Error{
		Code:       "internal_error",
		Message:    "An internal error occurred",
		StatusCode: http.StatusInternalServerError,
	}
)

// Wrap attaches an internal cause to one of the sentinel errors without
// mutating the shared value.
func Wrap(base *Error, internal error) *Error {
	return &Error{
		Code:       base.Code,
		Message:    base.Message,
		StatusCode: base.StatusCode,
		Internal:   internal,
	}
}

// From maps any error to an *Error, defaulting to ErrInternal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternal, err)
}
