package resource

import (
	"errors"
	"net/http"
)

// Domain errors for resource operations.
var (
	ErrStoreUnavailable = errors.New("document store unavailable")
	ErrNotFound         = errors.New("not found")
	ErrUploadFailed     = errors.New("attachment upload failed")
	ErrRemoveFailed     = errors.New("attachment removal failed")
	ErrValidation       = errors.New("validation failed")
	ErrReadOnly         = errors.New("resource is read-only")
	ErrSingleton        = errors.New("resource allows a single document")
	ErrBusy             = errors.New("operation in progress")
	ErrUnknownKind      = errors.New("unknown resource kind")
	ErrFileTooLarge     = errors.New("file exceeds maximum upload size")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnknownKind):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrReadOnly):
		return http.StatusMethodNotAllowed
	case errors.Is(err, ErrSingleton), errors.Is(err, ErrBusy):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUploadFailed), errors.Is(err, ErrRemoveFailed):
		return http.StatusBadGateway
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
