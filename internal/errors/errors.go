package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned on login when the email is unknown or
	// the password does not match. The two cases are deliberately not
	// distinguished to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when a bearer token is malformed,
	// mis-signed, missing its subject, or expired.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthenticated is returned when no account could be resolved for a
	// valid token subject.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInactiveAccount is returned when the resolved account is disabled.
	ErrInactiveAccount = errors.New("account is inactive")
	// ErrDuplicateAccount is returned when the signup email is already registered.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrProvisioningFailed is returned when the external bucket reservation
	// could not be completed. No database state is committed in this case.
	ErrProvisioningFailed = errors.New("storage provisioning failed")
	// ErrStorageFailure is returned when the database write failed after
	// provisioning succeeded; the bucket reservation is compensated.
	ErrStorageFailure = errors.New("storage failure")
	// ErrTooManyAttempts is returned when login attempts for an email exceed
	// the configured window.
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrInactiveAccount):
		return NewHTTPError(http.StatusForbidden, ErrInactiveAccount.Error(), "INACTIVE_ACCOUNT")
	case errors.Is(err, ErrDuplicateAccount):
		return NewHTTPError(http.StatusConflict, ErrDuplicateAccount.Error(), "DUPLICATE_ACCOUNT")
	case errors.Is(err, ErrProvisioningFailed):
		return NewHTTPError(http.StatusBadGateway, ErrProvisioningFailed.Error(), "PROVISIONING_FAILED")
	case errors.Is(err, ErrStorageFailure):
		return NewHTTPError(http.StatusInternalServerError, ErrStorageFailure.Error(), "STORAGE_FAILURE")
	case errors.Is(err, ErrTooManyAttempts):
		return NewHTTPError(http.StatusTooManyRequests, ErrTooManyAttempts.Error(), "TOO_MANY_ATTEMPTS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
