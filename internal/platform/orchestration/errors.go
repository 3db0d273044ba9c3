package orchestration

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// ErrorCode is the machine-readable code of an API error.
type ErrorCode string

const (
	// ErrorCodeConnectionNotFound is returned when disconnecting a route that
	// does not exist.
	ErrorCodeConnectionNotFound ErrorCode = "123"
	// ErrorCodeRemoveDeployedResource is returned when a deployed resource
	// could not be removed from the reservation.
	ErrorCodeRemoveDeployedResource ErrorCode = "153"
)

// APIError is a structured error returned by the orchestration API.
type APIError struct {
	StatusCode int
	Code       ErrorCode
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("orchestration api error %s (status %d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("orchestration api error %s: %s", e.Code, e.Message)
}

// newStatusError builds an APIError for a response without a decodable body.
func newStatusError(statusCode int) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       ErrorCode(strconv.Itoa(statusCode)),
		Message:    http.StatusText(statusCode),
	}
}

// isAPIErrorCode checks if the error is an API error with one of the given codes.
func isAPIErrorCode(err error, codes ...ErrorCode) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.Code == code {
				return true
			}
		}
	}
	return false
}

// IsConnectionNotFound checks if an error indicates the route was already gone.
func IsConnectionNotFound(err error) bool {
	return isAPIErrorCode(err, ErrorCodeConnectionNotFound)
}

// IsRemoveDeployedResource checks if an error indicates a deployed resource
// could not be removed from the reservation.
func IsRemoveDeployedResource(err error) bool {
	return isAPIErrorCode(err, ErrorCodeRemoveDeployedResource)
}

// IsNotFound checks if an error is an HTTP 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ErrorDescription returns the text shown to users for err: the API message
// when err carries one, otherwise the error string.
func ErrorDescription(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
