package tmdb

import (
	"encoding/json"
	"fmt"

	"github.com/mmcdole/reel/internal/domain"
)

// APIError is a non-2xx answer from the provider
type APIError struct {
	HTTPStatus    int
	StatusCode    int // provider-specific code from the error body
	StatusMessage string
}

func (e *APIError) Error() string {
	if e.StatusMessage != "" {
		return fmt.Sprintf("tmdb: HTTP %d (code %d): %s", e.HTTPStatus, e.StatusCode, e.StatusMessage)
	}
	return fmt.Sprintf("tmdb: unexpected status code: %d", e.HTTPStatus)
}

// Unwrap lets callers match every provider failure with domain.ErrProviderFailed
func (e *APIError) Unwrap() error { return domain.ErrProviderFailed }

func newAPIError(httpStatus int, body []byte) *APIError {
	apiErr := &APIError{HTTPStatus: httpStatus}

	var status domain.StatusResponse
	if json.Unmarshal(body, &status) == nil {
		apiErr.StatusCode = status.StatusCode
		apiErr.StatusMessage = status.StatusMessage
	}
	return apiErr
}
