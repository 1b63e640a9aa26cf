package galaxy

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/imroc/req/v3"
)

var (
	ErrFileNotFound  = errors.New("galaxy: file not found")
	ErrEmptyResponse = errors.New("galaxy: empty response")
	ErrNotFound      = errors.New("galaxy: not found")
	ErrUnauthorized  = errors.New("galaxy: unauthorized")
)

const maxErrorBodyBytes = 512

// APIError is the error body Galaxy returns, `{"err_msg": "...", "err_code": 400008}`
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"err_msg"`
	Code       int    `json:"err_code"`
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("api error: %d %s (code %d)", e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

// Unwrap maps status codes onto the sentinel errors so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	return nil
}

// handleAPIError is a helper function that handles the common error pattern
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	// got a response, but api returned an error. checked first since a body that
	// isn't json surfaces as a decode error from req
	if resp != nil && resp.Response != nil && resp.IsErrorState() {
		apiErr, ok := resp.ErrorResult().(*APIError)
		if !ok || apiErr == nil || apiErr.Message == "" {
			apiErr = &APIError{Message: truncate(resp.String(), maxErrorBodyBytes)}
		}
		apiErr.StatusCode = resp.StatusCode
		return fmt.Errorf("%s: %w", operation, apiErr)
	}

	if requestErr != nil {
		return fmt.Errorf("http request error: %s: %w", operation, requestErr)
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
