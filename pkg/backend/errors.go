package backend

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBodyBytes = 2048

// APIError is a non-2xx response from the external service.
type APIError struct {
	Status   int
	Body     string
	endpoint string
}

func newAPIError(resp *http.Response, endpoint string) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return &APIError{
		Status:   resp.StatusCode,
		Body:     strings.TrimSpace(string(body)),
		endpoint: endpoint,
	}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Body)
}

// HTTPStatus returns the remote status code.
func (e *APIError) HTTPStatus() int {
	return e.Status
}

// ResponseBody returns the truncated remote response body.
func (e *APIError) ResponseBody() string {
	return e.Body
}

// Endpoint returns the URL the failing request targeted.
func (e *APIError) Endpoint() string {
	return e.endpoint
}

// AsAPIError unwraps the backend error from an error chain.
func AsAPIError(err error) *APIError {
	var typed *APIError
	if errors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsNotFound reports whether the remote rejected the request because no row
// matched. The records API answers 406 when a single-row read matches nothing.
func IsNotFound(err error) bool {
	typed := AsAPIError(err)
	if typed == nil {
		return false
	}
	return typed.Status == http.StatusNotFound || typed.Status == http.StatusNotAcceptable
}

// IsUnauthorized reports whether the remote rejected the caller's token.
func IsUnauthorized(err error) bool {
	typed := AsAPIError(err)
	if typed == nil {
		return false
	}
	return typed.Status == http.StatusUnauthorized || typed.Status == http.StatusForbidden
}
