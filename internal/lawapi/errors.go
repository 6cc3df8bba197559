package lawapi

import (
	"errors"
	"fmt"
)

// ErrorCategory determines how a failure interacts with the retry
// policy.
type ErrorCategory int

const (
	// Recoverable failures are retried with exponential backoff:
	// transport errors, 429 and 5xx responses.
	Recoverable ErrorCategory = iota

	// Irrecoverable failures abort immediately: validation errors,
	// other 4xx responses and malformed payloads.
	Irrecoverable
)

func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// APIError is the typed failure surfaced by the client. Status is zero
// for non-HTTP failures; Err preserves the triggering cause.
type APIError struct {
	Category ErrorCategory
	Status   int
	Message  string
	Body     string
	Err      error
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %s", e.Category, e.Status, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Category, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsRetryable reports whether err should be retried.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Category == Recoverable
	}
	return false
}

// statusCategory classifies an HTTP status for the retry policy.
func statusCategory(status int) ErrorCategory {
	if status == 429 || status >= 500 {
		return Recoverable
	}
	return Irrecoverable
}

func newValidationError(message string) *APIError {
	return &APIError{Category: Irrecoverable, Message: message}
}

func newTransportError(operation string, err error) *APIError {
	return &APIError{
		Category: Recoverable,
		Message:  fmt.Sprintf("%s transport failure", operation),
		Err:      err,
	}
}

func newStatusError(operation string, status int, body string) *APIError {
	message := fmt.Sprintf("%s failed with status %d", operation, status)
	if upstream := upstreamMessage(body); upstream != "" {
		message = fmt.Sprintf("%s: %s", message, upstream)
	}
	return &APIError{
		Category: statusCategory(status),
		Status:   status,
		Message:  message,
		Body:     body,
	}
}

func newNormalizationError(operation string, err error) *APIError {
	return &APIError{
		Category: Irrecoverable,
		Message:  fmt.Sprintf("%s returned a malformed payload", operation),
		Err:      err,
	}
}
