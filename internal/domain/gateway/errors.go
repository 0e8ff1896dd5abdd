package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrProviderUnavailable covers transport failures, 429 and 5xx. Retryable.
	ErrProviderUnavailable = errors.New("paypal unavailable")
	// ErrProviderRejected covers 4xx responses other than 429.
	ErrProviderRejected = errors.New("paypal rejected request")
)

const IssueOrderAlreadyCaptured = "ORDER_ALREADY_CAPTURED"

// APIError is a non-2xx PayPal response.
type APIError struct {
	StatusCode int
	Name       string
	Issue      string
	Message    string
	DebugID    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("paypal api error: status %d", e.StatusCode)
	if e.Name != "" {
		msg += " " + e.Name
	}
	if e.Issue != "" {
		msg += " (" + e.Issue + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.DebugID != "" {
		msg += " debug_id=" + e.DebugID
	}
	return msg
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrProviderUnavailable:
		return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
	case ErrProviderRejected:
		return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
	default:
		return false
	}
}

// IsAlreadyCaptured reports whether err says the order was captured before.
func IsAlreadyCaptured(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Issue == IssueOrderAlreadyCaptured
}
