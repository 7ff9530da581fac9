// Package apierr provides shared error sentinels for the completion provider.
// Provider-specific errors are classified into these sentinels at the adapter
// boundary so callers never depend on the SDK's error types.
//
// Callers check with errors.Is(err, apierr.ErrRateLimit) etc.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for provider interaction failures.
var (
	// ErrRateLimit indicates the provider rate limit was exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrQuotaExceeded indicates the account quota was exceeded (billing issue).
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrTimeout indicates a request timed out.
	ErrTimeout = errors.New("request timeout")

	// ErrAuthFailed indicates authentication failed (invalid key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrBadRequest indicates a client error (4xx) that is not otherwise classified.
	ErrBadRequest = errors.New("bad request")

	// ErrUnavailable indicates the provider answered with a 5xx status.
	ErrUnavailable = errors.New("provider unavailable")
)

// FromStatus maps a provider HTTP status and message to a wrapped sentinel.
// Unknown statuses yield a plain error carrying the status code.
func FromStatus(statusCode int, msg string) error {
	switch statusCode {
	case http.StatusTooManyRequests:
		if strings.Contains(msg, "quota") || strings.Contains(msg, "billing") {
			return fmt.Errorf("%s: %w", msg, ErrQuotaExceeded)
		}
		return fmt.Errorf("%s: %w", msg, ErrRateLimit)
	case http.StatusPaymentRequired:
		return fmt.Errorf("%s: %w", msg, ErrQuotaExceeded)
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", msg, ErrAuthFailed)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return fmt.Errorf("%s: %w", msg, ErrTimeout)
	case http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound, http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%s: %w", msg, ErrBadRequest)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return fmt.Errorf("%s: %w", msg, ErrUnavailable)
	default:
		return fmt.Errorf("HTTP %d: %s", statusCode, msg)
	}
}

// IsProvider reports whether err was classified into one of the sentinels.
func IsProvider(err error) bool {
	return errors.Is(err, ErrRateLimit) || errors.Is(err, ErrQuotaExceeded) ||
		errors.Is(err, ErrTimeout) || errors.Is(err, ErrAuthFailed) ||
		errors.Is(err, ErrBadRequest) || errors.Is(err, ErrUnavailable)
}
