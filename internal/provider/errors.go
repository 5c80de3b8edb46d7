package provider

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// Error is the hard failure returned when a provider call does not produce
// a response. StatusCode is 0 when no HTTP response was received.
type Error struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	return "provider " + e.Provider + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transient reports whether a manual retry might succeed: request timeouts,
// rate limits, 5xx responses and network-level failures.
func (e *Error) Transient() bool {
	if e.StatusCode != 0 {
		return IsTransientHTTPStatus(e.StatusCode)
	}
	return isTransientNetwork(e.Err)
}

// IsProviderError reports whether err (or any error in its chain) is a
// provider failure.
func IsProviderError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}

// IsTransientHTTPStatus returns true if the HTTP status code indicates a
// transient server-side issue.
func IsTransientHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func isTransientNetwork(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	// Wrapped HTTP client errors often lose their type.
	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"connection reset by peer",
		"broken pipe",
		"temporary failure in name resolution",
		"tls handshake timeout",
		"i/o timeout",
		"server closed idle connection",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
