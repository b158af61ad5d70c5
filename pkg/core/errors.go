package core

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrClientClosed = errors.New("client is closed")
	// ErrInvalidKey is returned for signing keys that are not hex or not 32/64 bytes.
	ErrInvalidKey    = errors.New("invalid ed25519 private key")
	ErrNoCredentials = errors.New("no signing key configured")
	// ErrNoNonce means the nonce endpoint answered 2xx without a usable "nonce" field.
	ErrNoNonce = errors.New("nonce missing from response")
)

// ErrorType classifies a non-2xx reply by its status code.
type ErrorType string

const (
	ErrorTypeUnknown        ErrorType = "unknown"
	ErrorTypeTimeout        ErrorType = "timeout"
	ErrorTypeRateLimit      ErrorType = "rate_limit"
	ErrorTypeAuthentication ErrorType = "authentication"
	ErrorTypeBadRequest     ErrorType = "bad_request"
	ErrorTypeNotFound       ErrorType = "not_found"
	ErrorTypeServerError    ErrorType = "server_error"
)

// ExchangeError describes a non-2xx reply. The client never returns one on
// its own; callers opt in through Result.Err.
type ExchangeError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	StatusCode int       `json:"status_code"`
	Message    string    `json:"message"`
	Path       string    `json:"path"`
	// Body is the decoded reply, nil if it was not JSON.
	Body any       `json:"body,omitempty"`
	At   time.Time `json:"at"`
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("picostocks %s: %d %s: %s", e.Path, e.StatusCode, e.Code, e.Message)
}

func NewExchangeError(path string, statusCode int, message string) *ExchangeError {
	t := ErrorTypeForStatus(statusCode)
	return &ExchangeError{
		Type:       t,
		Code:       errorCodeForType(t),
		StatusCode: statusCode,
		Message:    message,
		Path:       path,
		At:         time.Now(),
	}
}

func ErrorTypeForStatus(statusCode int) ErrorType {
	switch {
	case statusCode >= http.StatusInternalServerError:
		return ErrorTypeServerError
	case statusCode == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return ErrorTypeAuthentication
	case statusCode == http.StatusBadRequest:
		return ErrorTypeBadRequest
	case statusCode == http.StatusNotFound:
		return ErrorTypeNotFound
	case statusCode == http.StatusRequestTimeout:
		return ErrorTypeTimeout
	}
	return ErrorTypeUnknown
}

func typeOf(err error) ErrorType {
	var e *ExchangeError
	if errors.As(err, &e) {
		return e.Type
	}
	return ""
}

func IsRateLimitError(err error) bool {
	return typeOf(err) == ErrorTypeRateLimit
}

// IsAuthenticationError reports a rejected signature or unknown account.
// A rejected signature usually means the signed text differs from what the
// server rebuilt, not that the key is wrong.
func IsAuthenticationError(err error) bool {
	return typeOf(err) == ErrorTypeAuthentication
}

func IsNotFoundError(err error) bool {
	return typeOf(err) == ErrorTypeNotFound
}
