package core

import "errors"

// ErrorCode is the machine-readable form of an ErrorType.
type ErrorCode string

const (
	ErrCodeRateLimit   ErrorCode = "RATE_LIMIT"
	ErrCodeAuth        ErrorCode = "AUTH_ERROR"
	ErrCodeBadRequest  ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound    ErrorCode = "NOT_FOUND"
	ErrCodeTimeout     ErrorCode = "TIMEOUT"
	ErrCodeServerError ErrorCode = "SERVER_ERROR"
	ErrCodeUnknown     ErrorCode = "UNKNOWN"
)

var codeByType = map[ErrorType]ErrorCode{
	ErrorTypeRateLimit:      ErrCodeRateLimit,
	ErrorTypeAuthentication: ErrCodeAuth,
	ErrorTypeBadRequest:     ErrCodeBadRequest,
	ErrorTypeNotFound:       ErrCodeNotFound,
	ErrorTypeTimeout:        ErrCodeTimeout,
	ErrorTypeServerError:    ErrCodeServerError,
}

func errorCodeForType(t ErrorType) ErrorCode {
	if code, ok := codeByType[t]; ok {
		return code
	}
	return ErrCodeUnknown
}

// IsErrorCode reports whether err wraps an ExchangeError carrying code.
func IsErrorCode(err error, code ErrorCode) bool {
	var e *ExchangeError
	return errors.As(err, &e) && e.Code == code
}
