package llm

import "fmt"

// ErrorKind is the closed set of reasoning-service failure classes.
type ErrorKind string

// Reasoning failure kinds. The transient kinds are retried with backoff;
// everything else surfaces immediately.
const (
	KindRateLimited     ErrorKind = "rate_limited"
	KindTimeout         ErrorKind = "timeout"
	KindServerError     ErrorKind = "server_error"
	KindConnection      ErrorKind = "connection_error"
	KindAuthentication  ErrorKind = "authentication_error"
	KindQuotaExhausted  ErrorKind = "quota_exhausted"
	KindInvalidResponse ErrorKind = "invalid_response"
	KindProvider        ErrorKind = "provider_error"
	KindUnknown         ErrorKind = "unknown_error"
)

// Retryable reports whether a failure of this kind is expected to resolve
// itself on retry.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindRateLimited, KindTimeout, KindServerError, KindConnection:
		return true
	default:
		return false
	}
}

// ReasoningError is a classified reasoning-service failure.
type ReasoningError struct {
	Kind     ErrorKind
	Provider string
	Detail   string
	Err      error
}

func (e *ReasoningError) Error() string {
	msg := fmt.Sprintf("%s reasoning error (%s)", e.Provider, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ReasoningError) Unwrap() error {
	return e.Err
}

// Retryable implements the predicate consumed by common.WithRetry.
func (e *ReasoningError) Retryable() bool {
	return e.Kind.Retryable()
}

// newInvalidResponse builds the fatal error raised when a response cannot be
// parsed or fails schema validation.
func newInvalidResponse(provider, detail string, err error) *ReasoningError {
	return &ReasoningError{
		Kind:     KindInvalidResponse,
		Provider: provider,
		Detail:   detail,
		Err:      err,
	}
}
