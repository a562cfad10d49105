package llm

import "errors"

var (
	// ErrRateLimited indicates the provider rejected the call with HTTP 429.
	// Callers may retry after a delay.
	ErrRateLimited = errors.New("llm provider rate limited")

	// ErrAuth indicates the provider rejected the API key. Never retried.
	ErrAuth = errors.New("llm provider rejected credentials")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrUnavailable indicates the provider could not be reached.
	ErrUnavailable = errors.New("llm provider unavailable")

	// ErrUpstream covers any other non-success reply from the provider.
	ErrUpstream = errors.New("llm provider error")

	// ErrInvalidOutput indicates the response could not be parsed into the
	// expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")
)
