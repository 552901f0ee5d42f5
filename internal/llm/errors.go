package llm

import "errors"

var (
	// ErrUnavailable indicates the model server is unreachable.
	ErrUnavailable = errors.New("llm server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the response could not be parsed into the
	// expected structure.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrDisabled is returned when the assistant is switched off.
	ErrDisabled = errors.New("assistant disabled")
)
