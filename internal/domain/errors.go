package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput marks input that aborts the whole request. Callers wrap it with detail.
	ErrMalformedInput = errors.New("malformed input")

	// ErrOracleContract is returned when the oracle does not return exactly one
	// valid label per input.
	ErrOracleContract = fmt.Errorf("%w: classification oracle contract violated", ErrMalformedInput)

	ErrOracleUnavailable = errors.New("classification oracle unavailable")
)
