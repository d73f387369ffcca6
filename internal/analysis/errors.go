package analysis

import (
	"errors"
	"fmt"
)

// FailureKind classifies a failed submission.
type FailureKind int

const (
	// NetworkFailure means the request could not be sent, no response
	// arrived, or the engine answered with a non-2xx status.
	NetworkFailure FailureKind = iota
	// DecodeFailure means a response arrived but was not well-formed.
	DecodeFailure
)

// String returns a short label for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case NetworkFailure:
		return "network failure"
	case DecodeFailure:
		return "decode failure"
	default:
		return "unknown failure"
	}
}

// SubmitError is the error type returned by Client.Submit. The two kinds
// are surfaced identically to the user today; the split exists so a
// future caller can distinguish "engine down" from "contract drift".
type SubmitError struct {
	Err  error
	Kind FailureKind
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// UserMessage returns the operator-facing text for the failure.
func (e *SubmitError) UserMessage() string {
	return "Analysis failed: verify the analysis engine is running and reachable."
}

// UserMessage extracts the operator-facing text from an error, falling
// back to the raw error string.
func UserMessage(err error) string {
	var submitErr *SubmitError
	if errors.As(err, &submitErr) {
		return submitErr.UserMessage()
	}
	return err.Error()
}
