package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPhase is returned when an operation is not allowed in the session's current phase.
	ErrInvalidPhase = errors.New("operation not allowed in current phase")
	// ErrStartInFlight is returned when Start is called while a batch request is pending.
	ErrStartInFlight = errors.New("question batch already loading")
	// ErrNoPendingChoice indicates submit was called before any option was selected.
	ErrNoPendingChoice = errors.New("no option selected")
	// ErrAlreadyRevealed indicates the current question's answer has been submitted.
	ErrAlreadyRevealed = errors.New("answer already revealed")
	// ErrNotRevealed indicates next was called before the current answer was submitted.
	ErrNotRevealed = errors.New("answer not revealed yet")
	// ErrInvalidLabel indicates an option label outside A..D.
	ErrInvalidLabel = errors.New("invalid option label")
	// ErrInvalidCount indicates a generation request count outside 1..MaxCount.
	ErrInvalidCount = fmt.Errorf("count must be between 1 and %d", MaxCount)
	// ErrInvalidDifficulty indicates a difficulty that is too long or has characters outside
	// letters, digits, spaces, '-' and '_'.
	ErrInvalidDifficulty = fmt.Errorf("difficulty must be at most %d letters, digits, spaces, '-' or '_'", MaxDifficultyLen)
)

// ErrorKind classifies why a question batch could not be produced.
type ErrorKind int

const (
	KindConfiguration ErrorKind = iota + 1
	KindUpstream
	KindMalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindUpstream:
		return "upstream"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// GenerationError is the single failure type surfaced by question sources.
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ConfigurationError reports a misconfigured source (missing key, no backend).
func ConfigurationError(msg string, err error) *GenerationError {
	return &GenerationError{Kind: KindConfiguration, Message: msg, Err: err}
}

// UpstreamError reports a failed or non-success provider call.
func UpstreamError(msg string, err error) *GenerationError {
	return &GenerationError{Kind: KindUpstream, Message: msg, Err: err}
}

// MalformedResponseError reports provider output that is not usable.
func MalformedResponseError(msg string, err error) *GenerationError {
	return &GenerationError{Kind: KindMalformedResponse, Message: msg, Err: err}
}

// AsGenerationError converts any error into a *GenerationError, keeping an existing one.
func AsGenerationError(err error) *GenerationError {
	if err == nil {
		return nil
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}
	return UpstreamError("question generation failed", err)
}
