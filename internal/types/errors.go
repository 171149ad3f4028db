package types

import (
	"errors"
	"fmt"
)

// Stage identifies which pipeline stage an error originated in.
type Stage string

const (
	StageConfig Stage = "config"
	StageFetch  Stage = "fetch"
	StageModel  Stage = "model"
	StageWrite  Stage = "write"
)

// PipelineError is a stage-tagged error. A run either completes or fails
// with exactly one of these; there are no automatic retries between stages.
type PipelineError struct {
	Stage   Stage
	Message string
	Cause   error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// NewConfigError reports a missing or invalid credential/configuration value.
func NewConfigError(message string) *PipelineError {
	return &PipelineError{Stage: StageConfig, Message: message}
}

// NewFetchError reports a page navigation or extraction failure.
func NewFetchError(message string, cause error) *PipelineError {
	return &PipelineError{Stage: StageFetch, Message: message, Cause: cause}
}

// NewModelError reports a remote model call failure.
func NewModelError(message string, cause error) *PipelineError {
	return &PipelineError{Stage: StageModel, Message: message, Cause: cause}
}

// NewWriteError reports a filesystem failure during export.
func NewWriteError(message string, cause error) *PipelineError {
	return &PipelineError{Stage: StageWrite, Message: message, Cause: cause}
}

// IsStage reports whether err (or anything it wraps) is a PipelineError
// tagged with the given stage.
func IsStage(err error, stage Stage) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Stage == stage
	}
	return false
}
