package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUnbalancedEntry     = NewDomainError("UNBALANCED_ENTRY", "Journal entry debits and credits do not balance")
)

// StageError marks a pipeline-stage failure as either fatal or recoverable.
// Fatal errors propagate to the caller; recoverable errors are absorbed by the
// orchestrator and annotated onto the movement record instead.
type StageError struct {
	Stage       string
	Recoverable bool
	Err         error
}

// Error implements the error interface
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewFatalStageError wraps err as a non-recoverable stage failure
func NewFatalStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Recoverable: false, Err: err}
}

// NewRecoverableStageError wraps err as a stage failure the orchestrator may absorb
func NewRecoverableStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Recoverable: true, Err: err}
}
