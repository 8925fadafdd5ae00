// Package errors provides standardized error handling for the
// recommendation pipeline and its catalog store collaborator.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeStoreUnavailable     ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeStoreAuthFailed      ErrorCode = "STORE_AUTH_FAILED"
	ErrCodeQueryExecutionFailed ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout         ErrorCode = "QUERY_TIMEOUT"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeSeedFailed ErrorCode = "SEED_FAILED"

	ErrCodePipelinePanic ErrorCode = "PIPELINE_PANIC"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewStoreUnavailableError creates a retryable store connection error.
func NewStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Catalog store connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreAuthFailedError creates a non-retryable credential error. Raised
// only after every configured credential has been tried.
func NewStoreAuthFailedError(attempts int, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreAuthFailed,
		Message:   "Catalog store authentication failed",
		Details:   fmt.Sprintf("attempts: %d, last error: %s", attempts, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryKind string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Catalog store query error",
		Details:   fmt.Sprintf("queryKind: %s, error: %s", queryKind, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryKind string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Catalog store query timeout",
		Details:   fmt.Sprintf("queryKind: %s", queryKind),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error. The affinity
// resolver treats this as a miss and falls through to the store.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Affinity cache error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSeedFailedError creates a non-retryable catalog seeding error.
func NewSeedFailedError(stage string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSeedFailed,
		Message:   "Catalog seeding failed",
		Details:   fmt.Sprintf("stage: %s, error: %s", stage, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPipelinePanicError wraps a recovered panic from the scoring/ranking
// path. The caller still receives a fallback list, never this error.
func NewPipelinePanicError(recovered interface{}) *StandardError {
	return &StandardError{
		Code:      ErrCodePipelinePanic,
		Message:   "Recommendation pipeline panicked",
		Details:   fmt.Sprintf("%v", recovered),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether err is a retryable StandardError.
func IsRetryable(err error) bool {
	if se, ok := err.(*StandardError); ok {
		return se.Retryable
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "QUERY"):
		return "STORE"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "SEED"):
		return "SEED"
	case strings.Contains(codeStr, "PIPELINE"):
		return "PIPELINE"
	default:
		return "OTHER"
	}
}
