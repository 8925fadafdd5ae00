package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Core Functionality Tests
// ==========================

func TestStandardError_Error(t *testing.T) {
	err := NewStoreUnavailableError(fmt.Errorf("connection refused"))

	assert.Equal(t, "StandardError[STORE_UNAVAILABLE]: Catalog store connection error", err.Error())
	assert.Equal(t, "connection refused", err.Details)
	assert.False(t, err.Timestamp.IsZero())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"store unavailable", NewStoreUnavailableError(fmt.Errorf("down")), true},
		{"query execution failed", NewQueryExecutionFailedError("filtered", fmt.Errorf("syntax")), true},
		{"query timeout", NewQueryTimeoutError("relevant"), true},
		{"cache unavailable", NewCacheUnavailableError(fmt.Errorf("refused")), true},
		{"auth failed", NewStoreAuthFailedError(3, fmt.Errorf("bad password")), false},
		{"seed failed", NewSeedFailedError("vehicles", fmt.Errorf("duplicate key")), false},
		{"pipeline panic", NewPipelinePanicError("index out of range"), false},
		{"plain error", fmt.Errorf("not standardized"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "STORE", GetErrorCategory(ErrCodeStoreUnavailable))
	assert.Equal(t, "STORE", GetErrorCategory(ErrCodeQueryTimeout))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "SEED", GetErrorCategory(ErrCodeSeedFailed))
	assert.Equal(t, "PIPELINE", GetErrorCategory(ErrCodePipelinePanic))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrorCode("SOMETHING_ELSE")))
}
