package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		status    int
		code      ErrorCode
		retryable bool
	}{
		{401, ErrorCodeAuth, false},
		{403, ErrorCodeAuth, false},
		{404, ErrorCodeInvalidModel, false},
		{400, ErrorCodeInvalidRequest, false},
		{429, ErrorCodeRateLimit, true},
		{500, ErrorCodeUnavailable, true},
		{503, ErrorCodeUnavailable, true},
		{418, ErrorCodeNetwork, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, "msg", cause)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.retryable, IsRetryable(err))
			assert.ErrorIs(t, err, cause)
		})
	}
}

func TestFromTransport(t *testing.T) {
	assert.Equal(t, ErrorCodeCancelled, FromTransport(context.Canceled).Code)
	assert.Equal(t, ErrorCodeTimeout, FromTransport(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)).Code)
	assert.Equal(t, ErrorCodeNetwork, FromTransport(errors.New("dial tcp")).Code)
}

func TestProviderError_Message(t *testing.T) {
	err := &ProviderError{Code: ErrorCodeRateLimit, Message: "slow down"}
	assert.Equal(t, "rate_limit: slow down", err.Error())
	assert.False(t, IsRetryable(errors.New("plain")))
}
