package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fast = RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestWithRetry(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{name: "first try", failures: 0, wantCalls: 1},
		{name: "recovers", failures: 2, err: errBoom, wantCalls: 3},
		{name: "exhausted", failures: 5, err: errBoom, wantCalls: 3, wantErr: ErrMaxRetries},
		{name: "permanent", failures: 5, err: &RetryableError{Err: errBoom, Retryable: false}, wantCalls: 1, wantErr: errBoom},
		{name: "rate limited", failures: 1, err: ErrRateLimit, wantCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			}, fast)

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithRetry_ExhaustedKeepsCause(t *testing.T) {
	errBoom := errors.New("boom")
	err := WithRetry(context.Background(), func() error { return errBoom }, fast)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.ErrorIs(t, err, errBoom)
}

func TestWithRetry_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		cancel()
		return errors.New("fail")
	}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Hour})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPermanent(t *testing.T) {
	assert.True(t, Permanent(&RetryableError{Err: errors.New("x")}))
	assert.False(t, Permanent(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, Permanent(errors.New("x")))
}
