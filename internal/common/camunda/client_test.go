package camunda

import (
	"context"
	"fmt"
	"testing"
	"time"

	"product-image-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return &Client{config: &ClientConfig{
		ConnectionTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: 2,
			BaseDelay:  time.Millisecond,
			MaxDelay:   2 * time.Millisecond,
		},
	}}
}

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"rpc error: code = Unavailable desc = connection refused", true},
		{"context deadline exceeded", true},
		{"broken pipe", true},
		{"rpc error: code = NotFound desc = job not found", false},
		{"permission denied", false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableZeebeError(fmt.Errorf("%s", tt.msg)))
		})
	}
}

func TestMapZeebeError(t *testing.T) {
	c := testClient()

	err := c.mapZeebeError(fmt.Errorf("deadline exceeded"), "complete", 2)
	assert.Equal(t, errors.ErrCodeBackendTimeout, errors.CodeOf(err))
	assert.Contains(t, errors.AsStandardError(err).Details, "after 2 attempts")

	err = c.mapZeebeError(fmt.Errorf("Unauthenticated"), "topology", 0)
	assert.Equal(t, errors.ErrCodeConfigurationInvalid, errors.CodeOf(err))

	err = c.mapZeebeError(fmt.Errorf("connection refused"), "topology", 0)
	assert.Equal(t, errors.ErrCodeBackendUnavailable, errors.CodeOf(err))
}

func TestExecuteWithRetry(t *testing.T) {
	c := testClient()

	t.Run("retries transient errors", func(t *testing.T) {
		attempts := 0
		result, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			attempts++
			if attempts < 3 {
				return nil, fmt.Errorf("unavailable")
			}
			return "ok", nil
		}, "topology")
		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 3, attempts)
	})

	t.Run("stops on permanent errors", func(t *testing.T) {
		attempts := 0
		_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			attempts++
			return nil, fmt.Errorf("permission denied")
		}, "topology")
		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		attempts := 0
		_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			attempts++
			return nil, fmt.Errorf("connection reset")
		}, "topology")
		require.Error(t, err)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, errors.ErrCodeBackendUnavailable, errors.CodeOf(err))
	})
}
