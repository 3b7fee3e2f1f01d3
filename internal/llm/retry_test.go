package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

var okContent = json.RawMessage(`{"ok":true}`)

func TestRetry(t *testing.T) {
	down := &ErrProviderUnavailable{Err: errors.New("down")}
	invalid := &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}

	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{{Content: okContent}}, false, 1},
		{"transient then success", []MockResponse{{Err: down}, {Content: okContent}}, false, 2},
		{"all attempts fail", []MockResponse{{Err: down}, {Err: down}, {Err: down}, {Content: okContent}}, true, 3},
		{"rate limit honours retry-after", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, {Content: okContent}}, false, 2},
		{"invalid response retried once", []MockResponse{{Err: invalid}, {Err: invalid}, {Content: okContent}}, true, 2},
		{"max tokens not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, {Content: okContent}}, true, 1},
		{"bad key not retried", []MockResponse{{Err: &ErrAuthentication{Err: errors.New("401")}}, {Content: okContent}}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, string(okContent), string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Content: okContent},
	)
	cfg := fastRetry()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryAtLeastOneAttempt(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: okContent})
	_, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "mock", WithRetry(mock, RetryConfig{}).ModelID())
}

func TestBackoffIsBounded(t *testing.T) {
	r := &RetryProvider{config: fastRetry()}
	for attempt := range 10 {
		wait := r.backoff(attempt, errors.New("x"))
		assert.LessOrEqual(t, wait, time.Duration(float64(5*time.Millisecond)*1.2)+time.Microsecond)
		assert.GreaterOrEqual(t, wait, time.Duration(0))
	}
}
