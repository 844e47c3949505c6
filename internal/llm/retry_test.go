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

var okQuiz = MockResponse{Content: json.RawMessage(`{"questions":[]}`)}

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 4 * time.Millisecond, Multiplier: 2}
}

func failing(kind Kind) MockResponse {
	return MockResponse{Err: &Error{Kind: kind, Provider: "mock", Err: errors.New(kind.String())}}
}

func TestRetry_Outcomes(t *testing.T) {
	tests := []struct {
		name      string
		queue     []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{okQuiz}, false, 1},
		{"unavailable then ok", []MockResponse{failing(Unavailable), okQuiz}, false, 2},
		{"rate limited then ok", []MockResponse{failing(RateLimited), okQuiz}, false, 2},
		{"plain error then ok", []MockResponse{{Err: errors.New("connection reset")}, okQuiz}, false, 2},
		{"gives up after max attempts", []MockResponse{failing(Unavailable), failing(Unavailable), failing(Unavailable), okQuiz}, true, 3},
		{"invalid output retried once", []MockResponse{failing(InvalidOutput), failing(InvalidOutput), okQuiz}, true, 2},
		{"invalid output then ok", []MockResponse{failing(InvalidOutput), okQuiz}, false, 2},
		{"truncated not retried", []MockResponse{failing(Truncated), okQuiz}, true, 1},
		{"rejected not retried", []MockResponse{failing(Rejected), okQuiz}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.queue...)
			resp, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"questions":[]}`, string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_HonorsRetryAfter(t *testing.T) {
	limited := MockResponse{Err: &Error{Kind: RateLimited, RetryAfter: 30 * time.Millisecond}}
	mock := NewMockProvider(limited, okQuiz)

	start := time.Now()
	_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestRetry_StopsOnCancel(t *testing.T) {
	mock := NewMockProvider(failing(Unavailable), okQuiz)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, fastRetry()).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_TimeoutCoversAllAttempts(t *testing.T) {
	cfg := fastRetry()
	cfg.MaxAttempts = 10
	cfg.InitialWait = 50 * time.Millisecond
	cfg.MaxWait = 50 * time.Millisecond
	cfg.Timeout = 20 * time.Millisecond

	mock := NewMockProvider()
	_, err := WithRetry(mock, cfg).Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryConfig_Delay(t *testing.T) {
	cfg := RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}
	for n, base := range map[int]time.Duration{
		1: 100 * time.Millisecond,
		2: 200 * time.Millisecond,
		3: 400 * time.Millisecond,
		9: time.Second,
	} {
		d := cfg.delay(n)
		assert.GreaterOrEqual(t, d, base*8/10, "attempt %d", n)
		assert.LessOrEqual(t, d, base*12/10, "attempt %d", n)
	}
}

func TestRetry_DelegatesIdentity(t *testing.T) {
	p := WithRetry(NewMockProvider(), fastRetry())
	assert.Equal(t, "mock", p.ModelID())
	assert.Equal(t, "mock", providerName(p))
}
