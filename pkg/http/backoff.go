package http

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BackoffConfig configures retries with exponential backoff.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	// Jitter adds up to this fraction of the computed wait, 0 disables it.
	Jitter float64
}

// DefaultBackoffConfig returns the retry policy used for vendor APIs.
func DefaultBackoffConfig() *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
		Multiplier:      2,
		Jitter:          0.2,
	}
}

// interval returns the wait before retry number attempt (0-based).
func (b *BackoffConfig) interval(attempt int) time.Duration {
	multiplier := b.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	wait := float64(b.InitialInterval) * math.Pow(multiplier, float64(attempt))
	if b.MaxInterval > 0 && wait > float64(b.MaxInterval) {
		wait = float64(b.MaxInterval)
	}
	if b.Jitter > 0 {
		wait += wait * b.Jitter * rand.Float64()
	}
	return time.Duration(wait)
}

// isRetryable reports whether a failed attempt may be repeated: transport
// errors, 429 and 5xx. Other statuses are final.
func isRetryable(statusCode int, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	if statusCode == 0 {
		return true
	}
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker[int] {
	return gobreaker.NewCircuitBreaker[int](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})
}

// doRequestWithBackoff runs doRequest under the circuit breaker, retrying
// retryable failures according to the request or client backoff policy.
func (hc *Client) doRequestWithBackoff(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, backoff *BackoffConfig) (any, any, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if backoff == nil {
		backoff = hc.backoff
	}

	maxRetries := 0
	if backoff != nil {
		maxRetries = backoff.MaxRetries
	}

	var (
		success, failure any
		status           int
		err              error
	)

	for attempt := 0; ; attempt++ {
		success, failure, status, err = hc.attempt(ctx, method, path, queryParams, headers, body, successResp, errorResp)
		if !isRetryable(status, err) || attempt >= maxRetries {
			return success, failure, status, err
		}

		if hc.logger != nil {
			hc.logger.LogRequestRetry(method, hc.buildURL(path), headers, "", status, "", 0, err, attempt+1, maxRetries)
		}

		if sleepErr := hc.sleep(ctx, backoff.interval(attempt)); sleepErr != nil {
			return success, failure, status, err
		}
	}
}

// attempt performs one call, through the breaker when configured. Only
// transport errors, 429 and 5xx count as breaker failures.
func (hc *Client) attempt(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any) (any, any, int, error) {
	if hc.breaker == nil {
		return hc.doRequest(ctx, method, path, queryParams, headers, body, successResp, errorResp)
	}

	var (
		success, failure any
		callErr          error
	)
	status, err := hc.breaker.Execute(func() (int, error) {
		var code int
		success, failure, code, callErr = hc.doRequest(ctx, method, path, queryParams, headers, body, successResp, errorResp)
		if callErr != nil && (code == 0 || code == http.StatusTooManyRequests || code >= 500) {
			return code, callErr
		}
		return code, nil
	})
	if err != nil {
		return success, failure, status, err
	}
	return success, failure, status, callErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
