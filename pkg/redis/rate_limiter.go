package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimited is returned when the window is exhausted and waiting is disabled
// or the wait timed out.
var ErrRateLimited = errors.New("rate limit exceeded")

// fixedWindowScript increments the counter of the current window and returns
// the count, setting the window expiry on first use.
const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current`

type scriptRunner interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error)
}

// RateLimiterOptions configures a fixed-window limiter shared by every
// instance pointing at the same Redis.
type RateLimiterOptions struct {
	// Limit is the number of permits per Window
	Limit int
	// Window is the length of a counting window
	Window time.Duration
	// WaitTimeout bounds how long Acquire waits for a permit; 0 fails fast
	WaitTimeout time.Duration
	// Namespace prefixes the key as namespace::key
	Namespace string
}

// RateLimiter hands out permits across processes
type RateLimiter struct {
	runner scriptRunner
	key    string
	opts   RateLimiterOptions
	now    func() time.Time
}

// NewRateLimiter validates options and creates a limiter for key
func NewRateLimiter(client *Client, key string, opts RateLimiterOptions) (*RateLimiter, error) {
	return newRateLimiter(client, key, opts)
}

func newRateLimiter(runner scriptRunner, key string, opts RateLimiterOptions) (*RateLimiter, error) {
	if opts.Limit <= 0 {
		return nil, fmt.Errorf("invalid limit: %d, must be positive", opts.Limit)
	}
	if opts.Window <= 0 {
		return nil, fmt.Errorf("invalid window: %v, must be positive", opts.Window)
	}
	return &RateLimiter{runner: runner, key: key, opts: opts, now: time.Now}, nil
}

func (rl *RateLimiter) windowKey(t time.Time) string {
	slot := t.UnixMilli() / rl.opts.Window.Milliseconds()
	key := fmt.Sprintf("rate::%s::%d", rl.key, slot)
	if rl.opts.Namespace != "" {
		return rl.opts.Namespace + "::" + key
	}
	return key
}

// Acquire takes a permit, waiting for the next window up to WaitTimeout
func (rl *RateLimiter) Acquire(ctx context.Context) error {
	deadline := rl.now().Add(rl.opts.WaitTimeout)

	for {
		now := rl.now()
		result, err := rl.runner.Eval(ctx, fixedWindowScript, []string{rl.windowKey(now)}, rl.opts.Window.Milliseconds())
		if err != nil {
			return fmt.Errorf("failed to acquire permit: %w", err)
		}
		count, ok := result.(int64)
		if !ok {
			return fmt.Errorf("unexpected rate limiter reply %T", result)
		}
		if count <= int64(rl.opts.Limit) {
			return nil
		}

		windowMs := rl.opts.Window.Milliseconds()
		wait := time.Duration(windowMs-now.UnixMilli()%windowMs) * time.Millisecond
		if rl.opts.WaitTimeout <= 0 || now.Add(wait).After(deadline) {
			return ErrRateLimited
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
