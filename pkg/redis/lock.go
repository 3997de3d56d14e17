package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrLockNotAcquired is returned when every attempt found the lock taken.
	ErrLockNotAcquired = errors.New("lock not acquired")
	// ErrLockNotHeld is returned when the lock expired or belongs to another owner.
	ErrLockNotHeld = errors.New("lock was not held by this client")
)

const unlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end`

const refreshScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
else
	return 0
end`

// lockStore is the subset of Client a Lock needs.
type lockStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error)
}

// LockOptions represents options for distributed locking
type LockOptions struct {
	// TTL is the lock expiration time
	TTL time.Duration
	// RetryDelay is the delay between acquisition attempts
	RetryDelay time.Duration
	// MaxRetries is the number of extra acquisition attempts
	MaxRetries int
	// RefreshInterval is the period of AutoRefresh
	RefreshInterval time.Duration
	// LockNamespace prefixes the key as namespace::key
	LockNamespace string
}

// NewLockOptions creates lock options with default values
func NewLockOptions() *LockOptions {
	return &LockOptions{
		TTL:             30 * time.Second,
		RetryDelay:      100 * time.Millisecond,
		MaxRetries:      10,
		RefreshInterval: 10 * time.Second,
	}
}

// Lock represents a distributed lock owned by a random token
type Lock struct {
	store lockStore
	key   string
	value string
	opts  *LockOptions
}

// NewLock creates a new distributed lock
func NewLock(client *Client, key string, opts *LockOptions) *Lock {
	return newLock(client, key, opts)
}

// NewScheduledTaskLock creates a lock meant to be held for the lifetime of a
// scheduler: a single acquisition attempt, kept alive through AutoRefresh.
func NewScheduledTaskLock(client *Client, key string, ttl, refreshInterval time.Duration, namespace string) *Lock {
	return newLock(client, key, &LockOptions{
		TTL:             ttl,
		RetryDelay:      0,
		MaxRetries:      0,
		RefreshInterval: refreshInterval,
		LockNamespace:   namespace,
	})
}

func newLock(store lockStore, key string, opts *LockOptions) *Lock {
	if opts == nil {
		opts = NewLockOptions()
	}
	return &Lock{
		store: store,
		key:   key,
		value: uuid.NewString(),
		opts:  opts,
	}
}

// Key returns the namespaced key
func (l *Lock) Key() string {
	if l.opts.LockNamespace != "" {
		return l.opts.LockNamespace + "::" + l.key
	}
	return l.key
}

// Lock attempts to acquire the lock, retrying MaxRetries times
func (l *Lock) Lock(ctx context.Context) error {
	for attempt := 0; attempt <= l.opts.MaxRetries; attempt++ {
		acquired, err := l.store.SetNX(ctx, l.Key(), l.value, l.opts.TTL)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if acquired {
			return nil
		}
		if attempt == l.opts.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.opts.RetryDelay):
		}
	}

	return fmt.Errorf("%w after %d attempts", ErrLockNotAcquired, l.opts.MaxRetries+1)
}

// Unlock releases the lock if this client still owns it
func (l *Lock) Unlock(ctx context.Context) error {
	result, err := l.store.Eval(ctx, unlockScript, []string{l.Key()}, l.value)
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if n, ok := result.(int64); !ok || n == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Refresh extends the lock's TTL if this client still owns it
func (l *Lock) Refresh(ctx context.Context) error {
	result, err := l.store.Eval(ctx, refreshScript, []string{l.Key()}, l.value, l.opts.TTL.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to refresh lock: %w", err)
	}
	if n, ok := result.(int64); !ok || n == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// AutoRefresh refreshes the lock every RefreshInterval until ctx is done or a
// refresh fails. The channel receives exactly one value.
func (l *Lock) AutoRefresh(ctx context.Context) <-chan error {
	errChan := make(chan error, 1)
	interval := l.opts.RefreshInterval
	if interval <= 0 {
		interval = l.opts.TTL / 3
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				errChan <- nil
				return
			case <-ticker.C:
				if err := l.Refresh(ctx); err != nil {
					errChan <- err
					return
				}
			}
		}
	}()

	return errChan
}

// WithLock runs fn while holding the lock
func (l *Lock) WithLock(ctx context.Context, fn func() error) error {
	if err := l.Lock(ctx); err != nil {
		return err
	}
	defer func() { _ = l.Unlock(context.WithoutCancel(ctx)) }()

	return fn()
}
