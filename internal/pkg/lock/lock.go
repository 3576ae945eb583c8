// Package lock provides per-key locking, used to serialise the game actions
// of a single player inside one process.
package lock

import (
	"context"
	"sync"
	"time"
)

// keyMutex is a one-slot semaphore with a count of goroutines holding or
// waiting for it. The entry is dropped once nobody references it.
type keyMutex struct {
	ch   chan struct{}
	refs int
}

// KeyedLock provides one mutex per key. The zero value is not usable; use New.
type KeyedLock[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*keyMutex
}

// New creates a KeyedLock.
func New[K comparable]() *KeyedLock[K] {
	return &KeyedLock[K]{locks: make(map[K]*keyMutex)}
}

// acquireRef returns the mutex for key and registers the caller as a user.
func (kl *KeyedLock[K]) acquireRef(key K) *keyMutex {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	m, ok := kl.locks[key]
	if !ok {
		m = &keyMutex{ch: make(chan struct{}, 1)}
		kl.locks[key] = m
	}
	m.refs++
	return m
}

// releaseRef drops the caller's reference and forgets unused mutexes.
func (kl *KeyedLock[K]) releaseRef(key K, m *keyMutex) {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	m.refs--
	if m.refs == 0 {
		delete(kl.locks, key)
	}
}

// Lock acquires the lock for key, blocking until it is available.
func (kl *KeyedLock[K]) Lock(key K) {
	m := kl.acquireRef(key)
	m.ch <- struct{}{}
}

// Unlock releases the lock for key. Unlocking a key that is not locked is a no-op.
func (kl *KeyedLock[K]) Unlock(key K) {
	kl.mu.Lock()
	m, ok := kl.locks[key]
	kl.mu.Unlock()
	if !ok {
		return
	}

	select {
	case <-m.ch:
		kl.releaseRef(key, m)
	default:
	}
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false otherwise.
func (kl *KeyedLock[K]) TryLock(key K) bool {
	m := kl.acquireRef(key)
	select {
	case m.ch <- struct{}{}:
		return true
	default:
		kl.releaseRef(key, m)
		return false
	}
}

// LockContext acquires the lock for key or gives up when ctx is done.
func (kl *KeyedLock[K]) LockContext(ctx context.Context, key K) error {
	m := kl.acquireRef(key)
	select {
	case m.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		kl.releaseRef(key, m)
		if ctx.Err() == context.DeadlineExceeded {
			return ErrLockTimeout
		}
		return ctx.Err()
	}
}

// WithLock executes fn while holding the lock for key.
func (kl *KeyedLock[K]) WithLock(key K, fn func() error) error {
	kl.Lock(key)
	defer kl.Unlock(key)
	return fn()
}

// WithLockContext executes fn while holding the lock for key. It waits at most
// timeout for the lock and returns ErrLockTimeout when the wait expires.
// A non-positive timeout waits as long as ctx allows.
func (kl *KeyedLock[K]) WithLockContext(ctx context.Context, key K, timeout time.Duration, fn func() error) error {
	waitCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := kl.LockContext(waitCtx, key); err != nil {
		return err
	}
	defer kl.Unlock(key)

	// Check if context was cancelled while waiting for lock
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn()
}

// IsLocked checks if key is currently held.
// Note: This is a point-in-time check and may change immediately after.
func (kl *KeyedLock[K]) IsLocked(key K) bool {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	m, ok := kl.locks[key]
	return ok && len(m.ch) == 1
}

// Len returns the number of keys currently tracked.
func (kl *KeyedLock[K]) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.locks)
}
