package lock

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker implements AggregateLocker with a keyed mutex. It only
// serializes writers inside one process.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
	wait  time.Duration
}

// slot is a one-token semaphore shared by everyone waiting on a key
type slot struct {
	token   chan struct{}
	waiters int
}

// NewMemoryLocker creates a MemoryLocker whose Acquire gives up after wait
func NewMemoryLocker(wait time.Duration) *MemoryLocker {
	return &MemoryLocker{
		slots: make(map[string]*slot),
		wait:  wait,
	}
}

// Acquire blocks until key is free, the wait elapses or ctx is done.
func (l *MemoryLocker) Acquire(ctx context.Context, key string) (func(), error) {
	s := l.join(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case s.token <- struct{}{}:
	case <-timer.C:
		l.leave(key, s)
		return nil, lockTimeout(key)
	case <-ctx.Done():
		l.leave(key, s)
		return nil, ctx.Err()
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			<-s.token
			l.leave(key, s)
		})
	}
	return release, nil
}

func (l *MemoryLocker) join(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{token: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.waiters++
	return s
}

func (l *MemoryLocker) leave(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.waiters--
	if s.waiters == 0 {
		delete(l.slots, key)
	}
}

// held reports how many keys have a holder or waiter
func (l *MemoryLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
