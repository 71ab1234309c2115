package lock

import (
	"context"
	"sync"
	"time"

	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/shared"
)

// MemoryLocker serialises work per key inside one process.
type MemoryLocker struct {
	wait time.Duration

	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewMemoryLocker(wait time.Duration) *MemoryLocker {
	return &MemoryLocker{
		wait:  wait,
		slots: make(map[string]*slot),
	}
}

var _ shared.Locker = (*MemoryLocker)(nil)

func (l *MemoryLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case s.ch <- struct{}{}:
	case <-timer.C:
		l.drop(key, s)
		return nil, errs.Wrapf(errs.ErrOperationInProgress, "lock %s busy", key)
	case <-ctx.Done():
		l.drop(key, s)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.drop(key, s)
		})
	}, nil
}

func (l *MemoryLocker) drop(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}
