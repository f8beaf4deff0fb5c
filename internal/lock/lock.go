// Package lock serializes the activation write pair per collection.
package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrBusy is returned when the lock could not be taken before ctx ended.
var ErrBusy = errors.New("lock busy")

type Locker interface {
	// Lock blocks until key is held or ctx is done. The returned func
	// releases it and is safe to call more than once.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Local is a process-wide Locker. Each key is a one-slot channel.
type Local struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewLocal() *Local {
	return &Local{slots: map[string]chan struct{}{}}
}

func (l *Local) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	ch := l.slot(key)
	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, errors.Join(ErrBusy, ctx.Err())
	}
	var once sync.Once
	return func() { once.Do(func() { <-ch }) }, nil
}
