// Package locker serializes the check-then-write sequences of the booking
// flow per vehicle, so two requests for the same car cannot both pass the
// availability check before either is written.
package locker

import (
	"context"
	"sync"
)

// Locker acquires a named lock. The returned function releases it and is safe
// to call once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// VehicleKey is the lock name guarding the commitments of one vehicle.
func VehicleKey(vehicleName string) string {
	return "vehicle:" + vehicleName
}

// Local locks within the current process.
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
		return nil, ctx.Err()
	}
	var once sync.Once
	return func() { once.Do(func() { <-ch }) }, nil
}
