package lock

import (
	"context"
	"sync"

	"gatherly/internal/domain"
)

type localEntry struct {
	sem  chan struct{}
	refs int
}

// localLocker is an in-process keyed mutex. Entries are dropped once no goroutine holds
// or waits for them.
type localLocker struct {
	mu    sync.Mutex
	locks map[string]*localEntry
}

// NewLocalLocker returns a GatheringLocker that serialises callers inside one process.
func NewLocalLocker() domain.GatheringLocker {
	return &localLocker{locks: make(map[string]*localEntry)}
}

func (l *localLocker) Lock(ctx context.Context, gatheringID string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[gatheringID]
	if !ok {
		e = &localEntry{sem: make(chan struct{}, 1)}
		l.locks[gatheringID] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(gatheringID, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(gatheringID, e)
		})
	}, nil
}

func (l *localLocker) release(key string, e *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// size reports the number of tracked keys.
func (l *localLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

type noopLocker struct{}

// NewNoopLocker returns a GatheringLocker that never blocks. Optimistic concurrency in
// the store still guards attendance updates.
func NewNoopLocker() domain.GatheringLocker {
	return noopLocker{}
}

func (noopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}
