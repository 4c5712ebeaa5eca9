package service

import (
	"sort"
	"sync"
)

// OwnerLocks serializes balance mutations per owner. The saldo store exposes
// plain read-then-write primitives with no concurrency token, so two
// concurrent coordinator calls against the same owner would otherwise race
// and silently lose one update. Multi-owner operations acquire locks in
// ascending owner order so two transfers touching the same pair cannot
// deadlock.
type OwnerLocks struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func NewOwnerLocks() *OwnerLocks {
	return &OwnerLocks{locks: make(map[int]*sync.Mutex)}
}

// Lock acquires the locks for the given owners and returns the function that
// releases them. Duplicate owner ids are collapsed.
func (l *OwnerLocks) Lock(owners ...int) (unlock func()) {
	ids := make([]int, 0, len(owners))
	seen := make(map[int]struct{}, len(owners))
	for _, id := range owners {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	acquired := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		acquired = append(acquired, l.ownerLock(id))
	}
	for _, mu := range acquired {
		mu.Lock()
	}

	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}
}

func (l *OwnerLocks) ownerLock(id int) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	mu, ok := l.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		l.locks[id] = mu
	}
	return mu
}
