package services

import "sync"

// taskLocks hands out one mutex per task id so read-modify-write
// sequences on a task serialize without any cross-task contention.
// Locks are never reclaimed; the set of tasks is small.
type taskLocks struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

func newTaskLocks() *taskLocks {
	return &taskLocks{locks: make(map[uint64]*sync.Mutex)}
}

// acquire locks the mutex for id and returns it for unlocking.
func (l *taskLocks) acquire(id uint64) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}
