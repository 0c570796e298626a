package checkin

import "sync"

// userLocks serializes the read-then-append sequence per user so two
// overlapping sweeps cannot both observe "eligible" for the same user.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the per-user mutex and returns its release func.
func (locks *userLocks) lock(userID string) func() {
	locks.mu.Lock()
	userLock, ok := locks.locks[userID]
	if !ok {
		userLock = &sync.Mutex{}
		locks.locks[userID] = userLock
	}
	locks.mu.Unlock()

	userLock.Lock()
	return userLock.Unlock
}
