package service

import "sync"

// keyedMutex serializes operations per key (session token). Overlapping rapid
// mutations on the same cart or wishlist resolve in the order they acquired
// the lock, so the state left behind is the last intent rather than the last
// network response to land.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) acquire(key string) *lockEntry {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*lockEntry)
	}
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.Lock()
	return entry
}

func (k *keyedMutex) release(key string, entry *lockEntry) {
	entry.Unlock()

	k.mu.Lock()
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()
}
