package guild

import "sync"

// guildLocks serializes writers per guild id. Two players acting on the
// same guild concurrently must not interleave read-modify-write cycles.
type guildLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newGuildLocks() *guildLocks {
	return &guildLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the per-guild mutex and returns its unlock func
func (g *guildLocks) acquire(guildID string) func() {
	g.mu.Lock()
	lock, ok := g.locks[guildID]
	if !ok {
		lock = &sync.Mutex{}
		g.locks[guildID] = lock
	}
	g.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
