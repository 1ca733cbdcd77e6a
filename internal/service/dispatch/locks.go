package dispatch

import "sync"

const lockStripes = 64

// stripedMutex serializes work per key with a fixed number of mutexes.
type stripedMutex struct {
	stripes [lockStripes]sync.Mutex
}

func (s *stripedMutex) lock(key int64) func() {
	mu := &s.stripes[uint64(key)%lockStripes]
	mu.Lock()
	return mu.Unlock
}
