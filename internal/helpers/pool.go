package helpers

import (
	"fmt"
	"sync"
)

type PoolStats struct {
	creates int
	resets  int
	hits    int
}

func (s PoolStats) String() string {
	return fmt.Sprint("creates: ", s.creates, ", resets: ", s.resets, ", hits: ", s.hits)
}

func (s PoolStats) Creates() int {
	return s.creates
}

func (s PoolStats) Hits() int {
	return s.hits
}

// CreatePool returns get, release and stats functions for a free list of
// reusable values. At most 256 released values are retained; any further
// releases are dropped. All three functions are safe for concurrent use.
func CreatePool[T any](create func() T, reset func(*T)) (func() *T, func(*T), func() PoolStats) {
	const capacity = 256

	availableBuffer := [capacity]*T{}
	available := 0

	lock := sync.Mutex{}
	stats := PoolStats{}

	var get = func() *T {
		lock.Lock()

		if available > 0 {
			available--
			result := availableBuffer[available]
			availableBuffer[available] = nil
			stats.hits++

			lock.Unlock()
			return result
		}

		stats.creates++
		lock.Unlock()

		result := create()
		return &result
	}

	var release = func(t *T) {
		reset(t)

		lock.Lock()
		defer lock.Unlock()

		stats.resets++
		if available < capacity {
			availableBuffer[available] = t
			available++
		}
	}

	var getStats = func() PoolStats {
		lock.Lock()
		defer lock.Unlock()
		return stats
	}

	return get, release, getStats
}
