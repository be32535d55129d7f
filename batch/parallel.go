package batch

import (
	"runtime"
	"sync"
)

// parallelRange runs fn(i) for i in [0,n) split into runtime.NumCPU()
// chunks of contiguous indices, one goroutine per chunk. Each world's
// step only reads and writes its own disjoint Worlds[i] and steppers[i]
// entries, and static colliders are read-only, so chunk boundaries never
// race; worker count affects wall-clock only, never a per-world
// trajectory, keeping trajectories bitwise deterministic.
func parallelRange(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	numWorkers := runtime.NumCPU()
	if numWorkers > n {
		numWorkers = n
	}
	if numWorkers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunkSize := (n + numWorkers - 1) / numWorkers
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
