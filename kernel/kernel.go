// Package kernel provides the data-parallel bulk-pass primitive used by the
// pack/unpack loops: a flattened index space split across worker goroutines.
// Iterations must be free of cross-iteration dependencies.
package kernel

import (
	"runtime"
	"sync"

	"github.com/notargets/gocfd/utils"
)

var degree = runtime.NumCPU()

// SetDegree caps the worker count for subsequent ParFor calls. Values < 1 are
// ignored.
func SetDegree(np int) {
	if np >= 1 {
		degree = np
	}
}

// Degree returns the current worker count.
func Degree() int { return degree }

// ParFor runs f for every index in [0,n), splitting the range across workers
// with at most one item of imbalance. Small ranges run serially.
func ParFor(n int, f func(idx int)) {
	if n <= 0 {
		return
	}
	np := degree
	if np > n {
		np = n
	}
	if np <= 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	pm := utils.NewPartitionMap(np, n)
	var wg sync.WaitGroup
	for p := 0; p < np; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			kmin, kmax := pm.GetBucketRange(p)
			for i := kmin; i < kmax; i++ {
				f(i)
			}
		}(p)
	}
	wg.Wait()
}
