package kernel

import (
	"sync/atomic"
	"testing"
)

func TestParForCoversRangeOnce(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100, 1000} {
		counts := make([]int32, n)
		ParFor(n, func(i int) {
			atomic.AddInt32(&counts[i], 1)
		})
		for i, c := range counts {
			if c != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, c)
			}
		}
	}
}

func TestSetDegree(t *testing.T) {
	old := Degree()
	defer SetDegree(old)

	SetDegree(3)
	if Degree() != 3 {
		t.Fatalf("Degree = %d, want 3", Degree())
	}
	SetDegree(0) // ignored
	if Degree() != 3 {
		t.Fatalf("Degree = %d after SetDegree(0), want 3", Degree())
	}

	var total int64
	ParFor(10, func(i int) { atomic.AddInt64(&total, int64(i)) })
	if total != 45 {
		t.Fatalf("sum = %d, want 45", total)
	}
}
