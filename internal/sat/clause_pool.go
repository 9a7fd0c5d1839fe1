//go:build clausepool

package sat

import (
	"math/bits"
	"sync"
)

// Number of size-bucketed slice pools.
const nPools = 4

// The minimum capacity for slices in the last pool.
const lastCapa = 1 << nPools

// Pools of slices with different capacities so that pool i contains slices
// with a capacity between 2^(i+1) and 2^(i+2)-1 inclusive. The last pool k
// contains slices with a capacity of at least 2^(k+1). This gives the clause
// arena a cheap way to reuse literal backing arrays across ReduceDB
// compactions without a per-clause free during backjump.
var pools [nPools]sync.Pool

func init() {
	for i := 0; i < nPools; i++ {
		capa := 1 << (i + 1)
		pools[i].New = func() any {
			s := make([]Literal, 0, capa)
			return &s
		}
	}
}

func pid(capa int) int {
	if capa >= lastCapa {
		return nPools - 1
	}
	id := bits.Len(uint(capa)) - 1
	if capa < (1 << id) {
		id--
	}
	return id
}

// allocSlice returns an empty slice with at least the requested capacity.
func allocSlice(capa int) *[]Literal {
	ref := pools[pid(capa)].Get().(*[]Literal)
	if capa < lastCapa {
		return ref
	}
	if cap(*ref) < capa {
		s := make([]Literal, 0, capa)
		ref = &s
	}
	return ref
}

// freeSlice returns a slice to its pool so it can be reused by allocSlice.
func freeSlice(s *[]Literal) {
	*s = (*s)[:0]
	pools[pid(cap(*s)/2)].Put(s)
}
