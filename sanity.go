package blocksa

import (
	"fmt"

	"github.com/rockhowse/blocksa/suffix"
)

// saRef is the reference view of the final suffix order used in sanity-check
// mode: the full suffix array of the terminator-extended text, its inverse
// and the LCP table, computed once at construction. rank makes order checks
// O(1); the LCP table pins down the exact mismatch position of stream-adjacent
// suffixes.
type saRef struct {
	t32  []int32 // text plus terminator symbol
	rank []int32 // rank[p] is the stream position of the suffix at p
	lcp  []int32 // lcp[r] is the LCP of the suffixes at ranks r-1 and r
}

func newSARef(t []byte, sigma int) *saRef {
	n := len(t)
	t32 := make([]int32, n+1)
	for i, c := range t {
		t32[i] = int32(c)
	}
	t32[n] = int32(sigma)
	sa := make([]int32, n+1)
	suffix.SortInts(t32, sa)
	rank := make([]int32, n+1)
	suffix.InvertSA(sa, rank)
	lcp := make([]int32, n+1)
	suffix.LCPInts(t32, sa, rank, lcp)
	return &saRef{t32: t32, rank: rank, lcp: lcp}
}

// less reports whether the suffix at a sorts before the suffix at b.
func (ref *saRef) less(a, b uint32) bool {
	return ref.rank[a] < ref.rank[b]
}

// verifyBlock panics unless the block holds the suffixes at exactly the
// stream positions [base, base+len(bucket)) and every adjacent pair
// mismatches the way the LCP table says it must.
func (ref *saRef) verifyBlock(cur, base uint32, bucket []uint32) {
	for idx, p := range bucket {
		r := ref.rank[p]
		if r != int32(base)+int32(idx) {
			panic(fmt.Errorf(
				"blocksa: bucket %d emits suffix %d at stream position %d; its rank is %d",
				cur, p, base+uint32(idx), r))
		}
		if idx == 0 {
			continue
		}
		a := bucket[idx-1]
		l := ref.lcp[r]
		if !(ref.t32[int32(a)+l] < ref.t32[int32(p)+l]) {
			panic(fmt.Errorf(
				"blocksa: bucket %d not sorted at suffixes %d and %d (lcp %d)",
				cur, a, p, l))
		}
	}
}
