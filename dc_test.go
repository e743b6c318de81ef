package blocksa

import (
	"fmt"
	"sort"
)

// dollarCmp compares the suffixes at a and b, a and b in [0, len(t)]. Running
// off the end of the text sorts greater than any symbol, so the empty suffix
// at len(t) is the greatest.
func dollarCmp(t []byte, a, b uint32) int {
	if a == b {
		return 0
	}
	n := uint32(len(t))
	c := suffixLcp(t, a, b)
	switch {
	case a+c == n:
		return 1
	case b+c == n:
		return -1
	case t[a+c] < t[b+c]:
		return -1
	default:
		return 1
	}
}

// refSA computes the suffix array of t, terminator included, by direct
// comparison. Quadratic, test-only.
func refSA(t []byte) []uint32 {
	sa := make([]uint32, len(t)+1)
	for i := range sa {
		sa[i] = uint32(i)
	}
	sort.Slice(sa, func(i, j int) bool {
		return dollarCmp(t, sa[i], sa[j]) < 0
	})
	return sa
}

// diffCover computes a difference cover of period v greedily: residues are
// admitted while they still cover new differences. Not minimal, but
// guaranteed to be a cover.
func diffCover(v uint32) []uint32 {
	covered := make([]bool, v)
	covered[0] = true
	left := v - 1
	var d []uint32
	for r := uint32(0); r < v && left > 0; r++ {
		helps := len(d) == 0
		for _, x := range d {
			if !covered[(r+v-x)%v] || !covered[(x+v-r)%v] {
				helps = true
				break
			}
		}
		if !helps {
			continue
		}
		for _, x := range d {
			for _, diff := range []uint32{(r + v - x) % v, (x + v - r) % v} {
				if !covered[diff] {
					covered[diff] = true
					left--
				}
			}
		}
		d = append(d, r)
	}
	if left > 0 {
		panic(fmt.Sprintf("diffCover(%d) incomplete", v))
	}
	return d
}

// rankDC is a reference difference-cover oracle: tie-break offsets follow a
// real difference cover of the requested period, and ties are broken through
// precomputed suffix ranks, so BreakTie is valid for every pair.
type rankDC struct {
	v    uint32
	inD  []bool
	rank []uint32
}

func newRankDC(t []byte, v uint32) *rankDC {
	rank := make([]uint32, len(t)+1)
	for r, p := range refSA(t) {
		rank[p] = uint32(r)
	}
	inD := make([]bool, v)
	for _, x := range diffCover(v) {
		inD[x] = true
	}
	return &rankDC{v: v, inD: inD, rank: rank}
}

func (d *rankDC) Period() uint32 { return d.v }

func (d *rankDC) TieBreakOff(a, b uint32) uint32 {
	for delta := uint32(0); delta < d.v; delta++ {
		if d.inD[(a+delta)%d.v] && d.inD[(b+delta)%d.v] {
			return delta
		}
	}
	panic(fmt.Sprintf("difference cover misses pair (%d,%d)", a, b))
}

func (d *rankDC) BreakTie(a, b uint32) int {
	return int(int64(d.rank[a]) - int64(d.rank[b]))
}
