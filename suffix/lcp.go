// SPDX-FileCopyrightText: © 2021 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package suffix

import (
	"fmt"
	"math"
)

// kasai fills lcp: lcp[k] is the length of the common prefix of the suffixes
// at sa[k-1] and sa[k], with lcp[0] = 0. The algorithm of Kasai et al. visits
// the suffixes in text order, so the running match length shrinks by at most
// one per step and the whole table costs linear time.
func kasai[T byte | int32](t []T, sa, sainv, lcp []int32) {
	l := int32(0)
	for i, k := range sainv {
		if k == 0 {
			lcp[0] = 0
			l = 0
			continue
		}
		j := sa[k-1] // the suffix preceding i in the suffix array
		l += int32(matchLen(t[int32(i)+l:], t[j+l:]))
		lcp[k] = l
		if l > 0 {
			l--
		}
	}
}

// InvertSA computes the inverse of the suffix array.
func InvertSA(sa, sainv []int32) {
	if len(sa) != len(sainv) {
		panic(fmt.Errorf("suffix: len(sa)=%d != len(sainv)=%d",
			len(sa), len(sainv)))
	}
	for j, i := range sa {
		sainv[i] = int32(j)
	}
}

// LCP computes the LCP table for t. If sa and sainv don't have the length of
// t, they will be temporarily computed.
func LCP(t []byte, sa, sainv, lcp []int32) {
	if len(t) > math.MaxInt32 {
		panic(fmt.Errorf("suffix: len(t)=%d > MaxInt32", len(t)))
	}
	if len(sa) != len(t) {
		sa = make([]int32, len(t))
		Sort(t, sa)
	}
	if len(sainv) != len(sa) {
		sainv = make([]int32, len(sa))
		InvertSA(sa, sainv)
	}
	if len(lcp) != len(t) {
		panic(fmt.Errorf("suffix: len(lcp)=%d != len(t)=%d",
			len(lcp), len(t)))
	}
	kasai(t, sa, sainv, lcp)
}

// LCPInts computes the LCP table for a text over an integer alphabet. If sa
// and sainv don't have the length of t, they will be temporarily computed.
func LCPInts(t []int32, sa, sainv, lcp []int32) {
	if len(t) > math.MaxInt32 {
		panic(fmt.Errorf("suffix: len(t)=%d > MaxInt32", len(t)))
	}
	if len(sa) != len(t) {
		sa = make([]int32, len(t))
		SortInts(t, sa)
	}
	if len(sainv) != len(sa) {
		sainv = make([]int32, len(sa))
		InvertSA(sa, sainv)
	}
	if len(lcp) != len(t) {
		panic(fmt.Errorf("suffix: len(lcp)=%d != len(t)=%d",
			len(lcp), len(t)))
	}
	kasai(t, sa, sainv, lcp)
}

// matchLen computes the length of the common prefix of p and q.
func matchLen[T byte | int32](p, q []T) int {
	if len(q) > len(p) {
		p, q = q, p
	}
	n := 0
	for n < len(q) && p[n] == q[n] {
		n++
	}
	return n
}
