// SPDX-FileCopyrightText: © 2021 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package suffix provides whole-text suffix array construction and LCP
// computation. The sorter implements the SA-IS algorithm of Nong, Zhang and
// Chan, which runs in linear time for texts over compact alphabets.
package suffix

import (
	"fmt"
	"math"
)

// Sort computes the suffix array of t under the usual lexicographic order,
// where a suffix that is a prefix of another sorts first. The slice sa must
// have the same length as t.
func Sort(t []byte, sa []int32) {
	if len(t) != len(sa) {
		panic(fmt.Errorf("suffix: len(t)=%d is different from len(sa)=%d",
			len(t), len(sa)))
	}
	n := len(t)
	if n == 0 {
		return
	}
	// Shift the alphabet up by one and append a unique smallest
	// terminator; saisRec requires it.
	t1 := make([]int32, n+1)
	for i, c := range t {
		t1[i] = int32(c) + 1
	}
	t1[n] = 0
	sa1 := make([]int32, n+1)
	saisRec(t1, sa1, 257)
	// sa1[0] is the terminator suffix.
	copy(sa, sa1[1:])
}

// SortInts computes the suffix array of a text over an integer alphabet. The
// slice sa must have the same length as t. Working memory is proportional to
// the span of the symbol values, so the alphabet should be compact.
func SortInts(t []int32, sa []int32) {
	if len(t) != len(sa) {
		panic(fmt.Errorf("suffix: len(t)=%d is different from len(sa)=%d",
			len(t), len(sa)))
	}
	n := len(t)
	if n == 0 {
		return
	}
	lo, hi := t[0], t[0]
	for _, c := range t[1:] {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	span := int64(hi) - int64(lo) + 2
	if span > math.MaxInt32 {
		panic(fmt.Errorf("suffix: symbol span %d exceeds MaxInt32", span))
	}
	t1 := make([]int32, n+1)
	for i, c := range t {
		t1[i] = c - lo + 1
	}
	t1[n] = 0
	sa1 := make([]int32, n+1)
	saisRec(t1, sa1, int32(span))
	copy(sa, sa1[1:])
}

// saisRec computes the suffix array of t, which must end with a unique
// smallest symbol 0, with all symbols in [0, k). The recursion reuses sa as
// scratch space for the reduced problem the way the reference implementation
// does.
func saisRec(t, sa []int32, k int32) {
	n := len(t)
	if n == 1 {
		sa[0] = 0
		return
	}

	// Suffix types; true marks an S-type position.
	isS := make([]bool, n)
	isS[n-1] = true
	for i := n - 2; i >= 0; i-- {
		isS[i] = t[i] < t[i+1] || (t[i] == t[i+1] && isS[i+1])
	}
	isLMS := func(i int) bool { return i > 0 && isS[i] && !isS[i-1] }

	c := make([]int32, k)
	for _, x := range t {
		c[x]++
	}
	bkt := make([]int32, k)
	bktStarts := func() {
		var s int32
		for i, x := range c {
			bkt[i] = s
			s += x
		}
	}
	bktEnds := func() {
		var s int32
		for i, x := range c {
			s += x
			bkt[i] = s
		}
	}

	// induce derives the order of all L suffixes from the S suffixes
	// placed at their bucket ends, then the order of all S suffixes from
	// the L suffixes.
	induce := func() {
		bktStarts()
		for i := 0; i < n; i++ {
			if j := sa[i]; j > 0 && !isS[j-1] {
				b := t[j-1]
				sa[bkt[b]] = j - 1
				bkt[b]++
			}
		}
		bktEnds()
		for i := n - 1; i >= 0; i-- {
			if j := sa[i]; j > 0 && isS[j-1] {
				b := t[j-1]
				bkt[b]--
				sa[bkt[b]] = j - 1
			}
		}
	}

	// Stage 1: induce the order of the LMS substrings from an arbitrary
	// placement of the LMS positions at their bucket ends.
	for i := range sa {
		sa[i] = -1
	}
	bktEnds()
	for i := 1; i < n; i++ {
		if isLMS(i) {
			b := t[i]
			bkt[b]--
			sa[bkt[b]] = int32(i)
		}
	}
	induce()

	// Compact the LMS positions, now in sorted LMS-substring order.
	m := 0
	for i := 0; i < n; i++ {
		if j := sa[i]; j > 0 && isLMS(int(j)) {
			sa[m] = j
			m++
		}
	}

	// Name the LMS substrings; equal substrings get equal names.
	for i := m; i < n; i++ {
		sa[i] = -1
	}
	var name int32
	prev := int32(-1)
	for i := 0; i < m; i++ {
		pos := sa[i]
		if prev < 0 || !lmsEqual(t, isS, prev, pos) {
			name++
		}
		prev = pos
		// LMS positions are at least two apart, so pos/2 is unique.
		sa[m+int(pos)/2] = name - 1
	}
	// Collect the names into the reduced text, in text order, at the tail
	// of sa.
	for i, j := n-1, n-1; i >= m; i-- {
		if sa[i] >= 0 {
			sa[j] = sa[i]
			j--
		}
	}
	s1 := sa[n-m:]

	// Stage 2: order the LMS suffixes, recursing if any names collide.
	if int(name) < m {
		saisRec(s1, sa[:m], name)
	} else {
		for i := 0; i < m; i++ {
			sa[s1[i]] = int32(i)
		}
	}

	// Map the reduced suffix array back to text positions.
	for i, j := 1, 0; i < n; i++ {
		if isLMS(i) {
			s1[j] = int32(i)
			j++
		}
	}
	for i := 0; i < m; i++ {
		sa[i] = s1[sa[i]]
	}

	// Stage 3: place the sorted LMS suffixes at their bucket ends and
	// induce the final order.
	for i := m; i < n; i++ {
		sa[i] = -1
	}
	bktEnds()
	for i := m - 1; i >= 0; i-- {
		j := sa[i]
		sa[i] = -1
		b := t[j]
		bkt[b]--
		sa[bkt[b]] = j
	}
	induce()
}

// lmsEqual reports whether the LMS substrings starting at p and q are equal.
// Both arguments must be LMS positions.
func lmsEqual(t []int32, isS []bool, p, q int32) bool {
	if p == q {
		return true
	}
	isLMS := func(i int32) bool { return i > 0 && isS[i] && !isS[i-1] }
	for d := int32(0); ; d++ {
		if d > 0 {
			pe, qe := isLMS(p+d), isLMS(q+d)
			if pe && qe {
				return true
			}
			if pe != qe {
				return false
			}
		}
		if t[p+d] != t[q+d] || isS[p+d] != isS[q+d] {
			return false
		}
	}
}
