package blocksa

import "sort"

// Multikey quicksort of suffix positions, following Bentley and Sedgewick.
// Suffixes that run off the end of the text sort greater than any
// continuation; the alphabet size sigma doubles as the off-the-end character
// since every live symbol is less than it.

// insertionLimit is the range length below which insertion sort takes over.
const insertionLimit = 16

// mkeyQSortSuf sorts the suffix positions in s by the suffixes of t they
// start. All symbols of t must be less than sigma.
func mkeyQSortSuf(t []byte, s []uint32, sigma int) {
	mkqSort(t, s, 0, sigma, nil, 0)
}

// mkeyQSortSufDC is mkeyQSortSuf with a difference-cover sample as a
// tie-breaker: once a group of suffixes shares a prefix at least as long as
// the cover period, the remaining order is resolved through the sample
// instead of by further character comparisons.
func mkeyQSortSufDC(t []byte, s []uint32, sigma int, dc DCSampler) {
	mkqSort(t, s, 0, sigma, dc, dc.Period())
}

// sufChar returns the character of the suffix at position s at offset d, or
// sigma if the suffix has run off the end of the text.
func sufChar(t []byte, s, d uint32, sigma int) int {
	if i := s + d; i < uint32(len(t)) {
		return int(t[i])
	}
	return sigma
}

func mkqSort(t []byte, s []uint32, depth uint32, sigma int, dc DCSampler, period uint32) {
	for len(s) > 1 {
		if dc != nil && depth >= period {
			// Everything in s shares at least period characters;
			// the cover breaks the remaining ties in constant time
			// per pair.
			sort.Slice(s, func(i, j int) bool {
				a, b := s[i], s[j]
				if a == b {
					return false
				}
				d := dc.TieBreakOff(a, b)
				return dc.BreakTie(a+d, b+d) < 0
			})
			return
		}
		if len(s) <= insertionLimit {
			insertionSortSuf(t, s, depth)
			return
		}
		p := median3Char(t, s, depth, sigma)
		// Three-way partition on the character at the current depth.
		lt, i, gt := 0, 0, len(s)
		for i < gt {
			c := sufChar(t, s[i], depth, sigma)
			switch {
			case c < p:
				s[lt], s[i] = s[i], s[lt]
				lt++
				i++
			case c > p:
				gt--
				s[i], s[gt] = s[gt], s[i]
			default:
				i++
			}
		}
		mkqSort(t, s[:lt], depth, sigma, dc, period)
		mkqSort(t, s[gt:], depth, sigma, dc, period)
		if p == sigma {
			// The equal group ran off the end of the text; two
			// distinct suffixes always separate before both are
			// off, so at most one element is left.
			return
		}
		s = s[lt:gt]
		depth++
	}
}

func median3Char(t []byte, s []uint32, depth uint32, sigma int) int {
	a := sufChar(t, s[0], depth, sigma)
	b := sufChar(t, s[len(s)/2], depth, sigma)
	c := sufChar(t, s[len(s)-1], depth, sigma)
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		b = a
	}
	return b
}

func insertionSortSuf(t []byte, s []uint32, depth uint32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && sufCmp(t, s[j], s[j-1], depth) < 0; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// sufCmp compares the suffixes at a and b whose first depth characters are
// known to be equal, under the off-the-end-is-greater convention.
func sufCmp(t []byte, a, b, depth uint32) int {
	if a == b {
		return 0
	}
	n := uint32(len(t))
	i, j := a+depth, b+depth
	for i < n && j < n {
		if t[i] != t[j] {
			if t[i] < t[j] {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	if i >= n && j >= n {
		// Both were already off the end; the shorter suffix fell off
		// first and is the greater one.
		if a < b {
			return -1
		}
		return 1
	}
	if i >= n {
		return 1
	}
	return -1
}
