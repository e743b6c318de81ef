package blocksa

// suffixLcp returns the length of the longest common prefix of the suffixes
// starting at a and b.
func suffixLcp(t []byte, a, b uint32) uint32 {
	n := uint32(len(t))
	var c uint32
	for a+c < n && b+c < n && t[a+c] == t[b+c] {
		c++
	}
	return c
}

// binarySASearch locates the bucket that the suffix at suf falls into, given
// the lexicographically sorted sample suffixes sa. Bucket k holds the
// suffixes strictly between sa[k-1] and sa[k]; the result is in
// [0, len(sa)]. If suf is itself a sample the function returns noPos.
//
// The longest common prefixes against the narrowing bounds are carried along
// so that repeated character comparisons are skipped.
func binarySASearch(t []byte, suf uint32, sa []uint32) uint32 {
	n := uint32(len(t))
	lo, hi := uint32(0), uint32(len(sa))+1
	var loLcp, hiLcp uint32
	for {
		m := (lo + hi) >> 1
		if m == lo {
			return lo
		}
		s := sa[m-1]
		if s == suf {
			return noPos
		}
		// Every suffix inside (lo, hi) shares at least
		// min(loLcp, hiLcp) characters with suf.
		c := min(loLcp, hiLcp)
		for suf+c < n && s+c < n && t[suf+c] == t[s+c] {
			c++
		}
		switch {
		case suf+c == n:
			// suf fell off the end and is the greater one.
			lo, loLcp = m, c
		case s+c == n || t[suf+c] < t[s+c]:
			hi, hiLcp = m, c
		default:
			lo, loLcp = m, c
		}
	}
}
