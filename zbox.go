package blocksa

// calcZ fills z with the Z array of the suffix starting at off: z[k] is the
// length of the longest common prefix of t[off:] and t[off+k:]. Only
// len(z) entries are computed; z[0] stays 0 by convention. Entries whose
// shift reaches past the end of the text are 0.
func calcZ(t []byte, off uint32, z []uint32) {
	for i := range z {
		z[i] = 0
	}
	s := t[off:]
	n := len(s)
	// [l,r) is the rightmost Z box found so far.
	l, r := 0, 0
	for k := 1; k < len(z) && k < n; k++ {
		zk := 0
		if k < r {
			zk = min(r-k, int(z[k-l]))
		}
		for k+zk < n && s[zk] == s[k+zk] {
			zk++
		}
		z[k] = uint32(zk)
		if k+zk > r {
			l, r = k, k+zk
		}
	}
}
