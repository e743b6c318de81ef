package blocksa

import (
	"fmt"
	"math/rand"

	"golang.org/x/exp/slices"
)

// defaultZWindow is the Z array length used when no difference-cover sample
// is attached. Past the window the membership test falls back to a raw LCP
// probe.
const defaultZWindow = 64

// KarkkainenSA builds the suffix array of a text a block at a time following
// the scheme of Kärkkäinen's "Fast BWT" paper. A random, iteratively refined
// sample of suffixes delimits the buckets; each bucket is accumulated with a
// Z-box-amortized membership test against its two bounding samples, sorted,
// and sealed with the right-hand sample.
//
// Memory stays at O(n/B) words for the sample set plus one block buffer of at
// most BucketSize entries.
type KarkkainenSA struct {
	suffixItr
	t   []byte
	cfg KarkkainenConfig
	dc  DCSampler
	rng *rand.Rand

	sampleSuffs []uint32
	cur         uint32 // index of the next bucket to emit
	emitted     uint32 // stream position of the next block's first entry
	buf         []uint32
	zHi, zLo    []uint32

	// ref holds the reference suffix order tables; sanity-check mode only.
	ref *saRef
}

var _ Builder = (*KarkkainenSA)(nil)

// NewKarkkainenSA creates a blockwise suffix array builder for the text t.
// The builder borrows t for its whole life and must see it unmodified. The
// sample set is selected eagerly, so construction already performs the
// expensive text scans; the blocks themselves are computed on demand.
func NewKarkkainenSA(t []byte, cfg KarkkainenConfig) (*KarkkainenSA, error) {
	cfg.SetDefaults()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	if uint64(len(t)) >= uint64(noPos) {
		return nil, fmt.Errorf(
			"blocksa: text length %d; must be less than %d",
			len(t), noPos)
	}
	s := &KarkkainenSA{
		t:   t,
		cfg: cfg,
		dc:  cfg.DC,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
	s.suffixItr.init(s)
	if cfg.SanityCheck {
		for i, c := range t {
			if int(c) >= cfg.Sigma {
				panic(fmt.Errorf(
					"blocksa: t[%d]=%d outside alphabet of size %d",
					i, c, cfg.Sigma))
			}
		}
		s.ref = newSARef(t, cfg.Sigma)
	}
	s.build()
	return s, nil
}

// TextLen returns the length of the text.
func (s *KarkkainenSA) TextLen() uint32 { return uint32(len(s.t)) }

// BucketSize returns the maximum emitted block length.
func (s *KarkkainenSA) BucketSize() uint32 { return uint32(s.cfg.BucketSize) }

// SuffixCount returns the total number of suffixes including the terminator.
func (s *KarkkainenSA) SuffixCount() uint32 { return uint32(len(s.t)) + 1 }

// DCPeriod returns the periodicity of the attached difference-cover sample,
// or 0 if none is attached.
func (s *KarkkainenSA) DCPeriod() uint32 {
	if s.dc == nil {
		return 0
	}
	return s.dc.Period()
}

func (s *KarkkainenSA) logf(format string, args ...any) {
	if !s.cfg.Verbose {
		return
	}
	fmt.Fprintf(s.cfg.Logger, format+"\n", args...)
}

func (s *KarkkainenSA) build() {
	if s.cfg.BucketSize <= len(s.t) {
		s.logf("building samples")
		s.buildSamples()
	} else {
		s.logf("skipping sample selection since text length %d is less than bucket size %d",
			len(s.t), s.cfg.BucketSize)
	}
	s.cur, s.emitted = 0, 0
}

func (s *KarkkainenSA) hasMoreBlocks() bool {
	return s.cur <= uint32(len(s.sampleSuffs))
}

func (s *KarkkainenSA) resetBlocks() { s.cur, s.emitted = 0, 0 }

func (s *KarkkainenSA) blocksReset() bool { return s.cur == 0 }

// zLen returns the length of the per-bucket Z arrays.
func (s *KarkkainenSA) zLen() int {
	if s.dc != nil {
		return int(s.dc.Period())
	}
	return defaultZWindow
}

// buildSamples selects the bucket-delineating sample suffixes such that no
// bucket holds more than BucketSize-1 suffixes. Some care is taken to make
// each bucket's size close to the limit without going over.
func (s *KarkkainenSA) buildSamples() {
	t := s.t
	n := uint32(len(t))
	bsz := uint32(s.cfg.BucketSize) - 1 // leave room for the sealing sample
	numSamples := ((n / bsz) + 1) << 1  // 2x oversampling relative to n/bsz
	s.logf("generating %d random sample suffixes", numSamples)
	s.sampleSuffs = s.sampleSuffs[:0]
	for i := uint32(0); i < numSamples; i++ {
		s.sampleSuffs = append(s.sampleSuffs, s.rng.Uint32()%n)
	}
	// Duplicates must go before the multikey sort; sorting identical
	// suffixes degenerates badly.
	slices.Sort(s.sampleSuffs)
	s.sampleSuffs = slices.Compact(s.sampleSuffs)
	s.logf("multikey qsorting %d samples", len(s.sampleSuffs))
	if s.dc != nil {
		mkeyQSortSufDC(t, s.sampleSuffs, s.cfg.Sigma, s.dc)
	} else {
		mkeyQSortSuf(t, s.sampleSuffs, s.cfg.Sigma)
	}
	limit := 20
	for ; limit > 0; limit-- {
		numBuckets := len(s.sampleSuffs) + 1
		szs := make([]uint32, numBuckets)
		reps := make([]uint32, numBuckets)
		for i := range reps {
			reps[i] = noPos
		}
		// Determine the bucket of every suffix by binary search across
		// the sorted samples and keep one random representative per
		// bucket for splitting.
		s.logf("  binary sorting into buckets")
		div10 := (n + 9) / 10
		mark := div10
		for i := uint32(0); i < n; i++ {
			if i == mark {
				s.logf("  %d%%", mark/div10*10)
				mark += div10
			}
			r := binarySASearch(t, i, s.sampleSuffs)
			if r == noPos {
				continue // i is one of the samples
			}
			szs[r]++
			if reps[r] == noPos || s.rng.Uint32()&1 == 0 {
				reps[r] = i // clobbers the previous one
			}
		}
		s.logf("  100%%")
		added, merged := 0, 0
		s.logf("splitting and merging")
		for i := 0; i < numBuckets; i++ {
			mergedSz := bsz + 1
			if s.cfg.SanityCheck && szs[i] != 0 && reps[i] == noPos {
				panic(fmt.Errorf(
					"blocksa: bucket %d has %d suffixes but no representative",
					i, szs[i]))
			}
			if i < numBuckets-1 {
				mergedSz = szs[i] + szs[i+1] + 1
			}
			if mergedSz <= bsz {
				// Fold bucket i into bucket i+1. The old sample
				// between them becomes the representative so
				// that the merged bucket keeps one.
				szs[i+1] += szs[i] + 1
				reps[i+1] = s.sampleSuffs[i+added]
				s.sampleSuffs = slices.Delete(
					s.sampleSuffs, i+added, i+added+1)
				szs = slices.Delete(szs, i, i+1)
				reps = slices.Delete(reps, i, i+1)
				i--
				numBuckets--
				merged++
				if s.cfg.SanityCheck &&
					numBuckets != len(s.sampleSuffs)+1-added {
					panic(fmt.Errorf(
						"blocksa: merge bookkeeping: %d buckets, %d samples, %d added",
						numBuckets, len(s.sampleSuffs), added))
				}
			} else if szs[i] > bsz {
				// The representative splits the bucket. It
				// sorts between the bounding samples by
				// construction, so the sample array stays
				// ordered without a re-sort.
				s.sampleSuffs = slices.Insert(
					s.sampleSuffs, i+added, reps[i])
				if s.cfg.SanityCheck {
					s.checkSampleOrder(i + added)
				}
				added++
			}
		}
		if added == 0 {
			break
		}
		s.logf("split %d, merged %d; iterating...", added, merged)
	}
	if limit == 0 {
		// Probabilistic backstop: unlucky samples may not converge.
		s.logf("iterated too many times; trying again...")
		s.buildSamples()
		return
	}
	s.logf("avg bucket size: %.1f (target: %d)",
		float64(n-uint32(len(s.sampleSuffs)))/float64(len(s.sampleSuffs)+1),
		bsz)
}

// checkSampleOrder panics unless the sample at index i sorts strictly between
// its neighbours; sanity-check mode only.
func (s *KarkkainenSA) checkSampleOrder(i int) {
	if i > 0 && !s.ref.less(s.sampleSuffs[i-1], s.sampleSuffs[i]) {
		panic(fmt.Errorf(
			"blocksa: sample %d at position %d not above its left neighbour",
			i, s.sampleSuffs[i]))
	}
	if i+1 < len(s.sampleSuffs) &&
		!s.ref.less(s.sampleSuffs[i], s.sampleSuffs[i+1]) {
		panic(fmt.Errorf(
			"blocksa: sample %d at position %d not below its right neighbour",
			i, s.sampleSuffs[i]))
	}
}

// tieBreakingLcp computes the LCP of the suffixes at a and b, bounded by the
// distance at which the difference-cover sample can break the tie. If the
// tie-breaker is employed the LCP may be an underestimate and soft is true.
// less reports whether the suffix at a sorts before the suffix at b.
func (s *KarkkainenSA) tieBreakingLcp(a, b uint32) (lcp uint32, soft, less bool) {
	t := s.t
	n := uint32(len(t))
	d := s.dc.TieBreakOff(a, b)
	var c uint32
	for c < d && // we haven't hit the tie breaker
		c < n-a && // we haven't fallen off the LHS suffix
		c < n-b && // we haven't fallen off the RHS suffix
		t[a+c] == t[b+c] {
		c++
	}
	switch {
	case c == n-a:
		// Fell off a; a is the greater one.
		return c, false, false
	case c == n-b:
		return c, false, true
	case c == d:
		return c, true, s.dc.BreakTie(a+c, b+c) < 0
	default:
		return c, false, t[a+c] < t[b+c]
	}
}

// cmpState is the per-bound state of the amortized membership test: j is the
// start of the furthest-extending previous match, k is one past its right
// edge and soft marks k as a difference-cover underestimate. The states for
// the two bounds of a bucket are kept independently.
type cmpState struct {
	j, k int64
	soft bool
}

func (st *cmpState) init() {
	st.j, st.k, st.soft = -1, -1, false
}

// lookupSuffixZ returns the Z value at zOff for the suffix at off, computing
// it from scratch past the end of the precomputed array.
func lookupSuffixZ(t []byte, zOff, off uint32, z []uint32) uint32 {
	if int(zOff) < len(z) {
		return z[zOff]
	}
	return suffixLcp(t, off+zOff, off)
}

// suffixCmp reports whether the suffix at i sorts before the sample suffix at
// cmp. It is called with monotonically increasing i during a bucket scan and
// amortizes the character comparisons through the Z array z anchored at cmp,
// following the SMALLERSUFFIXES function of the "Fast BWT" paper.
func (s *KarkkainenSA) suffixCmp(cmp, i uint32, st *cmpState, z []uint32) bool {
	t := s.t
	n := uint32(len(t))
	var l uint32
	if int64(i) > st.k {
		// i is not covered by any previous match.
		st.k = int64(i) // so that i+l == k
		l = 0
		st.soft = false
	} else {
		zIdx := uint32(int64(i) - st.j)
		if int(zIdx) < len(z) || s.dc == nil {
			// Go as far as the Z box says.
			l = lookupSuffixZ(t, zIdx, cmp, z)
			if i+l > n {
				l = n - i
			}
			// Possibly to be extended below.
		} else {
			// Past the point of no more Z boxes.
			var less bool
			l, st.soft, less = s.tieBreakingLcp(i, cmp)
			if s.cfg.SanityCheck {
				if less != s.ref.less(i, cmp) {
					panic(fmt.Errorf(
						"blocksa: tie-break order for %d vs %d is wrong",
						i, cmp))
				}
				if ref := suffixLcp(t, i, cmp); st.soft && l > ref ||
					!st.soft && l != ref {
					panic(fmt.Errorf(
						"blocksa: tie-break lcp %d (soft=%t) vs true lcp %d",
						l, st.soft, ref))
				}
			}
			st.j = int64(i)
			st.k = int64(i) + int64(l)
			return less
		}
	}

	if int64(i)+int64(l) == st.k {
		// The match extends exactly as far as the previous one (or
		// there is neither a Z box nor a previous match): extend.
		for l < n-cmp && st.k < int64(n) && t[cmp+l] == t[uint32(st.k)] {
			st.k++
			l++
		}
		st.j = int64(i) // update the furthest-extending LHS
		st.soft = false
	} else if int64(i)+int64(l) > st.k {
		// The Z box reaches beyond the previous match: clamp to just
		// after it. A soft previous match may still be refined.
		l = uint32(st.k - int64(i))
		st.j = int64(i)
		if st.soft {
			for l < n-cmp && st.k < int64(n) && t[cmp+l] == t[uint32(st.k)] {
				st.k++
				l++
			}
			st.soft = false
		}
	}

	if s.cfg.SanityCheck {
		ref := suffixLcp(t, i, cmp)
		if st.soft && l > ref || !st.soft && l != ref {
			panic(fmt.Errorf(
				"blocksa: amortized lcp %d (soft=%t) vs true lcp %d for %d vs %d",
				l, st.soft, ref, i, cmp))
		}
	}

	// Compare the next character. Falling off the sample implies the
	// sample is the greater one.
	if l+i != n && (l == n-cmp || t[i+l] < t[cmp+l]) {
		return true
	}
	return false
}

// nextBlock computes the current bucket: all suffixes strictly between the
// bounding samples, sorted, with the right-hand sample appended (or the
// terminator position for the final bucket).
func (s *KarkkainenSA) nextBlock() ([]uint32, error) {
	if !s.hasMoreBlocks() {
		return nil, ErrExhausted
	}
	t := s.t
	n := uint32(len(t))
	s.logf("getting block %d of %d", s.cur+1, len(s.sampleSuffs)+1)
	bucket := s.buf[:0]
	lo, hi := noPos, noPos
	if len(s.sampleSuffs) == 0 {
		s.logf("  no samples; assembling all-inclusive block")
		for i := uint32(0); i < n; i++ {
			bucket = append(bucket, i)
		}
	} else {
		first := s.cur == 0
		last := s.cur == uint32(len(s.sampleSuffs))
		v := s.zLen()
		s.logf("  calculating Z arrays")
		if !last {
			hi = s.sampleSuffs[s.cur]
			if len(s.zHi) != v {
				s.zHi = make([]uint32, v)
			}
			calcZ(t, hi, s.zHi)
		}
		if !first {
			lo = s.sampleSuffs[s.cur-1]
			if len(s.zLo) != v {
				s.zLo = make([]uint32, v)
			}
			calcZ(t, lo, s.zLo)
		}

		// The critical loop: pick out the suffixes that fall between
		// the bounding samples.
		var stHi, stLo cmpState
		stHi.init()
		stLo.init()
		s.logf("  entering block accumulator loop")
		div10 := (n + 9) / 10
		mark := div10
		for i := uint32(0); i < n; i++ {
			if i == mark {
				s.logf("  %d%%", mark/div10*10)
				mark += div10
			}
			if i == hi || i == lo {
				continue // equal to one of the bookends
			}
			if hi != noPos && !s.suffixCmp(hi, i, &stHi, s.zHi) {
				continue // belongs to a later bucket
			}
			if lo != noPos && s.suffixCmp(lo, i, &stLo, s.zLo) {
				continue // belongs to an earlier bucket
			}
			bucket = append(bucket, i)
			if s.cfg.SanityCheck && len(bucket) >= s.cfg.BucketSize {
				panic(fmt.Errorf(
					"blocksa: bucket %d overflows size %d",
					s.cur, s.cfg.BucketSize))
			}
		}
		s.logf("  100%%")
	}
	if len(bucket) > 0 {
		s.logf("  sorting block of length %d", len(bucket))
		if s.dc != nil {
			mkeyQSortSufDC(t, bucket, s.cfg.Sigma, s.dc)
		} else {
			mkeyQSortSuf(t, bucket, s.cfg.Sigma)
		}
	}
	if hi != noPos {
		// Not the final bucket; seal it with the sample on the RHS.
		bucket = append(bucket, hi)
	} else {
		// Final bucket; the terminator suffix goes last.
		bucket = append(bucket, n)
	}
	if s.cfg.SanityCheck {
		s.ref.verifyBlock(s.cur, s.emitted, bucket)
	}
	s.logf("returning block of %d", len(bucket))
	s.buf = bucket
	s.cur++
	s.emitted += uint32(len(bucket))
	return bucket, nil
}
