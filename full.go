package blocksa

import (
	"fmt"

	"github.com/rockhowse/blocksa/suffix"
)

// FullSA builds the entire suffix array up front and doles it out one
// bucket-sized block at a time through the same iterator surface as
// [KarkkainenSA]. It needs O(n) words of memory and is the simpler choice
// whenever that fits.
type FullSA struct {
	suffixItr
	t   []byte
	cfg FullConfig
	sa  []uint32
	cur uint32 // offset of the first element of the next block
}

var _ Builder = (*FullSA)(nil)

// NewFullSA creates an eager suffix array builder for the text t.
func NewFullSA(t []byte, cfg FullConfig) (*FullSA, error) {
	cfg.SetDefaults()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	if uint64(len(t)) >= uint64(noPos) {
		return nil, fmt.Errorf(
			"blocksa: text length %d; must be less than %d",
			len(t), noPos)
	}
	s := &FullSA{t: t, cfg: cfg}
	s.suffixItr.init(s)
	s.build()
	return s, nil
}

// TextLen returns the length of the text.
func (s *FullSA) TextLen() uint32 { return uint32(len(s.t)) }

// BucketSize returns the maximum emitted block length.
func (s *FullSA) BucketSize() uint32 { return uint32(s.cfg.BucketSize) }

// SuffixCount returns the total number of suffixes including the terminator.
func (s *FullSA) SuffixCount() uint32 { return uint32(len(s.t)) + 1 }

func (s *FullSA) logf(format string, args ...any) {
	if !s.cfg.Verbose {
		return
	}
	fmt.Fprintf(s.cfg.Logger, format+"\n", args...)
}

// build computes the whole suffix array. An explicit terminator symbol above
// every live symbol reproduces the convention that the terminator suffix is
// the greatest.
func (s *FullSA) build() {
	n := len(s.t)
	s.logf("building full suffix array of %d suffixes", n+1)
	t := make([]int32, n+1)
	for i, c := range s.t {
		t[i] = int32(c)
	}
	t[n] = int32(s.cfg.Sigma)
	sa := make([]int32, n+1)
	suffix.SortInts(t, sa)
	s.sa = make([]uint32, n+1)
	for i, p := range sa {
		s.sa[i] = uint32(p)
	}
	s.cur = 0
}

func (s *FullSA) nextBlock() ([]uint32, error) {
	if !s.hasMoreBlocks() {
		return nil, ErrExhausted
	}
	sz := uint32(min(s.cfg.BucketSize, len(s.sa)-int(s.cur)))
	b := s.sa[s.cur : s.cur+sz]
	s.cur += sz
	return b, nil
}

func (s *FullSA) hasMoreBlocks() bool { return int(s.cur) < len(s.sa) }

func (s *FullSA) resetBlocks() { s.cur = 0 }

func (s *FullSA) blocksReset() bool { return s.cur == 0 }
