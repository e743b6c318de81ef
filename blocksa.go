// Package blocksa constructs the suffix array of a large text in
// lexicographically ordered blocks of bounded size.
//
// A [Builder] never materializes the whole suffix array; it hands out the
// entries one block at a time through a one-position look-ahead iterator.
// Concatenating the blocks of a full traversal yields the suffix array of the
// text followed by an implicit terminator.
//
// The terminator convention differs from the textbook one: a suffix that runs
// off the end of the text compares greater than any continuation, so the
// terminator-only suffix at position len(t) is the greatest suffix and is the
// last entry of the final block. This keeps the suffix array well-defined
// without storing a terminator symbol in the text.
//
// [KarkkainenSA] implements the blockwise scheme from Kärkkäinen's "Fast BWT"
// paper: a random sample of suffixes delimits the buckets, a difference-cover
// sample breaks deep ties, and a Z-box state machine amortizes the per-suffix
// bucket membership tests. [FullSA] builds the entire suffix array eagerly and
// slices it into blocks; it is only practical for texts that fit comfortably
// in memory, but it provides the same iterator surface.
package blocksa

import (
	"errors"
	"fmt"
)

// Kilobytes and Megabyte defined as the more precise kibibyte and mebibyte.
const (
	_KiB = 1 << 10
	_MiB = 1 << 20
)

// noPos marks an absent position or index. Text lengths are limited to
// keep the value unambiguous.
const noPos = ^uint32(0)

// ErrExhausted indicates that all suffixes have been returned.
var ErrExhausted = errors.New("blocksa: no more suffixes")

// Builder emits the suffix array of a text as a stream of positions in
// lexicographic order. Builders are not safe for concurrent use; independent
// builders over independent texts are fully independent.
type Builder interface {
	// Next returns the next suffix position, computing the next block if
	// necessary. It returns ErrExhausted after the last suffix.
	Next() (uint32, error)

	// HasNext reports whether the next call to Next will succeed.
	HasNext() bool

	// Reset rewinds the iterator so that the next call to Next returns the
	// lexicographically first suffix. Samples are not rebuilt.
	Reset()

	// IsReset reports whether the next call to Next returns the
	// lexicographically first suffix.
	IsReset() bool

	// TextLen returns the length of the text.
	TextLen() uint32

	// BucketSize returns the configured maximum block length.
	BucketSize() uint32

	// SuffixCount returns the total number of suffixes, TextLen()+1.
	SuffixCount() uint32
}

// DCSampler answers order queries from a difference-cover sample of the text.
// Building the sample is the caller's concern; the builders only consult it.
type DCSampler interface {
	// Period returns the difference-cover periodicity V. The blockwise
	// scheme requires V > 3.
	Period() uint32

	// TieBreakOff returns the maximum number of characters that may be
	// compared directly before BreakTie can resolve the order of the
	// suffixes at a and b in constant time. The result is less than
	// Period().
	TieBreakOff(a, b uint32) uint32

	// BreakTie returns the sign of the comparison of the suffixes at a and
	// b. Both positions must be covered by the sample; a and b satisfy
	// this whenever they were obtained by advancing a pair of positions by
	// the corresponding TieBreakOff distance.
	BreakTie(a, b uint32) int
}

// blockSource produces the blocks that a suffixItr drains.
type blockSource interface {
	// nextBlock returns the next block of sorted suffix positions. The
	// returned slice is owned by the source and valid until the following
	// call.
	nextBlock() ([]uint32, error)
	hasMoreBlocks() bool
	resetBlocks()
	blocksReset() bool
}

// suffixItr is the iterator state shared by the builders: the current block,
// a read cursor and a one-slot push-back used by HasNext.
type suffixItr struct {
	src    blockSource
	bucket []uint32
	pos    uint32
	pushed uint32
}

func (it *suffixItr) init(src blockSource) {
	it.src = src
	it.bucket = nil
	it.pos = noPos
	it.pushed = noPos
}

// Next returns the next suffix position; it consumes the push-back slot first
// and fetches the next block when the current one is drained.
func (it *suffixItr) Next() (uint32, error) {
	if it.pushed != noPos {
		v := it.pushed
		it.pushed = noPos
		return v, nil
	}
	for len(it.bucket) == 0 || uint64(it.pos) >= uint64(len(it.bucket)) {
		if !it.src.hasMoreBlocks() {
			return 0, ErrExhausted
		}
		b, err := it.src.nextBlock()
		if err != nil {
			return 0, err
		}
		it.bucket = b
		it.pos = 0
	}
	v := it.bucket[it.pos]
	it.pos++
	return v, nil
}

// HasNext reports whether Next will succeed. On success the fetched value is
// parked in the push-back slot; at most one value can be parked at a time.
func (it *suffixItr) HasNext() bool {
	if it.pushed != noPos {
		return true
	}
	v, err := it.Next()
	if err != nil {
		return false
	}
	if it.pushed != noPos {
		panic(fmt.Errorf("blocksa: push-back slot already occupied"))
	}
	it.pushed = v
	return true
}

// Reset rewinds the iterator to the lexicographically first suffix.
func (it *suffixItr) Reset() {
	it.bucket = nil
	it.pos = noPos
	it.pushed = noPos
	it.src.resetBlocks()
}

// IsReset reports whether the iterator is in its freshly reset state.
func (it *suffixItr) IsReset() bool {
	return len(it.bucket) == 0 && it.pos == noPos && it.pushed == noPos &&
		it.src.blocksReset()
}
