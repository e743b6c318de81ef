package blocksa

import "fmt"

// PackedText stores a text over a four-symbol alphabet at two bits per
// symbol. The builders work on the unpacked byte view, so a packed text is
// unpacked once at construction; the packed form is the storage and exchange
// representation.
type PackedText struct {
	b []byte
	n int
}

// Pack2 packs a text whose symbols are all less than 4.
func Pack2(t []byte) (PackedText, error) {
	b := make([]byte, (len(t)+3)/4)
	for i, c := range t {
		if c >= 4 {
			return PackedText{}, fmt.Errorf(
				"blocksa: t[%d]=%d cannot be packed into 2 bits",
				i, c)
		}
		b[i>>2] |= c << (2 * uint(i&3))
	}
	return PackedText{b: b, n: len(t)}, nil
}

// Len returns the number of symbols.
func (p PackedText) Len() int { return p.n }

// At returns the symbol at index i.
func (p PackedText) At(i int) byte {
	if i < 0 || i >= p.n {
		panic(fmt.Errorf("blocksa: index %d out of range [0,%d)", i, p.n))
	}
	return p.b[i>>2] >> (2 * uint(i&3)) & 3
}

// Bytes unpacks the text into a fresh byte slice suitable for the builders.
func (p PackedText) Bytes() []byte {
	t := make([]byte, p.n)
	for i := range t {
		t[i] = p.b[i>>2] >> (2 * uint(i&3)) & 3
	}
	return t
}
