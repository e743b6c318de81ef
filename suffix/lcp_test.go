package suffix

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLCPMississippi(t *testing.T) {
	p := []byte("mississippi")
	lcp := make([]int32, len(p))
	LCP(p, nil, nil, lcp)
	want := []int32{0, 1, 1, 4, 0, 0, 1, 0, 2, 1, 3}
	assert.Equal(t, want, lcp)
}

func TestLCPIntsMatchesBytes(t *testing.T) {
	for _, s := range []string{"banana", "mississippi", "aaaaaa", "abcabc"} {
		p := []byte(s)
		wide := make([]int32, len(p))
		for i, c := range p {
			wide[i] = int32(c)
		}
		lcpB := make([]int32, len(p))
		LCP(p, nil, nil, lcpB)
		lcpI := make([]int32, len(wide))
		LCPInts(wide, nil, nil, lcpI)
		assert.Equal(t, lcpB, lcpI, "text %q", s)
	}
}

func TestLCPIntsWithSentinel(t *testing.T) {
	// A terminator above the alphabet keeps every suffix distinct before
	// the end of the text, the way the sanity reference uses the table.
	text := []int32{1, 0, 2, 0, 2, 0, 4}
	sa := make([]int32, len(text))
	SortInts(text, sa)
	sainv := make([]int32, len(text))
	InvertSA(sa, sainv)
	lcp := make([]int32, len(text))
	LCPInts(text, sa, sainv, lcp)
	for k := 1; k < len(sa); k++ {
		want := int32(matchLen(text[sa[k-1]:], text[sa[k]:]))
		assert.Equal(t, want, lcp[k], "rank %d", k)
	}
}

func TestMatchLen(t *testing.T) {
	tests := map[string]struct {
		p, q string
		want int
	}{
		"empty":        {"", "x", 0},
		"no match":     {"abc", "xbc", 0},
		"full shorter": {"abcdefgh", "abcd", 4},
		"long run": {
			"aaaaaaaaaaaaaaaab", "aaaaaaaaaaaaaaaac", 16,
		},
		"mismatch in tail": {"abcdefghij", "abcdefghix", 9},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, matchLen([]byte(tc.p), []byte(tc.q)))
		})
	}
}

func FuzzLCP(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte("a"))
	f.Add([]byte("ab"))
	f.Add([]byte("ba"))
	f.Add([]byte("ababbab"))
	f.Add([]byte("mississippi"))
	f.Fuzz(func(t *testing.T, p []byte) {
		sa := make([]int32, len(p))
		Sort(p, sa)
		for i := 1; i < len(sa); i++ {
			if bytes.Compare(p[sa[i-1]:], p[sa[i]:]) > 0 {
				t.Fatalf("p[sa[%d]=%d:] > p[sa[%d]=%d:]",
					i-1, sa[i-1], i, sa[i])
			}
		}
		lcp := make([]int32, len(p))
		LCP(p, sa, nil, lcp)
		for k, l := range lcp {
			want := int32(0)
			if k > 0 {
				want = int32(matchLen(p[sa[k-1]:], p[sa[k]:]))
			}
			if l != want {
				t.Fatalf("lcp[%d] = %d; want %d", k, l, want)
			}
		}
		// The integer-alphabet path must agree on the widened text.
		wide := make([]int32, len(p))
		for i, c := range p {
			wide[i] = int32(c)
		}
		lcpI := make([]int32, len(wide))
		LCPInts(wide, nil, nil, lcpI)
		for k, l := range lcpI {
			if l != lcp[k] {
				t.Fatalf("LCPInts[%d] = %d; LCP says %d",
					k, l, lcp[k])
			}
		}
	})
}
