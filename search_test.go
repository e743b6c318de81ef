package blocksa

import (
	"math/rand"
	"testing"
)

func TestDollarCmp(t *testing.T) {
	text := []byte("banana")
	n := uint32(len(text))
	// A suffix that runs off the end is the greater one, so the
	// terminator suffix beats everything.
	if dollarCmp(text, 5, 3) <= 0 {
		t.Fatal(`"a" must sort above "ana"`)
	}
	if dollarCmp(text, n, 0) <= 0 {
		t.Fatal("terminator suffix must sort above all others")
	}
	if dollarCmp(text, 1, 3) >= 0 {
		t.Fatal(`"anana" must sort below "ana"`)
	}
	if dollarCmp(text, 2, 2) != 0 {
		t.Fatal("suffix must compare equal to itself")
	}
}

func TestBinarySASearch(t *testing.T) {
	texts := [][]byte{
		[]byte("mississippi"),
		randDNA(400, 41),
		[]byte("aaaaaaaaaaaaaaa"),
	}
	rng := rand.New(rand.NewSource(42))
	for _, text := range texts {
		n := uint32(len(text))
		samples := randomPositions(rng, len(text), min(7, len(text)/2))
		mkeyQSortSuf(text, samples, 256)
		inSample := make(map[uint32]bool)
		for _, p := range samples {
			inSample[p] = true
		}
		for i := uint32(0); i < n; i++ {
			r := binarySASearch(text, i, samples)
			if inSample[i] {
				if r != noPos {
					t.Fatalf("sample %d placed in bucket %d",
						i, r)
				}
				continue
			}
			if r == noPos {
				t.Fatalf("non-sample %d reported as sample", i)
			}
			if r > 0 && dollarCmp(text, samples[r-1], i) >= 0 {
				t.Fatalf("suffix %d not above bucket %d lower bound",
					i, r)
			}
			if int(r) < len(samples) &&
				dollarCmp(text, i, samples[r]) >= 0 {
				t.Fatalf("suffix %d not below bucket %d upper bound",
					i, r)
			}
		}
	}
}
