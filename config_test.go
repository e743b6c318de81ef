package blocksa

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigJSON(t *testing.T) {
	cfg := &KarkkainenConfig{
		BucketSize:  1024,
		Sigma:       4,
		Seed:        99,
		SanityCheck: true,
	}
	p, err := cfg.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	parsed, err := ParseJSON(p)
	if err != nil {
		t.Fatalf("ParseJSON: %v\n%s", err, p)
	}
	got, ok := parsed.(*KarkkainenConfig)
	if !ok {
		t.Fatalf("ParseJSON returned %T", parsed)
	}
	if d := cmp.Diff(cfg, got); d != "" {
		t.Fatalf("round trip (-want +got):\n%s", d)
	}
}

func TestConfigJSONFull(t *testing.T) {
	cfg := &FullConfig{BucketSize: 512, Sigma: 4, Verbose: true}
	p, err := cfg.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	parsed, err := ParseJSON(p)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if d := cmp.Diff(cfg, parsed.(*FullConfig)); d != "" {
		t.Fatalf("round trip (-want +got):\n%s", d)
	}
}

func TestParseJSONErrors(t *testing.T) {
	if _, err := ParseJSON([]byte(`{"Type":"Skew7"}`)); err == nil {
		t.Fatal("unknown builder type accepted")
	}
	if _, err := ParseJSON([]byte(`{"BucketSize":8}`)); err == nil {
		t.Fatal("missing Type member accepted")
	}
	if _, err := ParseJSON([]byte(`{"Type":"Full","Logger":"x"}`)); err == nil {
		t.Fatal("excluded field accepted")
	}
	if _, err := ParseJSON([]byte(`{"Type":"Full","BucketSize":"big"}`)); err == nil {
		t.Fatal("mistyped member accepted")
	}
}

func TestConfigNewBuilder(t *testing.T) {
	text := []byte("abracadabra")
	for _, cfg := range []BuilderConfig{
		&KarkkainenConfig{BucketSize: 4, Seed: 3},
		&FullConfig{BucketSize: 4},
	} {
		b, err := cfg.Clone().NewBuilder(text)
		if err != nil {
			t.Fatalf("NewBuilder: %v", err)
		}
		got := collect(t, b)
		if d := cmp.Diff(refSA(text), got); d != "" {
			t.Fatalf("%T (-want +got):\n%s", cfg, d)
		}
	}
}
