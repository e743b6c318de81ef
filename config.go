package blocksa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"strings"
)

// BuilderConfig provides the interface to builder configurations.
type BuilderConfig interface {
	NewBuilder(t []byte) (Builder, error)
	SetDefaults()
	Verify() error
	Clone() BuilderConfig
	json.Marshaler
	json.Unmarshaler
}

// KarkkainenConfig configures the blockwise builder.
type KarkkainenConfig struct {
	// BucketSize is the upper bound on emitted block length. Zero selects
	// the default of 4 MiB; other values below 2 are raised to 2.
	BucketSize int
	// Sigma is the alphabet size; every text symbol must be less than
	// Sigma.
	Sigma int
	// Seed feeds the pseudo-random source used for sample selection.
	Seed int64
	// SanityCheck enables expensive internal cross-checks. Violations
	// panic; production builds leave this off.
	SanityCheck bool
	// Verbose enables progress messages on Logger.
	Verbose bool

	// Logger receives progress messages when Verbose is set. Defaults to
	// os.Stdout.
	Logger io.Writer `json:"-"`
	// DC is an optional difference-cover sample used to bound tie-breaking
	// comparisons. A nil DC disables it.
	DC DCSampler `json:"-"`
}

// SetDefaults fills in default configuration values.
func (cfg *KarkkainenConfig) SetDefaults() {
	if cfg.BucketSize == 0 {
		cfg.BucketSize = 4 * _MiB
	}
	if cfg.BucketSize < 2 {
		cfg.BucketSize = 2
	}
	if cfg.Sigma == 0 {
		cfg.Sigma = 256
	}
	if cfg.Logger == nil {
		cfg.Logger = os.Stdout
	}
}

// Verify checks the configuration for inconsistencies.
func (cfg *KarkkainenConfig) Verify() error {
	if !(2 <= cfg.BucketSize && int64(cfg.BucketSize) < int64(math.MaxUint32)) {
		return fmt.Errorf(
			"blocksa: BucketSize=%d out of range [%d,%d]",
			cfg.BucketSize, 2, int64(math.MaxUint32)-1)
	}
	if !(2 <= cfg.Sigma && cfg.Sigma <= 256) {
		return fmt.Errorf("blocksa: Sigma=%d out of range [2,256]",
			cfg.Sigma)
	}
	if cfg.DC != nil && cfg.DC.Period() <= 3 {
		return fmt.Errorf(
			"blocksa: difference-cover period %d; must be > 3",
			cfg.DC.Period())
	}
	return nil
}

// NewBuilder creates a blockwise builder for the text t.
func (cfg *KarkkainenConfig) NewBuilder(t []byte) (Builder, error) {
	return NewKarkkainenSA(t, *cfg)
}

// Clone returns a copy of the configuration.
func (cfg *KarkkainenConfig) Clone() BuilderConfig {
	c := *cfg
	return &c
}

// MarshalJSON generates the JSON representation of the configuration.
func (cfg *KarkkainenConfig) MarshalJSON() (p []byte, err error) {
	return marshalJSON(cfg)
}

// UnmarshalJSON parses the JSON representation and sets the configuration.
func (cfg *KarkkainenConfig) UnmarshalJSON(p []byte) error {
	return unmarshalJSON(cfg, p)
}

// FullConfig configures the eager builder, which computes the whole suffix
// array up front and slices it into blocks.
type FullConfig struct {
	// BucketSize is the upper bound on emitted block length. Zero selects
	// the default of 4 MiB; other values below 2 are raised to 2.
	BucketSize int
	// Sigma is the alphabet size; every text symbol must be less than
	// Sigma.
	Sigma int
	// Verbose enables progress messages on Logger.
	Verbose bool

	// Logger receives progress messages when Verbose is set. Defaults to
	// os.Stdout.
	Logger io.Writer `json:"-"`
}

// SetDefaults fills in default configuration values.
func (cfg *FullConfig) SetDefaults() {
	if cfg.BucketSize == 0 {
		cfg.BucketSize = 4 * _MiB
	}
	if cfg.BucketSize < 2 {
		cfg.BucketSize = 2
	}
	if cfg.Sigma == 0 {
		cfg.Sigma = 256
	}
	if cfg.Logger == nil {
		cfg.Logger = os.Stdout
	}
}

// Verify checks the configuration for inconsistencies.
func (cfg *FullConfig) Verify() error {
	if !(2 <= cfg.BucketSize && int64(cfg.BucketSize) < int64(math.MaxUint32)) {
		return fmt.Errorf(
			"blocksa: BucketSize=%d out of range [%d,%d]",
			cfg.BucketSize, 2, int64(math.MaxUint32)-1)
	}
	if !(2 <= cfg.Sigma && cfg.Sigma <= 256) {
		return fmt.Errorf("blocksa: Sigma=%d out of range [2,256]",
			cfg.Sigma)
	}
	return nil
}

// NewBuilder creates an eager builder for the text t.
func (cfg *FullConfig) NewBuilder(t []byte) (Builder, error) {
	return NewFullSA(t, *cfg)
}

// Clone returns a copy of the configuration.
func (cfg *FullConfig) Clone() BuilderConfig {
	c := *cfg
	return &c
}

// MarshalJSON generates the JSON representation of the configuration.
func (cfg *FullConfig) MarshalJSON() (p []byte, err error) {
	return marshalJSON(cfg)
}

// UnmarshalJSON parses the JSON representation and sets the configuration.
func (cfg *FullConfig) UnmarshalJSON(p []byte) error {
	return unmarshalJSON(cfg, p)
}

// ParseJSON reads a builder configuration from JSON data. The Type member
// selects the configuration type.
func ParseJSON(data []byte) (BuilderConfig, error) {
	var s = struct{ Type string }{}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("blocksa: json data unmarshal error: %w",
			err)
	}
	var bcfg BuilderConfig
	switch s.Type {
	case "Karkkainen":
		bcfg = &KarkkainenConfig{}
	case "Full":
		bcfg = &FullConfig{}
	default:
		return nil, fmt.Errorf("blocksa: unknown builder type %s", s.Type)
	}
	if err := unmarshalJSON(bcfg, data); err != nil {
		return nil, err
	}
	return bcfg, nil
}

func builderType(bcfg BuilderConfig) string {
	v := reflect.Indirect(reflect.ValueOf(bcfg))
	s := v.Type().Name()
	bt, ok := strings.CutSuffix(s, "Config")
	if !ok {
		panic("builder config type name must end with Config")
	}
	return bt
}

// unmarshalJSON unmarshals the JSON data into the builder configuration value
// provided. Fields tagged json:"-" cannot be set this way.
func unmarshalJSON(bcfg BuilderConfig, data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	x, ok := m["Type"]
	if !ok {
		return fmt.Errorf("blocksa: json data needs Type member")
	}
	bt, ok := x.(string)
	if !ok {
		return fmt.Errorf("blocksa: json data Type member must be string")
	}
	btCfg := builderType(bcfg)
	if btCfg != bt {
		return fmt.Errorf(
			"blocksa: json data Type member must be %s, got %s",
			btCfg, bt)
	}
	v := reflect.Indirect(reflect.ValueOf(bcfg))
	for k, val := range m {
		if k == "Type" {
			continue
		}
		f, ok := v.Type().FieldByName(k)
		if !ok || f.Tag.Get("json") == "-" {
			return fmt.Errorf(
				"blocksa: %sConfig doesn't have field %s",
				btCfg, k)
		}
		fv := v.FieldByName(k)
		vj := reflect.ValueOf(val)
		if !vj.Type().ConvertibleTo(fv.Type()) {
			return fmt.Errorf(
				"blocksa: json data member %s must have type %s, got %s",
				k, fv.Type(), vj.Type())
		}
		fv.Set(vj.Convert(fv.Type()))
	}
	return nil
}

// marshalJSON marshals the builder configuration value provided into JSON
// data. Fields tagged json:"-" are omitted.
func marshalJSON(bcfg BuilderConfig) (p []byte, err error) {
	buf := new(bytes.Buffer)

	v := reflect.Indirect(reflect.ValueOf(bcfg))
	t := v.Type()
	fmt.Fprintf(buf, "{\n  \"Type\": %q", builderType(bcfg))
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Tag.Get("json") == "-" {
			continue
		}
		q, err := json.Marshal(v.Field(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("blocksa: json marshal error: %w",
				err)
		}
		fmt.Fprintf(buf, ",\n  %q: %s", f.Name, q)
	}
	fmt.Fprintf(buf, "\n}\n")
	return buf.Bytes(), nil
}
