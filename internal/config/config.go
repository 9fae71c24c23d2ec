// Package config defines Config, the three named presets, and the
// Overrides overlay mechanism used to derive a run's immutable limits.
package config

import "errors"

// PropertySafety is the object-literal property-name policy: allow/deny
// lists plus prefix rules. It is part of Config.
type PropertySafety struct {
	AllowedPrefixes    []string
	DeniedPrefixes     []string
	AllowedProperties  map[string]struct{} // empty ⇒ no whitelist
	DeniedProperties   map[string]struct{}
}

// Config holds the timeouts, caps, feature flags, and property-safety
// policy for a single validation run. It is constructed once and never
// mutated thereafter.
type Config struct {
	TimeoutMS               int
	MaxNodeCount            int
	MaxObjectDepth          int
	MaxChainDepth           int
	MaxArgumentNesting      int
	MaxPropertiesPerObject  int
	MaxStringLength         int

	AllowComputedProperties bool
	AllowLoops              bool
	AllowTemplateExprs      bool
	EnableCaching           bool
	EnableUnification       bool
	UnwrapArrayRoot         bool

	PropertySafety PropertySafety
}

// Sentinel errors for Config.Validate.
var (
	ErrInvalidTimeout            = errors.New("config: timeout_ms must be positive")
	ErrInvalidMaxNodeCount       = errors.New("config: max_node_count must be positive")
	ErrInvalidMaxObjectDepth     = errors.New("config: max_object_depth must be positive")
	ErrInvalidMaxChainDepth      = errors.New("config: max_chain_depth must be positive")
	ErrInvalidMaxArgumentNesting = errors.New("config: max_argument_nesting must be positive")
	ErrInvalidMaxProperties      = errors.New("config: max_properties_per_object must be positive")
	ErrInvalidMaxStringLength    = errors.New("config: max_string_length must be positive")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.TimeoutMS <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxNodeCount <= 0 {
		return ErrInvalidMaxNodeCount
	}

	if c.MaxObjectDepth <= 0 {
		return ErrInvalidMaxObjectDepth
	}

	if c.MaxChainDepth <= 0 {
		return ErrInvalidMaxChainDepth
	}

	if c.MaxArgumentNesting <= 0 {
		return ErrInvalidMaxArgumentNesting
	}

	if c.MaxPropertiesPerObject <= 0 {
		return ErrInvalidMaxProperties
	}

	if c.MaxStringLength <= 0 {
		return ErrInvalidMaxStringLength
	}

	return nil
}

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, item := range items {
		m[item] = struct{}{}
	}

	return m
}

// Relaxed returns the loosest preset: generous limits, suited to
// trusted or lightly-sandboxed input.
func Relaxed() *Config {
	return &Config{
		TimeoutMS:              30000,
		MaxNodeCount:           1000000,
		MaxObjectDepth:         10,
		MaxChainDepth:          10,
		MaxArgumentNesting:     8,
		MaxPropertiesPerObject: 1000,
		MaxStringLength:        10000,

		AllowComputedProperties: true,
		AllowLoops:              false,
		AllowTemplateExprs:      true,
		EnableCaching:           true,
		EnableUnification:       true,
		UnwrapArrayRoot:         false,

		PropertySafety: PropertySafety{
			DeniedPrefixes:    []string{"__"},
			AllowedProperties: set(),
			DeniedProperties:  set("__proto__", "constructor"),
		},
	}
}

// Medium returns the middle preset: stricter than Relaxed, looser than
// ExtremelySafe.
func Medium() *Config {
	return &Config{
		TimeoutMS:              10000,
		MaxNodeCount:           100000,
		MaxObjectDepth:         6,
		MaxChainDepth:          6,
		MaxArgumentNesting:     4,
		MaxPropertiesPerObject: 200,
		MaxStringLength:        2000,

		AllowComputedProperties: false,
		AllowLoops:              false,
		AllowTemplateExprs:      true,
		EnableCaching:           true,
		EnableUnification:       true,
		UnwrapArrayRoot:         false,

		PropertySafety: PropertySafety{
			DeniedPrefixes: []string{"__"},
			AllowedProperties: set(),
			DeniedProperties: set(
				"__proto__", "constructor", "prototype",
				"eval", "arguments", "process", "global", "window", "document",
			),
		},
	}
}

// ExtremelySafe returns the tightest preset, suited to wholly untrusted
// input: every cap is strictly smaller than Medium's.
func ExtremelySafe() *Config {
	return &Config{
		TimeoutMS:              1000,
		MaxNodeCount:           1000,
		MaxObjectDepth:         3,
		MaxChainDepth:          3,
		MaxArgumentNesting:     2,
		MaxPropertiesPerObject: 20,
		MaxStringLength:        100,

		AllowComputedProperties: false,
		AllowLoops:              false,
		AllowTemplateExprs:      false,
		EnableCaching:           true,
		EnableUnification:       true,
		UnwrapArrayRoot:         false,

		PropertySafety: PropertySafety{
			DeniedPrefixes: []string{"_", "$"},
			AllowedProperties: set(),
			DeniedProperties: set(
				"__proto__", "constructor", "prototype",
				"eval", "arguments", "process", "global", "window", "document",
			),
		},
	}
}

// Preset looks up a named preset ("extremelySafe" | "medium" | "relaxed").
func Preset(name string) (*Config, error) {
	switch name {
	case "extremelySafe":
		return ExtremelySafe(), nil
	case "medium":
		return Medium(), nil
	case "relaxed":
		return Relaxed(), nil
	default:
		return nil, ErrUnknownPreset
	}
}

// ErrUnknownPreset is returned by Preset for an unrecognized name.
var ErrUnknownPreset = errors.New("config: unknown preset name")
