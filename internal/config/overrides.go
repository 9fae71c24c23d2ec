package config

// Overrides is a partial, pointer-field mirror of Config. Any non-nil
// field replaces the preset's value; PropertySafety list/set fields are
// unioned onto the preset rather than replaced.
type Overrides struct {
	TimeoutMS              *int
	MaxNodeCount           *int
	MaxObjectDepth         *int
	MaxChainDepth          *int
	MaxArgumentNesting     *int
	MaxPropertiesPerObject *int
	MaxStringLength        *int

	AllowComputedProperties *bool
	AllowLoops              *bool
	AllowTemplateExprs      *bool
	EnableCaching           *bool
	EnableUnification       *bool
	UnwrapArrayRoot         *bool

	AllowedPrefixes   []string
	DeniedPrefixes    []string
	AllowedProperties []string
	DeniedProperties  []string
}

// Apply overlays o onto a copy of base and returns the result. base is
// never mutated.
func Apply(base *Config, o *Overrides) *Config {
	merged := *base
	merged.PropertySafety = PropertySafety{
		AllowedPrefixes:   append([]string{}, base.PropertySafety.AllowedPrefixes...),
		DeniedPrefixes:    append([]string{}, base.PropertySafety.DeniedPrefixes...),
		AllowedProperties: cloneSet(base.PropertySafety.AllowedProperties),
		DeniedProperties:  cloneSet(base.PropertySafety.DeniedProperties),
	}

	if o == nil {
		return &merged
	}

	applyScalars(&merged, o)
	applyPropertySafety(&merged, o)

	return &merged
}

func applyScalars(c *Config, o *Overrides) {
	if o.TimeoutMS != nil {
		c.TimeoutMS = *o.TimeoutMS
	}

	if o.MaxNodeCount != nil {
		c.MaxNodeCount = *o.MaxNodeCount
	}

	if o.MaxObjectDepth != nil {
		c.MaxObjectDepth = *o.MaxObjectDepth
	}

	if o.MaxChainDepth != nil {
		c.MaxChainDepth = *o.MaxChainDepth
	}

	if o.MaxArgumentNesting != nil {
		c.MaxArgumentNesting = *o.MaxArgumentNesting
	}

	if o.MaxPropertiesPerObject != nil {
		c.MaxPropertiesPerObject = *o.MaxPropertiesPerObject
	}

	if o.MaxStringLength != nil {
		c.MaxStringLength = *o.MaxStringLength
	}

	if o.AllowComputedProperties != nil {
		c.AllowComputedProperties = *o.AllowComputedProperties
	}

	if o.AllowLoops != nil {
		c.AllowLoops = *o.AllowLoops
	}

	if o.AllowTemplateExprs != nil {
		c.AllowTemplateExprs = *o.AllowTemplateExprs
	}

	if o.EnableCaching != nil {
		c.EnableCaching = *o.EnableCaching
	}

	if o.EnableUnification != nil {
		c.EnableUnification = *o.EnableUnification
	}

	if o.UnwrapArrayRoot != nil {
		c.UnwrapArrayRoot = *o.UnwrapArrayRoot
	}
}

func applyPropertySafety(c *Config, o *Overrides) {
	c.PropertySafety.AllowedPrefixes = unionSlice(c.PropertySafety.AllowedPrefixes, o.AllowedPrefixes)
	c.PropertySafety.DeniedPrefixes = unionSlice(c.PropertySafety.DeniedPrefixes, o.DeniedPrefixes)

	for _, name := range o.AllowedProperties {
		c.PropertySafety.AllowedProperties[name] = struct{}{}
	}

	for _, name := range o.DeniedProperties {
		c.PropertySafety.DeniedProperties[name] = struct{}{}
	}
}

func unionSlice(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}

	seen := make(map[string]struct{}, len(base))
	for _, v := range base {
		seen[v] = struct{}{}
	}

	out := append([]string{}, base...)

	for _, v := range extra {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	return out
}

func cloneSet(src map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(src))
	for k := range src {
		out[k] = struct{}{}
	}

	return out
}
