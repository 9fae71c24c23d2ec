package config

import "gopkg.in/yaml.v3"

// yamlOverrides mirrors Overrides field for field. Its scalar fields are
// pointers, so a key absent from the YAML document stays nil ("unset")
// and is distinguishable from a key explicitly set to a zero value.
type yamlOverrides struct {
	TimeoutMS               *int     `yaml:"timeout_ms"`
	MaxNodeCount            *int     `yaml:"max_node_count"`
	MaxObjectDepth          *int     `yaml:"max_object_depth"`
	MaxChainDepth           *int     `yaml:"max_chain_depth"`
	MaxArgumentNesting      *int     `yaml:"max_argument_nesting"`
	MaxPropertiesPerObject  *int     `yaml:"max_properties_per_object"`
	MaxStringLength         *int     `yaml:"max_string_length"`
	AllowComputedProperties *bool    `yaml:"allow_computed_properties"`
	AllowLoops              *bool    `yaml:"allow_loops"`
	AllowTemplateExprs      *bool    `yaml:"allow_template_exprs"`
	EnableCaching           *bool    `yaml:"enable_caching"`
	EnableUnification       *bool    `yaml:"enable_unification"`
	UnwrapArrayRoot         *bool    `yaml:"unwrap_array_root"`
	AllowedPrefixes         []string `yaml:"allowed_prefixes"`
	DeniedPrefixes          []string `yaml:"denied_prefixes"`
	AllowedProperties       []string `yaml:"allowed_properties"`
	DeniedProperties        []string `yaml:"denied_properties"`
}

// LoadOverridesYAML parses an Overrides document (spec.md §6's overlay
// record) from YAML, as loaded by the CLI driver's --overrides flag.
func LoadOverridesYAML(data []byte) (*Overrides, error) {
	var doc yamlOverrides

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return &Overrides{
		TimeoutMS:               doc.TimeoutMS,
		MaxNodeCount:            doc.MaxNodeCount,
		MaxObjectDepth:          doc.MaxObjectDepth,
		MaxChainDepth:           doc.MaxChainDepth,
		MaxArgumentNesting:      doc.MaxArgumentNesting,
		MaxPropertiesPerObject:  doc.MaxPropertiesPerObject,
		MaxStringLength:         doc.MaxStringLength,
		AllowComputedProperties: doc.AllowComputedProperties,
		AllowLoops:              doc.AllowLoops,
		AllowTemplateExprs:      doc.AllowTemplateExprs,
		EnableCaching:           doc.EnableCaching,
		EnableUnification:       doc.EnableUnification,
		UnwrapArrayRoot:         doc.UnwrapArrayRoot,
		AllowedPrefixes:         doc.AllowedPrefixes,
		DeniedPrefixes:          doc.DeniedPrefixes,
		AllowedProperties:       doc.AllowedProperties,
		DeniedProperties:        doc.DeniedProperties,
	}, nil
}
