// Package objectval validates object-literal nodes for nesting depth,
// property count, and property-name safety, per the policy order the
// core applies: depth, then count, then each property in source order.
package objectval

import (
	"strconv"
	"strings"

	"github.com/SouthBridgeAI/zodsheriff/internal/config"
	"github.com/SouthBridgeAI/zodsheriff/internal/governor"
	"github.com/SouthBridgeAI/zodsheriff/internal/issues"
	"github.com/SouthBridgeAI/zodsheriff/pkg/synkind"
)

// Validator validates ObjectExpression nodes against a Config, reporting
// through an issues.Reporter and accounting resource use through a
// Governor. When caching is enabled, results are memoized by node
// identity for the lifetime of the Validator (one validation run).
type Validator struct {
	cfg      *config.Config
	gov      *governor.Governor
	reporter *issues.Reporter
	cache    map[*synkind.Node]bool
}

// New returns a Validator bound to the given run's Config, Governor, and
// Reporter.
func New(cfg *config.Config, gov *governor.Governor, reporter *issues.Reporter) *Validator {
	v := &Validator{cfg: cfg, gov: gov, reporter: reporter}
	if cfg.EnableCaching {
		v.cache = make(map[*synkind.Node]bool)
	}

	return v
}

// Validate checks node (an ObjectExpression) at the given nesting depth.
// It returns false on the first policy violation encountered, after
// recording every issue seen along the way for that node.
func (v *Validator) Validate(node *synkind.Node, depth int) bool {
	if v.cache != nil {
		if result, ok := v.cache[node]; ok {
			return result
		}
	}

	result := v.validate(node, depth)

	if v.cache != nil {
		v.cache[node] = result
	}

	return result
}

func (v *Validator) validate(node *synkind.Node, depth int) bool {
	if err := v.gov.IncrementNode(); err != nil {
		v.reportGovernorFault(node, err)

		return false
	}

	if err := v.gov.TrackDepth(depth, governor.DepthObject); err != nil {
		v.reporter.ReportError(node, "Object exceeds maximum nesting depth of "+itoa(v.cfg.MaxObjectDepth), node.Kind)

		return false
	}

	if len(node.Properties) > v.cfg.MaxPropertiesPerObject {
		v.reporter.ReportError(node, "Object exceeds maximum property count of "+itoa(v.cfg.MaxPropertiesPerObject), node.Kind)

		return false
	}

	for _, prop := range node.Properties {
		if !v.validateProperty(prop, depth) {
			return false
		}
	}

	return true
}

func (v *Validator) validateProperty(prop *synkind.Node, depth int) bool {
	if prop.Kind == synkind.KindSpreadElement {
		v.reporter.ReportError(prop, "Spread elements are not allowed in objects", prop.Kind)

		return false
	}

	if prop.IsMethod {
		if prop.IsGetter || prop.IsSetter {
			v.reporter.ReportError(prop, "Getter/setter methods are not allowed", prop.Kind)
		} else {
			v.reporter.ReportError(prop, "Object methods not allowed", prop.Kind)
		}

		return false
	}

	if prop.KeyComputed && !v.cfg.AllowComputedProperties {
		v.reporter.ReportError(prop, "Computed properties are not allowed", prop.Kind)

		return false
	}

	name, ok := propertyName(prop)
	if !ok {
		v.reporter.ReportError(prop, "Property key must be an identifier or string literal", prop.Kind)

		return false
	}

	if !v.checkNamePolicy(prop, name) {
		return false
	}

	if prop.PropValue != nil && prop.PropValue.Kind == synkind.KindObjectExpression {
		return v.Validate(prop.PropValue, depth+1)
	}

	return true
}

// propertyName extracts the property's key as a plain string, per the
// "identifier or string literal" key requirement.
func propertyName(prop *synkind.Node) (string, bool) {
	if prop.Key == nil {
		return "", false
	}

	switch prop.Key.Kind {
	case synkind.KindIdentifier:
		return prop.Key.Name, true
	case synkind.KindStringLiteral:
		return prop.Key.Value, true
	default:
		return "", false
	}
}

func (v *Validator) checkNamePolicy(prop *synkind.Node, name string) bool {
	safety := v.cfg.PropertySafety

	if _, denied := safety.DeniedProperties[name]; denied {
		v.reporter.ReportWarning(prop, "Property name '"+name+"' is not allowed", prop.Kind)
	}

	for _, prefix := range safety.DeniedPrefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			v.reporter.ReportError(prop, "Property name '"+name+"' uses a forbidden prefix", prop.Kind)

			return false
		}
	}

	if len(safety.AllowedProperties) > 0 {
		if _, allowed := safety.AllowedProperties[name]; !allowed {
			v.reporter.ReportError(prop, "Property name '"+name+"' is not in the allowed list", prop.Kind)

			return false
		}
	}

	return true
}

func (v *Validator) reportGovernorFault(node *synkind.Node, err error) {
	v.reporter.ReportError(node, err.Error(), node.Kind)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
