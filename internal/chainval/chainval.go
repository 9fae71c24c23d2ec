// Package chainval recognizes the whitelist grammar for z-chain
// expressions (z.ctor(...).method(...)...), rejecting computed member
// access, non-identifier properties, and method names outside the
// allow-lists, and delegating argument lists to the Argument Validator.
package chainval

import (
	"github.com/SouthBridgeAI/zodsheriff/internal/argval"
	"github.com/SouthBridgeAI/zodsheriff/internal/config"
	"github.com/SouthBridgeAI/zodsheriff/internal/governor"
	"github.com/SouthBridgeAI/zodsheriff/internal/issues"
	"github.com/SouthBridgeAI/zodsheriff/internal/safelist"
	"github.com/SouthBridgeAI/zodsheriff/pkg/synkind"
)

// Validator validates z-chain expressions. Construct with New, which
// also wires an internal Argument Validator that delegates back into
// this Validator for call-expression arguments (spec.md §4.5 rule 8).
type Validator struct {
	cfg      *config.Config
	gov      *governor.Governor
	reporter *issues.Reporter
	args     *argval.Validator
}

// New returns a Validator bound to the run's Config, Governor, and
// Reporter. oracle is the safe-regex collaborator passed through to the
// Argument Validator; it may be nil only in tests that never exercise
// the 'regex' method.
func New(cfg *config.Config, gov *governor.Governor, reporter *issues.Reporter, oracle synkind.SafeRegexOracle) *Validator {
	v := &Validator{cfg: cfg, gov: gov, reporter: reporter}
	v.args = argval.New(cfg, gov, reporter, oracle, v)

	return v
}

// Validate is the public entry point: validates node (the initializer
// expression of a candidate schema declarator) as a z-chain starting at
// depth 0.
func (v *Validator) Validate(node *synkind.Node) bool {
	return v.validate(node, 0)
}

// ValidateChainExpr implements argval.ChainChecker: a call-expression
// argument is accepted iff it is itself a well-formed z-chain.
func (v *Validator) ValidateChainExpr(node *synkind.Node, depth int) bool {
	return v.validate(node, depth)
}

func (v *Validator) validate(node *synkind.Node, depth int) bool {
	if node == nil {
		v.reporter.ReportError(nil, "Missing expression in chain", synkind.KindUnknown)

		return false
	}

	if err := v.gov.IncrementNode(); err != nil {
		v.reporter.ReportError(node, err.Error(), node.Kind)

		return false
	}

	switch node.Kind {
	case synkind.KindIdentifier:
		return v.validateIdentifier(node)
	case synkind.KindMemberExpression:
		return v.validateMember(node, depth)
	case synkind.KindCallExpression:
		return v.validateCall(node, depth)
	default:
		v.reporter.ReportError(node, "Chain must start with 'z', found: "+string(node.Kind), node.Kind)

		return false
	}
}

func (v *Validator) validateIdentifier(node *synkind.Node) bool {
	if node.Name != "z" {
		v.reporter.ReportError(node, "Chain must start with 'z', found: "+node.Name, node.Kind)

		return false
	}

	return true
}

func (v *Validator) validateMember(node *synkind.Node, depth int) bool {
	if err := v.gov.TrackDepth(depth, governor.DepthChain); err != nil {
		v.reporter.ReportError(node, err.Error(), node.Kind)

		return false
	}

	if node.Computed {
		v.reporter.ReportError(node, "Computed properties not allowed in chain", node.Kind)

		return false
	}

	if node.Property == nil || node.Property.Kind != synkind.KindIdentifier {
		v.reporter.ReportError(node, "Chain member must be an identifier", node.Kind)

		return false
	}

	name := node.Property.Name
	if !safelist.IsAllowed(name) {
		v.reporter.Report(node, "Method not allowed in chain: "+name, node.Kind, issues.SeverityError, "Use only allowed Zod methods")

		return false
	}

	return v.validate(node.Object, depth+1)
}

func (v *Validator) validateCall(node *synkind.Node, depth int) bool {
	if err := v.gov.TrackDepth(depth, governor.DepthChain); err != nil {
		v.reporter.ReportError(node, err.Error(), node.Kind)

		return false
	}

	if !v.validate(node.Callee, depth+1) {
		return false
	}

	method, ok := methodName(node.Callee)
	if !ok {
		v.reporter.ReportError(node, "Chain call target is not a method reference", node.Kind)

		return false
	}

	if _, hasRule := argval.Lookup(method); hasRule {
		return v.args.Validate(method, node.Arguments, 0, node)
	}

	return true
}

// methodName extracts the invoked method name from a call's callee: a
// MemberExpression's property, since schema_head's other forms
// (bare Identifier) are never directly callable in the grammar.
func methodName(callee *synkind.Node) (string, bool) {
	if callee == nil || callee.Kind != synkind.KindMemberExpression || callee.Property == nil {
		return "", false
	}

	return callee.Property.Name, true
}
