// Package argval validates the argument lists of chain-method calls
// against a per-method ArgRule table: arity, argument kind, and
// method-specific constraints (function bodies, regex safety, nested
// object/array arguments).
package argval

import (
	"strconv"

	"github.com/SouthBridgeAI/zodsheriff/internal/config"
	"github.com/SouthBridgeAI/zodsheriff/internal/governor"
	"github.com/SouthBridgeAI/zodsheriff/internal/issues"
	"github.com/SouthBridgeAI/zodsheriff/internal/objectval"
	"github.com/SouthBridgeAI/zodsheriff/pkg/synkind"
)

// ArgRule constrains the arguments accepted by one chain method.
type ArgRule struct {
	Min              int
	Max              int
	AllowFunction    bool
	AllowSchema      bool
	ValidateFunction bool
	ValidateRegex    bool
}

// table is the initial argument-rule table of spec.md §4.5. A method
// absent here accepts any arguments; the chain validator still gates
// the method name itself.
var table = map[string]ArgRule{
	"refine":    {Min: 1, Max: 2, AllowFunction: true, ValidateFunction: true},
	"transform": {Min: 1, Max: 1, AllowFunction: true, ValidateFunction: true},
	"pipe":      {Min: 1, Max: 1, AllowSchema: true},
	"regex":     {Min: 1, Max: 2, ValidateRegex: true},
	"object":    {Min: 1, Max: 1},
}

// Lookup returns the rule for method, if any.
func Lookup(method string) (ArgRule, bool) {
	rule, ok := table[method]

	return rule, ok
}

// ChainChecker is the subset of the chain validator argval needs: it
// recognizes whether a call-expression argument is itself a
// well-formed z-chain, per spec.md §4.5 rule 8. Defined here (rather
// than imported from chainval) to avoid a package import cycle; chainval
// implements it.
type ChainChecker interface {
	ValidateChainExpr(node *synkind.Node, depth int) bool
}

// Validator validates argument lists against the ArgRule table.
type Validator struct {
	cfg      *config.Config
	gov      *governor.Governor
	reporter *issues.Reporter
	oracle   synkind.SafeRegexOracle
	chain    ChainChecker
}

// New returns a Validator. oracle may be nil if no method requiring
// ValidateRegex will ever be exercised (tests only); chain is the chain
// validator delegating into this Validator.
func New(cfg *config.Config, gov *governor.Governor, reporter *issues.Reporter, oracle synkind.SafeRegexOracle, chain ChainChecker) *Validator {
	return &Validator{cfg: cfg, gov: gov, reporter: reporter, oracle: oracle, chain: chain}
}

// Validate checks args against method's rule (or accepts unconditionally
// if method has none) at the given argument-nesting depth.
func (v *Validator) Validate(method string, args []*synkind.Node, depth int, callSite *synkind.Node) bool {
	rule, ok := table[method]
	if !ok {
		return true
	}

	if err := v.gov.TrackDepth(depth, governor.DepthArgument); err != nil {
		v.reporter.ReportError(callSite, err.Error(), callSite.Kind)

		return false
	}

	if len(args) < rule.Min || len(args) > rule.Max {
		v.reporter.ReportError(callSite, "Argument count for '"+method+"' must be between "+
			strconv.Itoa(rule.Min)+" and "+strconv.Itoa(rule.Max), callSite.Kind)

		return false
	}

	for i, arg := range args {
		if err := v.gov.IncrementNode(); err != nil {
			v.reporter.ReportError(arg, err.Error(), arg.Kind)

			return false
		}

		if method == "refine" && i == 0 && arg.Kind != synkind.KindArrowFunctionExpression && arg.Kind != synkind.KindFunctionExpression {
			v.reporter.ReportError(arg, "First argument to 'refine' must be a function", arg.Kind)

			return false
		}

		if !v.validateArgument(method, rule, arg, depth) {
			return false
		}
	}

	return true
}

func (v *Validator) validateArgument(method string, rule ArgRule, arg *synkind.Node, depth int) bool {
	switch arg.Kind {
	case synkind.KindArrowFunctionExpression, synkind.KindFunctionExpression:
		return v.validateFunction(method, rule, arg)
	case synkind.KindObjectExpression:
		return objectval.New(v.cfg, v.gov, v.reporter).Validate(arg, 0)
	case synkind.KindArrayExpression:
		return v.validateArray(method, arg, depth)
	case synkind.KindStringLiteral:
		return v.validateStringOrRegex(method, rule, arg)
	case synkind.KindRegExpLiteral:
		return v.validateStringOrRegex(method, rule, arg)
	case synkind.KindNumericLiteral, synkind.KindBooleanLiteral, synkind.KindNullLiteral, synkind.KindBigIntLiteral:
		return true
	case synkind.KindIdentifier:
		return true
	case synkind.KindCallExpression, synkind.KindMemberExpression:
		if v.chain != nil && v.chain.ValidateChainExpr(arg, 0) {
			return true
		}

		v.reporter.ReportError(arg, "Unexpected argument type for method "+method+": "+string(arg.Kind), arg.Kind)

		return false
	default:
		v.reporter.ReportError(arg, "Unexpected argument type for method "+method+": "+string(arg.Kind), arg.Kind)

		return false
	}
}

func (v *Validator) validateFunction(method string, rule ArgRule, arg *synkind.Node) bool {
	if !rule.AllowFunction {
		v.reporter.ReportError(arg, "Function arguments not allowed for method "+method, arg.Kind)

		return false
	}

	if !rule.ValidateFunction {
		return true
	}

	if arg.Async {
		v.reporter.ReportError(arg, "Async functions not allowed in schema validation", arg.Kind)

		return false
	}

	if arg.Generator {
		v.reporter.ReportError(arg, "Generator functions not allowed in schema validation", arg.Kind)

		return false
	}

	return v.validateFunctionBody(arg)
}

// validateFunctionBody is the body-level safety hook left open by
// spec.md §9 ("the placeholder validate_function_statements ... returns
// true unconditionally"): a call expression anywhere in the body is
// rejected unless it roots at the z namespace, since refine/transform
// callbacks have no business reaching outside it.
func (v *Validator) validateFunctionBody(fn *synkind.Node) bool {
	var offender *synkind.Node

	var walk func(n *synkind.Node)

	walk = func(n *synkind.Node) {
		if n == nil || offender != nil {
			return
		}

		if n.Kind == synkind.KindCallExpression && !calleeRootsAtZ(n.Callee) {
			offender = n

			return
		}

		for _, child := range n.Children() {
			walk(child)
		}
	}

	if fn.ExpressionBody != nil {
		walk(fn.ExpressionBody)
	}

	for _, stmt := range fn.BodyStatements {
		walk(stmt)
	}

	if offender != nil {
		v.reporter.ReportError(offender, "Function body may only call the schema namespace", offender.Kind)

		return false
	}

	return true
}

// calleeRootsAtZ walks down a call/member chain's leftmost object,
// reporting whether it bottoms out at the identifier 'z'.
func calleeRootsAtZ(n *synkind.Node) bool {
	for n != nil {
		switch n.Kind {
		case synkind.KindIdentifier:
			return n.Name == "z"
		case synkind.KindMemberExpression:
			n = n.Object
		case synkind.KindCallExpression:
			n = n.Callee
		default:
			return false
		}
	}

	return false
}

func (v *Validator) validateArray(method string, arg *synkind.Node, depth int) bool {
	if err := v.gov.ValidateSize(len(arg.Elements), v.cfg.MaxPropertiesPerObject, "array arguments"); err != nil {
		v.reporter.ReportError(arg, err.Error(), arg.Kind)

		return false
	}

	for _, elem := range arg.Elements {
		if elem == nil {
			continue
		}

		if !v.validateArgument("array", ArgRule{AllowFunction: false, AllowSchema: false}, elem, depth+1) {
			return false
		}
	}

	return true
}

func (v *Validator) validateStringOrRegex(method string, rule ArgRule, arg *synkind.Node) bool {
	if arg.Kind == synkind.KindRegExpLiteral {
		if len(arg.Value) > v.cfg.MaxStringLength {
			v.reporter.ReportError(arg, "Regex pattern exceeds maximum string length of "+strconv.Itoa(v.cfg.MaxStringLength), arg.Kind)

			return false
		}

		if rule.ValidateRegex && v.oracle != nil {
			if safe, reason := v.oracle.IsSafe(arg.Value); !safe {
				v.reporter.ReportError(arg, "Regex pattern is not safe: "+reason, arg.Kind)

				return false
			}
		}

		return true
	}

	if len(arg.Value) > v.cfg.MaxStringLength {
		v.reporter.ReportError(arg, "String argument to '"+method+"' exceeds maximum length of "+
			strconv.Itoa(v.cfg.MaxStringLength), arg.Kind)

		return false
	}

	return true
}
