package argval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SouthBridgeAI/zodsheriff/internal/argval"
	"github.com/SouthBridgeAI/zodsheriff/internal/config"
	"github.com/SouthBridgeAI/zodsheriff/internal/governor"
	"github.com/SouthBridgeAI/zodsheriff/internal/issues"
	"github.com/SouthBridgeAI/zodsheriff/pkg/synkind"
)

type fakeChainChecker struct{ result bool }

func (f fakeChainChecker) ValidateChainExpr(*synkind.Node, int) bool { return f.result }

type fakeOracle struct {
	safe   bool
	reason string
}

func (f fakeOracle) IsSafe(string) (bool, string) { return f.safe, f.reason }

func newValidator(cfg *config.Config, oracle synkind.SafeRegexOracle, chain argval.ChainChecker) (*argval.Validator, *issues.Reporter) {
	reporter := issues.NewReporter()
	gov := governor.New(cfg)

	return argval.New(cfg, gov, reporter, oracle, chain), reporter
}

func callNode() *synkind.Node {
	return &synkind.Node{Kind: synkind.KindCallExpression}
}

func TestValidate_MethodWithoutRuleAcceptsAnything(t *testing.T) {
	t.Parallel()

	v, reporter := newValidator(config.Relaxed(), nil, nil)

	ok := v.Validate("min", []*synkind.Node{{Kind: synkind.KindNumericLiteral}}, 0, callNode())
	assert.True(t, ok)
	assert.Empty(t, reporter.Issues())
}

func TestValidate_ArityBelowMinimum(t *testing.T) {
	t.Parallel()

	v, reporter := newValidator(config.Relaxed(), nil, nil)

	ok := v.Validate("transform", nil, 0, callNode())
	assert.False(t, ok)
	assert.Contains(t, reporter.Issues()[0].Message, "Argument count for 'transform'")
}

func TestValidate_RefineFirstArgMustBeFunction(t *testing.T) {
	t.Parallel()

	v, reporter := newValidator(config.Relaxed(), nil, nil)

	ok := v.Validate("refine", []*synkind.Node{{Kind: synkind.KindObjectExpression}}, 0, callNode())
	assert.False(t, ok)
	assert.Contains(t, reporter.Issues()[0].Message, "First argument to 'refine' must be a function")
}

func TestValidate_RejectsAsyncFunction(t *testing.T) {
	t.Parallel()

	v, reporter := newValidator(config.Relaxed(), nil, nil)

	fn := &synkind.Node{Kind: synkind.KindArrowFunctionExpression, Async: true}
	ok := v.Validate("refine", []*synkind.Node{fn}, 0, callNode())
	assert.False(t, ok)
	assert.Contains(t, reporter.Issues()[0].Message, "Async functions not allowed")
}

func TestValidate_RejectsGeneratorFunction(t *testing.T) {
	t.Parallel()

	v, reporter := newValidator(config.Relaxed(), nil, nil)

	fn := &synkind.Node{Kind: synkind.KindFunctionExpression, Generator: true}
	ok := v.Validate("refine", []*synkind.Node{fn}, 0, callNode())
	assert.False(t, ok)
	assert.Contains(t, reporter.Issues()[0].Message, "Generator functions not allowed")
}

func TestValidate_PipeDisallowsFunctionArgument(t *testing.T) {
	t.Parallel()

	v, reporter := newValidator(config.Relaxed(), nil, nil)

	fn := &synkind.Node{Kind: synkind.KindArrowFunctionExpression}
	ok := v.Validate("pipe", []*synkind.Node{fn}, 0, callNode())
	assert.False(t, ok)
	assert.Contains(t, reporter.Issues()[0].Message, "Function arguments not allowed for method pipe")
}

func TestValidate_PipeAcceptsWellFormedChainArgument(t *testing.T) {
	t.Parallel()

	v, _ := newValidator(config.Relaxed(), nil, fakeChainChecker{result: true})

	ok := v.Validate("pipe", []*synkind.Node{{Kind: synkind.KindCallExpression}}, 0, callNode())
	assert.True(t, ok)
}

func TestValidate_PipeRejectsMalformedChainArgument(t *testing.T) {
	t.Parallel()

	v, reporter := newValidator(config.Relaxed(), nil, fakeChainChecker{result: false})

	ok := v.Validate("pipe", []*synkind.Node{{Kind: synkind.KindCallExpression}}, 0, callNode())
	assert.False(t, ok)
	assert.Contains(t, reporter.Issues()[0].Message, "Unexpected argument type for method pipe")
}

func TestValidate_RegexUsesSafeRegexOracle(t *testing.T) {
	t.Parallel()

	v, reporter := newValidator(config.Relaxed(), fakeOracle{safe: false, reason: "catastrophic backtracking"}, nil)

	ok := v.Validate("regex", []*synkind.Node{{Kind: synkind.KindRegExpLiteral, Value: "(a+)+"}}, 0, callNode())
	assert.False(t, ok)
	assert.Contains(t, reporter.Issues()[0].Message, "catastrophic backtracking")
}

func TestValidate_RegexAcceptsSafePattern(t *testing.T) {
	t.Parallel()

	v, reporter := newValidator(config.Relaxed(), fakeOracle{safe: true}, nil)

	ok := v.Validate("regex", []*synkind.Node{{Kind: synkind.KindRegExpLiteral, Value: "^[a-z]+$"}}, 0, callNode())
	assert.True(t, ok)
	assert.Empty(t, reporter.Issues())
}

func TestValidate_ObjectArgumentDelegatesToObjectValidator(t *testing.T) {
	t.Parallel()

	v, reporter := newValidator(config.Relaxed(), nil, nil)

	obj := &synkind.Node{
		Kind: synkind.KindObjectExpression,
		Properties: []*synkind.Node{
			{Kind: synkind.KindSpreadElement},
		},
	}

	ok := v.Validate("object", []*synkind.Node{obj}, 0, callNode())
	assert.False(t, ok)
	assert.Contains(t, reporter.Issues()[0].Message, "Spread elements are not allowed")
}

func TestValidate_ArrayArgumentExceedsSizeLimit(t *testing.T) {
	t.Parallel()

	cfg := config.Relaxed()
	cfg.MaxPropertiesPerObject = 1
	v, reporter := newValidator(cfg, nil, nil)

	arr := &synkind.Node{
		Kind: synkind.KindArrayExpression,
		Elements: []*synkind.Node{
			{Kind: synkind.KindNumericLiteral},
			{Kind: synkind.KindNumericLiteral},
		},
	}

	ok := v.Validate("refine", []*synkind.Node{
		{Kind: synkind.KindArrowFunctionExpression}, arr,
	}, 0, callNode())
	assert.False(t, ok)
	assert.Contains(t, reporter.Issues()[0].Message, "array arguments exceeds maximum")
}

func TestValidate_RegexPatternExceedsMaxLength(t *testing.T) {
	t.Parallel()

	cfg := config.Relaxed()
	cfg.MaxStringLength = 3
	v, reporter := newValidator(cfg, nil, nil)

	ok := v.Validate("regex", []*synkind.Node{
		{Kind: synkind.KindRegExpLiteral, Value: "abcdef"},
	}, 0, callNode())
	assert.False(t, ok)
	require.NotEmpty(t, reporter.Issues())
	assert.Contains(t, reporter.Issues()[0].Message, "exceeds maximum")
}

func TestValidate_IdentifierArgumentAlwaysAccepted(t *testing.T) {
	t.Parallel()

	v, reporter := newValidator(config.Relaxed(), nil, nil)

	ok := v.Validate("refine", []*synkind.Node{
		{Kind: synkind.KindArrowFunctionExpression}, {Kind: synkind.KindIdentifier, Name: "errorMap"},
	}, 0, callNode())
	assert.True(t, ok)
	assert.Empty(t, reporter.Issues())
}

func TestValidate_FunctionBodyCallingZNamespaceAccepted(t *testing.T) {
	t.Parallel()

	v, reporter := newValidator(config.Relaxed(), nil, nil)

	zCall := &synkind.Node{
		Kind:   synkind.KindCallExpression,
		Callee: &synkind.Node{Kind: synkind.KindMemberExpression, Object: &synkind.Node{Kind: synkind.KindIdentifier, Name: "z"}, Property: &synkind.Node{Kind: synkind.KindIdentifier, Name: "string"}},
	}
	fn := &synkind.Node{
		Kind:       synkind.KindArrowFunctionExpression,
		BodyStatements: []*synkind.Node{{Kind: synkind.KindExpressionStatement, Declaration: zCall}},
	}

	ok := v.Validate("refine", []*synkind.Node{fn}, 0, callNode())
	assert.True(t, ok)
	assert.Empty(t, reporter.Issues())
}

func TestValidate_FunctionBodyCallingOutsideZNamespaceRejected(t *testing.T) {
	t.Parallel()

	v, reporter := newValidator(config.Relaxed(), nil, nil)

	evilCall := &synkind.Node{
		Kind:   synkind.KindCallExpression,
		Callee: &synkind.Node{Kind: synkind.KindIdentifier, Name: "fetch"},
	}
	fn := &synkind.Node{
		Kind:       synkind.KindArrowFunctionExpression,
		BodyStatements: []*synkind.Node{{Kind: synkind.KindExpressionStatement, Declaration: evilCall}},
	}

	ok := v.Validate("refine", []*synkind.Node{fn}, 0, callNode())
	assert.False(t, ok)
	require.NotEmpty(t, reporter.Issues())
	assert.Contains(t, reporter.Issues()[0].Message, "Function body may only call the schema namespace")
}
