package depgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SouthBridgeAI/zodsheriff/internal/config"
	"github.com/SouthBridgeAI/zodsheriff/internal/depgraph"
	"github.com/SouthBridgeAI/zodsheriff/internal/governor"
	"github.com/SouthBridgeAI/zodsheriff/internal/issues"
	"github.com/SouthBridgeAI/zodsheriff/pkg/synkind"
)

// stubPrinter renders just enough of the grammar subset the analyzer
// exercises (member/call chains, identifiers, object/array literals,
// string/numeric literals) to assert on inlining and the array-unwrap
// transform without depending on a full printer implementation.
type stubPrinter struct{ fail bool }

func (p stubPrinter) Print(node *synkind.Node) (string, error) {
	if p.fail {
		return "", assertErr{}
	}

	return render(node), nil
}

func (p stubPrinter) PrintExpression(node *synkind.Node) (string, error) {
	return p.Print(node)
}

type assertErr struct{}

func (assertErr) Error() string { return "stub printer failure" }

func render(node *synkind.Node) string {
	if node == nil {
		return ""
	}

	switch node.Kind {
	case synkind.KindIdentifier:
		return node.Name
	case synkind.KindStringLiteral:
		return "\"" + node.Value + "\""
	case synkind.KindNumericLiteral:
		return node.Value
	case synkind.KindMemberExpression:
		return render(node.Object) + "." + render(node.Property)
	case synkind.KindCallExpression:
		args := ""

		for i, a := range node.Arguments {
			if i > 0 {
				args += ", "
			}

			args += render(a)
		}

		return render(node.Callee) + "(" + args + ")"
	case synkind.KindObjectExpression:
		out := "{"

		for i, p := range node.Properties {
			if i > 0 {
				out += ", "
			}

			out += render(p.Key) + ": " + render(p.PropValue)
		}

		return out + "}"
	default:
		return ""
	}
}

func zMember(method string) *synkind.Node {
	return &synkind.Node{
		Kind:     synkind.KindMemberExpression,
		Object:   &synkind.Node{Kind: synkind.KindIdentifier, Name: "z"},
		Property: &synkind.Node{Kind: synkind.KindIdentifier, Name: method},
	}
}

func zCall(method string, args ...*synkind.Node) *synkind.Node {
	return &synkind.Node{Kind: synkind.KindCallExpression, Callee: zMember(method), Arguments: args}
}

func declarator(name string, init *synkind.Node) *synkind.Node {
	return &synkind.Node{Kind: synkind.KindVariableDeclarator, Name: name, Init: init}
}

func program(decls ...*synkind.Node) *synkind.Node {
	return &synkind.Node{
		Kind: synkind.KindProgram,
		Statements: []*synkind.Node{
			{
				Kind:         synkind.KindVariableDeclaration,
				DeclKind:     "const",
				Declarations: decls,
			},
		},
	}
}

func identArg(name string) *synkind.Node {
	return &synkind.Node{Kind: synkind.KindIdentifier, Name: name}
}

func TestAnalyze_InlinesReferencedSchema(t *testing.T) {
	t.Parallel()

	address := declarator("addressSchema", zCall("object", &synkind.Node{
		Kind: synkind.KindObjectExpression,
		Properties: []*synkind.Node{
			{Kind: synkind.KindProperty, Key: identArg("street"), PropValue: zCall("string")},
		},
	}))

	user := declarator("userSchema", zCall("object", &synkind.Node{
		Kind: synkind.KindObjectExpression,
		Properties: []*synkind.Node{
			{Kind: synkind.KindProperty, Key: identArg("address"), PropValue: identArg("addressSchema")},
		},
	}))

	prog := program(address, user)

	reporter := issues.NewReporter()
	analyzer := depgraph.New(config.Relaxed(), governor.New(config.Relaxed()), stubPrinter{}, reporter)

	groups := analyzer.Analyze(prog)

	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].SchemaCount)
	assert.Contains(t, groups[0].Code, "street")
	assert.Contains(t, groups[0].Code, "address")
}

func TestAnalyze_SeparatesUnrelatedSchemas(t *testing.T) {
	t.Parallel()

	a := declarator("aSchema", zCall("string"))
	b := declarator("bSchema", zCall("number"))

	prog := program(a, b)

	reporter := issues.NewReporter()
	analyzer := depgraph.New(config.Relaxed(), governor.New(config.Relaxed()), stubPrinter{}, reporter)

	groups := analyzer.Analyze(prog)

	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].SchemaCount)
	assert.Equal(t, 1, groups[1].SchemaCount)
}

func TestAnalyze_UnwrapsArrayRoot(t *testing.T) {
	t.Parallel()

	inner := zCall("object", &synkind.Node{Kind: synkind.KindObjectExpression})
	arr := declarator("arrayRootSchema", zCall("array", inner))

	prog := program(arr)

	cfg := config.Relaxed()
	cfg.UnwrapArrayRoot = true

	reporter := issues.NewReporter()
	analyzer := depgraph.New(cfg, governor.New(cfg), stubPrinter{}, reporter)

	groups := analyzer.Analyze(prog)

	require.Len(t, groups, 1)
	assert.Contains(t, groups[0].Code, "object(")
	assert.NotContains(t, groups[0].Code, "array(")
}

func TestAnalyze_PrinterFailureEmitsWarningAndOmitsGroup(t *testing.T) {
	t.Parallel()

	decl := declarator("aSchema", zCall("string"))
	prog := program(decl)

	reporter := issues.NewReporter()
	analyzer := depgraph.New(config.Relaxed(), governor.New(config.Relaxed()), stubPrinter{fail: true}, reporter)

	groups := analyzer.Analyze(prog)

	assert.Empty(t, groups)
	warnings := reporter.BySeverity(issues.SeverityWarning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "Schema grouping failed")
}

func TestAnalyze_OrdersGroupsBySchemaCountThenComplexity(t *testing.T) {
	t.Parallel()

	// A two-member group and a one-member group; the larger must sort first.
	addr := declarator("addrSchema", zCall("string"))
	user := declarator("userSchema", zCall("object", &synkind.Node{
		Kind: synkind.KindObjectExpression,
		Properties: []*synkind.Node{
			{Kind: synkind.KindProperty, Key: identArg("a"), PropValue: identArg("addrSchema")},
		},
	}))
	solo := declarator("soloSchema", zCall("number"))

	prog := program(addr, user, solo)

	reporter := issues.NewReporter()
	analyzer := depgraph.New(config.Relaxed(), governor.New(config.Relaxed()), stubPrinter{}, reporter)

	groups := analyzer.Analyze(prog)

	require.Len(t, groups, 2)
	assert.Equal(t, 2, groups[0].SchemaCount)
	assert.Equal(t, 1, groups[1].SchemaCount)
}

func TestAnalyze_NodeLimitExceededReportsErrorAndOmitsGroup(t *testing.T) {
	t.Parallel()

	// A diamond-shaped, non-cyclic dependency graph: no self-reference for
	// the "active" guard to catch, but inlining still duplicates "base"
	// work on every path, so a tight node cap must trip instead of the
	// analyzer expanding unboundedly.
	base := declarator("baseSchema", zCall("object", &synkind.Node{
		Kind: synkind.KindObjectExpression,
		Properties: []*synkind.Node{
			{Kind: synkind.KindProperty, Key: identArg("id"), PropValue: zCall("string")},
		},
	}))
	left := declarator("leftSchema", zCall("object", &synkind.Node{
		Kind: synkind.KindObjectExpression,
		Properties: []*synkind.Node{
			{Kind: synkind.KindProperty, Key: identArg("base"), PropValue: identArg("baseSchema")},
		},
	}))
	right := declarator("rightSchema", zCall("object", &synkind.Node{
		Kind: synkind.KindObjectExpression,
		Properties: []*synkind.Node{
			{Kind: synkind.KindProperty, Key: identArg("base"), PropValue: identArg("baseSchema")},
		},
	}))
	top := declarator("topSchema", zCall("object", &synkind.Node{
		Kind: synkind.KindObjectExpression,
		Properties: []*synkind.Node{
			{Kind: synkind.KindProperty, Key: identArg("left"), PropValue: identArg("leftSchema")},
			{Kind: synkind.KindProperty, Key: identArg("right"), PropValue: identArg("rightSchema")},
		},
	}))

	prog := program(base, left, right, top)

	cfg := config.Relaxed()
	cfg.MaxNodeCount = 3

	reporter := issues.NewReporter()
	analyzer := depgraph.New(cfg, governor.New(cfg), stubPrinter{}, reporter)

	groups := analyzer.Analyze(prog)

	assert.Empty(t, groups)
	errs := reporter.BySeverity(issues.SeverityError)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "node count exceeded maximum")
}
