package depgraph

import (
	"github.com/SouthBridgeAI/zodsheriff/internal/governor"
	"github.com/SouthBridgeAI/zodsheriff/pkg/synkind"
)

// inline deep-copies root, substituting every identifier whose name is a
// key in byName with a recursively-inlined copy of that name's
// initializer. active guards against a cyclic reference graph (not
// expected in well-formed input, per spec) by leaving a self-referencing
// identifier unsubstituted rather than recursing forever. Every step
// passes through gov.IncrementNode, so a diamond-shaped reference DAG
// that would otherwise expand combinatorially trips the governor's node
// cap instead of running unbounded, per spec.md §9.
func inline(gov *governor.Governor, node *synkind.Node, byName map[string]Declarator, active map[string]bool) (*synkind.Node, error) {
	if node == nil {
		return nil, nil
	}

	if err := gov.IncrementNode(); err != nil {
		return nil, err
	}

	if node.Kind == synkind.KindIdentifier {
		if target, ok := byName[node.Name]; ok && !active[node.Name] {
			active[node.Name] = true
			result, err := inline(gov, target.Init, byName, active)
			active[node.Name] = false

			return result, err
		}

		return copyShallow(node), nil
	}

	out := copyShallow(node)

	var err error

	if out.Object, err = inline(gov, node.Object, byName, active); err != nil {
		return nil, err
	}

	if out.Property, err = inline(gov, node.Property, byName, active); err != nil {
		return nil, err
	}

	if out.Callee, err = inline(gov, node.Callee, byName, active); err != nil {
		return nil, err
	}

	if out.Arguments, err = inlineSlice(gov, node.Arguments, byName, active); err != nil {
		return nil, err
	}

	if out.Properties, err = inlineSlice(gov, node.Properties, byName, active); err != nil {
		return nil, err
	}

	if out.Key, err = inline(gov, node.Key, byName, active); err != nil {
		return nil, err
	}

	if out.PropValue, err = inline(gov, node.PropValue, byName, active); err != nil {
		return nil, err
	}

	if out.Elements, err = inlineSlice(gov, node.Elements, byName, active); err != nil {
		return nil, err
	}

	if out.Argument, err = inline(gov, node.Argument, byName, active); err != nil {
		return nil, err
	}

	if out.Params, err = inlineSlice(gov, node.Params, byName, active); err != nil {
		return nil, err
	}

	if out.ExpressionBody, err = inline(gov, node.ExpressionBody, byName, active); err != nil {
		return nil, err
	}

	if out.BodyStatements, err = inlineSlice(gov, node.BodyStatements, byName, active); err != nil {
		return nil, err
	}

	if out.Declarations, err = inlineSlice(gov, node.Declarations, byName, active); err != nil {
		return nil, err
	}

	if out.Init, err = inline(gov, node.Init, byName, active); err != nil {
		return nil, err
	}

	if out.Specifiers, err = inlineSlice(gov, node.Specifiers, byName, active); err != nil {
		return nil, err
	}

	if out.Declaration, err = inline(gov, node.Declaration, byName, active); err != nil {
		return nil, err
	}

	if out.Statements, err = inlineSlice(gov, node.Statements, byName, active); err != nil {
		return nil, err
	}

	return out, nil
}

func inlineSlice(gov *governor.Governor, nodes []*synkind.Node, byName map[string]Declarator, active map[string]bool) ([]*synkind.Node, error) {
	if nodes == nil {
		return nil, nil
	}

	out := make([]*synkind.Node, len(nodes))

	for i, n := range nodes {
		inlined, err := inline(gov, n, byName, active)
		if err != nil {
			return nil, err
		}

		out[i] = inlined
	}

	return out, nil
}

func copyShallow(node *synkind.Node) *synkind.Node {
	copied := *node

	return &copied
}

// unwrapArrayRoot implements the optional array-unwrap transform:
// replaces a top-level `z.array(inner)` call (exactly one non-spread
// argument) with inner. Applied at most once, outermost only.
func unwrapArrayRoot(root *synkind.Node) *synkind.Node {
	if root == nil || root.Kind != synkind.KindCallExpression {
		return root
	}

	callee := root.Callee
	if callee == nil || callee.Kind != synkind.KindMemberExpression || callee.Property == nil {
		return root
	}

	if callee.Property.Name != "array" {
		return root
	}

	if callee.Object == nil || callee.Object.Kind != synkind.KindIdentifier || callee.Object.Name != "z" {
		return root
	}

	if len(root.Arguments) != 1 || root.Arguments[0].Kind == synkind.KindSpreadElement {
		return root
	}

	return root.Arguments[0]
}
