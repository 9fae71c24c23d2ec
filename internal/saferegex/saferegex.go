// Package saferegex implements pkg/synkind.SafeRegexOracle using the
// standard library's regexp/syntax parser: it walks the parsed pattern
// looking for the two syntactic shapes that cause catastrophic
// backtracking in a backtracking regex engine — a quantifier directly
// nested inside another quantifier, and a quantified alternation whose
// branches overlap. No ecosystem safe-regex checker appears anywhere in
// the retrieved corpus, so this is grounded on the standard library.
package saferegex

import "regexp/syntax"

// Oracle implements synkind.SafeRegexOracle.
type Oracle struct{}

// New returns an Oracle.
func New() Oracle {
	return Oracle{}
}

// IsSafe reports whether pattern is free of nested-quantifier and
// overlapping-alternation-under-quantifier constructs.
func (Oracle) IsSafe(pattern string) (bool, string) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return false, "pattern does not parse: " + err.Error()
	}

	if reason, found := findNestedQuantifier(re, false); found {
		return false, reason
	}

	if reason, found := findOverlappingAlternation(re); found {
		return false, reason
	}

	return true, ""
}

// isQuantifier reports whether op repeats its single sub-expression.
func isQuantifier(op syntax.Op) bool {
	switch op {
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		return true
	default:
		return false
	}
}

// findNestedQuantifier reports a quantifier appearing inside the
// sub-expression of another quantifier, e.g. (a+)+ or (a*)*.
func findNestedQuantifier(re *syntax.Regexp, insideQuantifier bool) (string, bool) {
	if re == nil {
		return "", false
	}

	quantifierHere := isQuantifier(re.Op)

	if quantifierHere && insideQuantifier {
		return "nested quantifier causes catastrophic backtracking", true
	}

	nextInside := insideQuantifier || quantifierHere

	for _, sub := range re.Sub {
		if reason, found := findNestedQuantifier(sub, nextInside); found {
			return reason, true
		}
	}

	return "", false
}

// findOverlappingAlternation reports a quantified alternation whose
// branches can match overlapping input, e.g. (a|a)+.
func findOverlappingAlternation(re *syntax.Regexp) (string, bool) {
	if re == nil {
		return "", false
	}

	if isQuantifier(re.Op) && len(re.Sub) == 1 && re.Sub[0].Op == syntax.OpAlternate {
		if branchesOverlap(re.Sub[0].Sub) {
			return "quantified alternation with overlapping branches causes catastrophic backtracking", true
		}
	}

	for _, sub := range re.Sub {
		if reason, found := findOverlappingAlternation(sub); found {
			return reason, true
		}
	}

	return "", false
}

// branchesOverlap is a conservative check: two branches overlap if they
// start with the same literal rune or if either can match the empty
// string or a single wildcard class, since rejecting more than strictly
// necessary is the safe direction for a security gate.
func branchesOverlap(branches []*syntax.Regexp) bool {
	seen := make(map[rune]bool)

	for _, b := range branches {
		first, ok := firstLiteralRune(b)
		if !ok {
			// Non-literal branch (class, wildcard, empty): assume overlap.
			return true
		}

		if seen[first] {
			return true
		}

		seen[first] = true
	}

	return false
}

func firstLiteralRune(re *syntax.Regexp) (rune, bool) {
	switch re.Op {
	case syntax.OpLiteral:
		if len(re.Rune) > 0 {
			return re.Rune[0], true
		}

		return 0, false
	case syntax.OpConcat:
		if len(re.Sub) > 0 {
			return firstLiteralRune(re.Sub[0])
		}

		return 0, false
	default:
		return 0, false
	}
}
