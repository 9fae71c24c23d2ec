package saferegex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SouthBridgeAI/zodsheriff/internal/saferegex"
)

func TestIsSafe_AcceptsOrdinaryPatterns(t *testing.T) {
	t.Parallel()

	oracle := saferegex.New()

	for _, pattern := range []string{
		"^[a-z]+$",
		`\d{3}-\d{4}`,
		"^[\\w.+-]+@[\\w-]+\\.[\\w.-]+$",
	} {
		safe, reason := oracle.IsSafe(pattern)
		assert.True(t, safe, "pattern %q reason=%q", pattern, reason)
	}
}

func TestIsSafe_RejectsNestedQuantifier(t *testing.T) {
	t.Parallel()

	oracle := saferegex.New()

	safe, reason := oracle.IsSafe("(a+)+")
	assert.False(t, safe)
	assert.Contains(t, reason, "nested quantifier")
}

func TestIsSafe_RejectsOverlappingAlternationUnderQuantifier(t *testing.T) {
	t.Parallel()

	oracle := saferegex.New()

	safe, reason := oracle.IsSafe("(a|a)+")
	assert.False(t, safe)
	assert.Contains(t, reason, "overlapping")
}

func TestIsSafe_RejectsUnparseablePattern(t *testing.T) {
	t.Parallel()

	oracle := saferegex.New()

	safe, reason := oracle.IsSafe("(unterminated")
	require.False(t, safe)
	assert.NotEmpty(t, reason)
}
