package schemaguard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SouthBridgeAI/zodsheriff"
	"github.com/SouthBridgeAI/zodsheriff/internal/config"
)

func TestValidateSchema_CleansValidInput(t *testing.T) {
	t.Parallel()

	src := `import { z } from "zod";
const userSchema = z.object({ name: z.string() });`

	result := schemaguard.ValidateSchema(src, config.Relaxed())

	require.True(t, result.IsValid)
	assert.Equal(t, []string{"userSchema"}, result.RootSchemaNames)
	assert.Contains(t, result.CleanedCode, "export const userSchema")
}

func TestValidateSchema_ReportsMissingImport(t *testing.T) {
	t.Parallel()

	src := `const userSchema = z.object({});`

	result := schemaguard.ValidateSchema(src, config.Relaxed())

	require.False(t, result.IsValid)
	require.NotEmpty(t, result.Issues)
	assert.Equal(t, "error", result.Issues[0].Severity)
}
