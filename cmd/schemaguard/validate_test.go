package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchemaFile(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "schema.ts")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	return path
}

func TestRootCmd_ValidSchemaCleanOnly(t *testing.T) {
	t.Parallel()

	path := writeSchemaFile(t, `import { z } from "zod";
const userSchema = z.object({ name: z.string() });`)

	rootCmd := newRootCmd()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{path, "--clean-only"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "export const userSchema")
}

func TestRootCmd_ValidSchemaJSON(t *testing.T) {
	t.Parallel()

	path := writeSchemaFile(t, `import { z } from "zod";
const userSchema = z.string();`)

	rootCmd := newRootCmd()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{path, "--json"})

	require.NoError(t, rootCmd.Execute())

	var doc map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, true, doc["is_valid"])
}

func TestRootCmd_MissingInputSourceErrors(t *testing.T) {
	t.Parallel()

	rootCmd := newRootCmd()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{})

	require.Error(t, rootCmd.Execute())
}

func TestRootCmd_UnwrapArraysFlag(t *testing.T) {
	t.Parallel()

	path := writeSchemaFile(t, `import { z } from "zod";
const itemsSchema = z.array(z.object({ name: z.string() }));`)

	rootCmd := newRootCmd()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{path, "--unwrapArrays", "--getUnifiedLargest"})

	require.NoError(t, rootCmd.Execute())
	assert.NotContains(t, buf.String(), "array(")
	assert.Contains(t, buf.String(), "object(")
}
