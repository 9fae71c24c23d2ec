package resultschema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SouthBridgeAI/zodsheriff/internal/resultschema"
)

func TestValidate_AcceptsWellFormedResult(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"is_valid":          true,
		"cleaned_code":      "export const userSchema = z.string();\n",
		"root_schema_names": []string{"userSchema"},
		"issues":            []any{},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.NoError(t, resultschema.Validate(data))
}

func TestValidate_RejectsMissingRequiredField(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"cleaned_code": "",
		"issues":       []any{},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	err = resultschema.Validate(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not conform")
}

func TestValidate_RejectsUnknownField(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"is_valid":          true,
		"cleaned_code":      "",
		"root_schema_names": []string{},
		"issues":            []any{},
		"unexpected_field":  "nope",
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	require.Error(t, resultschema.Validate(data))
}

func TestValidate_AcceptsResultWithSchemaGroups(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"is_valid":          true,
		"cleaned_code":      "export const userSchema = z.string();\n",
		"root_schema_names": []string{"userSchema"},
		"issues":            []any{},
		"schema_groups": []any{
			map[string]any{
				"schema_names": []string{"userSchema"},
				"code":         "export const userSchema = z.string();\n",
				"metrics": map[string]any{
					"schema_count": 1,
					"total_lines":  1,
					"complexity":   1.0,
				},
			},
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.NoError(t, resultschema.Validate(data))
}
