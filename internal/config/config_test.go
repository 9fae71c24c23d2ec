package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SouthBridgeAI/zodsheriff/internal/config"
)

func TestPresets_MonotonicallyStricter(t *testing.T) {
	t.Parallel()

	safe := config.ExtremelySafe()
	medium := config.Medium()
	relaxed := config.Relaxed()

	assert.Less(t, safe.TimeoutMS, medium.TimeoutMS)
	assert.Less(t, medium.TimeoutMS, relaxed.TimeoutMS)

	assert.Less(t, safe.MaxNodeCount, medium.MaxNodeCount)
	assert.Less(t, medium.MaxNodeCount, relaxed.MaxNodeCount)

	assert.LessOrEqual(t, safe.MaxObjectDepth, medium.MaxObjectDepth)
	assert.LessOrEqual(t, medium.MaxObjectDepth, relaxed.MaxObjectDepth)

	assert.LessOrEqual(t, safe.MaxChainDepth, medium.MaxChainDepth)
	assert.LessOrEqual(t, medium.MaxChainDepth, relaxed.MaxChainDepth)
}

func TestPresets_Validate(t *testing.T) {
	t.Parallel()

	for name, cfg := range map[string]*config.Config{
		"extremelySafe": config.ExtremelySafe(),
		"medium":        config.Medium(),
		"relaxed":       config.Relaxed(),
	} {
		require.NoError(t, cfg.Validate(), name)
	}
}

func TestPreset_Unknown(t *testing.T) {
	t.Parallel()

	_, err := config.Preset("nonsense")
	require.ErrorIs(t, err, config.ErrUnknownPreset)
}

func TestConfig_Validate_RejectsNonPositiveTimeout(t *testing.T) {
	t.Parallel()

	cfg := config.Relaxed()
	cfg.TimeoutMS = 0

	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidTimeout)
}

func TestApply_OverridesScalarsAndUnionsSets(t *testing.T) {
	t.Parallel()

	base := config.Relaxed()
	timeout := 500

	overrides := &config.Overrides{
		TimeoutMS:        &timeout,
		DeniedProperties: []string{"extraBad"},
		AllowedPrefixes:  []string{"safe_"},
	}

	merged := config.Apply(base, overrides)

	assert.Equal(t, 500, merged.TimeoutMS)
	assert.Equal(t, base.MaxNodeCount, merged.MaxNodeCount)

	_, denied := merged.PropertySafety.DeniedProperties["extraBad"]
	assert.True(t, denied)
	_, stillDenied := merged.PropertySafety.DeniedProperties["constructor"]
	assert.True(t, stillDenied)

	assert.Contains(t, merged.PropertySafety.AllowedPrefixes, "safe_")

	// base must not be mutated.
	_, baseHasExtra := base.PropertySafety.DeniedProperties["extraBad"]
	assert.False(t, baseHasExtra)
}

func TestApply_NilOverridesReturnsEquivalentCopy(t *testing.T) {
	t.Parallel()

	base := config.Medium()
	merged := config.Apply(base, nil)

	assert.Equal(t, base.TimeoutMS, merged.TimeoutMS)
	assert.NotSame(t, &base.PropertySafety, &merged.PropertySafety)
}

func TestLoadOverridesYAML(t *testing.T) {
	t.Parallel()

	doc := []byte(`
timeout_ms: 2000
denied_properties:
  - toString
allowed_prefixes:
  - public_
`)

	overrides, err := config.LoadOverridesYAML(doc)
	require.NoError(t, err)
	require.NotNil(t, overrides.TimeoutMS)
	assert.Equal(t, 2000, *overrides.TimeoutMS)
	assert.Equal(t, []string{"toString"}, overrides.DeniedProperties)
	assert.Equal(t, []string{"public_"}, overrides.AllowedPrefixes)
}
