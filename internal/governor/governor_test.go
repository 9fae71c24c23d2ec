package governor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SouthBridgeAI/zodsheriff/internal/config"
	"github.com/SouthBridgeAI/zodsheriff/internal/governor"
)

func TestIncrementNode_TripsNodeLimit(t *testing.T) {
	t.Parallel()

	cfg := config.Relaxed()
	cfg.MaxNodeCount = 2

	g := governor.New(cfg)

	require.NoError(t, g.IncrementNode())
	require.NoError(t, g.IncrementNode())

	err := g.IncrementNode()
	require.Error(t, err)

	var fault *governor.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, governor.FaultNodeLimit, fault.Kind)
}

func TestCheckTimeout_TripsPastBudget(t *testing.T) {
	t.Parallel()

	cfg := config.Relaxed()
	cfg.TimeoutMS = 1

	g := governor.New(cfg)
	time.Sleep(5 * time.Millisecond)

	err := g.CheckTimeout()
	require.Error(t, err)

	var fault *governor.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, governor.FaultTimeout, fault.Kind)
}

func TestCheckTimeoutAggressive_TripsBeforeStrict(t *testing.T) {
	t.Parallel()

	cfg := config.Relaxed()
	cfg.TimeoutMS = 10

	g := governor.New(cfg)
	time.Sleep(9 * time.Millisecond)

	// Should already have crossed 90% of the 10ms budget.
	err := g.CheckTimeoutAggressive()
	require.Error(t, err)

	var fault *governor.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, governor.FaultTimeout, fault.Kind)
}

func TestTrackDepth_TripsPerKindCap(t *testing.T) {
	t.Parallel()

	cfg := config.Relaxed()
	cfg.MaxObjectDepth = 2
	cfg.MaxChainDepth = 5

	g := governor.New(cfg)

	require.NoError(t, g.TrackDepth(2, governor.DepthObject))
	err := g.TrackDepth(3, governor.DepthObject)
	require.Error(t, err)

	var fault *governor.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, governor.FaultDepthLimit, fault.Kind)

	// Chain depth has its own, looser cap.
	require.NoError(t, g.TrackDepth(5, governor.DepthChain))
}

func TestValidateSize_TripsSizeLimit(t *testing.T) {
	t.Parallel()

	g := governor.New(config.Relaxed())

	require.NoError(t, g.ValidateSize(20, 20, "properties"))

	err := g.ValidateSize(21, 20, "properties")
	require.Error(t, err)

	var fault *governor.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, governor.FaultSizeLimit, fault.Kind)
}

func TestReset_ZeroesCounters(t *testing.T) {
	t.Parallel()

	g := governor.New(config.Relaxed())

	require.NoError(t, g.IncrementNode())
	require.NoError(t, g.TrackDepth(3, governor.DepthObject))

	g.Reset()

	stats := g.Stats()
	assert.Equal(t, 0, stats.NodeCount)
	assert.Equal(t, 0, stats.MaxDepthReached)
}

func TestStats_ReflectsCounters(t *testing.T) {
	t.Parallel()

	g := governor.New(config.Relaxed())

	for i := 0; i < 3; i++ {
		require.NoError(t, g.IncrementNode())
	}

	require.NoError(t, g.TrackDepth(4, governor.DepthArgument))

	stats := g.Stats()
	assert.Equal(t, 3, stats.NodeCount)
	assert.Equal(t, 4, stats.MaxDepthReached)
}
