// Package governor implements the resource governor: process-local
// counters that bound node count, elapsed time, and per-kind recursion
// depth so validation terminates under adversarial input.
package governor

import (
	"strconv"
	"time"

	"github.com/SouthBridgeAI/zodsheriff/internal/config"
)

// FaultKind tags which limit a Governor tripped.
type FaultKind string

// Fault kinds.
const (
	FaultTimeout    FaultKind = "Timeout"
	FaultNodeLimit  FaultKind = "NodeLimit"
	FaultDepthLimit FaultKind = "DepthLimit"
	FaultSizeLimit  FaultKind = "SizeLimit"
)

// Fault is the tagged, unwinding error raised when a Governor limit trips.
type Fault struct {
	Kind    FaultKind
	Message string
}

func (f *Fault) Error() string {
	return f.Message
}

func newFault(kind FaultKind, message string) *Fault {
	return &Fault{Kind: kind, Message: message}
}

// DepthKind names which of the three independently-capped recursion
// depths track_depth is accounting for.
type DepthKind string

// Depth kinds.
const (
	DepthObject   DepthKind = "object"
	DepthChain    DepthKind = "chain"
	DepthArgument DepthKind = "argument"
)

// checkIntervalMS is the minimum cadence, in milliseconds, between
// wall-clock timeout checks performed inside IncrementNode.
const checkIntervalMS = 100

// aggressiveFraction is the fraction of the timeout budget at which
// CheckTimeoutAggressive trips, ahead of the strict 100% check.
const aggressiveFraction = 0.9

// Stats is a snapshot of governor counters, returned by Stats().
type Stats struct {
	NodeCount      int
	Elapsed        time.Duration
	MaxDepthReached int
}

// Governor is a single run's resource accounting. It is not safe for
// concurrent use; each validation run owns one Governor.
type Governor struct {
	cfg             *config.Config
	nodeCount       int
	startTime       time.Time
	lastTimeCheck   time.Time
	maxDepthReached int
}

// New creates a Governor bound to cfg, already reset and ready for use.
func New(cfg *config.Config) *Governor {
	g := &Governor{cfg: cfg}
	g.Reset()

	return g
}

// Reset zeroes counters and stamps the start time, for reuse across runs.
func (g *Governor) Reset() {
	now := time.Now()
	g.nodeCount = 0
	g.startTime = now
	g.lastTimeCheck = now
	g.maxDepthReached = 0
}

// IncrementNode counts one syntax-tree node visited. Every recursive
// descent step in the core must call this. On a 100ms-or-longer gap
// since the last check it also evaluates the wall-clock timeout.
func (g *Governor) IncrementNode() error {
	g.nodeCount++

	now := time.Now()
	if now.Sub(g.lastTimeCheck) >= checkIntervalMS*time.Millisecond {
		g.lastTimeCheck = now

		if err := g.checkTimeoutAt(now, false); err != nil {
			return err
		}
	}

	if g.nodeCount > g.cfg.MaxNodeCount {
		return newFault(FaultNodeLimit, "node count exceeded maximum of "+strconv.Itoa(g.cfg.MaxNodeCount))
	}

	return nil
}

// CheckTimeoutAggressive trips at 90% of the configured timeout. Call it
// immediately before performing a unit of work.
func (g *Governor) CheckTimeoutAggressive() error {
	return g.checkTimeoutAt(time.Now(), true)
}

// CheckTimeout trips at 100% of the configured timeout. Call it
// immediately after performing a unit of work.
func (g *Governor) CheckTimeout() error {
	return g.checkTimeoutAt(time.Now(), false)
}

func (g *Governor) checkTimeoutAt(now time.Time, aggressive bool) error {
	elapsed := now.Sub(g.startTime)
	budget := time.Duration(g.cfg.TimeoutMS) * time.Millisecond

	threshold := budget
	if aggressive {
		threshold = time.Duration(float64(budget) * aggressiveFraction)
	}

	if elapsed > threshold {
		return newFault(FaultTimeout, "validation exceeded time budget")
	}

	return nil
}

// TrackDepth compares depth against the cap configured for kind and
// updates MaxDepthReached. All three depth kinds share one running
// maximum but are capped independently.
func (g *Governor) TrackDepth(depth int, kind DepthKind) error {
	if depth > g.maxDepthReached {
		g.maxDepthReached = depth
	}

	cap := g.capFor(kind)
	if depth > cap {
		return newFault(FaultDepthLimit, depthLabel(kind)+" nesting depth exceeded maximum of "+strconv.Itoa(cap))
	}

	return nil
}

// depthLabel renders kind for diagnostic messages, e.g. "Chain nesting
// depth exceeded maximum of 2".
func depthLabel(kind DepthKind) string {
	switch kind {
	case DepthObject:
		return "Object"
	case DepthChain:
		return "Chain"
	case DepthArgument:
		return "Argument"
	default:
		return string(kind)
	}
}

func (g *Governor) capFor(kind DepthKind) int {
	switch kind {
	case DepthObject:
		return g.cfg.MaxObjectDepth
	case DepthChain:
		return g.cfg.MaxChainDepth
	case DepthArgument:
		return g.cfg.MaxArgumentNesting
	default:
		return 0
	}
}

// ValidateSize fails with FaultSizeLimit if n exceeds cap. label
// identifies the quantity being checked (e.g. "properties", "string
// length") for the fault message.
func (g *Governor) ValidateSize(n, cap int, label string) error {
	if n > cap {
		return newFault(FaultSizeLimit, label+" exceeds maximum of "+strconv.Itoa(cap))
	}

	return nil
}

// Stats returns the current counter snapshot.
func (g *Governor) Stats() Stats {
	return Stats{
		NodeCount:       g.nodeCount,
		Elapsed:         time.Since(g.startTime),
		MaxDepthReached: g.maxDepthReached,
	}
}
