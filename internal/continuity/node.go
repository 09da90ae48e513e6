package continuity

import (
	"github.com/google/uuid"

	"github.com/ksiaz/obscore/internal/types"
)

// State is a node's lifecycle state. Transitions are deterministic and
// evaluated on every time advance; see Store.Advance.
type State string

const (
	StateActive   State = "ACTIVE"
	StateDormant  State = "DORMANT"
	StateArchived State = "ARCHIVED"
)

// Node is a price-level memory entity, owned exclusively by one symbol's
// Store. Strength and confidence are internal evidence accumulators —
// they are read by M4 for internal weighting (e.g. CentralTendencyDeviation's
// strength-weighted mean) but are never serialized into a primitive value
// or the outward Snapshot.
type Node struct {
	ID          string
	Symbol      string
	PriceCenter float64
	PriceBand   float64

	TradeExecutionCount  int64
	TotalVolume          float64
	LiquidationCount     int64
	LiquidationVolume    float64
	BuyerInitiatedVolume float64
	SellerInitiatedVolume float64

	// Strength is the current, possibly decayed, value. StrengthAtInteraction
	// is the value immediately after the last evidence accumulation — decay
	// is always recomputed from this baseline against elapsed idle time, so
	// repeated decay evaluations at the same timestamp are idempotent.
	Strength              float64
	StrengthAtInteraction float64
	Confidence            float64

	State             State
	CreatedTS         float64
	LastInteractionTS float64

	RestingSizeBid         float64
	RestingSizeAsk         float64
	PreviousRestingSizeBid float64
	PreviousRestingSizeAsk float64
	LastOrderbookUpdateTS  float64
	PreviousOrderbookUpdateTS float64

	// PresenceIntervals is the append-only log of closed (enter, exit)
	// ACTIVE spans. The currently open span, if the node is ACTIVE, is
	// tracked separately in openSince.
	PresenceIntervals []types.Interval
	openSince         *float64
}

// newNode creates a freshly-spawned ACTIVE node centered at price with
// the given band, at timestamp now.
func newNode(symbol string, price, band, now float64) *Node {
	n := &Node{
		ID:                uuid.NewString(),
		Symbol:            symbol,
		PriceCenter:       price,
		PriceBand:         band,
		State:             StateActive,
		CreatedTS:         now,
		LastInteractionTS: now,
	}
	n.openInterval(now)
	return n
}

// Overlaps reports whether price falls within the node's band.
func (n *Node) Overlaps(price float64) bool {
	d := price - n.PriceCenter
	if d < 0 {
		d = -d
	}
	return d <= n.PriceBand
}

func (n *Node) openInterval(now float64) {
	if n.openSince == nil {
		ts := now
		n.openSince = &ts
	}
}

func (n *Node) closeInterval(now float64) {
	if n.openSince != nil {
		n.PresenceIntervals = append(n.PresenceIntervals, types.Interval{Start: *n.openSince, End: now})
		n.openSince = nil
	}
}

// transitionTo moves the node to state, closing or opening the presence
// interval log as ACTIVE boundaries are crossed. It is a no-op if state
// equals the current state.
func (n *Node) transitionTo(state State, now float64) {
	if n.State == state {
		return
	}
	wasActive := n.State == StateActive
	willBeActive := state == StateActive

	if wasActive && !willBeActive {
		n.closeInterval(now)
	}
	if !wasActive && willBeActive {
		n.openInterval(now)
	}
	n.State = state
}

// boundedAdd adds delta to strength/confidence, clamping both to [0,1],
// and snapshots the new strength as the decay baseline for future advances.
func (n *Node) boundedAdd(dStrength, dConfidence float64) {
	n.StrengthAtInteraction = clamp01(n.StrengthAtInteraction + dStrength)
	n.Strength = n.StrengthAtInteraction
	n.Confidence = clamp01(n.Confidence + dConfidence)
}

// applyDecay recomputes Strength from the StrengthAtInteraction baseline
// given elapsed idle seconds and a per-state decay rate.
func (n *Node) applyDecay(idleSec, rate float64) {
	factor := 1 - rate*idleSec
	if factor < 0 {
		factor = 0
	}
	n.Strength = clamp01(n.StrengthAtInteraction * factor)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ActiveSince returns the timestamp the node most recently entered the
// ACTIVE state, if it is currently ACTIVE.
func (n *Node) ActiveSince() (float64, bool) {
	if n.openSince == nil {
		return 0, false
	}
	return *n.openSince, true
}

// PresenceDuration sums closed ACTIVE intervals plus, if currently
// ACTIVE, the open span up to asOf. Used by
// StructuralPersistenceDuration.
func (n *Node) PresenceDuration(asOf float64) (float64, []types.Interval) {
	return n.presenceDuration(asOf)
}

// presenceDuration sums closed intervals plus, if currently open, the
// open span up to asOf.
func (n *Node) presenceDuration(asOf float64) (float64, []types.Interval) {
	total := 0.0
	intervals := make([]types.Interval, len(n.PresenceIntervals), len(n.PresenceIntervals)+1)
	copy(intervals, n.PresenceIntervals)
	for _, iv := range n.PresenceIntervals {
		total += iv.End - iv.Start
	}
	if n.openSince != nil {
		open := types.Interval{Start: *n.openSince, End: asOf}
		intervals = append(intervals, open)
		total += open.End - open.Start
	}
	return total, intervals
}
