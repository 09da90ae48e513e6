// Package continuity implements M2: the per-symbol set of price-level
// memory nodes, their evidence accumulation, decay, and lifecycle.
package continuity

import (
	"sort"

	"github.com/ksiaz/obscore/internal/config"
	"github.com/ksiaz/obscore/internal/types"
)

// Store owns every symbol's node set. A Store is never shared across
// symbols for queries — callers always scope by symbol, per the
// partitioning invariant in spec.md §4.5.
type Store struct {
	cfg     config.SystemConfig
	bySym   map[string][]*Node
}

// NewStore builds an empty continuity store for the given configuration.
func NewStore(cfg config.SystemConfig) *Store {
	return &Store{
		cfg:   cfg,
		bySym: make(map[string][]*Node),
	}
}

// ActiveNodes returns the ACTIVE nodes for symbol, in creation order. The
// slice itself is freshly built on each call, but its elements are the
// live nodes, so callers must not mutate them.
func (s *Store) ActiveNodes(symbol string) []*Node {
	return s.nodesInState(symbol, StateActive)
}

// AllNodes returns every node for symbol regardless of state.
func (s *Store) AllNodes(symbol string) []*Node {
	return s.bySym[symbol]
}

func (s *Store) nodesInState(symbol string, state State) []*Node {
	var out []*Node
	for _, n := range s.bySym[symbol] {
		if n.State == state {
			out = append(out, n)
		}
	}
	return out
}

// NearestToPrice returns the node (in any state) whose center is closest
// to price, or nil if the symbol has no nodes.
func (s *Store) NearestToPrice(symbol string, price float64) *Node {
	nodes := s.bySym[symbol]
	if len(nodes) == 0 {
		return nil
	}
	best := nodes[0]
	bestDist := absf(price - best.PriceCenter)
	for _, n := range nodes[1:] {
		d := absf(price - n.PriceCenter)
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// ApplyLiquidation implements the node creation policy: reinforce an
// overlapping ACTIVE node, revive an overlapping DORMANT/ARCHIVED node,
// or create a new node.
func (s *Store) ApplyLiquidation(liq types.Liquidation) {
	nodes := s.bySym[liq.Symbol]

	for _, n := range nodes {
		if n.State == StateActive && n.Overlaps(liq.Price) {
			s.reinforceWithLiquidation(n, liq)
			return
		}
	}

	for _, n := range nodes {
		if n.State != StateActive && n.Overlaps(liq.Price) {
			s.reviveWithLiquidation(n, liq)
			return
		}
	}

	band := s.cfg.BandFor(liq.Symbol)
	n := newNode(liq.Symbol, liq.Price, band, liq.Timestamp)
	s.recordLiquidation(n, liq)
	s.bySym[liq.Symbol] = append(s.bySym[liq.Symbol], n)
}

func (s *Store) reinforceWithLiquidation(n *Node, liq types.Liquidation) {
	s.recordLiquidation(n, liq)
	n.boundedAdd(0.1, 0) // revisit bonus
}

func (s *Store) reviveWithLiquidation(n *Node, liq types.Liquidation) {
	n.transitionTo(StateActive, liq.Timestamp)
	n.LastInteractionTS = liq.Timestamp
	n.boundedAdd(0.2, 0) // revival bonus, capped at 1.0 by boundedAdd
	s.recordLiquidation(n, liq)
}

// recordLiquidation applies the Liquidation evidence row (0.3+0.05n
// strength, 0.5 confidence, n = liquidations at this level including
// this one) and the bookkeeping fields.
func (s *Store) recordLiquidation(n *Node, liq types.Liquidation) {
	n.LiquidationCount++
	n.LiquidationVolume += liq.Quantity
	n.LastInteractionTS = liq.Timestamp
	dStrength := 0.3 + 0.05*float64(n.LiquidationCount)
	n.boundedAdd(dStrength, 0.5)
}

// ApplyTrade updates every node whose band contains the trade price with
// the Executed-volume evidence row.
func (s *Store) ApplyTrade(t types.Trade) {
	for _, n := range s.bySym[t.Symbol] {
		if !n.Overlaps(t.Price) {
			continue
		}
		n.TradeExecutionCount++
		n.TotalVolume += t.Quantity
		switch t.AggressorSide {
		case types.SideBuy:
			n.BuyerInitiatedVolume += t.Quantity
		case types.SideSell:
			n.SellerInitiatedVolume += t.Quantity
		}
		n.LastInteractionTS = t.Timestamp
		dStrength := 0.4 + 0.05*(t.Quantity/1000.0)
		n.boundedAdd(dStrength, 0.7)
	}
}

// ApplyDepthUpdate folds a depth snapshot into every node whose band
// overlaps a changed level. Orderbook-persistence evidence is applied
// using the elapsed time since the node's last orderbook touch.
func (s *Store) ApplyDepthUpdate(d types.DepthUpdate) {
	for _, lvl := range d.Bids {
		s.applyLevel(d.Symbol, d.Timestamp, lvl, true)
	}
	for _, lvl := range d.Asks {
		s.applyLevel(d.Symbol, d.Timestamp, lvl, false)
	}
}

func (s *Store) applyLevel(symbol string, ts float64, lvl types.PriceLevel, isBid bool) {
	for _, n := range s.bySym[symbol] {
		if !n.Overlaps(lvl.Price) {
			continue
		}

		duration := 0.0
		if n.LastOrderbookUpdateTS > 0 {
			duration = ts - n.LastOrderbookUpdateTS
			if duration < 0 {
				duration = 0
			}
		}

		if isBid {
			n.PreviousRestingSizeBid = n.RestingSizeBid
			n.RestingSizeBid = lvl.Size
		} else {
			n.PreviousRestingSizeAsk = n.RestingSizeAsk
			n.RestingSizeAsk = lvl.Size
		}
		n.PreviousOrderbookUpdateTS = n.LastOrderbookUpdateTS
		n.LastOrderbookUpdateTS = ts

		if duration > 0 {
			n.boundedAdd(0.3+0.01*duration, 0.6)
		}
	}
}

// Advance applies decay and evaluates lifecycle transitions for every
// node in symbol, as of now. It is called by M5 on every ingest and on
// every explicit AdvanceTime.
func (s *Store) Advance(symbol string, now float64) {
	for _, n := range s.bySym[symbol] {
		s.decayOne(n, now)
		s.transitionOne(n, now)
	}
}

func (s *Store) decayOne(n *Node, now float64) {
	idle := now - n.LastInteractionTS
	if idle < 0 {
		idle = 0
	}
	var rate float64
	switch n.State {
	case StateActive:
		rate = s.cfg.Decay.ActiveRate
	case StateDormant:
		rate = s.cfg.Decay.DormantRate
	case StateArchived:
		rate = s.cfg.Decay.ArchivedRate
	}
	n.applyDecay(idle, rate)
}

func (s *Store) transitionOne(n *Node, now float64) {
	idle := now - n.LastInteractionTS
	if idle < 0 {
		idle = 0
	}
	switch n.State {
	case StateActive:
		if n.Strength < s.cfg.Lifecycle.ActiveToDormantStrength || idle > s.cfg.Lifecycle.ActiveToDormantIdleSec {
			n.transitionTo(StateDormant, now)
		}
	case StateDormant:
		if n.Strength < s.cfg.Lifecycle.DormantToArchivedStrength || idle > s.cfg.Lifecycle.DormantToArchivedIdleSec {
			n.transitionTo(StateArchived, now)
		}
	case StateArchived:
		// frozen: no time-based transition out of ARCHIVED.
	}
}

// CheckInvariants verifies the structural invariants that must hold for a
// symbol's ACTIVE nodes at all times: symbol ownership, strength/confidence
// bounds, and non-overlap of distinct ACTIVE bands. Returns a single bool
// (true when all hold) so M5 can decide whether to halt.
func (s *Store) CheckInvariants(symbol string) bool {
	active := s.nodesInState(symbol, StateActive)
	sort.Slice(active, func(i, j int) bool { return active[i].PriceCenter < active[j].PriceCenter })

	for i, n := range active {
		if n.Symbol != symbol {
			return false
		}
		if n.Strength < 0 || n.Strength > 1 || n.Confidence < 0 || n.Confidence > 1 {
			return false
		}
		if i > 0 {
			prev := active[i-1]
			if prev.PriceCenter+prev.PriceBand >= n.PriceCenter-n.PriceBand {
				return false
			}
		}
	}
	return true
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
