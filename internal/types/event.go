// Package types holds the canonical records shared across the ingestion,
// continuity, temporal, and primitive layers: the M1 output events, the
// M4 primitive value records, and the outward Snapshot schema.
package types

// Side is the aggressor or liquidation side of an event.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// EventType tags which raw payload shape M1 was asked to normalize.
type EventType string

const (
	EventTrade       EventType = "TRADE"
	EventLiquidation EventType = "LIQUIDATION"
	EventDepth       EventType = "DEPTH"
)

// Trade is a canonical executed trade, the output of normalize_trade.
type Trade struct {
	Timestamp      float64
	Symbol         string
	Price          float64
	Quantity       float64
	AggressorSide  Side
}

// Liquidation is a canonical forced-liquidation fill, the output of
// normalize_liquidation. Liquidations are the only event that creates a
// continuity node (see internal/continuity).
type Liquidation struct {
	Timestamp float64
	Symbol    string
	Price     float64
	Quantity  float64
	Side      Side
}

// PriceLevel is one (price, size) pair from a depth snapshot. A size of
// zero means the level was removed.
type PriceLevel struct {
	Price float64
	Size  float64
}

// DepthUpdate is a canonical order-book diff: an absolute state per level
// at the given timestamp, not a delta against a prior state.
type DepthUpdate struct {
	Timestamp float64
	Symbol    string
	Bids      []PriceLevel
	Asks      []PriceLevel
}
