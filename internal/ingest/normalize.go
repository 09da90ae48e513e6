// Package ingest implements M1: pure translation of exchange-specific raw
// payloads into canonical types.Trade / types.Liquidation /
// types.DepthUpdate records. It retains no state between calls and never
// panics on malformed input — a parse failure increments a counter and
// returns false.
package ingest

import (
	"strconv"
	"strings"

	"github.com/ksiaz/obscore/internal/obsmetrics"
	"github.com/ksiaz/obscore/internal/types"
)

// Payload is the duck-typed shape a raw exchange message arrives in —
// wire-compatible with the upstream collector's normalized JSON. Only
// the fields a given normalizer reads are required; everything else is
// ignored.
type Payload map[string]any

// Normalizer converts raw payloads into canonical events, counting parse
// failures per symbol and event type rather than raising.
type Normalizer struct {
	counters *obsmetrics.Counters
}

// NewNormalizer constructs a Normalizer that reports failures to counters.
func NewNormalizer(counters *obsmetrics.Counters) *Normalizer {
	return &Normalizer{counters: counters}
}

// NormalizeTrade converts a raw trade payload. Returns (Trade, true) on
// success, (zero value, false) on any parse failure.
func (n *Normalizer) NormalizeTrade(symbol string, p Payload) (types.Trade, bool) {
	tsMs, ok := asFloat(p["timestamp_ms"])
	if !ok {
		n.fail(types.EventTrade, symbol)
		return types.Trade{}, false
	}
	price, ok := asFloat(p["price"])
	if !ok {
		n.fail(types.EventTrade, symbol)
		return types.Trade{}, false
	}
	qty, ok := asFloat(p["quantity"])
	if !ok {
		n.fail(types.EventTrade, symbol)
		return types.Trade{}, false
	}

	side, ok := aggressorSide(p)
	if !ok {
		n.fail(types.EventTrade, symbol)
		return types.Trade{}, false
	}

	return types.Trade{
		Timestamp:     tsMs / 1000.0,
		Symbol:        symbol,
		Price:         price,
		Quantity:      qty,
		AggressorSide: side,
	}, true
}

// NormalizeLiquidation converts a raw liquidation payload.
func (n *Normalizer) NormalizeLiquidation(symbol string, p Payload) (types.Liquidation, bool) {
	tsMs, ok := asFloat(p["timestamp_ms"])
	if !ok {
		n.fail(types.EventLiquidation, symbol)
		return types.Liquidation{}, false
	}
	price, ok := asFloat(p["price"])
	if !ok {
		n.fail(types.EventLiquidation, symbol)
		return types.Liquidation{}, false
	}
	qty, ok := asFloat(p["quantity"])
	if !ok {
		n.fail(types.EventLiquidation, symbol)
		return types.Liquidation{}, false
	}
	side, ok := asSide(p["side"])
	if !ok {
		n.fail(types.EventLiquidation, symbol)
		return types.Liquidation{}, false
	}

	return types.Liquidation{
		Timestamp: tsMs / 1000.0,
		Symbol:    symbol,
		Price:     price,
		Quantity:  qty,
		Side:      side,
	}, true
}

// NormalizeDepthUpdate converts a raw depth payload. bids/asks arrive as
// lists of two-element [price, size] pairs, the wire shape of the
// upstream exchange's normalized depth form.
func (n *Normalizer) NormalizeDepthUpdate(symbol string, p Payload) (types.DepthUpdate, bool) {
	tsMs, ok := asFloat(p["timestamp_ms"])
	if !ok {
		n.fail(types.EventDepth, symbol)
		return types.DepthUpdate{}, false
	}

	bids, ok := parseLevels(p["bids"])
	if !ok {
		n.fail(types.EventDepth, symbol)
		return types.DepthUpdate{}, false
	}
	asks, ok := parseLevels(p["asks"])
	if !ok {
		n.fail(types.EventDepth, symbol)
		return types.DepthUpdate{}, false
	}

	return types.DepthUpdate{
		Timestamp: tsMs / 1000.0,
		Symbol:    symbol,
		Bids:      bids,
		Asks:      asks,
	}, true
}

func (n *Normalizer) fail(evt types.EventType, symbol string) {
	if n.counters != nil {
		n.counters.IncNormalizeFailure(evt, symbol)
	}
}

func aggressorSide(p Payload) (types.Side, bool) {
	if raw, ok := p["aggressor_side"]; ok {
		return asSide(raw)
	}
	// "buyer maker" flag: true means the resting order was a buy, so the
	// aggressor that triggered the trade was the seller.
	if raw, ok := p["buyer_maker"]; ok {
		if b, ok := raw.(bool); ok {
			if b {
				return types.SideSell, true
			}
			return types.SideBuy, true
		}
	}
	return "", false
}

func asSide(v any) (types.Side, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return types.SideBuy, true
	case "SELL":
		return types.SideSell, true
	default:
		return "", false
	}
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		return parseFloatStrict(x)
	default:
		return 0, false
	}
}

func parseFloatStrict(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseLevels(v any) ([]types.PriceLevel, bool) {
	raw, ok := v.([]any)
	if !ok {
		if v == nil {
			return nil, true
		}
		return nil, false
	}
	levels := make([]types.PriceLevel, 0, len(raw))
	for _, entry := range raw {
		pair, ok := entry.([]any)
		if !ok || len(pair) != 2 {
			return nil, false
		}
		price, ok := asFloat(pair[0])
		if !ok {
			return nil, false
		}
		size, ok := asFloat(pair[1])
		if !ok {
			return nil, false
		}
		levels = append(levels, types.PriceLevel{Price: price, Size: size})
	}
	return levels, true
}
