package temporal

// Candle is a closed OHLC bucket built from trade-derived price samples
// only — depth updates never feed the candle builder.
type Candle struct {
	BucketStart float64
	BucketEnd   float64
	Open        float64
	High        float64
	Low         float64
	Close       float64
}

// CandleBuilder buckets pushed trade prices into fixed-width OHLC
// candles per symbol, per SPEC_FULL.md's resolution of Open Question 4.
type CandleBuilder struct {
	bucketSec float64
	bySym     map[string]*symbolCandles
}

type symbolCandles struct {
	open      *Candle // currently accumulating, not yet closed
	lastClosed *Candle
}

// NewCandleBuilder builds a candle accumulator bucketing into bucketSec
// windows.
func NewCandleBuilder(bucketSec float64) *CandleBuilder {
	return &CandleBuilder{
		bucketSec: bucketSec,
		bySym:     make(map[string]*symbolCandles),
	}
}

// PushTradePrice folds a trade-derived (timestamp, price) sample into the
// symbol's candle accumulator, closing the prior bucket when timestamp
// crosses into a new one.
func (b *CandleBuilder) PushTradePrice(symbol string, timestamp, price float64) {
	sc, ok := b.bySym[symbol]
	if !ok {
		sc = &symbolCandles{}
		b.bySym[symbol] = sc
	}

	bucketStart := bucketFloor(timestamp, b.bucketSec)

	if sc.open == nil {
		sc.open = &Candle{BucketStart: bucketStart, BucketEnd: bucketStart + b.bucketSec, Open: price, High: price, Low: price, Close: price}
		return
	}

	if bucketStart >= sc.open.BucketEnd {
		closed := *sc.open
		sc.lastClosed = &closed
		sc.open = &Candle{BucketStart: bucketStart, BucketEnd: bucketStart + b.bucketSec, Open: price, High: price, Low: price, Close: price}
		return
	}

	if price > sc.open.High {
		sc.open.High = price
	}
	if price < sc.open.Low {
		sc.open.Low = price
	}
	sc.open.Close = price
}

// LastClosed returns the most recently closed candle for symbol, or
// false if none has closed yet. A bucket closes only when a trade price
// lands in a later bucket; elapsed time alone does not close it.
func (b *CandleBuilder) LastClosed(symbol string) (Candle, bool) {
	sc, ok := b.bySym[symbol]
	if !ok || sc.lastClosed == nil {
		return Candle{}, false
	}
	return *sc.lastClosed, true
}

func bucketFloor(ts, bucketSec float64) float64 {
	if bucketSec <= 0 {
		return ts
	}
	n := int64(ts / bucketSec)
	return float64(n) * bucketSec
}
