package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/ksiaz/obscore/internal/types"
)

// WSFeedConfig configures a reference exchange WebSocket collector.
type WSFeedConfig struct {
	URL              string
	Symbol           string
	ReconnectBackoff time.Duration
	DrainRatePerSec  float64 // bounds how fast buffered frames are pushed into Ingest
	DrainBurst       int
}

// WSFeed dials one exchange stream and drains decoded frames into a
// sink's Ingest method from a single goroutine, preserving the
// single-threaded-core guarantee described in spec.md §5.
type WSFeed struct {
	cfg     WSFeedConfig
	sink    Sink
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

// NewWSFeed builds a feed. The circuit breaker guards the dial+read loop
// against a flapping exchange endpoint; the rate limiter bounds how fast
// a reconnect replay burst is drained into the sink.
func NewWSFeed(cfg WSFeedConfig, sink Sink) *WSFeed {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        fmt.Sprintf("wsfeed-%s", cfg.Symbol),
		MaxRequests: 1,
		Timeout:     cfg.ReconnectBackoff,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	limit := rate.Limit(cfg.DrainRatePerSec)
	if cfg.DrainRatePerSec <= 0 {
		limit = rate.Inf
	}

	return &WSFeed{
		cfg:     cfg,
		sink:    sink,
		breaker: breaker,
		limiter: rate.NewLimiter(limit, cfg.DrainBurst),
	}
}

// Run dials the feed and drains frames until ctx is cancelled, which is
// the only way it returns. Any other error (dial, read, or a sink
// rejection) ends the current cycle, is logged, and the feed redials after
// ReconnectBackoff. Each successfully decoded frame is rate-limited and
// handed to the sink from this single goroutine.
func (f *WSFeed) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, err := f.breaker.Execute(func() (any, error) {
			return nil, f.runOnce(ctx)
		})
		if err != nil {
			log.Warn().Err(err).Str("symbol", f.cfg.Symbol).Msg("collector: feed cycle ended, will retry")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.cfg.ReconnectBackoff):
		}
	}
}

func (f *WSFeed) runOnce(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("collector: dial %s: %w", f.cfg.URL, err)
	}
	defer conn.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, raw, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("collector: read: %w", err)
		}

		evt, err := decodeFrame(f.cfg.Symbol, raw)
		if err != nil {
			log.Debug().Err(err).Str("symbol", f.cfg.Symbol).Msg("collector: dropping undecodable frame")
			continue
		}

		if err := f.limiter.Wait(ctx); err != nil {
			return err
		}

		if err := f.sink.Ingest(evt.Timestamp, evt.Symbol, evt.EventType, evt.Payload); err != nil {
			return fmt.Errorf("collector: sink rejected event: %w", err)
		}
	}
}

type wireFrame struct {
	Type      string         `json:"type"`
	Timestamp float64        `json:"timestamp_ms"`
	Payload   map[string]any `json:"payload"`
}

func decodeFrame(symbol string, raw []byte) (RawEvent, error) {
	var f wireFrame
	if err := json.Unmarshal(raw, &f); err != nil {
		return RawEvent{}, fmt.Errorf("decode frame: %w", err)
	}

	var evtType types.EventType
	switch f.Type {
	case "trade":
		evtType = types.EventTrade
	case "liquidation":
		evtType = types.EventLiquidation
	case "depth":
		evtType = types.EventDepth
	default:
		return RawEvent{}, fmt.Errorf("unknown frame type %q", f.Type)
	}

	if f.Payload == nil {
		f.Payload = map[string]any{}
	}
	f.Payload["timestamp_ms"] = f.Timestamp

	return RawEvent{
		Timestamp: f.Timestamp / 1000.0,
		Symbol:    symbol,
		EventType: evtType,
		Payload:   f.Payload,
	}, nil
}
