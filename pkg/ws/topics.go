package ws

import "fmt"

// Depth is the number of orderbook levels carried by a depth stream.
type Depth int

const (
	// Depth5 streams the top 5 levels per side.
	Depth5 Depth = 5
	// Depth10 streams the top 10 levels per side.
	Depth10 Depth = 10
	// Depth20 streams the top 20 levels per side.
	Depth20 Depth = 20
)

// KlineInterval is the candle width of a kline stream.
type KlineInterval string

const (
	Interval1m  KlineInterval = "1m"
	Interval5m  KlineInterval = "5m"
	Interval15m KlineInterval = "15m"
	Interval30m KlineInterval = "30m"
	Interval1h  KlineInterval = "1h"
	Interval4h  KlineInterval = "4h"
	Interval1d  KlineInterval = "1d"
)

// String returns the interval's wire token.
func (k KlineInterval) String() string { return string(k) }

type topicKind int

const (
	topicAggTrade topicKind = iota
	topicDepth
	topicBookTicker
	topicMarkPrice
	topicKline
	topicForceOrder
	topicAllTickers
	topicAllMarkPrices
	topicAllBookTickers
	topicAllForceOrders
)

// Topic is a typed subscription stream identifier. Construct topics with
// the Topic* functions and pass them to Subscribe or Unsubscribe; String
// renders the canonical wire form (for example "BTC-USD@depth10").
type Topic struct {
	kind     topicKind
	symbol   string
	depth    Depth
	interval KlineInterval
}

// TopicAggTrade streams aggregated trades for a symbol.
func TopicAggTrade(symbol string) Topic {
	return Topic{kind: topicAggTrade, symbol: symbol}
}

// TopicDepth streams orderbook snapshots for a symbol at the given depth.
func TopicDepth(symbol string, depth Depth) Topic {
	return Topic{kind: topicDepth, symbol: symbol, depth: depth}
}

// TopicBookTicker streams best bid and ask quotes for a symbol.
func TopicBookTicker(symbol string) Topic {
	return Topic{kind: topicBookTicker, symbol: symbol}
}

// TopicMarkPrice streams mark price and funding updates for a symbol.
func TopicMarkPrice(symbol string) Topic {
	return Topic{kind: topicMarkPrice, symbol: symbol}
}

// TopicKline streams candles for a symbol at the given interval.
func TopicKline(symbol string, interval KlineInterval) Topic {
	return Topic{kind: topicKline, symbol: symbol, interval: interval}
}

// TopicForceOrder streams liquidation orders for a symbol.
func TopicForceOrder(symbol string) Topic {
	return Topic{kind: topicForceOrder, symbol: symbol}
}

// TopicAllTickers streams mini ticker updates for every symbol.
func TopicAllTickers() Topic { return Topic{kind: topicAllTickers} }

// TopicAllMarkPrices streams mark price updates for every symbol.
func TopicAllMarkPrices() Topic { return Topic{kind: topicAllMarkPrices} }

// TopicAllBookTickers streams best bid and ask quotes for every symbol.
func TopicAllBookTickers() Topic { return Topic{kind: topicAllBookTickers} }

// TopicAllForceOrders streams liquidation orders for every symbol.
func TopicAllForceOrders() Topic { return Topic{kind: topicAllForceOrders} }

// String renders the topic in its canonical wire form.
func (t Topic) String() string {
	switch t.kind {
	case topicAggTrade:
		return t.symbol + "@aggTrade"
	case topicDepth:
		return fmt.Sprintf("%s@depth%d", t.symbol, int(t.depth))
	case topicBookTicker:
		return t.symbol + "@bookTicker"
	case topicMarkPrice:
		return t.symbol + "@markPrice"
	case topicKline:
		return fmt.Sprintf("%s@kline_%s", t.symbol, t.interval)
	case topicForceOrder:
		return t.symbol + "@forceOrder"
	case topicAllTickers:
		return "!ticker@arr"
	case topicAllMarkPrices:
		return "!markPrice@arr"
	case topicAllBookTickers:
		return "!bookTicker@arr"
	case topicAllForceOrders:
		return "!forceOrder@arr"
	}
	return ""
}

func topicStrings(topics []Topic) []string {
	out := make([]string, len(topics))
	for i, t := range topics {
		out[i] = t.String()
	}
	return out
}
