package ws

import (
	"strings"

	"github.com/bytedance/sonic"
)

// probe extracts just enough of a frame to route it: the "e" event tag and
// the presence of an error object (order rejections omit the tag).
type probe struct {
	Event string       `json:"e"`
	Error *ErrorDetail `json:"error"`
}

// Classify maps one inbound frame to its concrete message type. It is
// total: a frame that is not valid JSON or matches no known shape comes
// back as Unknown rather than an error, so a stream reader never stops on
// an unrecognized message.
func Classify(data []byte) ServerMessage {
	var p probe
	if err := sonic.Unmarshal(data, &p); err != nil {
		return unknown(err.Error(), data)
	}

	switch p.Event {
	case eventStatus:
		return decode[StatusMessage](data)
	case eventPong:
		return decode[PongMessage](data)
	case eventError:
		return decode[ErrorMessage](data)
	case eventSubscribe:
		return decode[SubscribeResult](data)
	case eventUnsubscribe:
		return decode[UnsubscribeResult](data)
	case eventListSubscriptions:
		return decode[ListSubscriptionsResult](data)
	case eventDepthUpdate:
		return decode[DepthUpdate](data)
	case eventAggTrade:
		return decode[AggTrade](data)
	case eventBookTicker:
		return decode[BookTicker](data)
	case eventMarkPriceUpdate:
		return decode[MarkPriceUpdate](data)
	case eventLiquidation:
		return decode[ForceOrder](data)
	case eventOrderTradeUpdate:
		return decode[OrderUpdate](data)
	}

	if p.Error != nil {
		return decode[ErrorMessage](data)
	}
	return unknown("unrecognized message shape", data)
}

func decode[T ServerMessage](data []byte) ServerMessage {
	var msg T
	if err := sonic.Unmarshal(data, &msg); err != nil {
		return unknown(err.Error(), data)
	}
	return msg
}

func unknown(reason string, data []byte) Unknown {
	return Unknown{
		ParseError: reason,
		Raw:        strings.ToValidUTF8(string(data), "�"),
	}
}
