package ws

import (
	"github.com/cockroachdb/apd/v3"

	"bullet/pkg/core"
)

// Request methods accepted by the server.
const (
	MethodSubscribe         = "SUBSCRIBE"
	MethodUnsubscribe       = "UNSUBSCRIBE"
	MethodListSubscriptions = "LIST_SUBSCRIPTIONS"
	MethodPing              = "PING"
	MethodOrderPlace        = "ORDER_PLACE"
	MethodOrderCancel       = "ORDER_CANCEL"
)

// Event tags carried in the "e" field of server messages.
const (
	eventStatus            = "status"
	eventPong              = "pong"
	eventError             = "error"
	eventSubscribe         = "subscribe"
	eventUnsubscribe       = "unsubscribe"
	eventListSubscriptions = "list_subscriptions"
	eventDepthUpdate       = "depthUpdate"
	eventAggTrade          = "aggTrade"
	eventBookTicker        = "bookTicker"
	eventMarkPriceUpdate   = "markPriceUpdate"
	eventLiquidation       = "liquidation"
	eventOrderTradeUpdate  = "orderTradeUpdate"
)

// ClientMessage is a request frame sent to the server. The optional id is
// echoed back in the matching response so callers can correlate replies.
type ClientMessage struct {
	Method string          `json:"method"`
	ID     *core.RequestID `json:"id,omitempty"`
	Params any             `json:"params,omitempty"`
}

// OrderParams carries the signed transaction wire string for order
// placement and cancellation requests.
type OrderParams struct {
	Tx string `json:"tx"`
}

// NewSubscribeMessage builds a SUBSCRIBE request for the given topics.
func NewSubscribeMessage(topics []string, id *core.RequestID) ClientMessage {
	return ClientMessage{Method: MethodSubscribe, ID: id, Params: topics}
}

// NewUnsubscribeMessage builds an UNSUBSCRIBE request for the given topics.
func NewUnsubscribeMessage(topics []string, id *core.RequestID) ClientMessage {
	return ClientMessage{Method: MethodUnsubscribe, ID: id, Params: topics}
}

// NewListSubscriptionsMessage builds a LIST_SUBSCRIPTIONS request.
func NewListSubscriptionsMessage(id *core.RequestID) ClientMessage {
	return ClientMessage{Method: MethodListSubscriptions, ID: id}
}

// NewPingMessage builds an application-level PING request.
func NewPingMessage(id *core.RequestID) ClientMessage {
	return ClientMessage{Method: MethodPing, ID: id}
}

// NewOrderPlaceMessage builds an ORDER_PLACE request carrying a signed
// transaction in wire form.
func NewOrderPlaceMessage(tx string, id *core.RequestID) ClientMessage {
	return ClientMessage{Method: MethodOrderPlace, ID: id, Params: OrderParams{Tx: tx}}
}

// NewOrderCancelMessage builds an ORDER_CANCEL request carrying a signed
// transaction in wire form.
func NewOrderCancelMessage(tx string, id *core.RequestID) ClientMessage {
	return ClientMessage{Method: MethodOrderCancel, ID: id, Params: OrderParams{Tx: tx}}
}

// ServerMessage is one classified inbound frame. Every frame classifies to
// exactly one concrete variant; frames that match nothing become Unknown.
type ServerMessage interface {
	// RequestID returns the correlating request id when the message
	// carries one.
	RequestID() (core.RequestID, bool)
}

func requestID(id *core.RequestID) (core.RequestID, bool) {
	if id == nil {
		return 0, false
	}
	return *id, true
}

// StatusMessage reports a session lifecycle transition. The first message
// after a successful connect is a StatusMessage with Status "connected".
type StatusMessage struct {
	EventTime int64  `json:"E"`
	Status    string `json:"status"`
	ClientID  string `json:"clientId"`
}

func (StatusMessage) RequestID() (core.RequestID, bool) { return 0, false }

// StatusConnected is the status value announcing a ready session.
const StatusConnected = "connected"

// PongMessage answers an application-level PING.
type PongMessage struct {
	ID        *core.RequestID `json:"id"`
	EventTime int64           `json:"E"`
}

func (m PongMessage) RequestID() (core.RequestID, bool) { return requestID(m.ID) }

// ErrorDetail is the code and human-readable text of a server error.
type ErrorDetail struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// ErrorMessage reports a request failure. Order rejections arrive in the
// same shape but without the "e" tag; both classify here.
type ErrorMessage struct {
	ID        *core.RequestID `json:"id"`
	EventTime int64           `json:"E"`
	Error     ErrorDetail     `json:"error"`
}

func (m ErrorMessage) RequestID() (core.RequestID, bool) { return requestID(m.ID) }

// SubscribeResult acknowledges a SUBSCRIBE request.
type SubscribeResult struct {
	ID        *core.RequestID `json:"id"`
	EventTime int64           `json:"E"`
	Result    string          `json:"result"`
}

func (m SubscribeResult) RequestID() (core.RequestID, bool) { return requestID(m.ID) }

// UnsubscribeResult acknowledges an UNSUBSCRIBE request.
type UnsubscribeResult struct {
	ID        *core.RequestID `json:"id"`
	EventTime int64           `json:"E"`
	Result    string          `json:"result"`
}

func (m UnsubscribeResult) RequestID() (core.RequestID, bool) { return requestID(m.ID) }

// ListSubscriptionsResult carries the canonical topic strings currently
// subscribed on this session.
type ListSubscriptionsResult struct {
	ID        *core.RequestID `json:"id"`
	EventTime int64           `json:"E"`
	Result    []string        `json:"result"`
}

func (m ListSubscriptionsResult) RequestID() (core.RequestID, bool) { return requestID(m.ID) }

// DepthUpdate is an orderbook snapshot from a depth stream. Bids and asks
// are [price, quantity] string pairs ordered best-first.
type DepthUpdate struct {
	EventTime     int64      `json:"E"`
	TradeTime     int64      `json:"T"`
	Symbol        string     `json:"s"`
	FirstUpdateID int64      `json:"U"`
	LastUpdateID  int64      `json:"u"`
	PrevUpdateID  int64      `json:"pu"`
	Bids          [][]string `json:"b"`
	Asks          [][]string `json:"a"`
	MarketType    string     `json:"mt"`
}

func (DepthUpdate) RequestID() (core.RequestID, bool) { return 0, false }

// AggTrade is one aggregated trade from an aggTrade stream.
type AggTrade struct {
	EventTime    int64       `json:"E"`
	Symbol       string      `json:"s"`
	TradeID      int64       `json:"a"`
	Price        apd.Decimal `json:"p"`
	Quantity     apd.Decimal `json:"q"`
	FirstTradeID int64       `json:"f"`
	LastTradeID  int64       `json:"l"`
	TradeTime    int64       `json:"T"`
	IsBuyerMaker bool        `json:"m"`
	TxHash       string      `json:"th"`
	UserAddress  string      `json:"ua"`
	OrderID      int64       `json:"oi"`
	IsMaker      bool        `json:"mk"`
	IsFullFill   bool        `json:"ff"`
	IsLiquidated bool        `json:"lq"`
	Fee          apd.Decimal `json:"fe"`
	NetFee       apd.Decimal `json:"nf"`
	FeeAsset     string      `json:"fa"`
	Side         string      `json:"sd"`
}

func (AggTrade) RequestID() (core.RequestID, bool) { return 0, false }

// BookTicker is a best bid and ask quote update.
type BookTicker struct {
	UpdateID    int64       `json:"u"`
	EventTime   int64       `json:"E"`
	TradeTime   int64       `json:"T"`
	Symbol      string      `json:"s"`
	BidPrice    apd.Decimal `json:"b"`
	BidQuantity apd.Decimal `json:"B"`
	AskPrice    apd.Decimal `json:"a"`
	AskQuantity apd.Decimal `json:"A"`
	MarketType  string      `json:"mt"`
}

func (BookTicker) RequestID() (core.RequestID, bool) { return 0, false }

// MarkPriceUpdate carries the mark price, index price, and funding rate
// for a symbol.
type MarkPriceUpdate struct {
	EventTime   int64       `json:"E"`
	Symbol      string      `json:"s"`
	MarkPrice   apd.Decimal `json:"p"`
	IndexPrice  apd.Decimal `json:"i"`
	FundingRate apd.Decimal `json:"r"`
}

func (MarkPriceUpdate) RequestID() (core.RequestID, bool) { return 0, false }

// LiquidationOrder is the order detail embedded in a ForceOrder event.
type LiquidationOrder struct {
	Symbol      string      `json:"s"`
	Side        string      `json:"S"`
	OrderType   string      `json:"o"`
	TimeInForce string      `json:"f"`
	Price       apd.Decimal `json:"p"`
	AvgPrice    apd.Decimal `json:"ap"`
	Status      string      `json:"X"`
	Quantity    apd.Decimal `json:"l"`
	TradeTime   int64       `json:"T"`
	TxHash      string      `json:"th"`
	UserAddress string      `json:"ua"`
	OrderID     int64       `json:"oi"`
	TradeID     int64       `json:"ti"`
}

// ForceOrder reports a liquidation order.
type ForceOrder struct {
	EventTime int64            `json:"E"`
	Order     LiquidationOrder `json:"o"`
}

func (ForceOrder) RequestID() (core.RequestID, bool) { return 0, false }

// OrderUpdateDetail is the order detail embedded in an OrderUpdate event.
type OrderUpdateDetail struct {
	Symbol        string      `json:"s"`
	OrderID       int64       `json:"i"`
	Status        string      `json:"X"`
	ExecutionType string      `json:"x"`
	TradeTime     int64       `json:"T"`
	TxHash        string      `json:"th"`
	UserAddress   string      `json:"ua"`
	Side          string      `json:"S"`
	OrderType     string      `json:"o"`
	TimeInForce   string      `json:"f"`
	Price         apd.Decimal `json:"p"`
	Quantity      apd.Decimal `json:"q"`
}

// OrderUpdate reports a state transition of one of the session owner's
// orders.
type OrderUpdate struct {
	EventTime int64             `json:"E"`
	Order     OrderUpdateDetail `json:"o"`
}

func (OrderUpdate) RequestID() (core.RequestID, bool) { return 0, false }

// Unknown holds a frame that matched no known message shape. Raw is the
// frame text, made valid UTF-8 by lossy replacement when needed.
type Unknown struct {
	// ParseError describes why classification failed.
	ParseError string
	// Raw is the frame payload as text.
	Raw string
}

func (Unknown) RequestID() (core.RequestID, bool) { return 0, false }

// IsError reports whether the message is a server error of either shape.
func IsError(msg ServerMessage) bool {
	_, ok := msg.(ErrorMessage)
	return ok
}
