package core

import (
	"strconv"
	"strings"
)

// Action is the keyword that opens a signing message.
type Action string

const (
	ActionAsk       Action = "ASK"
	ActionBid       Action = "BID"
	ActionCancelAsk Action = "CANCELASK"
	ActionCancelBid Action = "CANCELBID"
)

func (a Action) String() string {
	return string(a)
}

// Valid reports whether a is one of the four order keywords.
func (a Action) Valid() bool {
	switch a {
	case ActionAsk, ActionBid, ActionCancelAsk, ActionCancelBid:
		return true
	}
	return false
}

// Side returns "ask" or "bid".
func (a Action) Side() string {
	if a == ActionAsk || a == ActionCancelAsk {
		return "ask"
	}
	return "bid"
}

// IsCancel reports whether the action withdraws an order.
func (a Action) IsCancel() bool {
	return a == ActionCancelAsk || a == ActionCancelBid
}

// Path returns the trader endpoint the action is posted to.
func (a Action) Path() string {
	verb := "put"
	if a.IsCancel() {
		verb = "cancel"
	}
	return "/trader/" + a.Side() + "/" + verb + "/"
}

// Message is the canonical string an order signature covers. Quantity and
// Price must already be fixed-point formatted and Nonce must be the exact
// text the server returned; any difference breaks verification server-side.
type Message struct {
	Action   Action
	UserID   string
	StockID  int64
	Quantity string
	PriceID  int64
	Price    string
	Nonce    string
}

// String joins the fields as action:user_id:stock_id:quantity:price_id:price:nonce.
func (m Message) String() string {
	return strings.Join([]string{
		m.Action.String(),
		m.UserID,
		strconv.FormatInt(m.StockID, 10),
		m.Quantity,
		strconv.FormatInt(m.PriceID, 10),
		m.Price,
		m.Nonce,
	}, ":")
}

func (m Message) Bytes() []byte {
	return []byte(m.String())
}

// SignedOrder is the form body of a trader request.
type SignedOrder struct {
	UserID    string
	StockID   int64
	Quantity  string
	PriceID   int64
	Price     string
	Signature string
}

// NewSignedOrder pairs a message with its hex signature.
func NewSignedOrder(m Message, signature string) *SignedOrder {
	return &SignedOrder{
		UserID:    m.UserID,
		StockID:   m.StockID,
		Quantity:  m.Quantity,
		PriceID:   m.PriceID,
		Price:     m.Price,
		Signature: signature,
	}
}

// Form returns the url-encodable fields of the order.
func (o *SignedOrder) Form() map[string]string {
	return map[string]string{
		"user_id":   o.UserID,
		"stock_id":  strconv.FormatInt(o.StockID, 10),
		"quantity":  o.Quantity,
		"price_id":  strconv.FormatInt(o.PriceID, 10),
		"price":     o.Price,
		"signature": o.Signature,
	}
}
