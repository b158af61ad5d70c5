package core

// Operation represents one endpoint of the exchange API.
type Operation int

// Operation constants define all supported exchange operations.
const (
	// OpGetNonce fetches the next nonce for signed requests.
	OpGetNonce Operation = iota
	// OpGetStocks lists the traded stocks.
	OpGetStocks
	// OpGetOrderBook retrieves the order book of a stock/price pair.
	OpGetOrderBook
	// OpGetBalance retrieves account balances.
	OpGetBalance
	// OpGetOpenOrders retrieves a user's resting orders.
	OpGetOpenOrders
	// OpGetOrderHistory retrieves a user's past orders for a stock.
	OpGetOrderHistory
	// OpGetTransfersInternal lists transfers between exchange accounts.
	OpGetTransfersInternal
	// OpGetTransfersExternal lists deposits and withdrawals.
	OpGetTransfersExternal
	// OpPutAsk places a sell order.
	OpPutAsk
	// OpCancelAsk cancels a sell order.
	OpCancelAsk
	// OpPutBid places a buy order.
	OpPutBid
	// OpCancelBid cancels a buy order.
	OpCancelBid
)

var operationNames = [...]string{
	"GET_NONCE",
	"GET_STOCKS",
	"GET_ORDER_BOOK",
	"GET_BALANCE",
	"GET_OPEN_ORDERS",
	"GET_ORDER_HISTORY",
	"GET_TRANSFERS_INTERNAL",
	"GET_TRANSFERS_EXTERNAL",
	"PUT_ASK",
	"CANCEL_ASK",
	"PUT_BID",
	"CANCEL_BID",
}

func (o Operation) String() string {
	if o < 0 || int(o) >= len(operationNames) {
		return "UNKNOWN"
	}
	return operationNames[o]
}

// Action returns the signing keyword for order operations.
// ok is false for read operations.
func (o Operation) Action() (a Action, ok bool) {
	switch o {
	case OpPutAsk:
		return ActionAsk, true
	case OpCancelAsk:
		return ActionCancelAsk, true
	case OpPutBid:
		return ActionBid, true
	case OpCancelBid:
		return ActionCancelBid, true
	}
	return "", false
}

// IsSigned reports whether the operation carries a signature.
func (o Operation) IsSigned() bool {
	_, ok := o.Action()
	return ok
}
