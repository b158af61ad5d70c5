package exchanger

import (
	"fmt"
	"net/http"
	"strconv"

	httpClient "picostocks/internal/http"
	"picostocks/pkg/core"
)

// Parameter keys accepted by Protocol.BuildRequest.
const (
	ParamUserID  = "user_id"
	ParamStockID = "stock_id"
	ParamPriceID = "price_id"
	ParamLimit   = "limit"
	ParamOrder   = "order"
)

// Protocol maps operations onto the exchange's endpoints.
type Protocol struct{}

// NewProtocol creates a new Protocol instance.
func NewProtocol() *Protocol {
	return &Protocol{}
}

// Name returns the exchange identifier "picostocks".
func (p *Protocol) Name() string {
	return "picostocks"
}

// Version returns the API version in the default prefix.
func (p *Protocol) Version() string {
	return "1"
}

// SupportedOperations returns the list of operations supported by this protocol.
func (p *Protocol) SupportedOperations() []core.Operation {
	return []core.Operation{
		core.OpGetNonce,
		core.OpGetStocks,
		core.OpGetOrderBook,
		core.OpGetBalance,
		core.OpGetOpenOrders,
		core.OpGetOrderHistory,
		core.OpGetTransfersInternal,
		core.OpGetTransfersExternal,
		core.OpPutAsk,
		core.OpCancelAsk,
		core.OpPutBid,
		core.OpCancelBid,
	}
}

// BuildRequest constructs the HTTP request for op. Paths are relative to the
// configured API prefix.
func (p *Protocol) BuildRequest(op core.Operation, params core.Params) (*core.Request, error) {
	switch op {
	case core.OpGetNonce:
		return p.buildUserRequest("/account/nonce/%s/", params)
	case core.OpGetStocks:
		req := core.NewRequest(http.MethodGet, "/market/stocks/")
		setOptionalLimit(req, params)
		return req, nil
	case core.OpGetOrderBook:
		return p.buildGetOrderBookRequest(params)
	case core.OpGetBalance:
		return p.buildUserRequest("/account/balance/%s/", params)
	case core.OpGetOpenOrders:
		return p.buildGetOpenOrdersRequest(params)
	case core.OpGetOrderHistory:
		req, err := p.buildUserStockRequest("/account/order/history/%s/%d/", params)
		if err != nil {
			return nil, err
		}
		if priceID, ok, err := getOptionalInt64Param(params, ParamPriceID); err != nil {
			return nil, err
		} else if ok {
			req.SetQuery(ParamPriceID, priceID)
		}
		return req, nil
	case core.OpGetTransfersInternal:
		return p.buildUserStockRequest("/account/transfers/internal/%s/%d/", params)
	case core.OpGetTransfersExternal:
		return p.buildUserStockRequest("/account/transfers/external/%s/%d/", params)
	case core.OpPutAsk, core.OpCancelAsk, core.OpPutBid, core.OpCancelBid:
		return p.buildOrderRequest(op, params)
	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}
}

// ParseResponse decodes the transport reply of req.
func (p *Protocol) ParseResponse(req *core.Request, resp *httpClient.Response) (*core.Result, error) {
	if resp == nil {
		return nil, fmt.Errorf("nil response")
	}
	return core.NewResult(req.Path, resp.StatusCode, resp.Header, resp.Body)
}

func (p *Protocol) buildUserRequest(pattern string, params core.Params) (*core.Request, error) {
	userID, err := getRequiredStringParam(params, ParamUserID)
	if err != nil {
		return nil, err
	}
	return core.NewRequest(http.MethodGet, fmt.Sprintf(pattern, userID)), nil
}

func (p *Protocol) buildUserStockRequest(pattern string, params core.Params) (*core.Request, error) {
	userID, err := getRequiredStringParam(params, ParamUserID)
	if err != nil {
		return nil, err
	}
	stockID, err := getRequiredInt64Param(params, ParamStockID)
	if err != nil {
		return nil, err
	}
	return core.NewRequest(http.MethodGet, fmt.Sprintf(pattern, userID, stockID)), nil
}

func (p *Protocol) buildGetOrderBookRequest(params core.Params) (*core.Request, error) {
	stockID, err := getRequiredInt64Param(params, ParamStockID)
	if err != nil {
		return nil, err
	}
	priceID, err := getRequiredInt64Param(params, ParamPriceID)
	if err != nil {
		return nil, err
	}

	req := core.NewRequest(http.MethodGet, "/market/orderbook/")
	req.SetQuery(ParamStockID, stockID)
	req.SetQuery(ParamPriceID, priceID)
	setOptionalLimit(req, params)

	return req, nil
}

func (p *Protocol) buildGetOpenOrdersRequest(params core.Params) (*core.Request, error) {
	userID, err := getRequiredStringParam(params, ParamUserID)
	if err != nil {
		return nil, err
	}

	req := core.NewRequest(http.MethodGet, "/market/orderbook/")
	req.SetQuery(ParamUserID, userID)

	for _, key := range []string{ParamStockID, ParamPriceID} {
		id, ok, err := getOptionalInt64Param(params, key)
		if err != nil {
			return nil, err
		}
		if ok {
			req.SetQuery(key, id)
		}
	}
	setOptionalLimit(req, params)

	return req, nil
}

func (p *Protocol) buildOrderRequest(op core.Operation, params core.Params) (*core.Request, error) {
	action, _ := op.Action()

	val, ok := params[ParamOrder]
	if !ok {
		return nil, fmt.Errorf("missing required parameter: %s", ParamOrder)
	}
	order, ok := val.(*core.SignedOrder)
	if !ok || order == nil {
		return nil, fmt.Errorf("parameter %s must be a *core.SignedOrder", ParamOrder)
	}
	if order.Signature == "" {
		return nil, fmt.Errorf("order for %s is not signed", op)
	}

	req := core.NewRequest(http.MethodPost, action.Path())
	req.SetForm(order.Form())
	req.SetSigned(true)

	return req, nil
}

func setOptionalLimit(req *core.Request, params core.Params) {
	if limit := getIntParamWithDefault(params, ParamLimit, 0); limit > 0 {
		req.SetQuery(ParamLimit, limit)
	}
}

func getRequiredStringParam(params core.Params, key string) (string, error) {
	val, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing required parameter: %s", key)
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("parameter %s must be a string", key)
	}

	if str == "" {
		return "", fmt.Errorf("parameter %s cannot be empty", key)
	}

	return str, nil
}

func getRequiredInt64Param(params core.Params, key string) (int64, error) {
	id, ok, err := getOptionalInt64Param(params, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("missing required parameter: %s", key)
	}
	return id, nil
}

func getOptionalInt64Param(params core.Params, key string) (int64, bool, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return 0, false, nil
	}
	switch v := val.(type) {
	case int64:
		return v, true, nil
	case int:
		return int64(v), true, nil
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("parameter %s must be an integer: %w", key, err)
		}
		return i, true, nil
	default:
		return 0, false, fmt.Errorf("parameter %s must be an integer", key)
	}
}

func getIntParamWithDefault(params core.Params, key string, def int) int {
	if val, ok := params[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case string:
			if i, err := strconv.Atoi(v); err == nil {
				return i
			}
		}
	}
	return def
}
