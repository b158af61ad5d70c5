package exchanger

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "picostocks/internal/http"
	"picostocks/pkg/core"
)

func TestProtocol_Metadata(t *testing.T) {
	p := NewProtocol()
	assert.Equal(t, "picostocks", p.Name())
	assert.Equal(t, "1", p.Version())
	assert.Len(t, p.SupportedOperations(), 12)
}

func TestProtocol_BuildRequest_Errors(t *testing.T) {
	p := NewProtocol()

	tests := []struct {
		name   string
		op     core.Operation
		params core.Params
		errMsg string
	}{
		{"nonce_missing_user", core.OpGetNonce, core.Params{}, "user_id"},
		{"nonce_empty_user", core.OpGetNonce, core.Params{ParamUserID: ""}, "cannot be empty"},
		{"balance_user_not_string", core.OpGetBalance, core.Params{ParamUserID: 42}, "must be a string"},
		{"orderbook_missing_price", core.OpGetOrderBook, core.Params{ParamStockID: int64(1)}, "price_id"},
		{"history_bad_stock", core.OpGetOrderHistory, core.Params{ParamUserID: "1", ParamStockID: "x"}, "must be an integer"},
		{"order_missing", core.OpPutAsk, core.Params{}, "order"},
		{"order_wrong_type", core.OpPutBid, core.Params{ParamOrder: "signed"}, "SignedOrder"},
		{"order_unsigned", core.OpCancelBid, core.Params{ParamOrder: &core.SignedOrder{UserID: "1"}}, "not signed"},
		{"unknown_op", core.Operation(99), core.Params{}, "unsupported operation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := p.BuildRequest(tt.op, tt.params)
			assert.Nil(t, req)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestProtocol_BuildRequest_Order(t *testing.T) {
	p := NewProtocol()
	order := &core.SignedOrder{
		UserID:    "42",
		StockID:   1,
		Quantity:  "0.500000000000000000",
		PriceID:   2,
		Price:     "100.000000000000000000",
		Signature: "abcd",
	}

	req, err := p.BuildRequest(core.OpCancelAsk, core.Params{ParamOrder: order})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/trader/ask/cancel/", req.Path)
	assert.True(t, req.Signed)
	assert.Equal(t, order.Form(), req.Form)
}

func TestProtocol_BuildRequest_Limit(t *testing.T) {
	p := NewProtocol()

	req, err := p.BuildRequest(core.OpGetStocks, core.Params{ParamLimit: 0})
	require.NoError(t, err)
	assert.Empty(t, req.Query)

	req, err = p.BuildRequest(core.OpGetOrderBook, core.Params{ParamStockID: 1, ParamPriceID: "2", ParamLimit: 25})
	require.NoError(t, err)
	assert.EqualValues(t, 1, req.Query[ParamStockID])
	assert.EqualValues(t, 2, req.Query[ParamPriceID])
	assert.Equal(t, 25, req.Query[ParamLimit])
}

func TestProtocol_ParseResponse(t *testing.T) {
	p := NewProtocol()
	req := core.NewRequest(http.MethodGet, "/market/stocks/")

	_, err := p.ParseResponse(req, nil)
	assert.Error(t, err)

	res, err := p.ParseResponse(req, &httpClient.Response{StatusCode: 200, Body: []byte(`{"count": 3}`)})
	require.NoError(t, err)
	assert.Equal(t, "/market/stocks/", res.Path)
	v, ok := res.Scalar("count")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestApplyQuery(t *testing.T) {
	q := ApplyQuery()
	assert.Zero(t, q.Limit)
	assert.Empty(t, q.UserID)
	assert.Nil(t, q.StockID)
	assert.Nil(t, q.PriceID)

	q = ApplyQuery(WithLimit(5), WithUserID("8"), WithStockID(0), WithPriceID(9))
	assert.Equal(t, 5, q.Limit)
	assert.Equal(t, "8", q.UserID)
	require.NotNil(t, q.StockID)
	assert.EqualValues(t, 0, *q.StockID)
	require.NotNil(t, q.PriceID)
	assert.EqualValues(t, 9, *q.PriceID)
}
