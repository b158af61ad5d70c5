// Package exchanger is the client for the Picostocks exchange REST API.
//
// Reads return the decoded JSON body as a *core.Result. Order calls fetch a
// fresh nonce, sign action:user_id:stock_id:quantity:price_id:price:nonce
// with the account's Ed25519 key and post the signed form.
//
// Two signed calls running at once for the same account may be handed
// overlapping nonces by the server; the client does not serialize them.
//
// Example usage:
//
//	cfg := core.DefaultConfig("42").WithPrivateKey(hexKey)
//	ex, err := exchanger.New(cfg)
//	order, _ := exchanger.NewOrderRequest(1, 2, "0.5", "100")
//	res, err := ex.PutBid(ctx, order)
package exchanger

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	httpClient "picostocks/internal/http"
	"picostocks/internal/pool"
	"picostocks/pkg/core"
	"picostocks/pkg/signer"
)

// Exchanger holds one account's credentials and HTTP session.
// It is safe for concurrent use.
type Exchanger struct {
	config     *core.Config
	userID     string
	signer     *signer.Signer
	httpClient *httpClient.Client
	protocol   *Protocol
	pool       *pool.Pool
	logger     zerolog.Logger
}

// Call is a client operation that can be dispatched with Go.
type Call func(ctx context.Context, e *Exchanger) (*core.Result, error)

// New creates an Exchanger. The signing key is loaded here; a missing or
// malformed key fails construction rather than the first order.
func New(config *core.Config, opts ...Option) (*Exchanger, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	logger := zerolog.Nop()
	if options.Logger != nil {
		logger = *options.Logger
		if level, err := zerolog.ParseLevel(config.LogLevel); err == nil && config.LogLevel != "" {
			logger = logger.Level(level)
		}
	}

	s := options.Signer
	if s == nil {
		if config.PrivateKey == "" {
			return nil, core.ErrNoCredentials
		}
		var err error
		s, err = signer.FromHex(config.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("load signing key: %w", err)
		}
	}

	client, err := httpClient.NewClient(&httpClient.Config{
		BaseURL:   config.APIRoot(),
		Timeout:   config.Timeout,
		UserAgent: config.UserAgent,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	workers := config.Workers
	if options.Workers > 0 {
		workers = options.Workers
	}

	return &Exchanger{
		config:     config,
		userID:     config.UserID,
		signer:     s,
		httpClient: client,
		protocol:   NewProtocol(),
		pool:       pool.New(workers, logger),
		logger:     logger.With().Str("exchange", "picostocks").Str("user_id", config.UserID).Logger(),
	}, nil
}

// Name returns the exchange identifier "picostocks".
func (e *Exchanger) Name() string {
	return e.protocol.Name()
}

// UserID returns the account the client acts for.
func (e *Exchanger) UserID() string {
	return e.userID
}

// PublicKeyHex returns the hex public key matching the signing key.
func (e *Exchanger) PublicKeyHex() string {
	return e.signer.PublicKeyHex()
}

// Close waits for dispatched calls and releases the HTTP client.
func (e *Exchanger) Close() error {
	e.pool.Close()
	return e.httpClient.Close()
}

// Go runs call on the worker pool. The returned channel yields one Outcome.
func (e *Exchanger) Go(ctx context.Context, call Call) <-chan core.Outcome {
	return e.pool.Submit(ctx, func(ctx context.Context) (*core.Result, error) {
		return call(ctx, e)
	})
}

// GetNonce fetches the next nonce for the client's account.
func (e *Exchanger) GetNonce(ctx context.Context) (*core.Result, error) {
	return e.do(ctx, core.OpGetNonce, core.Params{ParamUserID: e.userID})
}

// GetStocks lists the traded stocks. WithLimit caps the list.
func (e *Exchanger) GetStocks(ctx context.Context, opts ...QueryOption) (*core.Result, error) {
	q := ApplyQuery(opts...)
	return e.do(ctx, core.OpGetStocks, core.Params{ParamLimit: q.Limit})
}

// GetOrderBook retrieves the order book of stockID quoted in priceID.
func (e *Exchanger) GetOrderBook(ctx context.Context, stockID, priceID int64, opts ...QueryOption) (*core.Result, error) {
	q := ApplyQuery(opts...)
	return e.do(ctx, core.OpGetOrderBook, core.Params{
		ParamStockID: stockID,
		ParamPriceID: priceID,
		ParamLimit:   q.Limit,
	})
}

// GetAssetsBalance retrieves balances of the client's account, or of the
// account named with WithUserID.
func (e *Exchanger) GetAssetsBalance(ctx context.Context, opts ...QueryOption) (*core.Result, error) {
	q := ApplyQuery(opts...)
	return e.do(ctx, core.OpGetBalance, core.Params{ParamUserID: e.userOr(q.UserID)})
}

// GetOpenOrders retrieves resting orders, optionally narrowed with
// WithStockID and WithPriceID.
func (e *Exchanger) GetOpenOrders(ctx context.Context, opts ...QueryOption) (*core.Result, error) {
	q := ApplyQuery(opts...)
	params := core.Params{
		ParamUserID: e.userOr(q.UserID),
		ParamLimit:  q.Limit,
	}
	if q.StockID != nil {
		params[ParamStockID] = *q.StockID
	}
	if q.PriceID != nil {
		params[ParamPriceID] = *q.PriceID
	}
	return e.do(ctx, core.OpGetOpenOrders, params)
}

// GetHistoricalOrders retrieves past orders in stockID, optionally filtered
// with WithPriceID.
func (e *Exchanger) GetHistoricalOrders(ctx context.Context, stockID int64, opts ...QueryOption) (*core.Result, error) {
	q := ApplyQuery(opts...)
	params := core.Params{
		ParamUserID:  e.userOr(q.UserID),
		ParamStockID: stockID,
	}
	if q.PriceID != nil {
		params[ParamPriceID] = *q.PriceID
	}
	return e.do(ctx, core.OpGetOrderHistory, params)
}

// GetTransfersInternal lists transfers of stockID between exchange accounts.
func (e *Exchanger) GetTransfersInternal(ctx context.Context, stockID int64) (*core.Result, error) {
	return e.do(ctx, core.OpGetTransfersInternal, core.Params{
		ParamUserID:  e.userID,
		ParamStockID: stockID,
	})
}

// GetTransfersExternal lists deposits and withdrawals of stockID.
func (e *Exchanger) GetTransfersExternal(ctx context.Context, stockID int64) (*core.Result, error) {
	return e.do(ctx, core.OpGetTransfersExternal, core.Params{
		ParamUserID:  e.userID,
		ParamStockID: stockID,
	})
}

// PutAsk places a sell order.
func (e *Exchanger) PutAsk(ctx context.Context, order *OrderRequest) (*core.Result, error) {
	return e.doSigned(ctx, core.OpPutAsk, order)
}

// CancelAsk cancels a sell order.
func (e *Exchanger) CancelAsk(ctx context.Context, order *OrderRequest) (*core.Result, error) {
	return e.doSigned(ctx, core.OpCancelAsk, order)
}

// PutBid places a buy order.
func (e *Exchanger) PutBid(ctx context.Context, order *OrderRequest) (*core.Result, error) {
	return e.doSigned(ctx, core.OpPutBid, order)
}

// CancelBid cancels a buy order.
func (e *Exchanger) CancelBid(ctx context.Context, order *OrderRequest) (*core.Result, error) {
	return e.doSigned(ctx, core.OpCancelBid, order)
}

func (e *Exchanger) userOr(userID string) string {
	if userID == "" {
		return e.userID
	}
	return userID
}

// fetchNonce returns the nonce exactly as the server wrote it.
func (e *Exchanger) fetchNonce(ctx context.Context) (string, error) {
	res, err := e.GetNonce(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch nonce: %w", err)
	}
	if err := res.Err(); err != nil {
		return "", fmt.Errorf("fetch nonce: %w", err)
	}
	nonce, ok := res.Scalar("nonce")
	if !ok || nonce == "" {
		return "", fmt.Errorf("fetch nonce: %w", core.ErrNoNonce)
	}
	return nonce, nil
}

// signOrder builds and signs the payload for op with a freshly fetched nonce.
func (e *Exchanger) signOrder(ctx context.Context, op core.Operation, order *OrderRequest) (*core.SignedOrder, core.Message, error) {
	action, ok := op.Action()
	if !ok {
		return nil, core.Message{}, fmt.Errorf("operation %s is not an order", op)
	}
	if order == nil {
		return nil, core.Message{}, fmt.Errorf("order is required")
	}

	quantity, price, err := order.formatted()
	if err != nil {
		return nil, core.Message{}, err
	}

	nonce, err := e.fetchNonce(ctx)
	if err != nil {
		return nil, core.Message{}, err
	}

	msg := core.Message{
		Action:   action,
		UserID:   e.userID,
		StockID:  order.StockID,
		Quantity: quantity,
		PriceID:  order.PriceID,
		Price:    price,
		Nonce:    nonce,
	}
	return core.NewSignedOrder(msg, e.signer.SignMessage(msg)), msg, nil
}

func (e *Exchanger) doSigned(ctx context.Context, op core.Operation, order *OrderRequest) (*core.Result, error) {
	signed, msg, err := e.signOrder(ctx, op, order)
	if err != nil {
		return nil, err
	}

	e.logger.Info().
		Str("action", msg.Action.String()).
		Int64("stock_id", msg.StockID).
		Int64("price_id", msg.PriceID).
		Str("quantity", msg.Quantity).
		Str("price", msg.Price).
		Str("nonce", msg.Nonce).
		Msg("submitting signed order")

	return e.do(ctx, op, core.Params{ParamOrder: signed})
}

func (e *Exchanger) do(ctx context.Context, op core.Operation, params core.Params) (*core.Result, error) {
	req, err := e.protocol.BuildRequest(op, params)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := e.httpClient.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := e.protocol.ParseResponse(req, resp)
	if err != nil {
		e.logger.Warn().Err(err).Str("op", op.String()).Int("status", resp.StatusCode).Msg("undecodable response")
		return nil, fmt.Errorf("parse response: %w", err)
	}

	e.logger.Debug().Str("op", op.String()).Int("status", result.StatusCode).Msg("call completed")
	return result, nil
}
