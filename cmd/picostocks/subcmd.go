package main

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"picostocks/pkg/core"
	"picostocks/pkg/exchanger"
	"picostocks/pkg/signer"
)

func loadConfig(ctx *cli.Context) (*core.Config, error) {
	cfg, err := core.LoadEnv(ctx.String(EnvFileFlag.Name))
	if err != nil {
		return nil, err
	}
	if ctx.IsSet(BaseURLFlag.Name) {
		cfg.BaseURL = ctx.String(BaseURLFlag.Name)
	}
	if ctx.IsSet(UserIDFlag.Name) {
		cfg.UserID = ctx.String(UserIDFlag.Name)
	}
	if ctx.IsSet(TimeoutFlag.Name) {
		cfg.Timeout = ctx.Duration(TimeoutFlag.Name)
	}
	if ctx.Bool(VerboseFlag.Name) {
		cfg.LogLevel = zerolog.LevelDebugValue
	}
	return cfg, nil
}

func newExchanger(ctx *cli.Context) (*exchanger.Exchanger, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return exchanger.New(cfg, exchanger.WithLogger(logger))
}

// run opens a client, performs call and prints the body.
func run(ctx *cli.Context, call func(ex *exchanger.Exchanger) (*core.Result, error)) error {
	ex, err := newExchanger(ctx)
	if err != nil {
		return err
	}
	defer ex.Close()

	res, err := call(ex)
	if err != nil {
		return err
	}
	if err := printResult(res); err != nil {
		return err
	}
	return res.Err()
}

func printResult(res *core.Result) error {
	if res.Data == nil {
		if len(res.Body) > 0 {
			fmt.Println(string(res.Body))
		}
		return nil
	}
	out, err := sonic.ConfigStd.MarshalIndent(res.Data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func queryOptions(ctx *cli.Context) []exchanger.QueryOption {
	var opts []exchanger.QueryOption
	if ctx.IsSet(LimitFlag.Name) {
		opts = append(opts, exchanger.WithLimit(ctx.Int(LimitFlag.Name)))
	}
	if ctx.IsSet(AccountFlag.Name) {
		opts = append(opts, exchanger.WithUserID(ctx.String(AccountFlag.Name)))
	}
	if ctx.IsSet(StockFlag.Name) {
		opts = append(opts, exchanger.WithStockID(ctx.Int64(StockFlag.Name)))
	}
	if ctx.IsSet(PriceIDFlag.Name) {
		opts = append(opts, exchanger.WithPriceID(ctx.Int64(PriceIDFlag.Name)))
	}
	return opts
}

func nonce(ctx *cli.Context) error {
	return run(ctx, func(ex *exchanger.Exchanger) (*core.Result, error) {
		return ex.GetNonce(ctx.Context)
	})
}

func stocks(ctx *cli.Context) error {
	return run(ctx, func(ex *exchanger.Exchanger) (*core.Result, error) {
		return ex.GetStocks(ctx.Context, queryOptions(ctx)...)
	})
}

func orderBook(ctx *cli.Context) error {
	return run(ctx, func(ex *exchanger.Exchanger) (*core.Result, error) {
		return ex.GetOrderBook(ctx.Context, ctx.Int64(StockFlag.Name), ctx.Int64(PriceIDFlag.Name), queryOptions(ctx)...)
	})
}

func balance(ctx *cli.Context) error {
	return run(ctx, func(ex *exchanger.Exchanger) (*core.Result, error) {
		return ex.GetAssetsBalance(ctx.Context, queryOptions(ctx)...)
	})
}

func openOrders(ctx *cli.Context) error {
	return run(ctx, func(ex *exchanger.Exchanger) (*core.Result, error) {
		return ex.GetOpenOrders(ctx.Context, queryOptions(ctx)...)
	})
}

func history(ctx *cli.Context) error {
	return run(ctx, func(ex *exchanger.Exchanger) (*core.Result, error) {
		return ex.GetHistoricalOrders(ctx.Context, ctx.Int64(StockFlag.Name), queryOptions(ctx)...)
	})
}

func transfers(ctx *cli.Context) error {
	return run(ctx, func(ex *exchanger.Exchanger) (*core.Result, error) {
		if ctx.Bool(ExternalFlag.Name) {
			return ex.GetTransfersExternal(ctx.Context, ctx.Int64(StockFlag.Name))
		}
		return ex.GetTransfersInternal(ctx.Context, ctx.Int64(StockFlag.Name))
	})
}

func orderAction(bid bool) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		order, err := exchanger.NewOrderRequest(
			ctx.Int64(StockFlag.Name),
			ctx.Int64(PriceIDFlag.Name),
			ctx.String(QuantityFlag.Name),
			ctx.String(PriceFlag.Name),
		)
		if err != nil {
			return err
		}
		cancel := ctx.Bool(CancelFlag.Name)
		return run(ctx, func(ex *exchanger.Exchanger) (*core.Result, error) {
			switch {
			case bid && cancel:
				return ex.CancelBid(ctx.Context, order)
			case bid:
				return ex.PutBid(ctx.Context, order)
			case cancel:
				return ex.CancelAsk(ctx.Context, order)
			default:
				return ex.PutAsk(ctx.Context, order)
			}
		})
	}
}

func pubkey(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.PrivateKey == "" {
		return core.ErrNoCredentials
	}
	s, err := signer.FromHex(cfg.PrivateKey)
	if err != nil {
		return err
	}
	fmt.Println(s.PublicKeyHex())
	return nil
}
