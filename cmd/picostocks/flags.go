package main

import (
	"github.com/urfave/cli/v2"
)

var (
	EnvFileFlag = &cli.StringFlag{
		Name:  "env",
		Usage: "load PICOSTOCKS_* variables from `FILE`",
	}
	BaseURLFlag = &cli.StringFlag{
		Name:  "base-url",
		Usage: "API root, e.g. https://picostocks.com/api/v1/",
	}
	UserIDFlag = &cli.StringFlag{
		Name:  "user-id",
		Usage: "account id to act as",
	}
	TimeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "per-request timeout",
	}
	VerboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log requests to stderr",
	}

	LimitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "maximum number of entries, 0 for the server default",
	}
	AccountFlag = &cli.StringFlag{
		Name:  "account",
		Usage: "query another account instead of --user-id",
	}
	StockFlag = &cli.Int64Flag{
		Name:  "stock",
		Usage: "stock id",
	}
	PriceIDFlag = &cli.Int64Flag{
		Name:  "price-id",
		Usage: "id of the stock the price is quoted in",
	}
	ExternalFlag = &cli.BoolFlag{
		Name:  "external",
		Usage: "list deposits and withdrawals",
	}
	QuantityFlag = &cli.StringFlag{
		Name:     "quantity",
		Usage:    "order quantity as a decimal",
		Required: true,
	}
	PriceFlag = &cli.StringFlag{
		Name:     "price",
		Usage:    "limit price as a decimal",
		Required: true,
	}
	CancelFlag = &cli.BoolFlag{
		Name:  "cancel",
		Usage: "cancel the matching order instead of placing it",
	}
)

func requiredStock() cli.Flag {
	f := *StockFlag
	f.Required = true
	return &f
}

func requiredPriceID() cli.Flag {
	f := *PriceIDFlag
	f.Required = true
	return &f
}

func orderFlags() []cli.Flag {
	return []cli.Flag{requiredStock(), requiredPriceID(), QuantityFlag, PriceFlag, CancelFlag}
}
