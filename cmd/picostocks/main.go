package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"
)

var app *cli.App

func init() {
	app = &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "command line client for the Picostocks exchange",
	}

	app.Commands = []*cli.Command{
		{
			Action: nonce,
			Name:   "nonce",
			Usage:  "Fetch the next nonce for the account",
		},
		{
			Action: stocks,
			Name:   "stocks",
			Usage:  "List traded stocks",
			Flags:  []cli.Flag{LimitFlag},
		},
		{
			Action: orderBook,
			Name:   "orderbook",
			Usage:  "Show the order book of a stock",
			Flags:  []cli.Flag{requiredStock(), requiredPriceID(), LimitFlag},
		},
		{
			Action: balance,
			Name:   "balance",
			Usage:  "Show asset balances",
			Flags:  []cli.Flag{AccountFlag},
		},
		{
			Action: openOrders,
			Name:   "orders",
			Usage:  "List open orders",
			Flags:  []cli.Flag{AccountFlag, StockFlag, PriceIDFlag, LimitFlag},
		},
		{
			Action: history,
			Name:   "history",
			Usage:  "List historical orders in a stock",
			Flags:  []cli.Flag{AccountFlag, requiredStock(), PriceIDFlag},
		},
		{
			Action: transfers,
			Name:   "transfers",
			Usage:  "List internal transfers of a stock, or deposits and withdrawals with --external",
			Flags:  []cli.Flag{requiredStock(), ExternalFlag},
		},
		{
			Action: orderAction(false),
			Name:   "ask",
			Usage:  "Place or cancel a sell order",
			Flags:  orderFlags(),
		},
		{
			Action: orderAction(true),
			Name:   "bid",
			Usage:  "Place or cancel a buy order",
			Flags:  orderFlags(),
		},
		{
			Action: pubkey,
			Name:   "pubkey",
			Usage:  "Print the public key of the configured signing key",
		},
	}
	app.Flags = []cli.Flag{
		EnvFileFlag,
		BaseURLFlag,
		UserIDFlag,
		TimeoutFlag,
		VerboseFlag,
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	if err := app.RunContext(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
