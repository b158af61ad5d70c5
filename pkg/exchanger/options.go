package exchanger

import (
	"github.com/rs/zerolog"

	"picostocks/pkg/signer"
)

// Option is a functional option for configuring the Exchanger.
type Option func(*Options)

// Options holds construction options for the Exchanger.
type Options struct {
	Logger  *zerolog.Logger
	Signer  *signer.Signer
	Workers int
}

// WithLogger returns an option that sets the logger for the exchanger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = &l
	}
}

// WithSigner supplies a ready signer, e.g. one built from raw key bytes.
// It takes precedence over Config.PrivateKey.
func WithSigner(s *signer.Signer) Option {
	return func(o *Options) {
		o.Signer = s
	}
}

// WithWorkers overrides Config.Workers.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// QueryOption adjusts the optional parameters of a read call.
type QueryOption func(*Query)

// Query holds optional read parameters. Nil ids are omitted from the request;
// an empty UserID means the client's own account.
type Query struct {
	Limit   int
	UserID  string
	StockID *int64
	PriceID *int64
}

func WithLimit(limit int) QueryOption {
	return func(q *Query) {
		q.Limit = limit
	}
}

func WithUserID(userID string) QueryOption {
	return func(q *Query) {
		q.UserID = userID
	}
}

func WithStockID(id int64) QueryOption {
	return func(q *Query) {
		q.StockID = &id
	}
}

func WithPriceID(id int64) QueryOption {
	return func(q *Query) {
		q.PriceID = &id
	}
}

// ApplyQuery folds opts into a Query.
func ApplyQuery(opts ...QueryOption) *Query {
	q := &Query{}
	for _, opt := range opts {
		opt(q)
	}
	return q
}
