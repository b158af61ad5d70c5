package exchanger

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"picostocks/pkg/amount"
)

// OrderRequest contains the parameters of a put or cancel call.
type OrderRequest struct {
	StockID  int64
	PriceID  int64
	Quantity apd.Decimal
	Price    apd.Decimal
}

// NewOrderRequest parses quantity and price from decimal text.
func NewOrderRequest(stockID, priceID int64, quantity, price string) (*OrderRequest, error) {
	q, err := amount.Parse(quantity)
	if err != nil {
		return nil, fmt.Errorf("quantity: %w", err)
	}
	p, err := amount.Parse(price)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	return &OrderRequest{
		StockID:  stockID,
		PriceID:  priceID,
		Quantity: *q,
		Price:    *p,
	}, nil
}

// formatted returns quantity and price in the signed fixed-point form.
func (o *OrderRequest) formatted() (quantity, price string, err error) {
	quantity, err = amount.Format(&o.Quantity, amount.DefaultPlaces)
	if err != nil {
		return "", "", fmt.Errorf("format quantity: %w", err)
	}
	price, err = amount.Format(&o.Price, amount.DefaultPlaces)
	if err != nil {
		return "", "", fmt.Errorf("format price: %w", err)
	}
	return quantity, price, nil
}
