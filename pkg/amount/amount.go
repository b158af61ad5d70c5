// Package amount renders order quantities and prices as exact fixed-point
// decimal strings for signing.
package amount

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

const (
	// DefaultPlaces is the number of fractional digits the exchange signs over.
	DefaultPlaces = 18
	// Precision is the number of significant digits available to a value.
	Precision = 100
)

var errNotFinite = errors.New("amount is not a finite number")

// decimalCtx rounds half-even, matching the server's decimal defaults.
var decimalCtx = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(Precision)
	c.Rounding = apd.RoundHalfEven
	return c
}()

// Parse reads a decimal string such as "0.5", "1e-3" or "-12.000".
func Parse(s string) (*apd.Decimal, error) {
	d, _, err := decimalCtx.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if d.Form != apd.Finite {
		return nil, fmt.Errorf("parse amount %q: %w", s, errNotFinite)
	}
	return d, nil
}

// Format renders x with exactly places digits after the point. Extra digits
// are rounded half-even; missing digits are zero-padded.
func Format(x *apd.Decimal, places int) (string, error) {
	if x == nil {
		return "", errors.New("amount is nil")
	}
	if x.Form != apd.Finite {
		return "", errNotFinite
	}
	if places < 0 {
		return "", fmt.Errorf("negative places %d", places)
	}

	var d apd.Decimal
	if _, err := decimalCtx.Quantize(&d, x, -int32(places)); err != nil {
		return "", fmt.Errorf("quantize %s to %d places: %w", x.String(), places, err)
	}
	if d.IsZero() {
		d.Negative = false
	}
	return d.Text('f'), nil
}

// FormatString parses s and renders it with Format.
func FormatString(s string, places int) (string, error) {
	d, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(d, places)
}

// FormatFloat renders f from its shortest round-trip decimal text, so 0.1
// becomes 0.100... rather than the binary expansion of 0.1.
func FormatFloat(f float64, places int) (string, error) {
	return FormatString(strconv.FormatFloat(f, 'g', -1, 64), places)
}

// FormatInt renders an integer amount.
func FormatInt(n int64, places int) (string, error) {
	return Format(apd.New(n, 0), places)
}
