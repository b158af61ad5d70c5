package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
)

// jsonAPI keeps numbers as json.Number so ids and nonces survive decoding
// without passing through float64.
var jsonAPI = sonic.Config{UseNumber: true}.Froze()

// Result is a decoded exchange response. Data holds the body as a generic
// JSON value: map[string]any, []any, json.Number, string, bool or nil.
// Non-2xx statuses are not turned into errors; use Err for that.
type Result struct {
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
	Data       any
}

// NewResult decodes body. A malformed body is an error only for 2xx
// responses; error bodies that are not JSON are kept raw in Body.
func NewResult(path string, statusCode int, header http.Header, body []byte) (*Result, error) {
	r := &Result{
		Path:       path,
		StatusCode: statusCode,
		Header:     header,
		Body:       body,
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return r, nil
	}

	var data any
	if err := jsonAPI.Unmarshal(body, &data); err != nil {
		if r.IsSuccess() {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return r, nil
	}
	r.Data = data
	return r, nil
}

// IsSuccess returns true if the status code is 2xx.
func (r *Result) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Result) IsError() bool {
	return r.StatusCode >= http.StatusBadRequest
}

// Decode unmarshals the raw body into v.
func (r *Result) Decode(v any) error {
	return jsonAPI.Unmarshal(r.Body, v)
}

// Map returns Data as a JSON object.
func (r *Result) Map() (map[string]any, bool) {
	m, ok := r.Data.(map[string]any)
	return m, ok
}

// Slice returns Data as a JSON array.
func (r *Result) Slice() ([]any, bool) {
	s, ok := r.Data.([]any)
	return s, ok
}

// Field returns a top-level member of a JSON object body.
func (r *Result) Field(key string) (any, bool) {
	m, ok := r.Map()
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// Scalar returns a top-level member rendered as text. Numbers keep the exact
// digits the server sent. Objects, arrays and null are rejected.
func (r *Result) Scalar(key string) (string, bool) {
	v, ok := r.Field(key)
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case json.Number:
		return val.String(), true
	case string:
		return val, true
	case bool:
		return fmt.Sprint(val), true
	case float64, int64, uint64:
		return fmt.Sprint(val), true
	default:
		return "", false
	}
}

// Err returns nil for 2xx responses and an *ExchangeError otherwise.
func (r *Result) Err() error {
	if !r.IsError() {
		return nil
	}
	message := http.StatusText(r.StatusCode)
	if detail, ok := r.Scalar("detail"); ok {
		message = detail
	} else if detail, ok := r.Scalar("error"); ok {
		message = detail
	} else if r.Data == nil && len(r.Body) > 0 {
		message = string(r.Body)
	}

	e := NewExchangeError(r.Path, r.StatusCode, message)
	e.Body = r.Data
	return e
}

// String renders the body for display.
func (r *Result) String() string {
	return string(r.Body)
}

// Outcome carries the result of a call dispatched off the caller.
type Outcome struct {
	Result *Result
	Err    error
}
