// Package http is the resty transport shared by every call of one Exchanger.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"picostocks/pkg/core"
)

var validate = validator.New()

type Config struct {
	BaseURL   string        `validate:"required,url"`
	Timeout   time.Duration `validate:"min=1ms"`
	UserAgent string        `validate:"required"`
}

// Client sends core.Requests and hands back the raw reply. Any HTTP status
// is a completed round trip; only transport failures are errors.
type Client struct {
	rc  *resty.Client
	log zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// Response is the status, headers and body of one reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsError() bool {
	return r.StatusCode >= http.StatusBadRequest
}

func NewClient(config *Config, logger zerolog.Logger) (*Client, error) {
	if config == nil {
		return nil, errors.New("http config is required")
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid http config: %w", err)
	}

	c := &Client{log: logger.With().Str("component", "http").Logger()}
	c.rc = resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", config.UserAgent).
		SetHeader("Accept", "application/json")
	c.rc.AddRequestMiddleware(c.traceRequest)
	c.rc.AddResponseMiddleware(c.traceResponse)

	return c, nil
}

func (c *Client) traceRequest(_ *resty.Client, r *resty.Request) error {
	c.log.Debug().Str("method", r.Method).Str("url", r.URL).Msg("->")
	return nil
}

func (c *Client) traceResponse(_ *resty.Client, r *resty.Response) error {
	c.log.Debug().Str("method", r.Request.Method).Str("url", r.Request.URL).Int("status", r.StatusCode()).Msg("<-")
	return nil
}

// Close is idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rc.Close()
}

// Do sends req. Only GET and POST are used by the exchange; POST bodies are
// url-encoded from req.Form.
func (c *Client) Do(ctx context.Context, req *core.Request) (*Response, error) {
	if req.Method != http.MethodGet && req.Method != http.MethodPost {
		return nil, fmt.Errorf("unsupported http method: %s", req.Method)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, core.ErrClientClosed
	}

	r := c.rc.R().SetContext(ctx).SetHeaders(req.Headers)
	if len(req.Query) > 0 {
		r.SetQueryParams(queryStrings(req.Query))
	}
	if req.Method == http.MethodPost {
		r.SetFormData(req.Form)
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		c.log.Error().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("round trip failed")
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Bytes(),
	}, nil
}

// queryStrings renders query values. Ids arrive as int64, limits as int.
func queryStrings(params core.Params) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		switch val := v.(type) {
		case string:
			out[k] = val
		case fmt.Stringer:
			out[k] = val.String()
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
