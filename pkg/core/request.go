package core

import "maps"

// Params carries loosely typed call arguments: ids as int64, limits as int,
// user ids as strings.
type Params map[string]any

// Request is one exchange call before it reaches the transport. Query values
// are rendered as text by the transport; Form is the url-encoded POST body.
type Request struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Query   Params            `json:"query,omitempty"`
	Form    map[string]string `json:"form,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	// Signed marks order calls whose Form carries a signature.
	Signed bool `json:"signed"`
}

// NewRequest returns a request with no query, form or extra headers.
func NewRequest(method, path string) *Request {
	return &Request{Method: method, Path: path}
}

func (r *Request) SetQuery(key string, value any) *Request {
	return r.SetQueryParams(Params{key: value})
}

func (r *Request) SetQueryParams(params Params) *Request {
	if r.Query == nil {
		r.Query = make(Params, len(params))
	}
	maps.Copy(r.Query, params)
	return r
}

func (r *Request) SetForm(form map[string]string) *Request {
	r.Form = form
	return r
}

func (r *Request) SetHeader(key, value string) *Request {
	if r.Headers == nil {
		r.Headers = map[string]string{}
	}
	r.Headers[key] = value
	return r
}

func (r *Request) SetSigned(signed bool) *Request {
	r.Signed = signed
	return r
}
