package exchanger

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"picostocks/pkg/core"
)

const (
	testUserID = "42"
	testSeed   = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	apiPrefix  = "/api/v1"
)

type recordedCall struct {
	Method    string
	Path      string
	Query     url.Values
	Form      url.Values
	UserAgent string
}

// mockExchange answers like the exchange: nonces count up from nonceStart,
// trader posts echo "ok", every other GET echoes its path.
type mockExchange struct {
	server     *httptest.Server
	nonceStart int64
	nonce      atomic.Int64
	nonceCalls atomic.Int32

	mu    sync.Mutex
	calls []recordedCall

	// fixedNonce, if set, is returned verbatim as the nonce body.
	fixedNonce string
}

func newMockExchange(t *testing.T) *mockExchange {
	t.Helper()
	m := &mockExchange{nonceStart: 100}
	m.nonce.Store(m.nonceStart)
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.server.Close)
	return m
}

func (m *mockExchange) handle(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	call := recordedCall{
		Method:    r.Method,
		Path:      strings.TrimPrefix(r.URL.Path, apiPrefix),
		Query:     r.URL.Query(),
		Form:      r.PostForm,
		UserAgent: r.Header.Get("User-Agent"),
	}
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasPrefix(call.Path, "/account/nonce/"):
		m.nonceCalls.Add(1)
		if m.fixedNonce != "" {
			fmt.Fprint(w, m.fixedNonce)
			return
		}
		n := m.nonce.Add(1)
		fmt.Fprintf(w, `{"nonce": %d}`, n)
	case strings.HasPrefix(call.Path, "/trader/"):
		fmt.Fprint(w, `{"status": "ok"}`)
	default:
		fmt.Fprintf(w, `{"path": %q}`, call.Path)
	}
}

func (m *mockExchange) config() *core.Config {
	return core.DefaultConfig(testUserID).
		WithBaseURL(m.server.URL + apiPrefix + "/").
		WithPrivateKey(testSeed)
}

func (m *mockExchange) recorded() []recordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedCall(nil), m.calls...)
}

func (m *mockExchange) lastCall(t *testing.T) recordedCall {
	t.Helper()
	calls := m.recorded()
	require.NotEmpty(t, calls)
	return calls[len(calls)-1]
}

func newTestExchanger(t *testing.T, m *mockExchange, opts ...Option) *Exchanger {
	t.Helper()
	ex, err := New(m.config(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { ex.Close() })
	return ex
}
