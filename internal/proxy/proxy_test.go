package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func stubClient(fn roundTripFunc) *http.Client {
	return &http.Client{Transport: fn}
}

func TestProxyRejectsMissingTarget(t *testing.T) {
	h := NewHandler(nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/proxy", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "target")
}

func TestProxyRejectsDisallowedHost(t *testing.T) {
	var outbound int
	h := NewHandler(nil, zerolog.Nop())
	h.SetClient(stubClient(func(*http.Request) (*http.Response, error) {
		outbound++
		return nil, nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/proxy?target=https%3A%2F%2Fevil.example.com%2Fdata", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, outbound, "a disallowed host must be rejected before any outbound call")
}

func TestProxyRejectsNonHTTPSTarget(t *testing.T) {
	h := NewHandler(nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/proxy?target=http%3A%2F%2Flaws.e-gov.go.jp%2Fapi", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProxyPreflight(t *testing.T) {
	h := NewHandler(nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodOptions, "/api/proxy", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestProxyRelaysResponse(t *testing.T) {
	h := NewHandler([]string{"laws.e-gov.go.jp"}, zerolog.Nop())
	h.SetClient(stubClient(func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, "laws.e-gov.go.jp", r.URL.Hostname())
		assert.Equal(t, "/api/2/keyword", r.URL.Path)
		// Hop headers from the inbound request never reach upstream.
		assert.Empty(t, r.Header.Get("Connection"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"total_count": 1}`)),
		}, nil
	}))

	req := httptest.NewRequest(http.MethodGet,
		"/api/proxy?target=https%3A%2F%2Flaws.e-gov.go.jp%2Fapi%2F2%2Fkeyword%3Fkeyword%3D%E6%B0%91%E6%B3%95", nil)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Connection", "keep-alive")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_count": 1}`, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestProxyUpstreamFailure(t *testing.T) {
	h := NewHandler([]string{"laws.e-gov.go.jp"}, zerolog.Nop())
	h.SetClient(stubClient(func(*http.Request) (*http.Response, error) {
		return nil, http.ErrHandlerTimeout
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/proxy?target=https%3A%2F%2Flaws.e-gov.go.jp%2Fapi", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestProxyRejectsNonGet(t *testing.T) {
	h := NewHandler(nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/proxy?target=https%3A%2F%2Flaws.e-gov.go.jp%2Fapi", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
