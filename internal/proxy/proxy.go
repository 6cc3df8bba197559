// Package proxy implements the same-origin relay for the upstream law
// API. Browsers cannot call the upstream host directly, so the handler
// forwards an allow-listed target URL and mirrors the response back
// with permissive CORS headers.
package proxy

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hourei/hourei-backend/internal/api/respond"
)

// DefaultAllowedHosts is the upstream host the relay will forward to
// unless configured otherwise.
var DefaultAllowedHosts = []string{"laws.e-gov.go.jp"}

// hopHeaders never cross the relay in either direction.
var hopHeaders = map[string]struct{}{
	"Host":              {},
	"Connection":        {},
	"Keep-Alive":        {},
	"Proxy-Connection":  {},
	"Transfer-Encoding": {},
	"Upgrade":           {},
	"Content-Length":    {},
}

// Handler relays GET requests to allow-listed upstream targets.
type Handler struct {
	allowedHosts map[string]struct{}
	client       *http.Client
	log          zerolog.Logger
}

// NewHandler builds a relay restricted to the given hosts. An empty
// list falls back to DefaultAllowedHosts.
func NewHandler(allowedHosts []string, log zerolog.Logger) *Handler {
	if len(allowedHosts) == 0 {
		allowedHosts = DefaultAllowedHosts
	}
	hosts := make(map[string]struct{}, len(allowedHosts))
	for _, host := range allowedHosts {
		hosts[strings.ToLower(strings.TrimSpace(host))] = struct{}{}
	}
	return &Handler{
		allowedHosts: hosts,
		client:       &http.Client{Timeout: 30 * time.Second},
		log:          log,
	}
}

// SetClient overrides the outbound HTTP client; used by tests.
func (h *Handler) SetClient(client *http.Client) { h.client = client }

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodGet {
		respond.WriteError(w, http.StatusMethodNotAllowed, "only GET is proxied")
		return
	}

	target := r.URL.Query().Get("target")
	if target == "" {
		respond.WriteBadRequest(w, "target query parameter is required")
		return
	}
	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme != "https" {
		respond.WriteBadRequest(w, "target must be an absolute https URL")
		return
	}
	if _, ok := h.allowedHosts[strings.ToLower(parsed.Hostname())]; !ok {
		h.log.Warn().Str("host", parsed.Hostname()).Msg("rejected proxy target outside the allow list")
		respond.WriteBadRequest(w, "target host is not allowed")
		return
	}

	upstreamReq, err := http.NewRequestWithContext(r.Context(), http.MethodGet, parsed.String(), nil)
	if err != nil {
		respond.WriteBadRequest(w, "target URL cannot be requested")
		return
	}
	copyHeaders(upstreamReq.Header, r.Header)

	resp, err := h.client.Do(upstreamReq)
	if err != nil {
		h.log.Warn().Err(err).Str("target", parsed.String()).Msg("upstream relay failed")
		respond.WriteError(w, http.StatusBadGateway, "upstream request failed")
		return
	}
	defer func() { _ = resp.Body.Close() }()

	copyHeaders(w.Header(), resp.Header)
	writeCORSHeaders(w)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.log.Warn().Err(err).Msg("relay body copy interrupted")
	}
}

func copyHeaders(dst, src http.Header) {
	for name, values := range src {
		if _, hop := hopHeaders[http.CanonicalHeaderKey(name)]; hop {
			continue
		}
		for _, value := range values {
			dst.Add(name, value)
		}
	}
}

func writeCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
}
