// Package lawapi is the client for the upstream statute-law API. It
// builds requests (directly or through the same-origin proxy), executes
// them with bounded retries and exponential backoff, parses whichever
// payload generation the server answers with and hands the result to
// the normalizer. A tiered cache sits in front of every network call.
package lawapi

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/hourei/hourei-backend/internal/cache"
	"github.com/hourei/hourei-backend/internal/lawdoc"
	"github.com/hourei/hourei-backend/internal/metrics"
	"github.com/hourei/hourei-backend/internal/model"
	"github.com/hourei/hourei-backend/internal/textutil"
)

const (
	DefaultBaseURL        = "https://laws.e-gov.go.jp/api/2/"
	DefaultProxyBaseURL   = "/api/proxy"
	DefaultMaxRetries     = 3
	DefaultRetryBaseDelay = 300 * time.Millisecond
	DefaultSearchTTL      = 5 * time.Minute
	DefaultDetailTTL      = 15 * time.Minute
	DefaultPageSize       = 20

	searchNamespace = "law-search"
	detailNamespace = "law-detail"
)

// Config holds client settings; zero values fall back to the defaults
// above.
type Config struct {
	BaseURL        string
	UseProxy       bool
	ProxyBaseURL   string
	MaxRetries     int
	RetryBaseDelay time.Duration
	SearchCacheTTL time.Duration
	DetailCacheTTL time.Duration
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.ProxyBaseURL == "" {
		c.ProxyBaseURL = DefaultProxyBaseURL
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryBaseDelay == 0 {
		c.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if c.SearchCacheTTL == 0 {
		c.SearchCacheTTL = DefaultSearchTTL
	}
	if c.DetailCacheTTL == 0 {
		c.DetailCacheTTL = DefaultDetailTTL
	}
}

// Client talks to the upstream law API.
type Client struct {
	cfg     Config
	http    *resty.Client
	cache   *cache.Cache
	metrics *metrics.Metrics
	log     zerolog.Logger
	sleep   func(ctx context.Context, d time.Duration) error
	now     func() time.Time
}

// Option tunes client construction.
type Option func(*Client)

// WithCache attaches a tier stack; without one every call goes to the
// network.
func WithCache(c *cache.Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithMetrics attaches prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(cl *Client) { cl.metrics = m }
}

// WithLogger overrides the default nop logger.
func WithLogger(log zerolog.Logger) Option {
	return func(cl *Client) { cl.log = log }
}

// WithSleep overrides the retry wait for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(cl *Client) { cl.sleep = sleep }
}

// New constructs a client.
func New(cfg Config, opts ...Option) *Client {
	cfg.applyDefaults()
	c := &Client{
		cfg:   cfg,
		http:  resty.New(),
		log:   zerolog.Nop(),
		sleep: sleepWithContext,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchLaws validates, caches and executes a keyword search.
func (c *Client) SearchLaws(ctx context.Context, params model.SearchParams) (*model.LawsSearchResult, error) {
	keyword := resolveKeyword(params)
	if keyword == "" {
		return nil, newValidationError("search requires a non-empty keyword")
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	cacheKey := searchCacheKey(keyword, params, page, pageSize)
	var cached model.LawsSearchResult
	if c.cacheGet(ctx, cacheKey, cache.Options{Namespace: searchNamespace, Strategy: cache.StrategySession}, &cached) {
		return &cached, nil
	}

	query := url.Values{}
	query.Set("keyword", keyword)
	query.Set("limit", strconv.Itoa(pageSize))
	query.Set("offset", strconv.Itoa((page-1)*pageSize))
	if codes := resolveCategoryCodes(params.Category, params.CategoryCodes); len(codes) > 0 {
		query.Set("category_cd", strings.Join(codes, ","))
	}
	if token := sortToken(params.Sort); token != "" {
		query.Set("order", token)
	}
	if params.PromulgationDateFrom != "" {
		query.Set("promulgation_date_from", params.PromulgationDateFrom)
	}
	if params.PromulgationDateTo != "" {
		query.Set("promulgation_date_to", params.PromulgationDateTo)
	}

	started := c.now()
	payload, err := c.fetch(ctx, "law search", "keyword", query)
	if err != nil {
		return nil, err
	}

	pageData := lawdoc.NormalizeSearch(payload)
	queryParams := params
	result := &model.LawsSearchResult{
		TotalCount:      pageData.TotalCount,
		Page:            page,
		PageSize:        pageSize,
		HasNext:         page*pageSize < pageData.TotalCount,
		HasPrevious:     page > 1,
		ExecutionTimeMs: c.now().Sub(started).Milliseconds(),
		Query:           &queryParams,
		Results:         pageData.Results,
	}

	c.cacheSet(ctx, cacheKey, result, cache.Options{
		Namespace: searchNamespace,
		Strategy:  cache.StrategySession,
		TTL:       c.cfg.SearchCacheTTL,
	})
	return result, nil
}

// GetLawByID fetches and normalizes one statute.
func (c *Client) GetLawByID(ctx context.Context, lawID string) (*model.LawDetail, error) {
	lawID = strings.TrimSpace(lawID)
	if lawID == "" {
		return nil, newValidationError("law id must not be empty")
	}

	var cached model.LawDetail
	if c.cacheGet(ctx, lawID, cache.Options{Namespace: detailNamespace, Strategy: cache.StrategyDurable}, &cached) {
		return &cached, nil
	}

	payload, err := c.fetch(ctx, "law detail", "law_data/"+url.PathEscape(lawID), nil)
	if err != nil {
		return nil, err
	}

	detail, err := lawdoc.NormalizeDetail(payload)
	if err != nil {
		return nil, newNormalizationError("law detail", err)
	}

	c.cacheSet(ctx, lawID, detail, cache.Options{
		Namespace: detailNamespace,
		Strategy:  cache.StrategyDurable,
		TTL:       c.cfg.DetailCacheTTL,
	})
	return detail, nil
}

// PickRandomProvision picks a uniform random provision from detail.
func PickRandomProvision(detail *model.LawDetail, randFn func() float64) (model.Provision, error) {
	if detail == nil || len(detail.Provisions) == 0 {
		return model.Provision{}, newValidationError("no provisions available to pick from")
	}
	if randFn == nil {
		randFn = rand.Float64
	}
	index := int(randFn() * float64(len(detail.Provisions)))
	if index >= len(detail.Provisions) {
		index = len(detail.Provisions) - 1
	}
	return detail.Provisions[index], nil
}

// ExtractProvisionsByKeyword filters provisions by a case-insensitive
// substring match. An empty keyword yields an empty result, not "all".
func ExtractProvisionsByKeyword(detail *model.LawDetail, keyword string) []model.Provision {
	keyword = strings.TrimSpace(keyword)
	if detail == nil || keyword == "" {
		return nil
	}
	needle := strings.ToLower(keyword)
	var out []model.Provision
	for _, provision := range detail.Provisions {
		if strings.Contains(strings.ToLower(provision.Text), needle) {
			out = append(out, provision)
		}
	}
	return out
}

// --- transport ------------------------------------------------------------

// fetch executes one logical call with bounded retries. Transport
// failures, 429 and 5xx responses are retried with exponential backoff;
// any other non-2xx status fails immediately. The status is inspected
// before the body is parsed.
func (c *Client) fetch(ctx context.Context, operation, endpoint string, query url.Values) (any, error) {
	requestURL, err := c.buildRequestURL(endpoint, query)
	if err != nil {
		return nil, newValidationError(err.Error())
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.RetryBaseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = time.Hour
	bo.MaxElapsedTime = 0

	var lastErr *APIError
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if c.metrics != nil {
				c.metrics.UpstreamRetries.Inc()
			}
			if err := c.sleep(ctx, bo.NextBackOff()); err != nil {
				return nil, newTransportError(operation, err)
			}
		}
		if c.metrics != nil {
			c.metrics.UpstreamRequests.WithLabelValues(operation).Inc()
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("Accept", "application/json, application/xml").
			Get(requestURL)
		if err != nil {
			lastErr = newTransportError(operation, err)
			c.log.Warn().Err(err).Str("operation", operation).Int("attempt", attempt).Msg("upstream request failed")
			continue
		}

		status := resp.StatusCode()
		if status >= 200 && status < 300 {
			return parseBody(resp.Header().Get("Content-Type"), resp.Body()), nil
		}

		lastErr = newStatusError(operation, status, string(resp.Body()))
		if lastErr.Category == Irrecoverable {
			return nil, lastErr
		}
		c.log.Warn().Int("status", status).Str("operation", operation).Int("attempt", attempt).Msg("retryable upstream status")
	}

	if c.metrics != nil {
		c.metrics.UpstreamFailures.Inc()
	}
	return nil, lastErr
}

// buildRequestURL joins the endpoint onto the base URL and, when
// proxying is enabled, wraps the absolute upstream URL into the proxy's
// target parameter.
func (c *Client) buildRequestURL(endpoint string, query url.Values) (string, error) {
	base := c.cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	upstream, err := url.Parse(base + endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid upstream URL: %w", err)
	}
	if len(query) > 0 {
		upstream.RawQuery = query.Encode()
	}
	if !c.cfg.UseProxy {
		return upstream.String(), nil
	}

	proxy, err := url.Parse(c.cfg.ProxyBaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid proxy URL: %w", err)
	}
	proxyQuery := proxy.Query()
	proxyQuery.Set("target", upstream.String())
	proxy.RawQuery = proxyQuery.Encode()
	return proxy.String(), nil
}

// parseBody decodes a successful response. JSON and XML both reduce to
// the generic tree the normalizer understands; anything else stays an
// opaque string after a best-effort JSON parse.
func parseBody(contentType string, body []byte) any {
	trimmed := strings.TrimSpace(string(body))
	if strings.Contains(contentType, "xml") || strings.HasPrefix(trimmed, "<") {
		if node, err := textutil.ParseXMLString(trimmed); err == nil {
			return node.LegacyValue()
		}
		return trimmed
	}
	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
		return decoded
	}
	return trimmed
}

// upstreamMessage makes a best-effort attempt to pull an error message
// out of an upstream error body.
func upstreamMessage(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return ""
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
		if msg, ok := textutil.FirstMatchingKey(decoded, "message", "error", "detail"); ok {
			return textutil.Stringify(msg)
		}
		return ""
	}
	if len(trimmed) > 200 {
		return trimmed[:200]
	}
	return trimmed
}

func resolveKeyword(params model.SearchParams) string {
	if kw := strings.TrimSpace(params.Keyword); kw != "" {
		return kw
	}
	var parts []string
	for _, kw := range params.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			parts = append(parts, kw)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return strings.TrimSpace(params.LawName)
}

func sortToken(sort model.SortOrder) string {
	switch sort {
	case model.SortPromulgationDate:
		return "promulgation_date"
	case model.SortLawNumber:
		return "law_num"
	default:
		return ""
	}
}

func searchCacheKey(keyword string, params model.SearchParams, page, pageSize int) string {
	key := struct {
		Keyword  string   `json:"keyword"`
		Category string   `json:"category,omitempty"`
		Codes    []string `json:"codes,omitempty"`
		From     string   `json:"from,omitempty"`
		To       string   `json:"to,omitempty"`
		Sort     string   `json:"sort,omitempty"`
		Page     int      `json:"page"`
		PageSize int      `json:"pageSize"`
	}{
		Keyword:  keyword,
		Category: params.Category,
		Codes:    params.CategoryCodes,
		From:     params.PromulgationDateFrom,
		To:       params.PromulgationDateTo,
		Sort:     string(params.Sort),
		Page:     page,
		PageSize: pageSize,
	}
	raw, err := json.Marshal(key)
	if err != nil {
		return keyword
	}
	return string(raw)
}

func (c *Client) cacheGet(ctx context.Context, key string, opts cache.Options, dest any) bool {
	if c.cache == nil {
		return false
	}
	hit := c.cache.Get(ctx, key, opts, dest)
	if c.metrics != nil {
		if hit {
			c.metrics.CacheHits.WithLabelValues(opts.Namespace).Inc()
		} else {
			c.metrics.CacheMisses.WithLabelValues(opts.Namespace).Inc()
		}
	}
	return hit
}

func (c *Client) cacheSet(ctx context.Context, key string, value any, opts cache.Options) {
	if c.cache == nil {
		return
	}
	c.cache.Set(ctx, key, value, opts)
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
