package http

import (
	"context"
	"crypto/tls"
	"io"
	"math"
	"mime"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/curlscope/packages/audit"
	"github.com/abdul-hamid-achik/curlscope/packages/curl"
)

const (
	// DefaultMaxRedirects is the maximum number of redirects to follow
	DefaultMaxRedirects = 10
	// DefaultMaxIdleConns is the maximum number of idle connections in the pool
	DefaultMaxIdleConns = 100
	// DefaultMaxIdleConnsPerHost is the maximum number of idle connections per host
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
)

// Client executes parsed curl commands and analyzes what comes back. A
// single Client is safe for concurrent Execute calls.
type Client struct {
	httpClient     *http.Client
	timeout        time.Duration // 0 means no timeout
	followRedirect bool
	maxRedirects   int
	validateSSL    bool
	proxyURL       string
	defaultHeaders map[string]string
	limiter        *rate.Limiter
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		followRedirect: true,
		maxRedirects:   DefaultMaxRedirects,
		validateSSL:    true,
		defaultHeaders: make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	transport := &http.Transport{
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
	}

	if !c.validateSSL {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	if c.proxyURL != "" {
		proxyURL, err := neturl.Parse(c.proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	redirectPolicy := func(req *http.Request, via []*http.Request) error {
		if !c.followRedirect {
			return http.ErrUseLastResponse
		}
		if len(via) >= c.maxRedirects {
			return http.ErrUseLastResponse
		}
		return nil
	}

	c.httpClient = &http.Client{
		Transport:     transport,
		CheckRedirect: redirectPolicy,
	}

	return c
}

// WithTimeout caps a single execution. Zero keeps the default of no
// timeout; callers can still cancel through the context.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithFollowRedirects(follow bool) ClientOption {
	return func(c *Client) {
		c.followRedirect = follow
	}
}

func WithMaxRedirects(max int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = max
	}
}

// WithValidateSSL enables or disables TLS certificate validation
func WithValidateSSL(validate bool) ClientOption {
	return func(c *Client) {
		c.validateSSL = validate
	}
}

// WithProxy sets the proxy URL for all requests
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) {
		c.proxyURL = proxyURL
	}
}

func WithDefaultHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.defaultHeaders[key] = value
	}
}

// WithDefaultHeaders sets multiple default headers for all requests
func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.defaultHeaders[k] = v
		}
	}
}

// WithRateLimit throttles Execute to rps requests per second across
// goroutines. Useful when many analyses share one client.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// Execute issues the described request and analyzes the response. Every
// HTTP status, 4xx and 5xx included, resolves successfully; only
// transport-level faults return an error, always a *NetworkError.
func (c *Client) Execute(ctx context.Context, d *curl.RequestDescriptor) (*ResponseAnalysis, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &NetworkError{URL: d.URL, Err: err}
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if d.HasBody() {
		body = strings.NewReader(*d.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, d.Method, d.URL, body)
	if err != nil {
		return nil, &NetworkError{URL: d.URL, Err: err}
	}

	for k, v := range c.defaultHeaders {
		httpReq.Header.Set(k, v)
	}
	for k, v := range d.Headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{URL: d.URL, Err: err}
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	// Elapsed covers dispatch through full body receipt.
	elapsed := time.Since(start)
	if err != nil {
		return nil, &NetworkError{URL: d.URL, Err: err}
	}

	contentType := httpResp.Header.Get("Content-Type")
	content, compact := NormalizeBody(contentType, rawBody)

	finalURL := d.URL
	if httpResp.Request != nil && httpResp.Request.URL != nil {
		finalURL = httpResp.Request.URL.String()
	}

	redirectCount := 0
	if finalURL != d.URL {
		// Presence flag only: first-hop detection, never an actual count.
		redirectCount = 1
	}

	cookies := httpResp.Header.Values("Set-Cookie")
	if cookies == nil {
		cookies = []string{}
	}

	return &ResponseAnalysis{
		StatusCode:   httpResp.StatusCode,
		ReasonPhrase: reasonPhrase(httpResp),
		Headers:      httpResp.Header,
		ContentType:  contentType,
		Content:      content,
		RawBody:      compact,
		Metadata: Metadata{
			Encoding:      charsetOf(contentType),
			SizeBytes:     len(rawBody),
			ElapsedMs:     roundMs(elapsed),
			RedirectCount: redirectCount,
			FinalURL:      finalURL,
			Cookies:       cookies,
			SecurityAudit: audit.Evaluate(httpResp.Header),
		},
	}, nil
}

// reasonPhrase keeps the server's own phrase when present, falling back to
// the standard text for the code.
func reasonPhrase(resp *http.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if phrase == "" {
		phrase = http.StatusText(resp.StatusCode)
	}
	return phrase
}

func charsetOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// roundMs reports a duration in milliseconds with two-decimal precision.
func roundMs(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*100) / 100
}
