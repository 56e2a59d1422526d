// Package httpclient fetches upstream documents over HTTP with SSRF
// protection, request pacing and a bounded response size.
package httpclient

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/teranos/rbxtypes/errors"
	"github.com/teranos/rbxtypes/logger"
)

const (
	// DefaultTimeout bounds a whole request, body included
	DefaultTimeout = 60 * time.Second

	// DefaultMaxBodyBytes caps a response body. The full API dump is a few MB.
	DefaultMaxBodyBytes = 64 << 20

	defaultMaxRedirects = 10
	userAgent           = "rbxtypes"
)

// Options customizes a SaferClient. Zero values select the defaults.
type Options struct {
	AllowedSchemes []string // Default: ["http", "https"]
	MaxRedirects   *int     // Default: 10
	BlockPrivateIP *bool    // Default: true

	// RequestsPerMinute paces outgoing requests. 0 means unlimited.
	RequestsPerMinute int

	// MaxBodyBytes caps a response body. 0 means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// SaferClient wraps http.Client with SSRF protection and request pacing
type SaferClient struct {
	*http.Client
	allowedSchemes []string
	blockPrivateIP bool
	maxRedirects   int
	maxBodyBytes   int64
	limiter        *rate.Limiter
}

// New creates a client with default protection
func New(timeout time.Duration) *SaferClient {
	return NewWithOptions(timeout, Options{})
}

// NewWithOptions creates a client with custom protection and pacing
func NewWithOptions(timeout time.Duration, opts Options) *SaferClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &SaferClient{
		Client:         &http.Client{Timeout: timeout},
		allowedSchemes: []string{"http", "https"},
		blockPrivateIP: true,
		maxRedirects:   defaultMaxRedirects,
		maxBodyBytes:   DefaultMaxBodyBytes,
		limiter:        rate.NewLimiter(rate.Inf, 1),
	}
	if opts.AllowedSchemes != nil {
		client.allowedSchemes = opts.AllowedSchemes
	}
	if opts.MaxRedirects != nil {
		client.maxRedirects = *opts.MaxRedirects
	}
	if opts.BlockPrivateIP != nil {
		client.blockPrivateIP = *opts.BlockPrivateIP
	}
	if opts.MaxBodyBytes > 0 {
		client.maxBodyBytes = opts.MaxBodyBytes
	}
	if opts.RequestsPerMinute > 0 {
		client.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}

	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= client.maxRedirects {
			return errors.Newf("stopped after %d redirects", client.maxRedirects)
		}
		if err := client.validateURL(req.URL); err != nil {
			return errors.Wrap(err, "redirect blocked")
		}
		return nil
	}

	if client.blockPrivateIP {
		client.Transport = guardedTransport()
	}

	return client
}

// guardedTransport resolves every dialed host and refuses private addresses,
// which also covers DNS rebinding after URL validation
func guardedTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, _, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, errors.Wrap(err, "invalid address")
			}

			ips, err := net.DefaultResolver.LookupIP(ctx, "ip", host)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to resolve host %q", host)
			}
			for _, ip := range ips {
				if isPrivateIP(ip) {
					return nil, errors.Newf("private IP address blocked: %s", ip)
				}
			}

			return dialer.DialContext(ctx, network, addr)
		},
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// ValidateURL parses and validates a URL string before creating a request
func (c *SaferClient) ValidateURL(urlStr string) (*url.URL, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid URL")
	}
	if err := c.validateURL(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *SaferClient) validateURL(u *url.URL) error {
	scheme := strings.ToLower(u.Scheme)
	allowed := false
	for _, s := range c.allowedSchemes {
		if scheme == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return errors.Newf("scheme %q not allowed (allowed: %v)", scheme, c.allowedSchemes)
	}

	// http://evil.com@localhost/
	if u.User != nil || strings.Contains(u.Host, "@") {
		return errors.New("URL contains userinfo (@)")
	}

	hostname := u.Hostname()
	if hostname == "" {
		return errors.New("URL missing hostname")
	}

	if c.blockPrivateIP {
		if isLocalhost(hostname) {
			return errors.New("localhost access blocked")
		}
		if ip := net.ParseIP(hostname); ip != nil && isPrivateIP(ip) {
			return errors.Newf("private IP address blocked: %s", hostname)
		}
	}

	return nil
}

// Do validates and paces the request, then executes it
func (c *SaferClient) Do(req *http.Request) (*http.Response, error) {
	if err := c.validateURL(req.URL); err != nil {
		return nil, errors.Wrap(err, "request blocked by SSRF protection")
	}
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, errors.Wrap(err, "rate limiter")
	}
	return c.Client.Do(req)
}

// GetBytes fetches urlStr and returns the whole body. Any non-2xx status is
// reported as ErrFetch.
func (c *SaferClient) GetBytes(ctx context.Context, urlStr string) ([]byte, error) {
	log := logger.ComponentLogger("httpclient")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid request for %s", urlStr)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.WithSecondaryError(errors.ErrFetch, err), "GET %s: %v", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrFetch, "GET %s: status %d", urlStr, resp.StatusCode),
			"check the source URL in the [sources] config section")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, errors.Wrapf(errors.WithSecondaryError(errors.ErrFetch, err), "reading %s: %v", urlStr, err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, errors.Wrapf(errors.ErrFetch, "GET %s: body exceeds %d bytes", urlStr, c.maxBodyBytes)
	}

	log.Debugw("Fetched",
		logger.FieldURL, urlStr,
		logger.FieldSize, len(body),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return body, nil
}

// WrapClient wraps an existing http.Client without private address blocking.
// Only for tests that talk to httptest servers on localhost.
func WrapClient(client *http.Client) *SaferClient {
	return &SaferClient{
		Client:         client,
		allowedSchemes: []string{"http", "https"},
		blockPrivateIP: false,
		maxRedirects:   defaultMaxRedirects,
		maxBodyBytes:   DefaultMaxBodyBytes,
		limiter:        rate.NewLimiter(rate.Inf, 1),
	}
}
