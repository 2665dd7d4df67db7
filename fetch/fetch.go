// Package fetch retrieves a web page and extracts its title and main text.
package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; blogsmith/1.0)"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 8 << 20

// Page is the extracted content of a fetched URL.
type Page struct {
	URL   string
	Title string
	Text  string
}

// Reason classifies why a fetch failed.
type Reason string

const (
	// ReasonNetwork covers invalid URLs, transport failures and non-success
	// statuses other than access denials.
	ReasonNetwork Reason = "network"

	// ReasonForbidden covers access denials and pages with no text.
	ReasonForbidden Reason = "forbidden"

	// ReasonUnparseable covers HTML with no usable content container.
	ReasonUnparseable Reason = "unparseable"
)

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Reason  Reason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ReasonOf returns the Reason carried by err, or ReasonNetwork when err is
// not a *Error.
func ReasonOf(err error) Reason {
	var fe *Error
	if errors.As(err, &fe) && fe.Reason != "" {
		return fe.Reason
	}
	return ReasonNetwork
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string

	// AllowInsecureTLS retries once without certificate verification when
	// the first attempt fails TLS verification.
	AllowInsecureTLS bool

	// Browser enables headless rendering when the plain HTTP fetch yields
	// less than MinContentLength characters of text.
	Browser bool

	// BrowserTimeout bounds a headless render. Zero uses DefaultBrowserTimeout.
	BrowserTimeout time.Duration
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Renderer returns the rendered HTML of a page.
type Renderer func(ctx context.Context, url string, timeout time.Duration) (string, error)

// Fetcher fetches pages over HTTP with an optional headless browser fallback.
// It is safe for concurrent use.
type Fetcher struct {
	opts     Options
	client   *http.Client
	insecure *http.Client
	render   Renderer
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the HTTP client used for verified requests.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithRenderer replaces the headless browser renderer.
func WithRenderer(r Renderer) FetcherOption {
	return func(f *Fetcher) {
		f.render = r
	}
}

// New creates a Fetcher. A nil opts uses DefaultOptions.
func New(opts *Options, fopts ...FetcherOption) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.BrowserTimeout <= 0 {
		o.BrowserTimeout = DefaultBrowserTimeout
	}
	f := &Fetcher{
		opts:   o,
		client: &http.Client{Timeout: o.Timeout},
		insecure: &http.Client{
			Timeout: o.Timeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // opt-in via AllowInsecureTLS
			},
		},
		render: RenderWithBrowser,
	}
	for _, opt := range fopts {
		opt(f)
	}
	return f
}

// Fetch retrieves url and extracts its title and main text. Failures are
// returned as *Error with a Reason.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (*Page, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Reason: ReasonNetwork, Message: "invalid URL", Cause: err}
	}

	html, err := f.get(ctx, f.client, urlStr)
	if err != nil && f.opts.AllowInsecureTLS && isCertificateError(err) {
		html, err = f.get(ctx, f.insecure, urlStr)
	}
	if err != nil {
		return nil, err
	}

	page, err := Extract(html)
	if f.opts.Browser && f.render != nil && (err != nil || ShouldUseBrowser(page.Text)) {
		if rendered, rerr := f.render(ctx, urlStr, f.opts.BrowserTimeout); rerr == nil {
			if rp, perr := Extract(rendered); perr == nil && (page == nil || len(rp.Text) > len(page.Text)) {
				page, err = rp, nil
			}
		}
	}
	if err != nil {
		var fe *Error
		if errors.As(err, &fe) {
			fe.URL = urlStr
		}
		return nil, err
	}
	if page.Text == "" {
		return nil, &Error{URL: urlStr, Reason: ReasonForbidden, Message: "no text content"}
	}
	page.URL = urlStr
	return page, nil
}

func (f *Fetcher) get(ctx context.Context, client *http.Client, urlStr string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Reason: ReasonNetwork, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	for key, value := range f.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Reason: ReasonNetwork, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusUnavailableForLegalReasons:
		return "", &Error{URL: urlStr, Reason: ReasonForbidden, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", &Error{URL: urlStr, Reason: ReasonNetwork, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &Error{URL: urlStr, Reason: ReasonNetwork, Message: "failed to read response body", Cause: err}
	}
	if strings.TrimSpace(string(body)) == "" {
		return "", &Error{URL: urlStr, Reason: ReasonForbidden, Message: "empty response body"}
	}
	return string(body), nil
}

func isCertificateError(err error) bool {
	var (
		verr     *tls.CertificateVerificationError
		unknown  x509.UnknownAuthorityError
		hostname x509.HostnameError
		invalid  x509.CertificateInvalidError
	)
	return errors.As(err, &verr) ||
		errors.As(err, &unknown) ||
		errors.As(err, &hostname) ||
		errors.As(err, &invalid)
}
