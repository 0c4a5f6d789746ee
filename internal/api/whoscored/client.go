package whoscored

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/omarshaarawi/matchbot/internal/config"
)

// Fetcher retrieves the raw markup of a match page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

type Client struct {
	httpClient *http.Client
	headers    Headers
	hosts      []string
	warmUp     bool
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client, e.g. with one backed by a
// fake transport. The client's Jar is ignored; every fetch gets its own.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(cfg config.WhoScored, headers Headers, opts ...Option) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: transport},
		headers:    headers,
		hosts:      siteHosts(cfg),
		warmUp:     cfg.WarmUp,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func siteHosts(cfg config.WhoScored) []string {
	var hosts []string
	if u, err := url.Parse(cfg.BaseURL); err == nil && u.Host != "" {
		hosts = append(hosts, u.Host)
	}
	for _, h := range cfg.MirrorHosts {
		h = strings.TrimSpace(h)
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// targetURL parses pageURL and accepts it only when it points at one of the
// site's own hosts.
func targetURL(hosts []string, pageURL string) (*url.URL, error) {
	target, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, ErrInvalidURL
	}
	for _, host := range hosts {
		if strings.EqualFold(host, target.Host) {
			return target, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrForeignHost, target.Host)
}

// Fetch GETs the page with the configured header profile. When the first
// attempt is answered with a block status the same path is requested once
// from an equivalent host of the site.
func (c *Client) Fetch(ctx context.Context, pageURL string) (string, error) {
	start := time.Now()
	defer func() {
		pageFetchDuration.WithLabelValues("http").Observe(time.Since(start).Seconds())
	}()

	target, err := targetURL(c.hosts, pageURL)
	if err != nil {
		pageFetches.WithLabelValues("http", "error").Inc()
		return "", &FetchError{URL: pageURL, Err: err}
	}

	// A fresh jar per call keeps warm-up cookies scoped to this fetch.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}
	client := *c.httpClient
	client.Jar = jar

	body, err := c.get(ctx, &client, target)
	if err == nil {
		pageFetches.WithLabelValues("http", "ok").Inc()
		return body, nil
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) && fetchErr.Blocked() {
		if mirror := c.mirrorFor(target); mirror != nil {
			slog.Warn("Match page blocked, retrying on mirror", "url", pageURL, "status", fetchErr.StatusCode, "mirror", mirror.Host)
			body, err = c.get(ctx, &client, mirror)
			if err == nil {
				pageFetches.WithLabelValues("http", "mirror").Inc()
				return body, nil
			}
		}
	}

	pageFetches.WithLabelValues("http", "error").Inc()
	return "", err
}

func (c *Client) get(ctx context.Context, client *http.Client, target *url.URL) (string, error) {
	if c.warmUp {
		c.warm(ctx, client, target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", &FetchError{URL: target.String(), Err: fmt.Errorf("error creating request: %w", err)}
	}
	c.headers.apply(req)

	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{URL: target.String(), Err: fmt.Errorf("error making request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &FetchError{URL: target.String(), StatusCode: resp.StatusCode}
	}

	body, err := readBody(resp)
	if err != nil {
		return "", &FetchError{URL: target.String(), Err: fmt.Errorf("error reading response: %w", err)}
	}

	return string(body), nil
}

// warm requests the site root so the session cookies set there accompany the
// page request. Failures are logged and otherwise ignored.
func (c *Client) warm(ctx context.Context, client *http.Client, target *url.URL) {
	root := url.URL{Scheme: target.Scheme, Host: target.Host, Path: "/"}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root.String(), nil)
	if err != nil {
		return
	}
	c.headers.apply(req)

	resp, err := client.Do(req)
	if err != nil {
		slog.Debug("Warm-up request failed", "url", root.String(), "error", err)
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func (c *Client) mirrorFor(target *url.URL) *url.URL {
	for _, host := range c.hosts {
		if strings.EqualFold(host, target.Host) {
			continue
		}
		mirror := *target
		mirror.Host = host
		return &mirror
	}
	return nil
}

func isBlockStatus(status int) bool {
	return status == http.StatusForbidden || status == http.StatusTooManyRequests
}
