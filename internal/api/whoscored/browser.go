package whoscored

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/omarshaarawi/matchbot/internal/config"
)

// BrowserFetcher renders the page in headless Chrome. It is heavier than
// Client and meant for periods when the plain HTTP path is blocked outright.
type BrowserFetcher struct {
	headers Headers
	hosts   []string
	timeout time.Duration
}

func NewBrowserFetcher(cfg config.WhoScored, headers Headers) *BrowserFetcher {
	return &BrowserFetcher{headers: headers, hosts: siteHosts(cfg), timeout: cfg.Timeout}
}

func (b *BrowserFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	start := time.Now()
	defer func() {
		pageFetchDuration.WithLabelValues("browser").Observe(time.Since(start).Seconds())
	}()

	target, err := targetURL(b.hosts, pageURL)
	if err != nil {
		pageFetches.WithLabelValues("browser", "error").Inc()
		return "", &FetchError{URL: pageURL, Err: err}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(b.headers["User-Agent"]),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...interface{}) {
		slog.Debug("chromedp", "message", fmt.Sprintf(format, v...))
	}))
	defer cancel()

	if b.timeout > 0 {
		browserCtx, cancel = context.WithTimeout(browserCtx, b.timeout)
		defer cancel()
	}

	extra := network.Headers{}
	for _, key := range []string{"Accept-Language", "Referer"} {
		if v, ok := b.headers[key]; ok {
			extra[key] = v
		}
	}

	var html string
	err = chromedp.Run(browserCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(extra),
		chromedp.Navigate(target.String()),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		pageFetches.WithLabelValues("browser", "error").Inc()
		return "", &FetchError{URL: pageURL, Err: fmt.Errorf("chromedp navigation: %w", err)}
	}

	pageFetches.WithLabelValues("browser", "ok").Inc()
	return html, nil
}
