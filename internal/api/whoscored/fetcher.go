package whoscored

import (
	"fmt"

	"github.com/omarshaarawi/matchbot/internal/config"
)

// NewFetcher builds the fetcher selected by the configuration: the plain HTTP
// client by default, headless Chrome when Browser is set.
func NewFetcher(cfg config.WhoScored) (Fetcher, error) {
	headers, err := NewHeaders(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading request headers: %w", err)
	}

	if cfg.Browser {
		return NewBrowserFetcher(cfg, headers), nil
	}
	return NewClient(cfg, headers), nil
}
