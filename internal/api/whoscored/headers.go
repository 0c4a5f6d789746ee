package whoscored

import (
	"fmt"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/omarshaarawi/matchbot/internal/config"
)

const (
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	defaultAcceptLanguage = "en-US,en;q=0.9"
	defaultAcceptEncoding = "gzip, br, zstd"
)

// Headers is the browser-mimicking header profile sent with every request.
type Headers map[string]string

type headerFile struct {
	Headers map[string]string `yaml:"headers"`
}

// NewHeaders builds the header profile: built-in defaults, then the YAML
// profile file if configured, then the individual config overrides.
func NewHeaders(cfg config.WhoScored) (Headers, error) {
	h := Headers{
		"User-Agent":      defaultUserAgent,
		"Accept":          defaultAccept,
		"Accept-Language": defaultAcceptLanguage,
		"Accept-Encoding": defaultAcceptEncoding,
		"Referer":         cfg.BaseURL + "/",
	}

	if cfg.HeadersFile != "" {
		fromFile, err := LoadHeadersFile(cfg.HeadersFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fromFile {
			h[http.CanonicalHeaderKey(k)] = v
		}
	}

	if cfg.UserAgent != "" {
		h["User-Agent"] = cfg.UserAgent
	}
	if cfg.AcceptLanguage != "" {
		h["Accept-Language"] = cfg.AcceptLanguage
	}
	if cfg.Referer != "" {
		h["Referer"] = cfg.Referer
	}

	return h, nil
}

func LoadHeadersFile(path string) (Headers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading headers file: %w", err)
	}

	var f headerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing headers file: %w", err)
	}

	return Headers(f.Headers), nil
}

func (h Headers) apply(req *http.Request) {
	for key, value := range h {
		req.Header.Set(key, value)
	}
}
