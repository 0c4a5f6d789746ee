package whoscored

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/omarshaarawi/matchbot/internal/config"
)

func testConfig(baseURL string, mirrors ...string) config.WhoScored {
	return config.WhoScored{
		BaseURL:     baseURL,
		MirrorHosts: mirrors,
		Timeout:     5 * time.Second,
		WarmUp:      true,
	}
}

func mustHeaders(t *testing.T, cfg config.WhoScored) Headers {
	t.Helper()
	h, err := NewHeaders(cfg)
	if err != nil {
		t.Fatalf("NewHeaders: %v", err)
	}
	return h
}

func TestFetchSendsHeadersAndWarmUpCookie(t *testing.T) {
	var warmed bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			warmed = true
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1", Path: "/"})
			return
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("Accept-Language") == "" {
			t.Error("accept-language header missing")
		}
		if c, err := r.Cookie("session"); err != nil || c.Value != "s1" {
			t.Errorf("warm-up cookie not sent: %v", err)
		}
		w.Write([]byte("<html>match</html>"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.UserAgent = "test-agent"
	c := NewClient(cfg, mustHeaders(t, cfg))

	body, err := c.Fetch(context.Background(), srv.URL+"/Matches/1/Live")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if body != "<html>match</html>" {
		t.Errorf("body = %q", body)
	}
	if !warmed {
		t.Error("warm-up request not made")
	}
}

func TestFetchMirrorFallbackOnBlock(t *testing.T) {
	var mirrorHits int
	mirror := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			return
		}
		mirrorHits++
		w.Write([]byte("from mirror"))
	}))
	defer mirror.Close()

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer primary.Close()

	mirrorURL, _ := url.Parse(mirror.URL)
	cfg := testConfig(primary.URL, mirrorURL.Host)
	c := NewClient(cfg, mustHeaders(t, cfg))

	body, err := c.Fetch(context.Background(), primary.URL+"/Matches/1/Live")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if body != "from mirror" {
		t.Errorf("body = %q", body)
	}
	if mirrorHits != 1 {
		t.Errorf("mirror hits = %d, want 1", mirrorHits)
	}
}

func TestFetchMirrorAlsoBlocked(t *testing.T) {
	blocked := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	primary := httptest.NewServer(blocked)
	defer primary.Close()
	mirror := httptest.NewServer(blocked)
	defer mirror.Close()

	mirrorURL, _ := url.Parse(mirror.URL)
	cfg := testConfig(primary.URL, mirrorURL.Host)
	cfg.WarmUp = false
	c := NewClient(cfg, mustHeaders(t, cfg))

	_, err := c.Fetch(context.Background(), primary.URL+"/Matches/1/Live")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d", fetchErr.StatusCode)
	}
}

func TestFetchNotFoundHasNoFallback(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, "mirror.invalid")
	cfg.WarmUp = false
	c := NewClient(cfg, mustHeaders(t, cfg))

	_, err := c.Fetch(context.Background(), srv.URL+"/Matches/1/Live")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound || fetchErr.Blocked() {
		t.Errorf("unexpected error %+v", fetchErr)
	}
	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
}

func TestFetchInvalidURL(t *testing.T) {
	cfg := testConfig("https://www.whoscored.com")
	c := NewClient(cfg, mustHeaders(t, cfg))

	for _, raw := range []string{"not a url", "://missing-scheme", "ftp://www.whoscored.com/Matches/1"} {
		_, err := c.Fetch(context.Background(), raw)
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("%q: expected FetchError, got %v", raw, err)
		}
		if !errors.Is(err, ErrInvalidURL) {
			t.Errorf("%q: error = %v, want ErrInvalidURL", raw, err)
		}
	}
}

func TestFetchRejectsForeignHost(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	cfg := testConfig("https://www.whoscored.com", "1xbet.whoscored.com")
	fetchers := map[string]Fetcher{
		"http":    NewClient(cfg, mustHeaders(t, cfg)),
		"browser": NewBrowserFetcher(cfg, mustHeaders(t, cfg)),
	}

	for name, f := range fetchers {
		t.Run(name, func(t *testing.T) {
			for _, raw := range []string{srv.URL + "/Matches/1/Live", "http://169.254.169.254/latest/meta-data"} {
				_, err := f.Fetch(context.Background(), raw)
				var fetchErr *FetchError
				if !errors.As(err, &fetchErr) {
					t.Fatalf("%q: expected FetchError, got %v", raw, err)
				}
				if !errors.Is(err, ErrForeignHost) {
					t.Errorf("%q: error = %v, want ErrForeignHost", raw, err)
				}
			}
		})
	}
	if hits != 0 {
		t.Errorf("foreign host was requested %d times", hits)
	}
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.WarmUp = false
	c := NewClient(cfg, mustHeaders(t, cfg), WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))

	_, err := c.Fetch(context.Background(), srv.URL+"/Matches/1/Live")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestFetchDecodesBrotli(t *testing.T) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	bw.Write([]byte("compressed page"))
	bw.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.WarmUp = false
	c := NewClient(cfg, mustHeaders(t, cfg))

	body, err := c.Fetch(context.Background(), srv.URL+"/Matches/1/Live")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if body != "compressed page" {
		t.Errorf("body = %q", body)
	}
}

func TestNewHeadersFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headers.yaml")
	content := "headers:\n  user-agent: from-file\n  sec-ch-ua-platform: '\"Windows\"'\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := NewHeaders(config.WhoScored{
		BaseURL:        "https://www.whoscored.com",
		HeadersFile:    path,
		AcceptLanguage: "de-DE",
	})
	if err != nil {
		t.Fatalf("NewHeaders: %v", err)
	}
	if h["User-Agent"] != "from-file" {
		t.Errorf("user agent = %q", h["User-Agent"])
	}
	if h["Sec-Ch-Ua-Platform"] != `"Windows"` {
		t.Errorf("platform = %q", h["Sec-Ch-Ua-Platform"])
	}
	if h["Accept-Language"] != "de-DE" {
		t.Errorf("accept-language = %q", h["Accept-Language"])
	}
	if h["Referer"] != "https://www.whoscored.com/" {
		t.Errorf("referer = %q", h["Referer"])
	}
}

func TestNewFetcherSelection(t *testing.T) {
	cfg := testConfig("https://www.whoscored.com")

	f, err := NewFetcher(cfg)
	if err != nil {
		t.Fatalf("NewFetcher: %v", err)
	}
	if _, ok := f.(*Client); !ok {
		t.Errorf("fetcher = %T, want *Client", f)
	}

	cfg.Browser = true
	f, err = NewFetcher(cfg)
	if err != nil {
		t.Fatalf("NewFetcher: %v", err)
	}
	if _, ok := f.(*BrowserFetcher); !ok {
		t.Errorf("fetcher = %T, want *BrowserFetcher", f)
	}

	cfg.HeadersFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := NewFetcher(cfg); err == nil {
		t.Error("expected error for missing headers file")
	}
}
