package whoscored

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// readBody reads the response body, decoding it according to
// Content-Encoding. The transport has compression disabled because the
// header profile advertises br and zstd.
func readBody(resp *http.Response) ([]byte, error) {
	enc := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch {
	case strings.Contains(enc, "br"):
		return io.ReadAll(brotli.NewReader(resp.Body))
	case strings.Contains(enc, "zstd"):
		r, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case strings.Contains(enc, "gzip"):
		r, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer r.Close()
		return io.ReadAll(r)
	default:
		return io.ReadAll(resp.Body)
	}
}
