package extract

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// DefaultSplitRun is the whitespace run length that follows each top-level
// comma in the upstream template's serialization of the payload object.
const DefaultSplitRun = 6

// SplitFallback splits the region into "key: value" segments on a comma
// followed by a long whitespace run and parses each value on its own.
// Segments that fail to parse are dropped.
type SplitFallback struct {
	sep *regexp.Regexp
}

func NewSplitFallback(minRun int) *SplitFallback {
	if minRun < 1 {
		minRun = DefaultSplitRun
	}
	return &SplitFallback{sep: regexp.MustCompile(fmt.Sprintf(`,\s{%d,}`, minRun))}
}

func (f *SplitFallback) Parse(region string) (Blob, error) {
	start := strings.Index(region, MatchIDKey)
	end := strings.LastIndex(region, "}")
	if start < 0 || end <= start {
		return nil, ErrNoPayloadObject
	}

	pairs := make(map[string]any)
	for _, segment := range f.sep.Split(region[start:end], -1) {
		segment = strings.TrimSpace(segment)
		colon := strings.Index(segment, ":")
		if colon <= 0 {
			continue
		}

		key := strings.Trim(strings.TrimSpace(segment[:colon]), `"'`)
		value := strings.TrimRight(strings.TrimSpace(segment[colon+1:]), ";")

		var v any
		if err := json.UnmarshalFromString(Clean(value), &v); err != nil {
			slog.Debug("Dropping unparsable payload segment", "key", key, "error", err)
			continue
		}
		pairs[key] = v
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("no payload segment could be parsed")
	}

	blob := flatten(pairs)
	if _, ok := blob[MatchIDKey]; !ok {
		return nil, ErrMissingAnchorKey
	}
	return blob, nil
}
