package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	jsoniter "github.com/json-iterator/go"
)

const (
	// MatchIDKey is the primary anchor token of the payload region.
	MatchIDKey = "matchId"
	// MatchCentreDataKey confirms a region carries the full match payload.
	MatchCentreDataKey = "matchCentreData"

	PathStrict    = "strict"
	PathHeuristic = "heuristic"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Blob is the untyped match payload: the match centre data merged with the
// other top-level keys of the embedded object.
type Blob map[string]any

// Crumb is the raw navigation trail found on the page. Flat is set when the
// nav had no link and Trail is its whole text, region first.
type Crumb struct {
	Region string
	Trail  string
	Flat   bool
}

type Payload struct {
	Blob  Blob
	Crumb *Crumb
	Path  string
}

// Fallback parses a script region that failed the strict path. It is a
// best-effort capability tied to the upstream template's formatting.
type Fallback interface {
	Parse(region string) (Blob, error)
}

type Extractor struct {
	fallback Fallback
}

func New() *Extractor {
	return &Extractor{fallback: NewSplitFallback(DefaultSplitRun)}
}

// NewWithFallback builds an extractor with a custom fallback; nil disables
// the second tier.
func NewWithFallback(fallback Fallback) *Extractor {
	return &Extractor{fallback: fallback}
}

func (e *Extractor) Extract(page string) (*Payload, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		extractions.WithLabelValues("failed").Inc()
		return nil, &ExtractionError{Err: fmt.Errorf("parsing markup: %w", err)}
	}

	region, err := selectRegion(doc)
	if err != nil {
		extractions.WithLabelValues("failed").Inc()
		return nil, &ExtractionError{Err: err}
	}

	blob, path, err := e.parseRegion(region)
	if err != nil {
		extractions.WithLabelValues("failed").Inc()
		return nil, err
	}
	extractions.WithLabelValues(path).Inc()

	payload := &Payload{Blob: blob, Path: path}
	if crumb, ok := findCrumb(doc); ok {
		payload.Crumb = &crumb
	}
	return payload, nil
}

// selectRegion picks the first script whose text carries both anchors. A
// lone script with only the primary anchor is accepted; several such scripts
// without the confirming anchor are ambiguous.
func selectRegion(doc *goquery.Document) (string, error) {
	var candidates []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if strings.Contains(text, MatchIDKey) {
			candidates = append(candidates, text)
		}
	})

	if len(candidates) == 0 {
		return "", ErrNoPayloadRegion
	}
	for _, c := range candidates {
		if strings.Contains(c, MatchCentreDataKey) {
			return c, nil
		}
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	return "", ErrAmbiguousRegion
}

func (e *Extractor) parseRegion(region string) (Blob, string, error) {
	blob, strictErr := ParseStrict(region)
	if strictErr == nil {
		return blob, PathStrict, nil
	}

	if e.fallback == nil {
		return nil, "", &ExtractionError{Err: fmt.Errorf("%w: %v", ErrPayloadUnusable, strictErr)}
	}

	slog.Debug("Strict payload parse failed, using fallback", "error", strictErr)
	blob, err := e.fallback.Parse(region)
	if err != nil {
		return nil, "", &ExtractionError{Err: fmt.Errorf("%w: %w", ErrPayloadUnusable, errors.Join(strictErr, err))}
	}
	return blob, PathHeuristic, nil
}

// ParseStrict isolates the object introduced before the match id anchor,
// cleans it and parses it as JSON.
func ParseStrict(region string) (Blob, error) {
	anchor := strings.Index(region, MatchIDKey)
	if anchor < 0 {
		return nil, ErrNoPayloadRegion
	}

	open := payloadOpen(region, anchor)
	if open < 0 {
		return nil, ErrNoPayloadObject
	}
	end := matchingBrace(region, open)
	if end < 0 {
		end = strings.LastIndex(region, "}")
	}
	if end <= open {
		return nil, ErrNoPayloadObject
	}

	var raw map[string]any
	if err := json.UnmarshalFromString(Clean(region[open:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("decoding payload object: %w", err)
	}

	blob := flatten(raw)
	if _, ok := blob[MatchIDKey]; !ok {
		return nil, ErrMissingAnchorKey
	}
	return blob, nil
}

// payloadOpen finds the brace opening the payload: the first one after the
// last assignment preceding the anchor, or failing that the nearest one
// before it.
func payloadOpen(region string, anchor int) int {
	head := region[:anchor]
	if eq := strings.LastIndex(head, "="); eq >= 0 {
		if i := strings.Index(head[eq:], "{"); i >= 0 {
			return eq + i
		}
	}
	return strings.LastIndex(head, "{")
}

// flatten lifts the match centre data to the top level; every other key of
// the payload is merged over it.
func flatten(raw map[string]any) Blob {
	blob := Blob{}
	if mcd, ok := raw[MatchCentreDataKey].(map[string]any); ok {
		for k, v := range mcd {
			blob[k] = v
		}
	}
	for k, v := range raw {
		if k == MatchCentreDataKey {
			continue
		}
		blob[k] = v
	}
	return blob
}

func findCrumb(doc *goquery.Document) (Crumb, bool) {
	nav := doc.Find("#breadcrumb-nav").First()
	if nav.Length() == 0 {
		return Crumb{}, false
	}

	region := strings.TrimSpace(nav.Find("span").First().Text())
	trail := strings.TrimSpace(nav.Find("a").First().Text())
	if trail == "" {
		return Crumb{Trail: strings.Join(strings.Fields(nav.Text()), " "), Flat: true}, true
	}
	return Crumb{Region: region, Trail: trail}, true
}
