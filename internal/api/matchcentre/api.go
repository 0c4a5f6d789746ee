// Package matchcentre runs the match page pipeline: fetch, extract, build and
// normalize. Every call rebuilds from the live page.
package matchcentre

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/omarshaarawi/matchbot/internal/api/whoscored"
	"github.com/omarshaarawi/matchbot/internal/builder"
	"github.com/omarshaarawi/matchbot/internal/extract"
	"github.com/omarshaarawi/matchbot/internal/models"
	"github.com/omarshaarawi/matchbot/internal/normalize"
)

type API struct {
	fetcher   whoscored.Fetcher
	extractor *extract.Extractor
}

func NewAPI(fetcher whoscored.Fetcher, extractor *extract.Extractor) *API {
	if extractor == nil {
		extractor = extract.New()
	}
	return &API{fetcher: fetcher, extractor: extractor}
}

// GetMatch returns the match identity and both team sides.
func (a *API) GetMatch(ctx context.Context, pageURL string) (*models.Match, error) {
	m, _, err := a.load(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetNormalizedEvents returns the event table of the match in source order.
func (a *API) GetNormalizedEvents(ctx context.Context, pageURL string) ([]models.NormalizedEvent, error) {
	m, _, err := a.load(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return normalize.Match(m), nil
}

// GetMatchData returns the match and its event table from a single fetch.
func (a *API) GetMatchData(ctx context.Context, pageURL string) (*models.MatchData, error) {
	m, log, err := a.load(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	events := normalize.Match(m)
	log.Debug("Normalized events", "count", len(events))
	return &models.MatchData{Match: m, Events: events}, nil
}

func (a *API) load(ctx context.Context, pageURL string) (*models.Match, *slog.Logger, error) {
	log := slog.With("request_id", uuid.NewString(), "url", pageURL)
	start := time.Now()

	page, err := a.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		log.Error("Failed to fetch match page", "error", err)
		return nil, log, fmt.Errorf("fetching match page: %w", err)
	}

	payload, err := a.extractor.Extract(page)
	if err != nil {
		log.Error("Failed to extract match payload", "error", err, "page_bytes", len(page))
		return nil, log, fmt.Errorf("extracting match payload: %w", err)
	}

	m, err := builder.Build(payload.Blob, payload.Crumb)
	if err != nil {
		log.Error("Match payload has an unexpected shape", "error", err, "path", payload.Path)
		return nil, log, fmt.Errorf("building match: %w", err)
	}

	log.Info("Loaded match",
		"match_id", m.MatchID,
		"home", m.Home.Name,
		"away", m.Away.Name,
		"events", len(m.Events),
		"path", payload.Path,
		"elapsed", time.Since(start),
	)
	return m, log, nil
}
