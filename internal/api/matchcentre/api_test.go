package matchcentre

import (
	"context"
	"errors"
	"testing"

	"github.com/omarshaarawi/matchbot/internal/api/whoscored"
	"github.com/omarshaarawi/matchbot/internal/builder"
	"github.com/omarshaarawi/matchbot/internal/extract"
)

const matchPage = `<html><head><script>
    require.config.params["args"] = {
            matchId: 1729462,
            matchCentreData: {"score": "2 : 1", "playerIdNameDictionary": {"10": "Bukayo Saka", "20": "Bruno Guimaraes"}, "home": {"teamId": 13, "name": "Arsenal", "players": [{"playerId": 10, "name": "Bukayo Saka", "shirtNo": 7}], "formations": []}, "away": {"teamId": 23, "name": "Newcastle", "players": [{"playerId": 20, "name": "Bruno Guimaraes"}], "formations": []}, "events": [{"id": 1, "teamId": 13, "playerId": 10, "type": {"value": 1, "displayName": "Pass"}, "outcomeType": {"value": 1, "displayName": "Successful"}}, {"id": 2, "teamId": 23, "playerId": 20, "type": {"value": 16, "displayName": "Goal"}, "isShot": true, "isGoal": true, "qualifiers": [{"type": {"value": 72, "displayName": "LeftFoot"}}]}]},
            matchCentreEventTypeJson: {"goalNormal": 9},
            formationIdNameMappings: {}
        };
</script></head><body>
<div id="breadcrumb-nav"><span>England</span><a>Premier League - 2023/2024</a></div>
</body></html>`

type fakeFetcher struct {
	page  string
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.page, f.err
}

func TestGetMatchData(t *testing.T) {
	fetcher := &fakeFetcher{page: matchPage}
	api := NewAPI(fetcher, nil)

	data, err := api.GetMatchData(context.Background(), "https://www.whoscored.com/Matches/1729462/Live")
	if err != nil {
		t.Fatalf("GetMatchData: %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetches = %d, want 1", fetcher.calls)
	}

	m := data.Match
	if m.MatchID != 1729462 || m.Home.Name != "Arsenal" || m.Away.Name != "Newcastle" {
		t.Errorf("match = %d %q %q", m.MatchID, m.Home.Name, m.Away.Name)
	}
	if m.League != "Premier League" || m.CompetitionType != builder.CompetitionLeague {
		t.Errorf("breadcrumb = %q %q", m.League, m.CompetitionType)
	}

	if len(data.Events) != 2 {
		t.Fatalf("events = %d", len(data.Events))
	}
	goal := data.Events[1]
	if goal.Side != "a" || goal.PlayerName != "Bruno Guimaraes" || !goal.IsGoal || goal.ShotBodyType != "LeftFoot" {
		t.Errorf("goal = %+v", goal)
	}
}

func TestGetMatchAndEvents(t *testing.T) {
	api := NewAPI(&fakeFetcher{page: matchPage}, extract.New())

	m, err := api.GetMatch(context.Background(), "u")
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if len(m.Home.Players) != 1 {
		t.Errorf("home players = %d", len(m.Home.Players))
	}

	events, err := api.GetNormalizedEvents(context.Background(), "u")
	if err != nil {
		t.Fatalf("GetNormalizedEvents: %v", err)
	}
	if events[0].Type != "Pass" || events[0].Side != "h" {
		t.Errorf("first event = %+v", events[0])
	}
}

func TestErrorKindsPropagate(t *testing.T) {
	fetchErr := &whoscored.FetchError{URL: "u", StatusCode: 403}

	tests := []struct {
		name    string
		fetcher *fakeFetcher
		check   func(error) bool
	}{
		{
			name:    "fetch",
			fetcher: &fakeFetcher{err: fetchErr},
			check: func(err error) bool {
				var target *whoscored.FetchError
				return errors.As(err, &target) && target.StatusCode == 403
			},
		},
		{
			name:    "extraction",
			fetcher: &fakeFetcher{page: "<html><body>nothing here</body></html>"},
			check: func(err error) bool {
				var target *extract.ExtractionError
				return errors.As(err, &target)
			},
		},
		{
			name:    "schema",
			fetcher: &fakeFetcher{page: `<script>var a = {matchId: 5, matchCentreData: {"home": {"teamId": 1}}};</script>`},
			check: func(err error) bool {
				var target *builder.SchemaError
				return errors.As(err, &target) && target.Field == "away"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAPI(tt.fetcher, nil).GetMatchData(context.Background(), "u")
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error kind: %v", err)
			}
		})
	}
}
