package analytics

import (
	"testing"

	"github.com/omarshaarawi/matchbot/internal/models"
)

func fptr(f float64) *float64 { return &f }

func iptr(i int) *int { return &i }

func testMatch() *models.Match {
	return &models.Match{
		MatchIdentity: models.MatchIdentity{MatchID: 1},
		Home: models.TeamSide{
			Side: models.SideHome, TeamID: 13, Name: "Arsenal",
			Players: []models.Player{
				{PlayerID: 10, Name: "Bukayo Saka", ShirtNo: iptr(7)},
				{PlayerID: 11, Name: "Martin Odegaard", ShirtNo: iptr(8)},
				{PlayerID: 12, Name: "Declan Rice", ShirtNo: iptr(41)},
			},
		},
		Away: models.TeamSide{
			Side: models.SideAway, TeamID: 23, Name: "Newcastle United",
			Players: []models.Player{{PlayerID: 20, Name: "Bruno Guimaraes"}},
		},
		PlayerNames: map[int]string{10: "Bukayo Saka", 11: "Martin Odegaard", 12: "Declan Rice", 20: "Bruno Guimaraes"},
	}
}

func pass(team int, player string, x, y float64, ok bool) models.NormalizedEvent {
	outcome := "Unsuccessful"
	if ok {
		outcome = "Successful"
	}
	return models.NormalizedEvent{Type: "Pass", OutcomeType: outcome, TeamID: team, PlayerID: player, X: fptr(x), Y: fptr(y)}
}

func TestResolveTeam(t *testing.T) {
	m := testMatch()
	tests := []struct {
		query string
		want  int
		err   bool
	}{
		{"home", 13, false},
		{"AWAY", 23, false},
		{"arsenl", 13, false},
		{"newcastle", 23, false},
		{"Chelsea", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			side, err := ResolveTeam(m, tt.query)
			if tt.err {
				if err == nil {
					t.Errorf("expected error, got %q", side.Name)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveTeam: %v", err)
			}
			if side.TeamID != tt.want {
				t.Errorf("team = %d, want %d", side.TeamID, tt.want)
			}
		})
	}
}

func TestSplitTeamQuery(t *testing.T) {
	m := testMatch()
	tests := []struct {
		in     string
		team   string
		player string
	}{
		{"Newcastle United Bruno", "Newcastle United", "Bruno"},
		{"newcastle united", "newcastle united", ""},
		{"Arsenal Declan Rice", "Arsenal", "Declan Rice"},
		{"away bruno", "away", "bruno"},
		{"a", "a", ""},
		{"arsenl saka", "arsenl", "saka"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			team, player := SplitTeamQuery(m, tt.in)
			if team != tt.team || player != tt.player {
				t.Errorf("got %q %q, want %q %q", team, player, tt.team, tt.player)
			}
		})
	}
}

func TestResolvePlayer(t *testing.T) {
	m := testMatch()

	p, side, err := ResolvePlayer(m, "saka")
	if err != nil || p.PlayerID != 10 || side.TeamID != 13 {
		t.Errorf("saka = %+v %v", p, err)
	}

	p, side, err = ResolvePlayer(m, "Bruno Guimarães")
	if err != nil || p.PlayerID != 20 || side.TeamID != 23 {
		t.Errorf("accented query = %+v %v", p, err)
	}

	if _, _, err := ResolvePlayer(m, "Haaland"); err == nil {
		t.Error("expected not found")
	}
}

func TestPassNetwork(t *testing.T) {
	m := testMatch()
	events := []models.NormalizedEvent{
		pass(13, "10", 40, 20, true),
		pass(13, "11", 50, 50, true),
		pass(23, "20", 60, 60, true),
		pass(13, "10", 60, 40, true),
		pass(13, "11", 70, 50, true),
		pass(13, "11", 80, 50, true), // next same-team event is 11 again: self pass
		pass(13, "11", 30, 50, false),
		pass(13, "12", 20, 30, true),
	}

	net := PassNetwork(m, events, &m.Home)

	for _, l := range net.Links {
		if l.Source == l.Target {
			t.Fatalf("self loop %+v", l)
		}
	}
	if len(net.Links) == 0 || net.Links[0] != (models.PassNetworkLink{Source: 10, Target: 11, Count: 2}) {
		t.Errorf("links = %+v", net.Links)
	}

	var saka *models.PassNetworkNode
	for i := range net.Nodes {
		if net.Nodes[i].PlayerID == 10 {
			saka = &net.Nodes[i]
		}
	}
	if saka == nil {
		t.Fatalf("nodes = %+v", net.Nodes)
	}
	if saka.X != 50 || saka.Y != 30 || saka.Passes != 2 {
		t.Errorf("saka node = %+v", *saka)
	}
	if saka.ShirtNo == nil || *saka.ShirtNo != 7 {
		t.Errorf("shirt = %v", saka.ShirtNo)
	}
	if events[0].PassRecipientID != "" {
		t.Error("input events were mutated")
	}
}

func TestBoxPasses(t *testing.T) {
	mk := func(endX, endY float64, ok bool) models.NormalizedEvent {
		ev := pass(13, "10", 70, 50, ok)
		ev.EndX, ev.EndY = fptr(endX), fptr(endY)
		return ev
	}
	events := []models.NormalizedEvent{
		mk(90, 50, true),
		mk(85, 18, true),
		mk(84.9, 50, true),
		mk(95, 83, true),
		mk(95, 50, false),
	}

	got := BoxPasses(events, 13)
	if len(got) != 2 {
		t.Fatalf("box passes = %+v", got)
	}
	if got[1].EndX != 85 || got[1].EndY != 18 {
		t.Errorf("edge of box = %+v", got[1])
	}
}

func TestShots(t *testing.T) {
	events := []models.NormalizedEvent{
		{Type: "Goal", TeamID: 13, IsShot: true, IsGoal: true, X: fptr(90), Y: fptr(50), ExpectedGoals: fptr(0.4)},
		{Type: "SavedShot", TeamID: 13, IsShot: true, X: fptr(80), Y: fptr(40), ExpectedGoals: fptr(0.1)},
		{Type: "Goal", TeamID: 13, IsShot: true, IsGoal: true, IsOwnGoal: true, X: fptr(5), Y: fptr(50)},
		{Type: "MissedShots", TeamID: 23, IsShot: true, X: fptr(88), Y: fptr(45)},
		{Type: "Pass", TeamID: 13},
	}

	got := Shots(events, 13)
	if len(got.Goals) != 1 || len(got.Shots) != 1 {
		t.Fatalf("shots = %+v", got)
	}
	if got.TotalXG < 0.49 || got.TotalXG > 0.51 {
		t.Errorf("xG = %v", got.TotalXG)
	}
}

func TestHeatmap(t *testing.T) {
	events := []models.NormalizedEvent{
		{PlayerID: "10", IsTouch: true, X: fptr(0), Y: fptr(0)},
		{PlayerID: "10", IsTouch: true, X: fptr(100), Y: fptr(100)},
		{PlayerID: "10", IsTouch: true, X: fptr(50), Y: fptr(50)},
		{PlayerID: "10", IsTouch: false, X: fptr(50), Y: fptr(50)},
		{PlayerID: "11", IsTouch: true, X: fptr(50), Y: fptr(50)},
		{PlayerID: "10", IsTouch: true},
	}

	h := Heatmap(events, "10", "Bukayo Saka")
	if len(h.Points) != 3 {
		t.Fatalf("points = %d", len(h.Points))
	}
	if h.Bins[0][0] != 1 || h.Bins[HeatmapRows-1][HeatmapColumns-1] != 1 || h.Bins[4][6] != 1 {
		t.Errorf("bins = %v", h.Bins)
	}
}

func TestDefensiveLine(t *testing.T) {
	events := []models.NormalizedEvent{
		{Type: "Tackle", OutcomeType: "Successful", TeamID: 13, PlayerID: "12", PlayerName: "Declan Rice", X: fptr(30), Y: fptr(40)},
		{Type: "Interception", TeamID: 13, PlayerID: "11", X: fptr(50), Y: fptr(40)},
		{Type: "Pass", TeamID: 13, PlayerID: "12", X: fptr(90), Y: fptr(40)},
		{Type: "Clearance", TeamID: 23, PlayerID: "20", X: fptr(10), Y: fptr(40)},
	}

	team := DefensiveLine(events, 13, "")
	if len(team.Actions) != 2 || team.AverageX != 40 {
		t.Errorf("team line = %+v", team)
	}

	rice := DefensiveLine(events, 13, "12")
	if len(rice.Actions) != 1 || rice.PlayerName != "Declan Rice" || !rice.Actions[0].Won {
		t.Errorf("player line = %+v", rice)
	}
}
