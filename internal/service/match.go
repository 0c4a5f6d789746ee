package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/omarshaarawi/matchbot/internal/analytics"
	"github.com/omarshaarawi/matchbot/internal/api/matchcentre"
	"github.com/omarshaarawi/matchbot/internal/models"
	"github.com/omarshaarawi/matchbot/internal/repository/memory"
)

const maxLinks = 10

var heatShades = []rune(" ░▒▓█")

type MatchService struct {
	api  *matchcentre.API
	repo *memory.Repository
}

func NewMatchService(api *matchcentre.API, repo *memory.Repository) *MatchService {
	return &MatchService{api: api, repo: repo}
}

func (s *MatchService) GetMatchSummary(ctx context.Context, url string) (string, error) {
	data, err := s.api.GetMatchData(ctx, url)
	if err != nil {
		return "", fmt.Errorf("error fetching match: %w", err)
	}
	return formatSummary(data), nil
}

func formatSummary(data *models.MatchData) string {
	m := data.Match
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("⚽ *%s* %s *%s*\n", m.Home.Name, scoreLabel(m), m.Away.Name))
	if m.HTScore != "" {
		sb.WriteString(fmt.Sprintf("HT: %s\n", m.HTScore))
	}
	if m.League != "" {
		sb.WriteString(m.League)
		if m.Season != "" {
			sb.WriteString(fmt.Sprintf(" %s", m.Season))
		}
		if m.CompetitionStage != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", m.CompetitionStage))
		}
		sb.WriteString("\n")
	}
	if m.VenueName != "" {
		sb.WriteString(fmt.Sprintf("📍 %s\n", m.VenueName))
	}
	if m.Referee != "" {
		sb.WriteString(fmt.Sprintf("Referee: %s\n", m.Referee))
	}

	sb.WriteString("\n")
	for _, side := range []*models.TeamSide{&m.Home, &m.Away} {
		shots := analytics.Shots(data.Events, side.TeamID)
		formation := "?"
		if f, ok := side.StartingFormation(); ok {
			formation = f.Display()
		}
		sb.WriteString(fmt.Sprintf("*%s* (%s)\n", side.Name, formation))
		sb.WriteString(fmt.Sprintf("   Shots: %d  Goals: %d  xG: %.2f\n",
			len(shots.Shots)+len(shots.Goals), len(shots.Goals), shots.TotalXG))
	}

	var scorers []string
	for _, ev := range data.Events {
		if ev.Type == "Goal" && ev.PlayerName != "" {
			label := fmt.Sprintf("%s %d'", ev.PlayerName, ev.Minute+1)
			if ev.IsOwnGoal {
				label += " (OG)"
			}
			scorers = append(scorers, label)
		}
	}
	if len(scorers) > 0 {
		sb.WriteString("\n🥅 " + strings.Join(scorers, ", ") + "\n")
	}

	return sb.String()
}

func scoreLabel(m *models.Match) string {
	switch {
	case m.Score != "":
		return m.Score
	case m.FTScore != "":
		return m.FTScore
	}
	return "vs"
}

func (s *MatchService) GetLineups(ctx context.Context, url, team string) (string, error) {
	m, err := s.api.GetMatch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("error fetching match: %w", err)
	}
	side, err := analytics.ResolveTeam(m, team)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%s's Lineup*\n\n", side.Name))

	starting := make(map[int]bool)
	if f, ok := side.StartingFormation(); ok {
		sb.WriteString(fmt.Sprintf("Formation: %s\n\n", f.Display()))
		for _, id := range f.StartingPlayerIDs() {
			starting[id] = true
		}
	}
	isStarter := func(p models.Player) bool {
		if len(starting) > 0 {
			return starting[p.PlayerID]
		}
		return !p.IsSubstitute()
	}

	sb.WriteString("*Starting XI:*\n")
	for _, p := range side.Players {
		if isStarter(p) {
			sb.WriteString(playerLine(p))
		}
	}
	sb.WriteString("\n*Bench:*\n")
	for _, p := range side.Players {
		if !isStarter(p) {
			sb.WriteString(playerLine(p))
		}
	}

	return sb.String(), nil
}

func playerLine(p models.Player) string {
	shirt := "-"
	if p.ShirtNo != nil {
		shirt = strconv.Itoa(*p.ShirtNo)
	}
	line := fmt.Sprintf("▫️ %s %s", shirt, p.Name)
	if p.Position != "" && p.Position != "Sub" {
		line += fmt.Sprintf(" (%s)", p.Position)
	}
	if p.Rating > 0 {
		line += fmt.Sprintf(" - %.1f", p.Rating)
	}
	if p.IsManOfTheMatch {
		line += " ⭐"
	}
	return line + "\n"
}

func (s *MatchService) GetShotMap(ctx context.Context, url, team string) (string, error) {
	data, side, err := s.teamData(ctx, url, team)
	if err != nil {
		return "", err
	}

	shots := analytics.Shots(data.Events, side.TeamID)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎯 *%s Shots*\n", side.Name))
	sb.WriteString(fmt.Sprintf("%d shots, %d goals, %.2f xG\n\n",
		len(shots.Shots)+len(shots.Goals), len(shots.Goals), shots.TotalXG))

	for _, g := range shots.Goals {
		sb.WriteString("⚽ " + shotLine(g))
	}
	for _, sh := range shots.Shots {
		sb.WriteString("▫️ " + shotLine(sh))
	}

	return sb.String(), nil
}

func shotLine(p models.ShotPoint) string {
	line := fmt.Sprintf("%d' %s (%.0f, %.0f)", p.Minute+1, p.PlayerName, p.X, p.Y)
	if p.XG > 0 {
		line += fmt.Sprintf(" xG %.2f", p.XG)
	}
	var tags []string
	if p.BodyType != "" {
		tags = append(tags, p.BodyType)
	}
	if p.Situation != "" {
		tags = append(tags, p.Situation)
	}
	if len(tags) > 0 {
		line += " [" + strings.Join(tags, ", ") + "]"
	}
	return line + "\n"
}

func (s *MatchService) GetPassNetwork(ctx context.Context, url, team string) (string, error) {
	data, side, err := s.teamData(ctx, url, team)
	if err != nil {
		return "", err
	}

	network := analytics.PassNetwork(data.Match, data.Events, side)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🕸 *%s Pass Network*\n\n", side.Name))
	if len(network.Links) == 0 {
		sb.WriteString("No completed passes with a known recipient.")
		return sb.String(), nil
	}

	names := make(map[int]string, len(network.Nodes))
	sb.WriteString("*Average positions:*\n")
	for _, n := range network.Nodes {
		names[n.PlayerID] = n.Name
		sb.WriteString(fmt.Sprintf("▫️ %s (%.0f, %.0f) - %d passes\n", n.Name, n.X, n.Y, n.Passes))
	}

	sb.WriteString("\n*Top combinations:*\n")
	for i, l := range network.Links {
		if i == maxLinks {
			break
		}
		sb.WriteString(fmt.Sprintf("%s → %s: %d\n", names[l.Source], nameOr(names, l.Target, data.Match), l.Count))
	}

	return sb.String(), nil
}

func nameOr(names map[int]string, id int, m *models.Match) string {
	if n, ok := names[id]; ok {
		return n
	}
	if n, ok := m.PlayerNames[id]; ok {
		return n
	}
	return strconv.Itoa(id)
}

func (s *MatchService) GetBoxPasses(ctx context.Context, url, team string) (string, error) {
	data, side, err := s.teamData(ctx, url, team)
	if err != nil {
		return "", err
	}

	passes := analytics.BoxPasses(data.Events, side.TeamID)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📦 *%s Passes Into the Box*: %d\n\n", side.Name, len(passes)))

	counts := make(map[string]int)
	for _, p := range passes {
		counts[p.PlayerName]++
	}
	type row struct {
		name  string
		count int
	}
	rows := make([]row, 0, len(counts))
	for name, n := range counts {
		rows = append(rows, row{name, n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].name < rows[j].name
	})
	for _, r := range rows {
		name := r.name
		if name == "" {
			name = "Unknown"
		}
		sb.WriteString(fmt.Sprintf("▫️ %s: %d\n", name, r.count))
	}

	return sb.String(), nil
}

func (s *MatchService) GetHeatmap(ctx context.Context, url, player string) (string, error) {
	data, err := s.api.GetMatchData(ctx, url)
	if err != nil {
		return "", fmt.Errorf("error fetching match: %w", err)
	}
	p, side, err := analytics.ResolvePlayer(data.Match, player)
	if err != nil {
		return "", err
	}

	h := analytics.Heatmap(data.Events, strconv.Itoa(p.PlayerID), p.Name)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔥 *%s* (%s) - %d touches\n", p.Name, side.Name, len(h.Points)))
	sb.WriteString("Attacking left to right\n```\n")
	sb.WriteString(renderGrid(h))
	sb.WriteString("```")

	return sb.String(), nil
}

func renderGrid(h models.Heatmap) string {
	peak := 0
	for _, row := range h.Bins {
		for _, n := range row {
			peak = max(peak, n)
		}
	}

	var sb strings.Builder
	for r := len(h.Bins) - 1; r >= 0; r-- {
		sb.WriteRune('|')
		for _, n := range h.Bins[r] {
			shade := 0
			if peak > 0 && n > 0 {
				shade = 1 + n*(len(heatShades)-2)/peak
			}
			sb.WriteRune(heatShades[shade])
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}

// GetDefensiveLine reports a team's defensive actions. query is the team,
// optionally followed by a player of that team to narrow the report to.
func (s *MatchService) GetDefensiveLine(ctx context.Context, url, query string) (string, error) {
	data, err := s.api.GetMatchData(ctx, url)
	if err != nil {
		return "", fmt.Errorf("error fetching match: %w", err)
	}
	team, player := analytics.SplitTeamQuery(data.Match, query)
	side, err := analytics.ResolveTeam(data.Match, team)
	if err != nil {
		return "", err
	}

	playerID := ""
	subject := side.Name
	if player != "" {
		p, owner, err := analytics.ResolvePlayer(data.Match, player)
		if err != nil {
			return "", err
		}
		if owner.TeamID != side.TeamID {
			return "", fmt.Errorf("%s does not play for %s", p.Name, side.Name)
		}
		playerID = strconv.Itoa(p.PlayerID)
		subject = fmt.Sprintf("%s (%s)", p.Name, side.Name)
	}

	line := analytics.DefensiveLine(data.Events, side.TeamID, playerID)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛡 *%s Defensive Actions*\n", subject))
	if len(line.Actions) == 0 {
		sb.WriteString("No defensive actions recorded.")
		return sb.String(), nil
	}
	sb.WriteString(fmt.Sprintf("%d actions, average height %.1f\n\n", len(line.Actions), line.AverageX))

	byType := make(map[string][2]int)
	for _, a := range line.Actions {
		c := byType[a.Type]
		c[0]++
		if a.Won {
			c[1]++
		}
		byType[a.Type] = c
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		c := byType[t]
		sb.WriteString(fmt.Sprintf("▫️ %s: %d (%d won)\n", t, c[0], c[1]))
	}

	return sb.String(), nil
}

func (s *MatchService) teamData(ctx context.Context, url, team string) (*models.MatchData, *models.TeamSide, error) {
	data, err := s.api.GetMatchData(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching match: %w", err)
	}
	side, err := analytics.ResolveTeam(data.Match, team)
	if err != nil {
		return nil, nil, err
	}
	return data, side, nil
}

func (s *MatchService) Watch(ctx context.Context, url string) (string, error) {
	m, err := s.api.GetMatch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("error fetching match: %w", err)
	}

	s.repo.Watch(models.WatchEntry{
		URL:     url,
		MatchID: m.MatchID,
		Title:   fmt.Sprintf("%s vs %s", m.Home.Name, m.Away.Name),
		Score:   m.Score,
	})
	slog.Info("Watching match", "url", url, "match_id", m.MatchID)

	return fmt.Sprintf("👀 Watching *%s vs %s* (%s)", m.Home.Name, m.Away.Name, scoreLabel(m)), nil
}

func (s *MatchService) Unwatch(url string) string {
	if !s.repo.Unwatch(url) {
		return "That match is not on the watch list."
	}
	return "Stopped watching that match."
}

func (s *MatchService) GetWatching() string {
	entries := s.repo.Watched()
	if len(entries) == 0 {
		return "No matches are being watched."
	}

	var sb strings.Builder
	sb.WriteString("👀 *Watch List*\n\n")
	for _, e := range entries {
		score := e.Score
		if score == "" {
			score = "vs"
		}
		sb.WriteString(fmt.Sprintf("▫️ %s (%s)\n%s\n", e.Title, score, e.URL))
	}
	return sb.String()
}

// CheckWatched re-fetches every watched match and returns a summary for each
// one whose score changed since the last check.
func (s *MatchService) CheckWatched(ctx context.Context) []string {
	var reports []string
	for _, e := range s.repo.Watched() {
		data, err := s.api.GetMatchData(ctx, e.URL)
		if err != nil {
			slog.Error("Failed to refresh watched match", "url", e.URL, "error", err)
			continue
		}
		if !s.repo.UpdateScore(e.URL, data.Match.Score) {
			continue
		}
		slog.Info("Score changed", "url", e.URL, "from", e.Score, "to", data.Match.Score)
		reports = append(reports, "🔔 Score update\n"+formatSummary(data))
	}
	return reports
}
