package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/omarshaarawi/matchbot/internal/models"
)

const (
	teamThreshold   = 0.6
	playerThreshold = 0.7
)

// ResolveTeam picks a side by the keywords "home"/"away" or by the closest
// team name.
func ResolveTeam(m *models.Match, query string) (*models.TeamSide, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	switch q {
	case "home", "h":
		return &m.Home, nil
	case "away", "a":
		return &m.Away, nil
	case "":
		return nil, fmt.Errorf("team not given")
	}

	var best *models.TeamSide
	bestScore := -1.0
	for _, side := range []*models.TeamSide{&m.Home, &m.Away} {
		name := strings.ToLower(side.Name)
		score := similarity(q, name)
		if strings.Contains(name, q) {
			score = 1
		}
		if score > teamThreshold && score > bestScore {
			best, bestScore = side, score
		}
	}

	if best == nil {
		return nil, fmt.Errorf("team not found: %s", query)
	}
	return best, nil
}

// SplitTeamQuery splits "<team> [player]" where the team name may span
// several words. The longest leading run of words that is a side keyword or
// part of a side's name is the team; without one the first word is.
func SplitTeamQuery(m *models.Match, text string) (team, rest string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return "", ""
	}
	for n := len(words); n > 0; n-- {
		prefix := strings.ToLower(strings.Join(words[:n], " "))
		if n == 1 && isSideKeyword(prefix) {
			break
		}
		if strings.Contains(strings.ToLower(m.Home.Name), prefix) || strings.Contains(strings.ToLower(m.Away.Name), prefix) {
			return strings.Join(words[:n], " "), strings.Join(words[n:], " ")
		}
	}
	return words[0], strings.Join(words[1:], " ")
}

func isSideKeyword(s string) bool {
	switch s {
	case "home", "h", "away", "a":
		return true
	}
	return false
}

// ResolvePlayer finds a player on either roster. Names containing the query
// as an in-order subsequence win; otherwise the closest full name above the
// similarity threshold is used.
func ResolvePlayer(m *models.Match, query string) (models.Player, *models.TeamSide, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Player{}, nil, fmt.Errorf("player not given")
	}

	type candidate struct {
		player models.Player
		side   *models.TeamSide
	}
	var candidates []candidate
	var names []string
	for _, side := range []*models.TeamSide{&m.Home, &m.Away} {
		for _, p := range side.Players {
			candidates = append(candidates, candidate{player: p, side: side})
			names = append(names, p.Name)
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		c := candidates[ranks[0].OriginalIndex]
		return c.player, c.side, nil
	}

	bestIdx, bestScore := -1, -1.0
	q := strings.ToLower(query)
	for i, name := range names {
		score := similarity(q, strings.ToLower(name))
		if score > playerThreshold && score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		return models.Player{}, nil, fmt.Errorf("player not found: %s", query)
	}
	c := candidates[bestIdx]
	return c.player, c.side, nil
}

func similarity(a, b string) float64 {
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 0
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(distance)/float64(maxLen)
}

// displayName prefers the roster name, then the event dictionary, then the id.
func displayName(m *models.Match, side *models.TeamSide, playerID int) string {
	if side != nil {
		if p, ok := side.Player(playerID); ok && p.Name != "" {
			return p.Name
		}
	}
	if name, ok := m.PlayerNames[playerID]; ok {
		return name
	}
	return fmt.Sprintf("%d", playerID)
}
