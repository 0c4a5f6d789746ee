// Package analytics derives report data from a match and its event table.
// Coordinates stay in the source [0,100] pitch space.
package analytics

import (
	"sort"
	"strconv"

	"github.com/omarshaarawi/matchbot/internal/models"
	"github.com/omarshaarawi/matchbot/internal/normalize"
)

const (
	HeatmapColumns = 12
	HeatmapRows    = 8

	boxMinX = 85.0
	boxMinY = 18.0
	boxMaxY = 82.0
)

var defensiveTypes = map[string]bool{
	"Tackle":       true,
	"Interception": true,
	"BallRecovery": true,
	"BlockedPass":  true,
	"Clearance":    true,
	"Aerial":       true,
	"Challenge":    true,
	"Foul":         true,
	"Save":         true,
}

// PassNetwork links each passer to the inferred recipient of their successful
// passes. Nodes sit at the passer's mean pass origin; self passes never form
// an edge.
func PassNetwork(m *models.Match, events []models.NormalizedEvent, side *models.TeamSide) models.PassNetwork {
	rows := make([]models.NormalizedEvent, len(events))
	copy(rows, events)
	normalize.InferPassRecipients(rows)

	type acc struct {
		sumX, sumY float64
		located    int
		passes     int
	}
	byPlayer := make(map[int]*acc)
	type edge struct{ src, dst int }
	counts := make(map[edge]int)

	for _, ev := range rows {
		if ev.TeamID != side.TeamID || ev.Type != "Pass" || !ev.Successful() || ev.PassRecipientID == "" {
			continue
		}
		src, err := strconv.Atoi(ev.PlayerID)
		if err != nil {
			continue
		}
		dst, err := strconv.Atoi(ev.PassRecipientID)
		if err != nil || dst == src {
			continue
		}

		a := byPlayer[src]
		if a == nil {
			a = &acc{}
			byPlayer[src] = a
		}
		a.passes++
		if ev.X != nil && ev.Y != nil {
			a.sumX += *ev.X
			a.sumY += *ev.Y
			a.located++
		}
		counts[edge{src, dst}]++
	}

	network := models.PassNetwork{
		TeamID:   side.TeamID,
		TeamName: side.Name,
		Nodes:    make([]models.PassNetworkNode, 0, len(byPlayer)),
		Links:    make([]models.PassNetworkLink, 0, len(counts)),
	}

	for id, a := range byPlayer {
		node := models.PassNetworkNode{
			PlayerID: id,
			Name:     displayName(m, side, id),
			Passes:   a.passes,
		}
		if p, ok := side.Player(id); ok {
			node.ShirtNo = p.ShirtNo
		}
		if a.located > 0 {
			node.X = a.sumX / float64(a.located)
			node.Y = a.sumY / float64(a.located)
		}
		network.Nodes = append(network.Nodes, node)
	}
	sort.Slice(network.Nodes, func(i, j int) bool {
		if network.Nodes[i].Passes != network.Nodes[j].Passes {
			return network.Nodes[i].Passes > network.Nodes[j].Passes
		}
		return network.Nodes[i].PlayerID < network.Nodes[j].PlayerID
	})

	for e, n := range counts {
		network.Links = append(network.Links, models.PassNetworkLink{Source: e.src, Target: e.dst, Count: n})
	}
	sort.Slice(network.Links, func(i, j int) bool {
		li, lj := network.Links[i], network.Links[j]
		if li.Count != lj.Count {
			return li.Count > lj.Count
		}
		if li.Source != lj.Source {
			return li.Source < lj.Source
		}
		return li.Target < lj.Target
	})

	return network
}

// BoxPasses returns the team's successful passes that end inside the
// penalty area.
func BoxPasses(events []models.NormalizedEvent, teamID int) []models.BoxPass {
	var out []models.BoxPass
	for _, ev := range events {
		if ev.TeamID != teamID || ev.Type != "Pass" || !ev.Successful() {
			continue
		}
		if ev.X == nil || ev.Y == nil || ev.EndX == nil || ev.EndY == nil {
			continue
		}
		if *ev.EndX < boxMinX || *ev.EndY < boxMinY || *ev.EndY > boxMaxY {
			continue
		}
		out = append(out, models.BoxPass{
			PlayerName: ev.PlayerName,
			Minute:     ev.Minute,
			X:          *ev.X,
			Y:          *ev.Y,
			EndX:       *ev.EndX,
			EndY:       *ev.EndY,
		})
	}
	return out
}

// Shots splits the team's attempts into goals and other shots. Own goals are
// left out.
func Shots(events []models.NormalizedEvent, teamID int) models.ShotMap {
	shots := models.ShotMap{TeamID: teamID, Goals: []models.ShotPoint{}, Shots: []models.ShotPoint{}}
	for _, ev := range events {
		if ev.TeamID != teamID || ev.IsOwnGoal {
			continue
		}
		isGoal := ev.Type == "Goal"
		if !isGoal && !ev.IsShot {
			continue
		}

		pt := models.ShotPoint{
			PlayerName: ev.PlayerName,
			Minute:     ev.Minute,
			BodyType:   ev.ShotBodyType,
			Situation:  ev.Situation,
		}
		if ev.X != nil {
			pt.X = *ev.X
		}
		if ev.Y != nil {
			pt.Y = *ev.Y
		}
		if ev.ExpectedGoals != nil {
			pt.XG = *ev.ExpectedGoals
		}
		shots.TotalXG += pt.XG

		if isGoal {
			shots.Goals = append(shots.Goals, pt)
		} else {
			shots.Shots = append(shots.Shots, pt)
		}
	}
	return shots
}

// Heatmap bins the player's touches into a HeatmapColumns x HeatmapRows grid.
func Heatmap(events []models.NormalizedEvent, playerID string, playerName string) models.Heatmap {
	h := models.Heatmap{
		PlayerID:   playerID,
		PlayerName: playerName,
		Columns:    HeatmapColumns,
		Rows:       HeatmapRows,
		Bins:       make([][]int, HeatmapRows),
		Points:     []models.Point{},
	}
	for r := range h.Bins {
		h.Bins[r] = make([]int, HeatmapColumns)
	}

	for _, ev := range events {
		if ev.PlayerID != playerID || !ev.IsTouch || ev.X == nil || ev.Y == nil {
			continue
		}
		x, y := *ev.X, *ev.Y
		h.Points = append(h.Points, models.Point{X: x, Y: y})
		h.Bins[bin(y, HeatmapRows)][bin(x, HeatmapColumns)]++
	}
	return h
}

func bin(v float64, n int) int {
	i := int(v / 100 * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// DefensiveLine collects defensive actions for a team, or for one player of
// it when playerID is set, and reports the mean x of those actions.
func DefensiveLine(events []models.NormalizedEvent, teamID int, playerID string) models.DefensiveLine {
	line := models.DefensiveLine{TeamID: teamID, Actions: []models.DefensiveAction{}}
	var sumX float64
	for _, ev := range events {
		if ev.TeamID != teamID || !defensiveTypes[ev.Type] || ev.X == nil || ev.Y == nil {
			continue
		}
		if playerID != "" && ev.PlayerID != playerID {
			continue
		}
		if playerID != "" && line.PlayerName == "" {
			line.PlayerName = ev.PlayerName
		}
		line.Actions = append(line.Actions, models.DefensiveAction{
			Type:   ev.Type,
			Minute: ev.Minute,
			X:      *ev.X,
			Y:      *ev.Y,
			Won:    ev.Successful(),
		})
		sumX += *ev.X
	}
	if len(line.Actions) > 0 {
		line.AverageX = sumX / float64(len(line.Actions))
	}
	return line
}
