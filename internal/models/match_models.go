package models

import "strings"

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Tag is the short team-side marker carried by normalized events.
func (s Side) Tag() string {
	switch s {
	case SideHome:
		return "h"
	case SideAway:
		return "a"
	}
	return ""
}

type Match struct {
	MatchIdentity
	Home           TeamSide       `json:"home"`
	Away           TeamSide       `json:"away"`
	PlayerNames    map[int]string `json:"playerIdNameDictionary,omitempty"`
	EventTypes     map[string]int `json:"matchCentreEventTypeJson,omitempty"`
	FormationNames map[int]string `json:"formationIdNameMappings,omitempty"`
	Events         []RawEvent     `json:"-"`
}

type MatchIdentity struct {
	MatchID          int    `json:"matchId" validate:"required,gt=0"`
	StartDate        string `json:"startDate,omitempty"`
	StartTime        string `json:"startTime,omitempty"`
	Score            string `json:"score,omitempty"`
	HTScore          string `json:"htScore,omitempty"`
	FTScore          string `json:"ftScore,omitempty"`
	ETScore          string `json:"etScore,omitempty"`
	PKScore          string `json:"pkScore,omitempty"`
	VenueName        string `json:"venueName,omitempty"`
	Attendance       int    `json:"attendance,omitempty"`
	Referee          string `json:"referee,omitempty"`
	MaxMinute        int    `json:"maxMinute,omitempty"`
	Region           string `json:"region,omitempty"`
	League           string `json:"league,omitempty"`
	Season           string `json:"season,omitempty"`
	CompetitionType  string `json:"competitionType,omitempty"`
	CompetitionStage string `json:"competitionStage,omitempty"`
}

type TeamSide struct {
	Side        Side        `json:"side"`
	TeamID      int         `json:"teamId" validate:"required,gt=0"`
	Name        string      `json:"name"`
	ManagerName string      `json:"managerName,omitempty"`
	CountryName string      `json:"countryName,omitempty"`
	Players     []Player    `json:"players"`
	Formations  []Formation `json:"formations"`
}

type Player struct {
	PlayerID        int     `json:"playerId"`
	Name            string  `json:"name"`
	ShirtNo         *int    `json:"shirtNo,omitempty"`
	Position        string  `json:"position,omitempty"`
	Age             int     `json:"age,omitempty"`
	Height          int     `json:"height,omitempty"`
	Weight          int     `json:"weight,omitempty"`
	IsFirstEleven   bool    `json:"isFirstEleven"`
	IsManOfTheMatch bool    `json:"isManOfTheMatch"`
	Rating          float64 `json:"rating,omitempty"`
}

// IsSubstitute reports whether the roster entry sits outside the starting XI.
func (p Player) IsSubstitute() bool {
	return p.Position == "Sub" || (!p.IsFirstEleven && p.Position == "")
}

type Formation struct {
	FormationID        int                 `json:"formationId"`
	FormationName      string              `json:"formationName"`
	Shape              []string            `json:"shape"`
	CaptainPlayerID    int                 `json:"captainPlayerId,omitempty"`
	Period             int                 `json:"period,omitempty"`
	StartMinute        int                 `json:"startMinuteExpanded"`
	EndMinute          int                 `json:"endMinuteExpanded"`
	PlayerIDs          []int               `json:"playerIds"`
	JerseyNumbers      []int               `json:"jerseyNumbers,omitempty"`
	FormationSlots     []int               `json:"formationSlots,omitempty"`
	FormationPositions []FormationPosition `json:"formationPositions"`
}

// FormationPosition is a slot coordinate in the [0,10]x[0,10] source space.
type FormationPosition struct {
	Vertical   float64 `json:"vertical"`
	Horizontal float64 `json:"horizontal"`
}

// Display renders the shape as "4-2-3-1".
func (f Formation) Display() string {
	if len(f.Shape) == 0 {
		return f.FormationName
	}
	return strings.Join(f.Shape, "-")
}

// StartingPlayerIDs returns the first eleven player ids of the formation.
func (f Formation) StartingPlayerIDs() []int {
	if len(f.PlayerIDs) <= 11 {
		return f.PlayerIDs
	}
	return f.PlayerIDs[:11]
}

func (m *Match) Side(side Side) *TeamSide {
	switch side {
	case SideHome:
		return &m.Home
	case SideAway:
		return &m.Away
	}
	return nil
}

// SideOf maps a team id onto the side that owns it.
func (m *Match) SideOf(teamID int) (Side, bool) {
	switch teamID {
	case m.Home.TeamID:
		return SideHome, true
	case m.Away.TeamID:
		return SideAway, true
	}
	return "", false
}

func (t *TeamSide) Player(playerID int) (Player, bool) {
	for _, p := range t.Players {
		if p.PlayerID == playerID {
			return p, true
		}
	}
	return Player{}, false
}

func (t *TeamSide) StartingFormation() (Formation, bool) {
	if len(t.Formations) == 0 {
		return Formation{}, false
	}
	return t.Formations[0], true
}

type Breadcrumb struct {
	Region           string
	League           string
	Season           string
	CompetitionType  string
	CompetitionStage string
}

// MatchData is one fetch of a match page: the built match plus its event table.
type MatchData struct {
	Match  *Match            `json:"match"`
	Events []NormalizedEvent `json:"events"`
}
