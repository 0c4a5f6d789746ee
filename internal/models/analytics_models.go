package models

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PassNetworkNode struct {
	PlayerID int     `json:"playerId"`
	Name     string  `json:"name"`
	ShirtNo  *int    `json:"shirtNo,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Passes   int     `json:"passes"`
}

type PassNetworkLink struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Count  int `json:"count"`
}

type PassNetwork struct {
	TeamID   int               `json:"teamId"`
	TeamName string            `json:"teamName"`
	Nodes    []PassNetworkNode `json:"nodes"`
	Links    []PassNetworkLink `json:"links"`
}

type BoxPass struct {
	PlayerName string  `json:"playerName,omitempty"`
	Minute     int     `json:"minute"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	EndX       float64 `json:"endX"`
	EndY       float64 `json:"endY"`
}

type ShotPoint struct {
	PlayerName string  `json:"playerName,omitempty"`
	Minute     int     `json:"minute"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	XG         float64 `json:"xG"`
	BodyType   string  `json:"shotBodyType,omitempty"`
	Situation  string  `json:"situation,omitempty"`
}

type ShotMap struct {
	TeamID  int         `json:"teamId"`
	Goals   []ShotPoint `json:"goals"`
	Shots   []ShotPoint `json:"shots"`
	TotalXG float64     `json:"totalXG"`
}

type Heatmap struct {
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Columns    int     `json:"columns"`
	Rows       int     `json:"rows"`
	Bins       [][]int `json:"bins"`
	Points     []Point `json:"points"`
}

type DefensiveAction struct {
	Type   string  `json:"type"`
	Minute int     `json:"minute"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Won    bool    `json:"won"`
}

type DefensiveLine struct {
	TeamID     int               `json:"teamId"`
	PlayerName string            `json:"playerName,omitempty"`
	Actions    []DefensiveAction `json:"actions"`
	AverageX   float64           `json:"averageX"`
}
