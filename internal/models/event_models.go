package models

import "encoding/json"

// CodedValue is the {value, displayName} pair the source uses for event
// types, outcomes, periods and card types.
type CodedValue struct {
	Value       int
	DisplayName string
}

type RawQualifier struct {
	Type  *CodedValue
	Value string
}

type RawEvent struct {
	ID                   float64
	EventID              int
	Minute               int
	Second               *int
	ExpandedMinute       int
	TeamID               int
	PlayerID             *float64
	X                    *float64
	Y                    *float64
	EndX                 *float64
	EndY                 *float64
	GoalMouthY           *float64
	GoalMouthZ           *float64
	BlockedX             *float64
	BlockedY             *float64
	Type                 *CodedValue
	OutcomeType          *CodedValue
	Period               *CodedValue
	CardType             *CodedValue
	Qualifiers           []RawQualifier
	SatisfiedEventsTypes []int
	IsTouch              bool
	IsShot               *bool
	IsGoal               *bool
	IsOwnGoal            bool
	ExpectedGoals        *float64
	RelatedEventID       *int
	RelatedPlayerID      *int
}

type Qualifier struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// CardLabel is the card display name; it encodes as false when the event
// carries no card.
type CardLabel string

func (c CardLabel) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("false"), nil
	}
	return json.Marshal(string(c))
}

type NormalizedEvent struct {
	ID                   float64     `json:"id"`
	EventID              int         `json:"eventId"`
	MatchID              int         `json:"matchId"`
	Minute               int         `json:"minute"`
	Second               *int        `json:"second,omitempty"`
	ExpandedMinute       int         `json:"expandedMinute"`
	Period               string      `json:"period,omitempty"`
	Type                 string      `json:"type,omitempty"`
	OutcomeType          string      `json:"outcomeType,omitempty"`
	CardType             CardLabel   `json:"cardType"`
	TeamID               int         `json:"teamId"`
	Side                 string      `json:"h_a,omitempty"`
	PlayerID             string      `json:"playerId,omitempty"`
	PlayerName           string      `json:"playerName,omitempty"`
	X                    *float64    `json:"x,omitempty"`
	Y                    *float64    `json:"y,omitempty"`
	EndX                 *float64    `json:"endX,omitempty"`
	EndY                 *float64    `json:"endY,omitempty"`
	GoalMouthY           *float64    `json:"goalMouthY,omitempty"`
	GoalMouthZ           *float64    `json:"goalMouthZ,omitempty"`
	BlockedX             *float64    `json:"blockedX,omitempty"`
	BlockedY             *float64    `json:"blockedY,omitempty"`
	IsTouch              bool        `json:"isTouch"`
	IsShot               bool        `json:"isShot"`
	IsGoal               bool        `json:"isGoal"`
	IsOwnGoal            bool        `json:"isOwnGoal"`
	ExpectedGoals        *float64    `json:"expectedGoals,omitempty"`
	ShotBodyType         string      `json:"shotBodyType,omitempty"`
	Situation            string      `json:"situation,omitempty"`
	RelatedEventID       *int        `json:"relatedEventId,omitempty"`
	RelatedPlayerID      *int        `json:"relatedPlayerId,omitempty"`
	PassRecipientID      string      `json:"passRecipientId,omitempty"`
	Qualifiers           []Qualifier `json:"qualifiers"`
	SatisfiedEventsTypes []string    `json:"satisfiedEventsTypes"`
}

func (e NormalizedEvent) HasQualifier(name string) bool {
	for _, q := range e.Qualifiers {
		if q.Type == name {
			return true
		}
	}
	return false
}

func (e NormalizedEvent) Successful() bool {
	return e.OutcomeType == "Successful"
}
