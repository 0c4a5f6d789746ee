// Package normalize turns the raw event list of a match into the flat event
// table consumed by analytics and the chat surface.
package normalize

import (
	"strconv"

	"github.com/omarshaarawi/matchbot/internal/models"
)

const passType = "Pass"

var bodyParts = map[string]bool{
	"RightFoot":     true,
	"LeftFoot":      true,
	"Head":          true,
	"OtherBodyPart": true,
}

var setPieces = map[string]bool{
	"FromCorner":     true,
	"SetPiece":       true,
	"DirectFreekick": true,
}

// Match normalizes the events carried by m using its own dictionaries.
func Match(m *models.Match) []models.NormalizedEvent {
	return Events(m.Events, m, m.PlayerNames)
}

// Events is a row-wise transform: the output has one entry per input event in
// the same order. Malformed fields degrade to empty values.
func Events(events []models.RawEvent, m *models.Match, names map[int]string) []models.NormalizedEvent {
	typeNames := invert(m.EventTypes)

	out := make([]models.NormalizedEvent, len(events))
	for i, ev := range events {
		out[i] = event(ev, m, names, typeNames)
	}
	return out
}

func event(ev models.RawEvent, m *models.Match, names map[int]string, typeNames map[int]string) models.NormalizedEvent {
	n := models.NormalizedEvent{
		ID:              ev.ID,
		EventID:         ev.EventID,
		MatchID:         m.MatchID,
		Minute:          ev.Minute,
		Second:          ev.Second,
		ExpandedMinute:  ev.ExpandedMinute,
		Period:          label(ev.Period),
		Type:            label(ev.Type),
		OutcomeType:     label(ev.OutcomeType),
		CardType:        models.CardLabel(label(ev.CardType)),
		TeamID:          ev.TeamID,
		X:               ev.X,
		Y:               ev.Y,
		EndX:            ev.EndX,
		EndY:            ev.EndY,
		GoalMouthY:      ev.GoalMouthY,
		GoalMouthZ:      ev.GoalMouthZ,
		BlockedX:        ev.BlockedX,
		BlockedY:        ev.BlockedY,
		IsTouch:         ev.IsTouch,
		IsShot:          ev.IsShot != nil && *ev.IsShot,
		IsGoal:          ev.IsGoal != nil && *ev.IsGoal,
		IsOwnGoal:       ev.IsOwnGoal,
		ExpectedGoals:   ev.ExpectedGoals,
		RelatedEventID:  ev.RelatedEventID,
		RelatedPlayerID: ev.RelatedPlayerID,
	}

	if ev.PlayerID != nil {
		id := int(*ev.PlayerID)
		n.PlayerID = strconv.Itoa(id)
		n.PlayerName = names[id]
	}

	if side, ok := m.SideOf(ev.TeamID); ok {
		n.Side = side.Tag()
	}

	n.Qualifiers = make([]models.Qualifier, 0, len(ev.Qualifiers))
	for _, q := range ev.Qualifiers {
		n.Qualifiers = append(n.Qualifiers, models.Qualifier{Type: label(q.Type), Value: q.Value})
	}

	n.SatisfiedEventsTypes = make([]string, 0, len(ev.SatisfiedEventsTypes))
	for _, code := range ev.SatisfiedEventsTypes {
		if name, ok := typeNames[code]; ok {
			n.SatisfiedEventsTypes = append(n.SatisfiedEventsTypes, name)
		}
	}

	if n.IsShot {
		n.ShotBodyType = ShotBodyType(n.Qualifiers)
		n.Situation = Situation(n.Qualifiers)
	}
	return n
}

// ShotBodyType returns the first body-part qualifier in source order.
func ShotBodyType(quals []models.Qualifier) string {
	for _, q := range quals {
		if bodyParts[q.Type] {
			return q.Type
		}
	}
	return ""
}

// Situation scans the qualifiers in source order and keeps the last match. A
// RegularPlay qualifier yields OpenPlay and takes part in the same ordering,
// so it overrides a set piece seen before it and is overridden by one after.
func Situation(quals []models.Qualifier) string {
	var out string
	for _, q := range quals {
		switch {
		case setPieces[q.Type]:
			out = q.Type
		case q.Type == "RegularPlay":
			out = "OpenPlay"
		}
	}
	return out
}

// InferPassRecipients fills PassRecipientID on every pass with the player of
// the next event by the same team. A recipient equal to the passer is
// dropped.
func InferPassRecipients(events []models.NormalizedEvent) {
	next := make(map[int]string)
	for i := len(events) - 1; i >= 0; i-- {
		ev := &events[i]
		if ev.Type == passType {
			ev.PassRecipientID = ""
			if r := next[ev.TeamID]; r != "" && r != ev.PlayerID {
				ev.PassRecipientID = r
			}
		}
		next[ev.TeamID] = ev.PlayerID
	}
}

func label(c *models.CodedValue) string {
	if c == nil {
		return ""
	}
	return c.DisplayName
}

// invert keeps the lexically smallest name when codes collide.
func invert(types map[string]int) map[int]string {
	out := make(map[int]string, len(types))
	for name, code := range types {
		if prev, ok := out[code]; ok && prev < name {
			continue
		}
		out[code] = name
	}
	return out
}
