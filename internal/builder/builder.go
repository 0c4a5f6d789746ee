package builder

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/omarshaarawi/matchbot/internal/extract"
	"github.com/omarshaarawi/matchbot/internal/models"
)

// SchemaError reports a payload that lacks the minimum shape of a match.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("match payload schema: %s: %s", e.Field, e.Reason)
}

var validate = validator.New()

// Build reshapes the extracted payload into a Match. The crumb is optional
// page metadata and never fails the build.
func Build(blob extract.Blob, crumb *extract.Crumb) (*models.Match, error) {
	matchID, ok := asInt(blob[extract.MatchIDKey])
	if !ok {
		return nil, &SchemaError{Field: "matchId", Reason: "missing or not a number"}
	}

	homeRaw, hasHome := asMap(blob["home"])
	awayRaw, hasAway := asMap(blob["away"])
	switch {
	case !hasHome && !hasAway:
		return nil, &SchemaError{Field: "home, away", Reason: "no team sides in payload"}
	case !hasHome:
		return nil, &SchemaError{Field: "home", Reason: "team side missing"}
	case !hasAway:
		return nil, &SchemaError{Field: "away", Reason: "team side missing"}
	}

	m := &models.Match{
		MatchIdentity: identity(blob, matchID),
		Home:          teamSide(models.SideHome, homeRaw),
		Away:          teamSide(models.SideAway, awayRaw),
	}

	if err := check(m); err != nil {
		return nil, err
	}

	m.PlayerNames = playerNames(blob["playerIdNameDictionary"])
	m.EventTypes = eventTypes(blob["matchCentreEventTypeJson"])
	m.FormationNames = formationNames(blob["formationIdNameMappings"])
	m.Events = rawEvents(blob["events"])

	if crumb != nil {
		b := ParseBreadcrumb(crumb.Region, crumb.Trail)
		if crumb.Flat {
			b = ParseBreadcrumbText(crumb.Trail)
		}
		m.Region = b.Region
		m.League = b.League
		m.Season = b.Season
		m.CompetitionType = b.CompetitionType
		m.CompetitionStage = b.CompetitionStage
	}

	return m, nil
}

func check(m *models.Match) error {
	parts := []struct {
		name string
		v    any
	}{
		{"match", m.MatchIdentity},
		{"home", m.Home},
		{"away", m.Away},
	}
	for _, part := range parts {
		if err := validate.Struct(part.v); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
				fe := fieldErrs[0]
				return &SchemaError{Field: part.name + "." + fe.Field(), Reason: "failed " + fe.Tag() + " check"}
			}
			return &SchemaError{Field: part.name, Reason: err.Error()}
		}
	}
	if m.Home.TeamID == m.Away.TeamID {
		return &SchemaError{Field: "teamId", Reason: "home and away share a team id"}
	}
	return nil
}

func identity(blob extract.Blob, matchID int) models.MatchIdentity {
	id := models.MatchIdentity{
		MatchID:    matchID,
		StartDate:  stringField(blob, "startDate"),
		StartTime:  stringField(blob, "startTime"),
		Score:      stringField(blob, "score"),
		HTScore:    stringField(blob, "htScore"),
		FTScore:    stringField(blob, "ftScore"),
		ETScore:    stringField(blob, "etScore"),
		PKScore:    stringField(blob, "pkScore"),
		VenueName:  stringField(blob, "venueName"),
		Attendance: intField(blob, "attendance"),
		MaxMinute:  intField(blob, "maxMinute"),
	}
	if ref, ok := asMap(blob["referee"]); ok {
		id.Referee = stringField(ref, "name")
	}
	return id
}

func teamSide(side models.Side, raw map[string]any) models.TeamSide {
	t := models.TeamSide{
		Side:        side,
		TeamID:      intField(raw, "teamId"),
		Name:        stringField(raw, "name"),
		ManagerName: stringField(raw, "managerName"),
		CountryName: stringField(raw, "countryName"),
		Players:     []models.Player{},
		Formations:  []models.Formation{},
	}

	items, _ := asSlice(raw["players"])
	for _, item := range items {
		p, ok := asMap(item)
		if !ok {
			continue
		}
		t.Players = append(t.Players, player(p))
	}

	items, _ = asSlice(raw["formations"])
	for _, item := range items {
		f, ok := asMap(item)
		if !ok {
			continue
		}
		t.Formations = append(t.Formations, formation(f))
	}

	return t
}

func player(raw map[string]any) models.Player {
	p := models.Player{
		PlayerID:        intField(raw, "playerId"),
		Name:            stringField(raw, "name"),
		ShirtNo:         optInt(raw, "shirtNo"),
		Position:        stringField(raw, "position"),
		Age:             intField(raw, "age"),
		Height:          intField(raw, "height"),
		Weight:          intField(raw, "weight"),
		IsFirstEleven:   boolField(raw, "isFirstEleven"),
		IsManOfTheMatch: boolField(raw, "isManOfTheMatch"),
	}
	if stats, ok := asMap(raw["stats"]); ok {
		p.Rating = lastRating(stats["ratings"])
	}
	return p
}

// lastRating returns the rating recorded at the latest minute.
func lastRating(v any) float64 {
	ratings, ok := asMap(v)
	if !ok {
		return 0
	}
	latest, rating := -1, 0.0
	for minute, value := range ratings {
		m, err := strconv.Atoi(minute)
		if err != nil || m < latest {
			continue
		}
		if f, ok := asFloat(value); ok {
			latest, rating = m, f
		}
	}
	return rating
}

func formation(raw map[string]any) models.Formation {
	f := models.Formation{
		FormationID:     intField(raw, "formationId"),
		FormationName:   stringField(raw, "formationName"),
		CaptainPlayerID: intField(raw, "captainPlayerId"),
		Period:          intField(raw, "period"),
		StartMinute:     intField(raw, "startMinuteExpanded"),
		EndMinute:       intField(raw, "endMinuteExpanded"),
		PlayerIDs:       intList(raw["playerIds"]),
		JerseyNumbers:   intList(raw["jerseyNumbers"]),
		FormationSlots:  intList(raw["formationSlots"]),
	}
	f.Shape = shape(f.FormationName)

	positions, _ := asSlice(raw["formationPositions"])
	f.FormationPositions = make([]models.FormationPosition, 0, len(positions))
	for _, item := range positions {
		pos, _ := asMap(item)
		f.FormationPositions = append(f.FormationPositions, models.FormationPosition{
			Vertical:   floatField(pos, "vertical"),
			Horizontal: floatField(pos, "horizontal"),
		})
	}
	return f
}

// shape splits a formation name such as "4231" into its lines.
func shape(name string) []string {
	out := make([]string, 0, len(name))
	for _, r := range name {
		if unicode.IsDigit(r) {
			out = append(out, string(r))
		}
	}
	return out
}

func playerNames(v any) map[int]string {
	raw, _ := asMap(v)
	names := make(map[int]string, len(raw))
	for key, value := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if name, ok := value.(string); ok {
			names[id] = name
		}
	}
	return names
}

func eventTypes(v any) map[string]int {
	raw, _ := asMap(v)
	types := make(map[string]int, len(raw))
	for name, value := range raw {
		if code, ok := asInt(value); ok {
			types[name] = code
		}
	}
	return types
}

func formationNames(v any) map[int]string {
	raw, _ := asMap(v)
	names := make(map[int]string, len(raw))
	for key, value := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if name, ok := asString(value); ok {
			names[id] = name
		}
	}
	return names
}

func rawEvents(v any) []models.RawEvent {
	items, _ := asSlice(v)
	events := make([]models.RawEvent, 0, len(items))
	skipped := 0
	for _, item := range items {
		raw, ok := asMap(item)
		if !ok {
			skipped++
			continue
		}
		events = append(events, rawEvent(raw))
	}
	if skipped > 0 {
		slog.Debug("Skipped non-object event entries", "count", skipped)
	}
	return events
}

func rawEvent(raw map[string]any) models.RawEvent {
	ev := models.RawEvent{
		ID:                   floatField(raw, "id"),
		EventID:              intField(raw, "eventId"),
		Minute:               intField(raw, "minute"),
		Second:               optInt(raw, "second"),
		ExpandedMinute:       intField(raw, "expandedMinute"),
		TeamID:               intField(raw, "teamId"),
		PlayerID:             optFloat(raw, "playerId"),
		X:                    optFloat(raw, "x"),
		Y:                    optFloat(raw, "y"),
		EndX:                 optFloat(raw, "endX"),
		EndY:                 optFloat(raw, "endY"),
		GoalMouthY:           optFloat(raw, "goalMouthY"),
		GoalMouthZ:           optFloat(raw, "goalMouthZ"),
		BlockedX:             optFloat(raw, "blockedX"),
		BlockedY:             optFloat(raw, "blockedY"),
		Type:                 coded(raw["type"]),
		OutcomeType:          coded(raw["outcomeType"]),
		Period:               coded(raw["period"]),
		CardType:             coded(raw["cardType"]),
		SatisfiedEventsTypes: intList(raw["satisfiedEventsTypes"]),
		IsTouch:              boolField(raw, "isTouch"),
		IsShot:               optBool(raw, "isShot"),
		IsGoal:               optBool(raw, "isGoal"),
		IsOwnGoal:            boolField(raw, "isOwnGoal"),
		ExpectedGoals:        optFloat(raw, "expectedGoals"),
		RelatedEventID:       optInt(raw, "relatedEventId"),
		RelatedPlayerID:      optInt(raw, "relatedPlayerId"),
	}

	quals, _ := asSlice(raw["qualifiers"])
	for _, item := range quals {
		q, ok := asMap(item)
		if !ok {
			continue
		}
		ev.Qualifiers = append(ev.Qualifiers, models.RawQualifier{
			Type:  coded(q["type"]),
			Value: stringField(q, "value"),
		})
	}
	return ev
}

func coded(v any) *models.CodedValue {
	raw, ok := asMap(v)
	if !ok {
		return nil
	}
	return &models.CodedValue{
		Value:       intField(raw, "value"),
		DisplayName: stringField(raw, "displayName"),
	}
}
