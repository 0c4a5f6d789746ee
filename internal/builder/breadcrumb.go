package builder

import (
	"strings"

	"github.com/omarshaarawi/matchbot/internal/models"
)

const (
	CompetitionLeague   = "League"
	CompetitionKnockOut = "Knock Out"
)

// ParseBreadcrumb reads the region label and the "League - Season[ - Stage]"
// trail. Two trail segments mean a league fixture, three a knock-out tie
// whose stage is the last segment; any other count leaves both empty.
func ParseBreadcrumb(region, trail string) models.Breadcrumb {
	pieces := splitTrail(trail)
	b := models.Breadcrumb{Region: strings.TrimSpace(region)}
	if len(pieces) > 0 {
		b.League = pieces[0]
	}
	if len(pieces) > 1 {
		b.Season = pieces[1]
	}

	switch len(pieces) {
	case 2:
		b.CompetitionType = CompetitionLeague
	case 3:
		b.CompetitionType = CompetitionKnockOut
		b.CompetitionStage = pieces[2]
	}
	return b
}

// ParseBreadcrumbText handles a flattened trail whose first segment is the
// region, e.g. "England - Premier League - 2023/2024".
func ParseBreadcrumbText(text string) models.Breadcrumb {
	pieces := splitTrail(text)
	if len(pieces) == 0 {
		return models.Breadcrumb{}
	}
	return ParseBreadcrumb(pieces[0], strings.Join(pieces[1:], " - "))
}

func splitTrail(s string) []string {
	var out []string
	for _, p := range strings.Split(s, " - ") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
