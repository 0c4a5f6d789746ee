package bot

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/matchbot/internal/api/matchcentre"
	"github.com/omarshaarawi/matchbot/internal/repository/memory"
	"github.com/omarshaarawi/matchbot/internal/service"
)

const page = `<script>var args = {matchId: 42, matchCentreData: {"score": "2 : 2",
	"home": {"teamId": 1, "name": "Inter", "players": [{"playerId": 5, "name": "Lautaro Martinez", "shirtNo": 10}]},
	"away": {"teamId": 2, "name": "Milan", "players": []}, "events": []}};</script>`

type staticFetcher struct{}

func (staticFetcher) Fetch(context.Context, string) (string, error) { return page, nil }

func command(text string) tgbotapi.Update {
	name := strings.Fields(text)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: 7},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
	}}
}

func TestHandleCommand(t *testing.T) {
	svc := service.NewMatchService(matchcentre.NewAPI(staticFetcher{}, nil), memory.NewRepository())
	h := NewHandler(svc)

	tests := []struct {
		text string
		want string
	}{
		{"/help", "/passnet <url> <team>"},
		{"/match", "Usage: /match <url>"},
		{"/match https://example.test/Matches/42", "*Inter* 2 : 2 *Milan*"},
		{"/players https://example.test/Matches/42", "Usage: /players <url> <team>"},
		{"/players https://example.test/Matches/42 home", "10 Lautaro Martinez"},
		{"/shots https://example.test/Matches/42 juventus", "team not found: juventus"},
		{"/heatmap https://example.test/Matches/42 lautaro", "Lautaro Martinez"},
		{"/defline https://example.test/Matches/42", "Usage: /defline <url> <team> [player]"},
		{"/defline https://example.test/Matches/42 away", "No defensive actions recorded."},
		{"/defline https://example.test/Matches/42 inter lautaro", "Lautaro Martinez (Inter)"},
		{"/watching", "No matches are being watched."},
		{"/watch https://example.test/Matches/42", "Watching *Inter vs Milan*"},
		{"/unwatch https://example.test/Matches/1", "not on the watch list"},
		{"/nonsense", "Unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			msg := h.HandleCommand(context.Background(), command(tt.text))
			if msg.ChatID != 7 {
				t.Errorf("chat id = %d", msg.ChatID)
			}
			if !strings.Contains(msg.Text, tt.want) {
				t.Errorf("reply = %q, want it to contain %q", msg.Text, tt.want)
			}
		})
	}
}

func TestSplitArgs(t *testing.T) {
	url, rest := splitArgs("  https://x/y   Manchester   United ")
	if url != "https://x/y" || rest != "Manchester United" {
		t.Errorf("got %q %q", url, rest)
	}
	if url, rest := splitArgs(""); url != "" || rest != "" {
		t.Errorf("empty got %q %q", url, rest)
	}
}
