package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/matchbot/internal/service"
)

const helpText = "Available commands:\n" +
	"/match <url> - Score, venue and shot totals\n" +
	"/players <url> <team> - Lineup and bench\n" +
	"/shots <url> <team> - Shots and goals with xG\n" +
	"/passnet <url> <team> - Pass network\n" +
	"/boxpasses <url> <team> - Completed passes into the box\n" +
	"/heatmap <url> <player> - Touch heatmap\n" +
	"/defline <url> <team> [player] - Defensive actions\n" +
	"/watch <url> - Post updates when the score changes\n" +
	"/unwatch <url> - Stop watching a match\n" +
	"/watching - List watched matches\n\n" +
	"<team> is home, away or a team name."

type Handler struct {
	matchService *service.MatchService
}

func NewHandler(matchService *service.MatchService) *Handler {
	return &Handler{matchService: matchService}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	h.dispatch(ctx, &msg, command, args)
	return msg
}

func (h *Handler) dispatch(ctx context.Context, msg *tgbotapi.MessageConfig, command, args string) {
	switch command {
	case "start":
		msg.Text = "Welcome to MatchBot! Use /help to see available commands."
	case "help":
		msg.ParseMode = ""
		msg.Text = helpText
	case "match":
		h.handleMatch(ctx, msg, args)
	case "players":
		h.handleTeamReport(msg, args, "/players <url> <team>", func(url, team string) (string, error) {
			return h.matchService.GetLineups(ctx, url, team)
		})
	case "shots":
		h.handleTeamReport(msg, args, "/shots <url> <team>", func(url, team string) (string, error) {
			return h.matchService.GetShotMap(ctx, url, team)
		})
	case "passnet":
		h.handleTeamReport(msg, args, "/passnet <url> <team>", func(url, team string) (string, error) {
			return h.matchService.GetPassNetwork(ctx, url, team)
		})
	case "boxpasses":
		h.handleTeamReport(msg, args, "/boxpasses <url> <team>", func(url, team string) (string, error) {
			return h.matchService.GetBoxPasses(ctx, url, team)
		})
	case "heatmap":
		h.handleHeatmap(ctx, msg, args)
	case "defline":
		h.handleDefensiveLine(ctx, msg, args)
	case "watch":
		h.handleWatch(ctx, msg, args)
	case "unwatch":
		h.handleUnwatch(msg, args)
	case "watching":
		msg.Text = h.matchService.GetWatching()
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}
}

// splitArgs separates the leading match URL from the rest of the arguments.
func splitArgs(args string) (string, string) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func (h *Handler) handleMatch(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	url, _ := splitArgs(args)
	if url == "" {
		msg.Text = "Please provide a match URL. Usage: /match <url>"
		return
	}
	summary, err := h.matchService.GetMatchSummary(ctx, url)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching match: %v", err)
	} else {
		msg.Text = summary
	}
}

func (h *Handler) handleTeamReport(msg *tgbotapi.MessageConfig, args, usage string, report func(url, team string) (string, error)) {
	url, team := splitArgs(args)
	if url == "" || team == "" {
		msg.Text = "Please provide a match URL and a team. Usage: " + usage
		return
	}
	result, err := report(url, team)
	if err != nil {
		msg.Text = fmt.Sprintf("Error building report: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handleHeatmap(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	url, player := splitArgs(args)
	if url == "" || player == "" {
		msg.Text = "Please provide a match URL and a player name. Usage: /heatmap <url> <player>"
		return
	}
	result, err := h.matchService.GetHeatmap(ctx, url, player)
	if err != nil {
		msg.Text = fmt.Sprintf("Error building heatmap: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handleDefensiveLine(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	url, rest := splitArgs(args)
	if url == "" || rest == "" {
		msg.Text = "Please provide a match URL and a team. Usage: /defline <url> <team> [player]"
		return
	}
	result, err := h.matchService.GetDefensiveLine(ctx, url, rest)
	if err != nil {
		msg.Text = fmt.Sprintf("Error building defensive report: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handleWatch(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	url, _ := splitArgs(args)
	if url == "" {
		msg.Text = "Please provide a match URL. Usage: /watch <url>"
		return
	}
	result, err := h.matchService.Watch(ctx, url)
	if err != nil {
		msg.Text = fmt.Sprintf("Error watching match: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handleUnwatch(msg *tgbotapi.MessageConfig, args string) {
	url, _ := splitArgs(args)
	if url == "" {
		msg.Text = "Please provide a match URL. Usage: /unwatch <url>"
		return
	}
	msg.Text = h.matchService.Unwatch(url)
}
