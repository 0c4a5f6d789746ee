package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/matchbot/internal/service"
)

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, matchService *service.MatchService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(matchService),
		chatID:  chatID,
	}, nil
}

func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			// Reports fetch the match page, so each command runs on its own.
			go func(update tgbotapi.Update) {
				msg := t.handler.HandleCommand(ctx, update)
				if _, err := t.bot.Send(msg); err != nil {
					slog.Error("Error sending message", "error", err, "command", update.Message.Command())
				}
			}(update)
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "Markdown"
	_, err := t.bot.Send(msg)
	if err != nil {
		slog.Error("Error sending message", "error", err)
	}
	return err
}
