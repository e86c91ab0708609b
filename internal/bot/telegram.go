package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
	logger  *slog.Logger
}

func NewTelegramBot(token string, chatID int64, loader Loader, logger *slog.Logger) (*TelegramBot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(loader),
		chatID:  chatID,
		logger:  logger,
	}, nil
}

func (t *TelegramBot) Start(ctx context.Context) error {
	t.logger.Info("Authorized on account", "username", t.bot.Self.UserName)
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

			msg := t.handler.HandleCommand(ctx, update)
			if _, err := t.bot.Send(msg); err != nil {
				t.logger.Error("Error sending message", "error", err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// SendMessage posts plain text to the configured chat.
func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		return fmt.Errorf("chat ID not set")
	}

	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		t.logger.Error("Error sending message", "error", err)
		return err
	}
	return nil
}
