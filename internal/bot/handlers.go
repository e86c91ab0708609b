package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/fantasydash/internal/service"
)

const helpText = "Available commands:\n" +
	"/standings - Get league standings\n" +
	"/scores - Get this week's scoreboard\n" +
	"/team <team> - View a team's record and points"

type Loader interface {
	Load(ctx context.Context) service.Dashboard
}

type Handler struct {
	loader Loader
}

func NewHandler(loader Loader) *Handler {
	return &Handler{loader: loader}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()

	switch command {
	case "start":
		msg.Text = "Welcome to the Fantasy Football Dashboard bot! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "standings":
		h.handleStandings(ctx, &msg)
	case "scores":
		h.handleScores(ctx, &msg)
	case "team":
		h.handleTeam(ctx, &msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleStandings(ctx context.Context, msg *tgbotapi.MessageConfig) {
	d := h.loader.Load(ctx)
	if !d.Connected() {
		msg.Text = noticeText(d)
		return
	}

	if text := service.FormatStandings(d.Standings); text != "" {
		msg.Text = text
	} else {
		msg.Text = "Standings are not available right now. Please try again later."
	}
}

func (h *Handler) handleScores(ctx context.Context, msg *tgbotapi.MessageConfig) {
	d := h.loader.Load(ctx)
	if !d.Connected() {
		msg.Text = noticeText(d)
		return
	}

	if text := service.FormatScoreboard(d.Scoreboard); text != "" {
		msg.Text = text
	} else {
		msg.Text = "Scoreboard is not available right now. Please try again later."
	}
}

func (h *Handler) handleTeam(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if strings.TrimSpace(args) == "" {
		msg.Text = "Please provide a team name. Usage: /team <team name>"
		return
	}

	d := h.loader.Load(ctx)
	if !d.Connected() {
		msg.Text = noticeText(d)
		return
	}

	team, ok := service.FindTeam(d.Standings, args)
	if !ok {
		msg.Text = fmt.Sprintf("No team found matching %q", args)
		return
	}
	msg.Text = service.StandingLine(team)
}

func noticeText(d service.Dashboard) string {
	lines := make([]string, 0, len(d.Notices))
	for _, n := range d.Notices {
		lines = append(lines, n.Message)
	}
	return strings.Join(lines, "\n")
}
