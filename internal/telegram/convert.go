package telegram

import (
	"strconv"
	"strings"

	"chatshop/internal/bot"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// toEvent converts an update into a bot event. ok is false for updates the
// bot does not react to (edited messages, stickers, channel posts...).
func toEvent(u tgbotapi.Update) (ev bot.Event, ok bool) {
	switch {
	case u.CallbackQuery != nil:
		cq := u.CallbackQuery
		if cq.Message == nil || cq.Message.Chat == nil || cq.From == nil {
			return bot.Event{}, false
		}
		return bot.Event{
			Kind:      bot.EventButton,
			ID:        cq.ID,
			ChatID:    cq.Message.Chat.ID,
			UserID:    cq.From.ID,
			MessageID: cq.Message.MessageID,
			Payload:   cq.Data,
		}, true
	case u.Message != nil:
		m := u.Message
		if m.Chat == nil || m.From == nil {
			return bot.Event{}, false
		}
		ev = bot.Event{
			ID:        strconv.Itoa(u.UpdateID),
			ChatID:    m.Chat.ID,
			UserID:    m.From.ID,
			MessageID: m.MessageID,
		}
		if m.IsCommand() {
			ev.Kind = bot.EventCommand
			ev.Payload = strings.ToLower(m.Command())
			return ev, true
		}
		if strings.TrimSpace(m.Text) == "" {
			return bot.Event{}, false
		}
		ev.Kind = bot.EventText
		ev.Payload = m.Text
		return ev, true
	default:
		return bot.Event{}, false
	}
}
