package telegram

import (
	"path/filepath"

	"chatshop/internal/bot"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// render builds the outgoing request for a view.
func render(chatID int64, v bot.View) tgbotapi.Chattable {
	kb, hasKeyboard := keyboard(v.Buttons)

	if v.EditMessageID != 0 {
		edit := tgbotapi.NewEditMessageText(chatID, v.EditMessageID, v.Text)
		if hasKeyboard {
			edit.ReplyMarkup = &kb
		}
		return edit
	}

	if v.Image != nil {
		photo := tgbotapi.NewPhoto(chatID, photoFile(v.Image))
		photo.Caption = v.Text
		if hasKeyboard {
			photo.ReplyMarkup = kb
		}
		return photo
	}

	return textMessage(chatID, v)
}

func textMessage(chatID int64, v bot.View) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, v.Text)
	if kb, ok := keyboard(v.Buttons); ok {
		msg.ReplyMarkup = kb
	}
	return msg
}

func photoFile(img *bot.Image) tgbotapi.RequestFileData {
	if len(img.Data) == 0 {
		return tgbotapi.FileURL(img.Ref)
	}
	return tgbotapi.FileBytes{Name: filepath.Base(img.Ref), Bytes: img.Data}
}

func keyboard(rows [][]bot.Button) (tgbotapi.InlineKeyboardMarkup, bool) {
	out := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, r := range rows {
		if len(r) == 0 {
			continue
		}
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(r))
		for _, b := range r {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Action.Token()))
		}
		out = append(out, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	if len(out) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(out...), true
}
