package telegram

import (
	"context"
	"errors"
	"fmt"

	"chatshop/internal/bot"
	"chatshop/internal/domain"
	"chatshop/internal/logging"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const pollTimeoutSeconds = 30

// API is the part of tgbotapi.BotAPI the gateway uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type handler interface {
	Handle(ctx context.Context, ev bot.Event) bot.View
}

// Gateway pulls updates from Telegram, feeds them to the orchestrator and
// delivers the resulting views.
type Gateway struct {
	api        API
	handler    handler
	dispatcher *Dispatcher
	logger     logrus.FieldLogger
}

// Connect authenticates against the Bot API with token.
func Connect(token string, debug bool) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, domain.ErrMissingCredential
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	api.Debug = debug
	return api, nil
}

func New(api API, h handler, logger logrus.FieldLogger) *Gateway {
	g := &Gateway{api: api, handler: h, logger: logging.OrDiscard(logger)}
	g.dispatcher = NewDispatcher(g.process, g.logger)
	return g
}

// Run polls for updates until ctx is cancelled, then waits for in-flight
// events to finish.
func (g *Gateway) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := g.api.GetUpdatesChan(cfg)
	g.logger.Info("telegram: polling for updates")

	defer g.dispatcher.Wait()
	for {
		select {
		case <-ctx.Done():
			g.api.StopReceivingUpdates()
			g.logger.Info("telegram: stopped polling")
			return nil
		case u, ok := <-updates:
			if !ok {
				return errors.New("telegram: update channel closed")
			}
			ev, ok := toEvent(u)
			if !ok {
				continue
			}
			g.dispatcher.Dispatch(ctx, ev)
		}
	}
}

func (g *Gateway) process(ctx context.Context, ev bot.Event) {
	log := g.logger.WithFields(logrus.Fields{"chat_id": ev.ChatID, "user_id": ev.UserID})

	if ev.Kind == bot.EventButton {
		g.acknowledge(ev.ID, log)
	}

	view := g.handler.Handle(ctx, ev)
	if view.Empty() {
		return
	}
	if err := g.deliver(ev.ChatID, view); err != nil {
		log.WithError(err).Error("telegram: send failed")
	}
}

func (g *Gateway) acknowledge(callbackID string, log logrus.FieldLogger) {
	if callbackID == "" {
		return
	}
	if _, err := g.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		log.WithError(err).Warn("telegram: callback acknowledge failed")
	}
}

// deliver sends v. A photo Telegram refuses is retried once as text so the
// user still gets the caption and buttons.
func (g *Gateway) deliver(chatID int64, v bot.View) error {
	_, err := g.api.Send(render(chatID, v))
	if err == nil || v.Image == nil || v.EditMessageID != 0 {
		return err
	}
	g.logger.WithError(err).WithField("image", v.Image.Ref).Warn("telegram: photo rejected, sending text")
	_, err = g.api.Send(textMessage(chatID, v))
	return err
}
