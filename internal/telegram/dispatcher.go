package telegram

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"chatshop/internal/bot"
	"chatshop/internal/logging"
	"github.com/sirupsen/logrus"
)

// Dispatcher runs events of one chat strictly in arrival order while
// different chats proceed concurrently. A worker goroutine exists only while
// its chat has queued events.
type Dispatcher struct {
	handle func(context.Context, bot.Event)
	logger logrus.FieldLogger

	mu     sync.Mutex
	queues map[int64][]bot.Event
	wg     sync.WaitGroup
}

func NewDispatcher(handle func(context.Context, bot.Event), logger logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		handle: handle,
		logger: logging.OrDiscard(logger),
		queues: make(map[int64][]bot.Event),
	}
}

// Dispatch queues ev behind any pending events of the same chat. Queued
// events keep ctx's values but not its cancellation, so events already
// accepted are still answered while the gateway shuts down.
func (d *Dispatcher) Dispatch(ctx context.Context, ev bot.Event) {
	ctx = context.WithoutCancel(ctx)

	d.mu.Lock()
	q, running := d.queues[ev.ChatID]
	d.queues[ev.ChatID] = append(q, ev)
	if !running {
		d.wg.Add(1)
	}
	d.mu.Unlock()

	if !running {
		go d.drain(ctx, ev.ChatID)
	}
}

// Wait blocks until every queued event has been handled.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) drain(ctx context.Context, chatID int64) {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		q := d.queues[chatID]
		if len(q) == 0 {
			delete(d.queues, chatID)
			d.mu.Unlock()
			return
		}
		ev := q[0]
		d.queues[chatID] = q[1:]
		d.mu.Unlock()

		d.safeHandle(ctx, ev)
	}
}

func (d *Dispatcher) safeHandle(ctx context.Context, ev bot.Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithFields(logrus.Fields{
				"chat_id": ev.ChatID,
				"user_id": ev.UserID,
				"panic":   fmt.Sprint(r),
			}).Errorf("telegram: handler panicked\n%s", debug.Stack())
		}
	}()
	d.handle(ctx, ev)
}
