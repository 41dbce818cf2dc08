package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatshop/internal/domain"
	"chatshop/internal/keylock"
	"chatshop/internal/logging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// errUnchanged stops update from saving a dialog fn did not modify.
var errUnchanged = errors.New("dialog unchanged")

// Step is the outcome of feeding free text to the dialog.
type Step struct {
	State domain.DialogState
	// Ignored is set when the dialog is Idle and the text was not meant for it.
	Ignored bool
	// Summary is set when the dialog reaches AwaitingConfirmation.
	Summary string
}

// Service drives the chat-keyed checkout dialog.
type Service struct {
	repo   conversationRepo
	carts  cartStore
	locks  *keylock.Locker
	logger logrus.FieldLogger
	now    func() time.Time
	newID  func() string
}

type conversationRepo interface {
	GetConversation(ctx context.Context, chatID int64) (*domain.Conversation, error)
	SaveConversation(ctx context.Context, c *domain.Conversation) error
}

type cartStore interface {
	Snapshot(ctx context.Context, userID int64) ([]domain.CartItem, error)
	Clear(ctx context.Context, userID int64) error
}

func New(repo conversationRepo, carts cartStore, locks *keylock.Locker, logger logrus.FieldLogger) *Service {
	if locks == nil {
		locks = keylock.New()
	}
	return &Service{
		repo:   repo,
		carts:  carts,
		locks:  locks,
		logger: logging.OrDiscard(logger),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// State returns the chat's current dialog state.
func (s *Service) State(ctx context.Context, chatID int64) (domain.DialogState, error) {
	c, err := s.repo.GetConversation(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("load dialog: %w", err)
	}
	return c.Dialog.CurrentState(), nil
}

// Begin freezes the user's cart into a new draft order and asks for a phone
// number. An empty cart fails with ErrEmptyCart and leaves the dialog as is.
func (s *Service) Begin(ctx context.Context, chatID, userID int64) error {
	items, err := s.carts.Snapshot(ctx, userID)
	if err != nil {
		return err
	}
	return s.update(ctx, chatID, func(d *domain.Dialog) error {
		if d.CurrentState() != domain.StateIdle {
			s.log(chatID, d).Info("checkout: restarting dialog")
		}
		return begin(d, userID, items)
	})
}

// Input feeds a free-text message to the dialog. Text while a summary awaits
// confirmation resets the dialog and fails with ErrMalformedConfirmation.
func (s *Service) Input(ctx context.Context, chatID int64, text string) (Step, error) {
	var (
		step      Step
		malformed bool
	)
	err := s.update(ctx, chatID, func(d *domain.Dialog) error {
		switch d.CurrentState() {
		case domain.StateAwaitingConfirmation:
			s.log(chatID, d).Warn("checkout: text instead of confirm/cancel, resetting dialog")
			reset(d)
			malformed = true
			return nil
		case domain.StateAwaitingPhone:
			if err := acceptPhone(d, text); err != nil {
				return err
			}
		case domain.StateAwaitingAddress:
			if err := acceptAddress(d, text); err != nil {
				return err
			}
			step.Summary = Summary(d.Draft)
		default:
			step.Ignored = true
			step.State = d.CurrentState()
			return errUnchanged
		}
		step.State = d.CurrentState()
		return nil
	})
	if err != nil {
		return Step{}, err
	}
	if malformed {
		return Step{}, domain.ErrMalformedConfirmation
	}
	return step, nil
}

// Confirm places the pending order, clears the buyer's live cart and returns
// the dialog to Idle. Outside AwaitingConfirmation the dialog is reset and
// ErrMalformedConfirmation returned.
func (s *Service) Confirm(ctx context.Context, chatID, userID int64) (domain.Order, error) {
	unlock := s.locks.Lock(chatKey(chatID))
	defer unlock()

	c, err := s.repo.GetConversation(ctx, chatID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("load dialog: %w", err)
	}
	pending := c.Dialog
	draft, err := commit(&c.Dialog)
	if err != nil {
		if saveErr := s.repo.SaveConversation(ctx, c); saveErr != nil {
			return domain.Order{}, fmt.Errorf("save dialog: %w", saveErr)
		}
		s.log(chatID, &pending).Warn("checkout: confirmation outside confirmation step")
		return domain.Order{}, err
	}

	buyer := draft.BuyerID
	if buyer == 0 {
		buyer = userID
	}
	// The draft is frozen, so the live cart must be cleared explicitly.
	if err := s.carts.Clear(ctx, buyer); err != nil {
		return domain.Order{}, fmt.Errorf("clear cart: %w", err)
	}
	if err := s.repo.SaveConversation(ctx, c); err != nil {
		return domain.Order{}, fmt.Errorf("save dialog: %w", err)
	}

	order := domain.Order{
		ID:          s.newID(),
		ChatID:      chatID,
		UserID:      buyer,
		Items:       draft.Items,
		TotalCents:  domain.ItemsTotal(draft.Items),
		Phone:       draft.Phone,
		Address:     draft.Address,
		ConfirmedAt: s.now().UTC(),
	}
	s.logger.WithFields(logrus.Fields{
		"chat_id":  chatID,
		"user_id":  buyer,
		"order_id": order.ID,
		"total":    domain.FormatPrice(order.TotalCents),
	}).Info("checkout: order placed")
	return order, nil
}

// CancelOrder answers a "cancel order" button. Any checkout in progress is
// dropped without touching the cart. With no checkout in progress the button
// is stale and ErrMalformedConfirmation is returned.
func (s *Service) CancelOrder(ctx context.Context, chatID int64) error {
	previous, err := s.Cancel(ctx, chatID)
	if err != nil {
		return err
	}
	if previous == domain.StateIdle {
		return domain.ErrMalformedConfirmation
	}
	return nil
}

// Cancel abandons any checkout in progress, whatever its state, and returns
// the state it was in.
func (s *Service) Cancel(ctx context.Context, chatID int64) (domain.DialogState, error) {
	var previous domain.DialogState
	err := s.update(ctx, chatID, func(d *domain.Dialog) error {
		previous = d.CurrentState()
		reset(d)
		return nil
	})
	return previous, err
}

// update loads the dialog, applies fn and saves the result. Nothing is saved
// when fn fails.
func (s *Service) update(ctx context.Context, chatID int64, fn func(*domain.Dialog) error) error {
	unlock := s.locks.Lock(chatKey(chatID))
	defer unlock()

	c, err := s.repo.GetConversation(ctx, chatID)
	if err != nil {
		return fmt.Errorf("load dialog: %w", err)
	}
	if err := fn(&c.Dialog); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	if err := s.repo.SaveConversation(ctx, c); err != nil {
		return fmt.Errorf("save dialog: %w", err)
	}
	return nil
}

func (s *Service) log(chatID int64, d *domain.Dialog) logrus.FieldLogger {
	return s.logger.WithFields(logrus.Fields{"chat_id": chatID, "state": d.CurrentState()})
}

func chatKey(chatID int64) string {
	return fmt.Sprintf("chat:%d", chatID)
}
