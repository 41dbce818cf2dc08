package session

import (
	"context"

	"chatshop/internal/domain"
)

// Repository stores user-keyed shoppers and chat-keyed conversations in two
// separate key spaces. Get methods never fail with not-found: a fresh zero
// value for the key is returned instead.
type Repository interface {
	GetShopper(ctx context.Context, userID int64) (*domain.Shopper, error)
	SaveShopper(ctx context.Context, s *domain.Shopper) error
	GetConversation(ctx context.Context, chatID int64) (*domain.Conversation, error)
	SaveConversation(ctx context.Context, c *domain.Conversation) error
	Ping(ctx context.Context) error
}

func newShopper(userID int64) *domain.Shopper {
	return &domain.Shopper{UserID: userID}
}

func newConversation(chatID int64) *domain.Conversation {
	return &domain.Conversation{ChatID: chatID, Dialog: domain.Dialog{State: domain.StateIdle}}
}

func cloneShopper(s *domain.Shopper) *domain.Shopper {
	out := *s
	out.Cart = s.Cart.Clone()
	return &out
}

func cloneConversation(c *domain.Conversation) *domain.Conversation {
	out := *c
	if c.Dialog.Draft.Items != nil {
		out.Dialog.Draft.Items = make([]domain.CartItem, len(c.Dialog.Draft.Items))
		copy(out.Dialog.Draft.Items, c.Dialog.Draft.Items)
	}
	return &out
}
