package session

import (
	"context"
	"sync"

	"chatshop/internal/domain"
)

type memoryRepo struct {
	mu            sync.RWMutex
	shoppers      map[int64]*domain.Shopper
	conversations map[int64]*domain.Conversation
}

// NewMemory returns a process-local repository. Values are copied on the way
// in and out so callers never share state through it.
func NewMemory() Repository {
	return &memoryRepo{
		shoppers:      make(map[int64]*domain.Shopper),
		conversations: make(map[int64]*domain.Conversation),
	}
}

func (r *memoryRepo) GetShopper(_ context.Context, userID int64) (*domain.Shopper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.shoppers[userID]
	if !ok {
		return newShopper(userID), nil
	}
	return cloneShopper(s), nil
}

func (r *memoryRepo) SaveShopper(_ context.Context, s *domain.Shopper) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shoppers[s.UserID] = cloneShopper(s)
	return nil
}

func (r *memoryRepo) GetConversation(_ context.Context, chatID int64) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conversations[chatID]
	if !ok {
		return newConversation(chatID), nil
	}
	return cloneConversation(c), nil
}

func (r *memoryRepo) SaveConversation(_ context.Context, c *domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conversations[c.ChatID] = cloneConversation(c)
	return nil
}

func (r *memoryRepo) Ping(context.Context) error {
	return nil
}
