package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chatshop/internal/domain"
	"chatshop/internal/logging"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type redisRepo struct {
	client *redis.Client
	ttl    time.Duration
	logger logrus.FieldLogger
}

// NewRedis stores sessions as JSON values. A positive ttl expires idle
// sessions; it is refreshed on every save.
func NewRedis(client *redis.Client, ttl time.Duration, logger logrus.FieldLogger) Repository {
	return &redisRepo{client: client, ttl: ttl, logger: logging.OrDiscard(logger)}
}

func (r *redisRepo) GetShopper(ctx context.Context, userID int64) (*domain.Shopper, error) {
	s := newShopper(userID)
	found, err := r.load(ctx, shopperKey(userID), s)
	if err != nil {
		return nil, err
	}
	if !found {
		return newShopper(userID), nil
	}
	s.UserID = userID
	return s, nil
}

func (r *redisRepo) SaveShopper(ctx context.Context, s *domain.Shopper) error {
	return r.store(ctx, shopperKey(s.UserID), s)
}

func (r *redisRepo) GetConversation(ctx context.Context, chatID int64) (*domain.Conversation, error) {
	c := newConversation(chatID)
	found, err := r.load(ctx, conversationKey(chatID), c)
	if err != nil {
		return nil, err
	}
	if !found {
		return newConversation(chatID), nil
	}
	c.ChatID = chatID
	return c, nil
}

func (r *redisRepo) SaveConversation(ctx context.Context, c *domain.Conversation) error {
	return r.store(ctx, conversationKey(c.ChatID), c)
}

func (r *redisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisRepo) load(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("session repo: discarding unreadable session")
		return false, nil
	}
	return true, nil
}

func (r *redisRepo) store(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func shopperKey(userID int64) string {
	return fmt.Sprintf("shopper:%d", userID)
}

func conversationKey(chatID int64) string {
	return fmt.Sprintf("conversation:%d", chatID)
}
