package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chatshop/internal/domain"
	"chatshop/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger logrus.FieldLogger
}

func NewPostgres(pool *pgxpool.Pool, logger logrus.FieldLogger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrDiscard(logger)}
}

func (r *postgresRepo) GetShopper(ctx context.Context, userID int64) (*domain.Shopper, error) {
	const q = `
SELECT cart, browse_index
FROM shoppers
WHERE user_id = $1
`
	var (
		cartJSON []byte
		cursor   int
	)
	err := r.pool.QueryRow(ctx, q, userID).Scan(&cartJSON, &cursor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return newShopper(userID), nil
		}
		r.logger.WithError(err).WithField("user_id", userID).Error("session repo: get shopper")
		return nil, err
	}
	s := newShopper(userID)
	s.Cursor = cursor
	if err := json.Unmarshal(cartJSON, &s.Cart); err != nil {
		return nil, fmt.Errorf("decode cart for user %d: %w", userID, err)
	}
	return s, nil
}

func (r *postgresRepo) SaveShopper(ctx context.Context, s *domain.Shopper) error {
	const q = `
INSERT INTO shoppers (user_id, cart, browse_index, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id) DO UPDATE SET
    cart = EXCLUDED.cart,
    browse_index = EXCLUDED.browse_index,
    updated_at = EXCLUDED.updated_at
`
	cartJSON, err := json.Marshal(s.Cart)
	if err != nil {
		return fmt.Errorf("encode cart for user %d: %w", s.UserID, err)
	}
	if _, err := r.pool.Exec(ctx, q, s.UserID, cartJSON, s.Cursor); err != nil {
		r.logger.WithError(err).WithField("user_id", s.UserID).Error("session repo: save shopper")
		return err
	}
	return nil
}

func (r *postgresRepo) GetConversation(ctx context.Context, chatID int64) (*domain.Conversation, error) {
	const q = `
SELECT state, draft
FROM conversations
WHERE chat_id = $1
`
	var (
		state     string
		draftJSON []byte
	)
	err := r.pool.QueryRow(ctx, q, chatID).Scan(&state, &draftJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return newConversation(chatID), nil
		}
		r.logger.WithError(err).WithField("chat_id", chatID).Error("session repo: get conversation")
		return nil, err
	}
	c := newConversation(chatID)
	c.Dialog.State = domain.DialogState(state)
	if err := json.Unmarshal(draftJSON, &c.Dialog.Draft); err != nil {
		return nil, fmt.Errorf("decode draft for chat %d: %w", chatID, err)
	}
	return c, nil
}

func (r *postgresRepo) SaveConversation(ctx context.Context, c *domain.Conversation) error {
	const q = `
INSERT INTO conversations (chat_id, state, draft, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (chat_id) DO UPDATE SET
    state = EXCLUDED.state,
    draft = EXCLUDED.draft,
    updated_at = EXCLUDED.updated_at
`
	draftJSON, err := json.Marshal(c.Dialog.Draft)
	if err != nil {
		return fmt.Errorf("encode draft for chat %d: %w", c.ChatID, err)
	}
	if _, err := r.pool.Exec(ctx, q, c.ChatID, string(c.Dialog.CurrentState()), draftJSON); err != nil {
		r.logger.WithError(err).WithField("chat_id", c.ChatID).Error("session repo: save conversation")
		return err
	}
	return nil
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
