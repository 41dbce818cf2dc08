package session

import (
	"context"
	"testing"
	"time"

	"chatshop/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, ttl, nil), mr
}

func TestRedis_ShopperRoundTrip(t *testing.T) {
	repo, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	s, err := repo.GetShopper(ctx, 5)
	require.NoError(t, err)
	assert.True(t, s.Cart.Empty())

	s.Cart.Add("p1", 2)
	s.Cart.Add("p3", 1)
	s.Cursor = 1
	require.NoError(t, repo.SaveShopper(ctx, s))
	assert.True(t, mr.Exists("shopper:5"))

	got, err := repo.GetShopper(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.UserID)
	assert.Equal(t, 1, got.Cursor)
	require.Len(t, got.Cart.Lines, 2)
	assert.Equal(t, "p1", got.Cart.Lines[0].ProductID)
	assert.Equal(t, 2, got.Cart.Lines[0].Quantity)
}

func TestRedis_ConversationRoundTrip(t *testing.T) {
	repo, _ := setupTestRedis(t, 0)
	ctx := context.Background()

	c, err := repo.GetConversation(ctx, -100)
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, c.Dialog.CurrentState())

	c.Dialog = domain.Dialog{
		State: domain.StateAwaitingAddress,
		Draft: domain.DraftOrder{
			Items: []domain.CartItem{{Product: domain.Product{ID: "p2", Name: "B", PriceCents: 2550}, Quantity: 1}},
			Phone: "+12345678901",
		},
	}
	require.NoError(t, repo.SaveConversation(ctx, c))

	got, err := repo.GetConversation(ctx, -100)
	require.NoError(t, err)
	assert.Equal(t, domain.StateAwaitingAddress, got.Dialog.State)
	assert.Equal(t, "+12345678901", got.Dialog.Draft.Phone)
	require.Len(t, got.Dialog.Draft.Items, 1)
	assert.Equal(t, int64(2550), got.Dialog.Draft.Items[0].Product.PriceCents)
}

func TestRedis_TTLExpiresSession(t *testing.T) {
	repo, mr := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	s := &domain.Shopper{UserID: 9}
	s.Cart.Add("p1", 1)
	require.NoError(t, repo.SaveShopper(ctx, s))
	assert.Equal(t, time.Minute, mr.TTL("shopper:9"))

	mr.FastForward(2 * time.Minute)

	got, err := repo.GetShopper(ctx, 9)
	require.NoError(t, err)
	assert.True(t, got.Cart.Empty())
}

func TestRedis_UnreadableValueStartsFresh(t *testing.T) {
	repo, mr := setupTestRedis(t, 0)
	require.NoError(t, mr.Set("conversation:3", "{not json"))

	got, err := repo.GetConversation(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, got.Dialog.CurrentState())
}

func TestRedis_PingFailsWhenServerDown(t *testing.T) {
	repo, mr := setupTestRedis(t, 0)
	require.NoError(t, repo.Ping(context.Background()))
	mr.Close()
	assert.Error(t, repo.Ping(context.Background()))
}
