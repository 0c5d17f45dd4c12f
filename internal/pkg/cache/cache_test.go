package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailscout/profile_go_server/internal/model"
)

func setupCache(t *testing.T) (*ProfileCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewProfileCache(client), mr
}

func testProfile() *model.Profile {
	expiry := time.Now().Add(7 * 24 * time.Hour).Truncate(time.Second)
	return &model.Profile{
		ID:            "auth0|u1",
		Email:         "jo@x.com",
		FullName:      "Jo",
		Plan:          "free",
		CreditsFind:   25,
		CreditsVerify: 25,
		PlanExpiry:    &expiry,
	}
}

func TestProfileCache_SetGet(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	profile := testProfile()
	require.NoError(t, c.Set(ctx, profile))

	got, err := c.Get(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID)
	assert.Equal(t, profile.Email, got.Email)
	assert.Equal(t, profile.CreditsFind, got.CreditsFind)
	require.NotNil(t, got.PlanExpiry)
	assert.True(t, profile.PlanExpiry.Equal(*got.PlanExpiry))
}

func TestProfileCache_Get_Miss(t *testing.T) {
	c, _ := setupCache(t)

	_, err := c.Get(context.Background(), "auth0|missing")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestProfileCache_Invalidate(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	profile := testProfile()
	require.NoError(t, c.Set(ctx, profile))
	require.NoError(t, c.Invalidate(ctx, profile.ID))

	_, err := c.Get(ctx, profile.ID)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestProfileCache_Expires(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	profile := testProfile()
	require.NoError(t, c.Set(ctx, profile))

	// 快进超过 TTL
	mr.FastForward(defaultTTL + time.Second)

	_, err := c.Get(ctx, profile.ID)
	assert.ErrorIs(t, err, ErrMiss)
}
