package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food_delivery/internal/model"
	"food_delivery/internal/repository"
)

func TestSession_StartOverwrites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.sessions.Start(ctx, model.User{Phone: "1111111111", SecretHash: "h"}))
	require.NoError(t, env.sessions.Start(ctx, model.User{
		Phone:       "2222222222",
		SecretHash:  "h2",
		DisplayName: "Ravi",
		Address:     model.Address{City: "Pune"},
	}))

	session, err := env.sessions.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, model.Session{Phone: "2222222222", DisplayName: "Ravi", Address: model.Address{City: "Pune"}}, *session)

	raw, err := env.store.Get(ctx, repository.KeySession)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secretHash")
}

func TestSession_EndIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.loginAs(t, "1111111111")

	require.NoError(t, env.sessions.End(ctx))
	require.NoError(t, env.sessions.End(ctx))

	session, err := env.sessions.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSession_CorruptMeansLoggedOut(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.store.Put(ctx, repository.KeySession, []byte(`not json`)))

	session, err := env.sessions.Current(ctx)
	assert.NoError(t, err)
	assert.Nil(t, session)

	_, err = env.sessions.RequireCurrent(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
