package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/service"
)

func TestHackathonCatalog(t *testing.T) {
	env := newTestEnv(t)
	hackathons := service.NewHackathonService(env.userData, testLogger())

	catalog := hackathons.List()
	require.Len(t, catalog, 5)
	assert.Equal(t, "Cosmohack1", catalog[0].Name)
	assert.Equal(t, "ETHIndia 2025", catalog[4].Name)

	entry, err := hackathons.GetByID("4")
	require.NoError(t, err)
	assert.Equal(t, "MLH HackCon 2025", entry.Name)

	_, err = hackathons.GetByID("999")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestHackathonRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	hackathons := service.NewHackathonService(env.userData, testLogger())

	userID := env.register(t, validRegistration())
	session, _ := env.auth.CurrentSession(ctx)

	entry, err := hackathons.Register(ctx, session, "2")
	require.NoError(t, err)
	assert.Equal(t, "AlgoSSTrike", entry.Name)

	data, err := env.userData.UserData(ctx, userID)
	require.NoError(t, err)
	require.Len(t, data.Hackathons, 1)
	assert.Equal(t, "2", data.Hackathons[0].ID)
	assert.False(t, data.Hackathons[0].RegisteredAt.IsZero())
}

func TestHackathonRegisterTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	hackathons := service.NewHackathonService(env.userData, testLogger())

	env.register(t, validRegistration())
	session, _ := env.auth.CurrentSession(ctx)

	_, err := hackathons.Register(ctx, session, "2")
	require.NoError(t, err)

	_, err = hackathons.Register(ctx, session, "2")
	require.ErrorIs(t, err, apperror.ErrConflict)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Already registered for this hackathon", appErr.Message)
}

func TestHackathonRegisterRequiresSession(t *testing.T) {
	env := newTestEnv(t)
	hackathons := service.NewHackathonService(env.userData, testLogger())

	_, err := hackathons.Register(context.Background(), nil, "1")
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestHackathonRegisterUnknownID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	hackathons := service.NewHackathonService(env.userData, testLogger())

	env.register(t, validRegistration())
	session, _ := env.auth.CurrentSession(ctx)

	_, err := hackathons.Register(ctx, session, "404")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
