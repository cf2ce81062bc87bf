package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/event"
	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/service"
	"github.com/sakif/hackhub/internal/store"
)

func TestUserDataEmptyForGuest(t *testing.T) {
	env := newTestEnv(t)

	data, err := env.userData.UserData(context.Background(), "")
	require.NoError(t, err)

	assert.Empty(t, data.Communities)
	assert.Empty(t, data.Projects)
	assert.Empty(t, data.Hackathons)
	assert.Zero(t, data.Contributions)
	assert.Zero(t, data.ProfileViews)
}

func TestUserDataDefaultsOnCorruptRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.kv.Put(ctx, store.UserDataKey("user-1"), []byte("%%% not json")))

	data, err := env.userData.UserData(ctx, "user-1")
	require.NoError(t, err, "a corrupt aggregate reads as empty, not as an error")
	assert.Empty(t, data.Communities)

	// And the next write replaces the corrupt record cleanly.
	_, err = env.userData.AddProject(ctx, "user-1", service.ProjectInput{Name: "Fresh Start"})
	require.NoError(t, err)

	data, err = env.userData.UserData(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, data.Projects, 1)
}

func TestAddProjectValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.userData.AddProject(context.Background(), "user-1", service.ProjectInput{})
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestIncrementProfileViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.userData.IncrementProfileViews(ctx, "user-1"))
	require.NoError(t, env.userData.IncrementProfileViews(ctx, "user-1"))

	stats, err := env.userData.ActivityStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ProfileViews)
}

func TestSavePublishesUserDataUpdated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var payloads []model.UserData
	env.bus.Subscribe(event.UserDataUpdated, func(ev event.Event) {
		payloads = append(payloads, ev.Payload.(model.UserData))
	})

	_, err := env.userData.AddProject(ctx, "user-1", service.ProjectInput{Name: "Orbit"})
	require.NoError(t, err)

	require.Len(t, payloads, 1)
	assert.Len(t, payloads[0].Projects, 1)
}

func TestClearUserData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.userData.AddProject(ctx, "user-1", service.ProjectInput{Name: "Orbit"})
	require.NoError(t, err)

	require.NoError(t, env.userData.ClearUserData(ctx, "user-1"))

	stats, err := env.userData.ActivityStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Zero(t, stats.ProjectsCreated)

	// Clearing an already-empty record succeeds.
	require.NoError(t, env.userData.ClearUserData(ctx, "user-1"))
}

func TestUserDataIsolatedPerUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.userData.AddProject(ctx, "user-1", service.ProjectInput{Name: "Mine"})
	require.NoError(t, err)

	data, err := env.userData.UserData(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, data.Projects)
}
