package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/event"
	"github.com/sakif/hackhub/internal/service"
	"github.com/sakif/hackhub/internal/store"
	"github.com/sakif/hackhub/internal/store/memory"
)

// testEnv bundles the stores and services most tests need.
type testEnv struct {
	kv          *memory.Store
	bus         *event.Bus
	auth        *service.AuthService
	userData    *service.UserDataService
	profiles    *service.ProfileService
	communities *service.CommunityService
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := testLogger()
	kv := memory.New()
	bus := event.NewBus()

	auth := service.NewAuthService(kv, bus, logger)
	userData := service.NewUserDataService(kv, bus, logger)

	return &testEnv{
		kv:          kv,
		bus:         bus,
		auth:        auth,
		userData:    userData,
		profiles:    service.NewProfileService(kv, auth, bus, logger),
		communities: service.NewCommunityService(kv, userData, bus, logger),
	}
}

func validRegistration() service.RegisterInput {
	return service.RegisterInput{
		Name:     "Priya Sharma",
		Email:    "priya@example.com",
		Password: "secret123",
		Phone:    "9876543210",
		College:  "IIT Delhi",
	}
}

// register creates an account and signs the user in.
func (env *testEnv) register(t *testing.T, input service.RegisterInput) string {
	t.Helper()
	ctx := context.Background()
	summary, err := env.auth.Register(ctx, input)
	require.NoError(t, err)
	_, err = env.auth.SignIn(ctx, input.Email, input.Password)
	require.NoError(t, err)
	return summary.ID
}

func TestRegisterSuccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	summary, err := env.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, "Priya Sharma", summary.Name)
	assert.Equal(t, "priya@example.com", summary.Email)

	// Registration alone must not create a session.
	session, err := env.auth.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*service.RegisterInput)
		message string
	}{
		{
			name:    "missing name",
			mutate:  func(in *service.RegisterInput) { in.Name = "" },
			message: "Please fill all required fields",
		},
		{
			name:    "missing email",
			mutate:  func(in *service.RegisterInput) { in.Email = "" },
			message: "Please fill all required fields",
		},
		{
			name:    "missing password",
			mutate:  func(in *service.RegisterInput) { in.Password = "" },
			message: "Please fill all required fields",
		},
		{
			name:    "bad email",
			mutate:  func(in *service.RegisterInput) { in.Email = "not-an-email" },
			message: "Please enter a valid email address",
		},
		{
			name:    "email missing dot",
			mutate:  func(in *service.RegisterInput) { in.Email = "a@b" },
			message: "Please enter a valid email address",
		},
		{
			name:    "short password",
			mutate:  func(in *service.RegisterInput) { in.Password = "12345" },
			message: "Password must be at least 6 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			input := validRegistration()
			tt.mutate(&input)

			_, err := env.auth.Register(context.Background(), input)
			require.ErrorIs(t, err, apperror.ErrValidation)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	second := validRegistration()
	second.Name = "Someone Else"
	_, err = env.auth.Register(ctx, second)
	require.ErrorIs(t, err, apperror.ErrConflict)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Email already registered. Please sign in.", appErr.Message)
}

func TestSignInSuccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var signedIn bool
	env.bus.Subscribe(event.SignedIn, func(event.Event) { signedIn = true })

	summary, err := env.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	session, err := env.auth.SignIn(ctx, "priya@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, summary.ID, session.UserID)
	assert.Equal(t, "Priya Sharma", session.Name)
	assert.True(t, signedIn, "sign-in should publish the signed-in event")

	// The session record is persisted and re-readable.
	current, err := env.auth.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, summary.ID, current.UserID)

	// The account's embedded profile is copied to the standalone key.
	profile, err := env.profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", profile.Name)
	assert.Equal(t, "IIT Delhi", profile.College)
}

func TestSignInUnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.SignIn(ctx, "ghost@example.com", "secret123")
	require.ErrorIs(t, err, apperror.ErrNotFound)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "No account found with this email. Please register first.", appErr.Message)

	// Failure must not create a session.
	session, err := env.auth.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSignInWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = env.auth.SignIn(ctx, "priya@example.com", "wrong-password")
	require.ErrorIs(t, err, apperror.ErrUnauthorized)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Incorrect password. Please try again.", appErr.Message)

	session, err := env.auth.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session, "failed sign-in must not mutate the session")
}

func TestSignInMissingCredentials(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.SignIn(context.Background(), "", "")
	require.ErrorIs(t, err, apperror.ErrValidation)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Please enter email and password", appErr.Message)
}

func TestSignOut(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var signedOut bool
	env.bus.Subscribe(event.SignedOut, func(event.Event) { signedOut = true })

	env.register(t, validRegistration())
	require.True(t, env.auth.IsAuthenticated(ctx))

	require.NoError(t, env.auth.SignOut(ctx))
	assert.False(t, env.auth.IsAuthenticated(ctx))
	assert.True(t, signedOut)

	// Signing out again is not an error.
	require.NoError(t, env.auth.SignOut(ctx))
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	profile, _ := env.profiles.Get(context.Background())
	err := env.auth.UpdateProfile(context.Background(), profile)
	require.ErrorIs(t, err, apperror.ErrUnauthorized)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "No user signed in", appErr.Message)
}

func TestUpdateProfileDualWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, validRegistration())

	profile, err := env.profiles.Get(ctx)
	require.NoError(t, err)
	profile.College = "NIT Trichy"
	profile.Skills = []string{"Go", "React"}

	require.NoError(t, env.auth.UpdateProfile(ctx, profile))

	// The standalone record reflects the edit.
	got, err := env.profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NIT Trichy", got.College)
	assert.Equal(t, []string{"Go", "React"}, got.Skills)

	// So does the copy embedded in the account: signing in again
	// re-copies it to the standalone key.
	require.NoError(t, env.auth.SignOut(ctx))
	_, err = env.auth.SignIn(ctx, "priya@example.com", "secret123")
	require.NoError(t, err)

	got, err = env.profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NIT Trichy", got.College, "embedded account copy should match the standalone record")
}

func TestAccountsSurviveCorruptRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.kv.Put(ctx, store.KeyAccounts, []byte("{not json")))

	// A corrupt account list reads as empty, so registration proceeds.
	_, err := env.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = env.auth.SignIn(ctx, "priya@example.com", "secret123")
	require.NoError(t, err)
}
