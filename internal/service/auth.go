// Package service contains the business logic layer: the credential,
// profile, community, and per-user aggregate stores. Handlers parse HTTP
// and call in here; services validate, mutate the key-value store, and
// publish bus notifications. Services never touch HTTP.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/event"
	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/store"
)

// MinPasswordLength is the only strength rule applied to passwords.
const MinPasswordLength = 6

// emailPattern is deliberately loose: something, an @, something, a dot,
// something. It matches what the original registration form accepted.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService is the credential store: it manages the account list and the
// singleton session record.
//
// Passwords are stored and compared in plaintext. That is the documented
// behavior of the platform this service is compatible with, not an
// oversight; hardening it would break parity with existing stored data.
type AuthService struct {
	kv     store.KV
	bus    *event.Bus
	logger *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(kv store.KV, bus *event.Bus, logger *slog.Logger) *AuthService {
	return &AuthService{kv: kv, bus: bus, logger: logger}
}

// RegisterInput is the candidate account data for Register.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	College  string `json:"college"`
}

// Register validates the candidate and appends a new account.
//
// Failure reasons, in check order: missing required fields, syntactically
// invalid email, password shorter than six characters, email already
// registered (linear scan — the account list is small by construction).
// On success the new account's password-stripped summary is returned.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.AccountSummary, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperror.ValidationFailed("", "Please fill all required fields")
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, apperror.ValidationFailed("email", "Please enter a valid email address")
	}
	if len(input.Password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password", "Password must be at least 6 characters long")
	}

	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	for _, acc := range accounts {
		if acc.Email == input.Email {
			return nil, apperror.Conflict("Email already registered. Please sign in.")
		}
	}

	account := model.Account{
		ID:           xid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		Password:     input.Password,
		RegisteredAt: time.Now(),
		ProfileData:  model.NewProfile(input.Name, input.Email, input.Phone, input.College),
	}
	accounts = append(accounts, account)

	if err := store.WriteJSON(ctx, s.kv, store.KeyAccounts, accounts); err != nil {
		return nil, fmt.Errorf("service/auth: saving accounts: %w", err)
	}

	s.logger.Info("account registered",
		slog.String("userID", account.ID),
		slog.String("email", account.Email),
	)

	summary := account.Sanitize()
	return &summary, nil
}

// SignIn looks the account up by email and compares the password with an
// exact string match. On success it writes the session record, copies the
// account's embedded profile to the standalone profile key, and publishes
// the signed-in notification. Failures never mutate session state.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	if email == "" || password == "" {
		return nil, apperror.ValidationFailed("", "Please enter email and password")
	}

	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	var account *model.Account
	for i := range accounts {
		if accounts[i].Email == email {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return nil, apperror.NotFoundMessage("No account found with this email. Please register first.")
	}
	if account.Password != password {
		return nil, apperror.Unauthorized("Incorrect password. Please try again.")
	}

	session := model.Session{
		UserID:     account.ID,
		Email:      account.Email,
		Name:       account.Name,
		SignedInAt: time.Now(),
	}

	if err := store.WriteJSON(ctx, s.kv, store.KeySession, session); err != nil {
		return nil, fmt.Errorf("service/auth: saving session: %w", err)
	}
	if err := store.WriteJSON(ctx, s.kv, store.KeyProfile, account.ProfileData); err != nil {
		return nil, fmt.Errorf("service/auth: saving profile copy: %w", err)
	}

	s.logger.Info("user signed in", slog.String("userID", session.UserID))
	s.bus.Publish(event.SignedIn, &session)

	return &session, nil
}

// SignOut deletes the session record and publishes the signed-out
// notification. Signing out while already signed out succeeds.
func (s *AuthService) SignOut(ctx context.Context) error {
	if err := s.kv.Delete(ctx, store.KeySession); err != nil {
		return fmt.Errorf("service/auth: clearing session: %w", err)
	}

	s.logger.Info("user signed out")
	s.bus.Publish(event.SignedOut, nil)
	return nil
}

// CurrentSession returns the active session, or nil when nobody is
// signed in.
func (s *AuthService) CurrentSession(ctx context.Context) (*model.Session, error) {
	var session model.Session
	if err := store.ReadJSON(ctx, s.kv, s.logger, store.KeySession, &session); err != nil {
		return nil, err
	}
	if session.UserID == "" {
		return nil, nil
	}
	return &session, nil
}

// IsAuthenticated reports whether a session record exists. Storage errors
// read as "not signed in".
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	session, err := s.CurrentSession(ctx)
	return err == nil && session != nil
}

// UpdateProfile overwrites the signed-in user's profile in both locations:
// the embedded copy on their account record and the standalone profile
// record. Both writes carry identical data; readers may use either.
// Publishes the profile-updated notification with the new payload.
func (s *AuthService) UpdateProfile(ctx context.Context, profile model.Profile) error {
	session, err := s.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return apperror.Unauthorized("No user signed in")
	}

	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return err
	}

	for i := range accounts {
		if accounts[i].ID == session.UserID {
			accounts[i].ProfileData = profile
			if err := store.WriteJSON(ctx, s.kv, store.KeyAccounts, accounts); err != nil {
				return fmt.Errorf("service/auth: saving accounts: %w", err)
			}
			break
		}
	}

	if err := store.WriteJSON(ctx, s.kv, store.KeyProfile, profile); err != nil {
		return fmt.Errorf("service/auth: saving profile: %w", err)
	}

	s.logger.Info("profile updated", slog.String("userID", session.UserID))
	s.bus.Publish(event.ProfileUpdated, profile)
	return nil
}

// loadAccounts reads the account list, defaulting to empty on a missing or
// corrupt record.
func (s *AuthService) loadAccounts(ctx context.Context) ([]model.Account, error) {
	accounts := []model.Account{}
	if err := store.ReadJSON(ctx, s.kv, s.logger, store.KeyAccounts, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}
