package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/hackhub/internal/event"
	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/store"
)

// Fixed fallbacks for display helpers when no name is available. They are
// derived from the guest identity and shown to anonymous visitors.
const (
	FallbackInitials  = "AT"
	FallbackFirstName = "Alex"
)

// ProfileService reads and writes the standalone profile record.
//
// Reads resolve through three tiers: the standalone record if one has been
// saved, a minimal profile synthesized from the session for signed-in users
// who haven't saved yet, and the fixed guest default otherwise. Each tier
// changes what new vs. returning vs. anonymous users see, so the order is
// load-bearing.
type ProfileService struct {
	kv     store.KV
	auth   *AuthService
	bus    *event.Bus
	logger *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(kv store.KV, auth *AuthService, bus *event.Bus, logger *slog.Logger) *ProfileService {
	return &ProfileService{kv: kv, auth: auth, bus: bus, logger: logger}
}

// Get returns the current profile through the three-tier fallback.
func (s *ProfileService) Get(ctx context.Context) (model.Profile, error) {
	// Tier one keys off record existence, not field contents: an anonymous
	// save carrying only skills or interests still wins over the session
	// and guest tiers.
	var saved model.Profile
	found, err := store.ReadJSONFound(ctx, s.kv, s.logger, store.KeyProfile, &saved)
	if err != nil {
		return model.Profile{}, err
	}
	if found {
		if saved.Skills == nil {
			saved.Skills = []string{}
		}
		if saved.Interests == nil {
			saved.Interests = []string{}
		}
		return saved, nil
	}

	session, err := s.auth.CurrentSession(ctx)
	if err != nil {
		return model.Profile{}, err
	}
	if session != nil {
		return model.NewProfile(session.Name, session.Email, "", ""), nil
	}

	return model.GuestProfile(), nil
}

// Save persists the profile. With an active session this delegates to the
// credential store's UpdateProfile so both profile locations stay in sync;
// anonymous saves write only the standalone record.
func (s *ProfileService) Save(ctx context.Context, profile model.Profile) error {
	session, err := s.auth.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if session != nil {
		return s.auth.UpdateProfile(ctx, profile)
	}

	if err := store.WriteJSON(ctx, s.kv, store.KeyProfile, profile); err != nil {
		return err
	}
	s.bus.Publish(event.ProfileUpdated, profile)
	return nil
}

// IsComplete reports whether the profile has the three fields the rest of
// the app considers mandatory: name, email, and college.
func (s *ProfileService) IsComplete(ctx context.Context) (bool, error) {
	profile, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return profile.Name != "" && profile.Email != "" && profile.College != "", nil
}

// Initials returns the first letter of each of the first two
// space-separated name tokens, uppercased. Empty names get the fixed
// fallback.
func Initials(name string) string {
	if name == "" {
		return FallbackInitials
	}

	var b strings.Builder
	for i, token := range strings.Fields(name) {
		if i == 2 {
			break
		}
		first := []rune(token)[0]
		b.WriteString(strings.ToUpper(string(first)))
	}
	if b.Len() == 0 {
		return FallbackInitials
	}
	return b.String()
}

// FirstName returns the first space-separated token of the name, or the
// fixed fallback when the name is empty.
func FirstName(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return FallbackFirstName
	}
	return tokens[0]
}
