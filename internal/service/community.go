package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/event"
	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/store"
)

// dateLayout is the wire format for deadline dates ("2025-01-10").
const dateLayout = "2006-01-02"

// CommunityService manages the global community registry: creation, the
// embedded chat log, and the embedded deadline tracker.
//
// Membership itself lives on the joining user's aggregate record (see
// UserDataService) — joining copies the community into the aggregate at
// that moment, and the copy does not track later registry edits.
type CommunityService struct {
	kv       store.KV
	userData *UserDataService
	bus      *event.Bus
	logger   *slog.Logger
}

// NewCommunityService creates a CommunityService.
func NewCommunityService(kv store.KV, userData *UserDataService, bus *event.Bus, logger *slog.Logger) *CommunityService {
	return &CommunityService{kv: kv, userData: userData, bus: bus, logger: logger}
}

// CreateCommunityInput is the form payload for Create. TeamMembers is the
// raw comma-separated string from the form.
type CreateCommunityInput struct {
	CommunityName       string `json:"communityName"`
	HackathonName       string `json:"hackathonName"`
	ProjectDomain       string `json:"projectDomain"`
	ProjectName         string `json:"projectName"`
	Description         string `json:"description"`
	TeamMembers         string `json:"teamMembers"`
	NumberOfMembers     int    `json:"numberOfMembers"`
	HackathonURL        string `json:"hackathonUrl"`
	CommunityGuidelines string `json:"communityGuidelines"`
	ContactEmail        string `json:"contactEmail"`
}

// Create validates the input and appends a new community to the registry.
// Community name, hackathon name, project domain, and project name are all
// required; the member list is split on commas, trimmed, and cleared of
// empty entries.
func (s *CommunityService) Create(ctx context.Context, input CreateCommunityInput) (*model.Community, error) {
	if input.CommunityName == "" || input.HackathonName == "" ||
		input.ProjectDomain == "" || input.ProjectName == "" {
		return nil, apperror.ValidationFailed("", "Please fill all required fields.")
	}

	community := model.Community{
		ID:                  xid.New().String(),
		CommunityName:       input.CommunityName,
		HackathonName:       input.HackathonName,
		ProjectDomain:       input.ProjectDomain,
		ProjectName:         input.ProjectName,
		Description:         input.Description,
		HackathonURL:        input.HackathonURL,
		CommunityGuidelines: input.CommunityGuidelines,
		ContactEmail:        input.ContactEmail,
		NumberOfMembers:     input.NumberOfMembers,
		Members:             splitMembers(input.TeamMembers),
		Messages:            []model.Message{},
		Deadlines:           []model.Deadline{},
		CreatedAt:           time.Now(),
	}

	communities, err := s.loadCommunities(ctx)
	if err != nil {
		return nil, err
	}
	communities = append(communities, community)

	if err := store.WriteJSON(ctx, s.kv, store.KeyCommunities, communities); err != nil {
		return nil, fmt.Errorf("service/community: saving registry: %w", err)
	}

	s.logger.Info("community created",
		slog.String("id", community.ID),
		slog.String("name", community.CommunityName),
	)

	return &community, nil
}

// List returns every community in the registry.
func (s *CommunityService) List(ctx context.Context) ([]model.Community, error) {
	return s.loadCommunities(ctx)
}

// GetByID returns one community from the registry.
func (s *CommunityService) GetByID(ctx context.Context, id string) (*model.Community, error) {
	communities, err := s.loadCommunities(ctx)
	if err != nil {
		return nil, err
	}
	for i := range communities {
		if communities[i].ID == id {
			return &communities[i], nil
		}
	}
	return nil, apperror.NotFound("community", id)
}

// Join copies the community into the session user's aggregate, stamped
// with the join time. Joining a community the user already belongs to
// fails with a conflict and changes nothing.
func (s *CommunityService) Join(ctx context.Context, session *model.Session, communityID string) error {
	if session == nil {
		return apperror.Unauthorized("User not authenticated")
	}

	community, err := s.GetByID(ctx, communityID)
	if err != nil {
		return err
	}

	return s.userData.JoinCommunity(ctx, session.UserID, *community)
}

// Leave removes the community from the session user's aggregate. Leaving a
// community the user never joined succeeds and changes nothing.
func (s *CommunityService) Leave(ctx context.Context, session *model.Session, communityID string) error {
	if session == nil {
		return apperror.Unauthorized("User not authenticated")
	}
	return s.userData.LeaveCommunity(ctx, session.UserID, communityID)
}

// PostMessage appends a chat message to the community and persists the
// whole updated record back to the registry. The acting user's
// contribution counter is incremented as a side effect. Sender defaults to
// the session's display name.
func (s *CommunityService) PostMessage(ctx context.Context, session *model.Session, communityID, text, sender string) (*model.Message, error) {
	if session == nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("text", "Message text is required")
	}
	if sender == "" {
		sender = session.Name
	}

	message := model.Message{
		ID:        xid.New().String(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now(),
	}

	community, err := s.updateCommunity(ctx, communityID, func(c *model.Community) {
		c.Messages = append(c.Messages, message)
	})
	if err != nil {
		return nil, err
	}

	if err := s.userData.RecordContribution(ctx, session.UserID, model.ContributionRecord{
		Community: community.CommunityName,
		Timestamp: message.Timestamp,
	}); err != nil {
		return nil, err
	}

	return &message, nil
}

// AddDeadline appends a deadline to the community's tracker and publishes
// the deadlines-updated notification. Priority defaults to normal.
func (s *CommunityService) AddDeadline(ctx context.Context, session *model.Session, communityID, title, date, priority string) (*model.Deadline, error) {
	if session == nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	title = strings.TrimSpace(title)
	if title == "" || date == "" {
		return nil, apperror.ValidationFailed("", "Deadline title and date are required")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, apperror.ValidationFailed("date", "Deadline date must be in YYYY-MM-DD format")
	}
	if priority == "" {
		priority = model.PriorityNormal
	}
	if !model.ValidPriority(priority) {
		return nil, apperror.ValidationFailed("priority", "Priority must be low, normal, high, or urgent")
	}

	deadline := model.Deadline{
		ID:        xid.New().String(),
		Title:     title,
		Date:      date,
		Priority:  priority,
		CreatedAt: time.Now(),
	}

	community, err := s.updateCommunity(ctx, communityID, func(c *model.Community) {
		c.Deadlines = append(c.Deadlines, deadline)
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(event.DeadlinesUpdate, event.DeadlinesPayload{
		CommunityID: community.ID,
		Deadlines:   community.Deadlines,
	})

	return &deadline, nil
}

// AllDeadlines flattens every community's deadline list across the whole
// registry — not just the caller's joined set — tags each entry with its
// owning community, and sorts ascending by date.
func (s *CommunityService) AllDeadlines(ctx context.Context) ([]model.TaggedDeadline, error) {
	communities, err := s.loadCommunities(ctx)
	if err != nil {
		return nil, err
	}

	all := []model.TaggedDeadline{}
	for _, c := range communities {
		for _, d := range c.Deadlines {
			all = append(all, model.TaggedDeadline{
				Deadline:      d,
				CommunityID:   c.ID,
				CommunityName: c.CommunityName,
			})
		}
	}

	// Dates are ISO "2006-01-02" strings, so lexicographic order is
	// chronological order.
	slices.SortStableFunc(all, func(a, b model.TaggedDeadline) int {
		return strings.Compare(a.Date, b.Date)
	})

	return all, nil
}

// updateCommunity applies mutate to the registry copy of the community and
// persists the whole registry back.
func (s *CommunityService) updateCommunity(ctx context.Context, id string, mutate func(*model.Community)) (*model.Community, error) {
	communities, err := s.loadCommunities(ctx)
	if err != nil {
		return nil, err
	}

	for i := range communities {
		if communities[i].ID == id {
			mutate(&communities[i])
			if err := store.WriteJSON(ctx, s.kv, store.KeyCommunities, communities); err != nil {
				return nil, fmt.Errorf("service/community: saving registry: %w", err)
			}
			return &communities[i], nil
		}
	}
	return nil, apperror.NotFound("community", id)
}

func (s *CommunityService) loadCommunities(ctx context.Context) ([]model.Community, error) {
	communities := []model.Community{}
	if err := store.ReadJSON(ctx, s.kv, s.logger, store.KeyCommunities, &communities); err != nil {
		return nil, err
	}
	return communities, nil
}

// splitMembers turns a comma-separated member string into a clean list:
// split, trim, drop empties.
func splitMembers(raw string) []string {
	members := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			members = append(members, trimmed)
		}
	}
	return members
}
