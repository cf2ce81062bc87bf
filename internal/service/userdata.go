package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/event"
	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/store"
)

// UserDataService manages the per-user aggregate record: joined
// communities, created projects, registered hackathons, the two counters,
// and the contribution history.
//
// The aggregate stores point-in-time copies, not references. A community
// joined today keeps today's shape in the aggregate even as the registry
// copy gains messages and deadlines. Statistics and charts are computed
// from these snapshots.
type UserDataService struct {
	kv     store.KV
	bus    *event.Bus
	logger *slog.Logger
}

// NewUserDataService creates a UserDataService.
func NewUserDataService(kv store.KV, bus *event.Bus, logger *slog.Logger) *UserDataService {
	return &UserDataService{kv: kv, bus: bus, logger: logger}
}

// UserData returns the aggregate for a user, with every list present.
// An empty userID yields an empty aggregate rather than an error.
func (s *UserDataService) UserData(ctx context.Context, userID string) (model.UserData, error) {
	data := model.EmptyUserData()
	if userID == "" {
		return data, nil
	}
	if err := store.ReadJSON(ctx, s.kv, s.logger, store.UserDataKey(userID), &data); err != nil {
		return model.UserData{}, err
	}
	data.Normalize()
	return data, nil
}

// JoinCommunity snapshots the community into the user's aggregate, stamped
// with the join time. A second join of the same community id fails with a
// conflict and leaves the aggregate untouched.
func (s *UserDataService) JoinCommunity(ctx context.Context, userID string, community model.Community) error {
	data, err := s.UserData(ctx, userID)
	if err != nil {
		return err
	}

	for _, joined := range data.Communities {
		if joined.ID == community.ID {
			return apperror.Conflict("Already joined this community")
		}
	}

	data.Communities = append(data.Communities, model.JoinedCommunity{
		Community: community,
		JoinedAt:  time.Now(),
	})

	return s.save(ctx, userID, data)
}

// LeaveCommunity removes the community snapshot from the aggregate.
// Leaving a community that isn't there succeeds and changes nothing.
func (s *UserDataService) LeaveCommunity(ctx context.Context, userID, communityID string) error {
	data, err := s.UserData(ctx, userID)
	if err != nil {
		return err
	}

	kept := data.Communities[:0]
	for _, joined := range data.Communities {
		if joined.ID != communityID {
			kept = append(kept, joined)
		}
	}
	data.Communities = kept

	return s.save(ctx, userID, data)
}

// ProjectInput is the payload for AddProject.
type ProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Domain      string `json:"domain"`
}

// AddProject appends a project to the user's aggregate.
func (s *UserDataService) AddProject(ctx context.Context, userID string, input ProjectInput) (*model.Project, error) {
	if input.Name == "" {
		return nil, apperror.ValidationFailed("name", "Project name is required")
	}

	data, err := s.UserData(ctx, userID)
	if err != nil {
		return nil, err
	}

	project := model.Project{
		ID:          xid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Domain:      input.Domain,
		CreatedAt:   time.Now(),
	}
	data.Projects = append(data.Projects, project)

	if err := s.save(ctx, userID, data); err != nil {
		return nil, err
	}
	return &project, nil
}

// RegisterForHackathon stamps the hackathon with the registration time and
// appends it. Registering twice for the same hackathon id fails with a
// conflict.
func (s *UserDataService) RegisterForHackathon(ctx context.Context, userID string, hackathon model.Hackathon) error {
	data, err := s.UserData(ctx, userID)
	if err != nil {
		return err
	}

	for _, joined := range data.Hackathons {
		if joined.ID == hackathon.ID {
			return apperror.Conflict("Already registered for this hackathon")
		}
	}

	data.Hackathons = append(data.Hackathons, model.JoinedHackathon{
		Hackathon:    hackathon,
		RegisteredAt: time.Now(),
	})

	return s.save(ctx, userID, data)
}

// IncrementProfileViews bumps the profile-view counter.
func (s *UserDataService) IncrementProfileViews(ctx context.Context, userID string) error {
	data, err := s.UserData(ctx, userID)
	if err != nil {
		return err
	}
	data.ProfileViews++
	return s.save(ctx, userID, data)
}

// RecordContribution bumps the contribution counter and appends a history
// entry for the recent-activity feed.
func (s *UserDataService) RecordContribution(ctx context.Context, userID string, record model.ContributionRecord) error {
	data, err := s.UserData(ctx, userID)
	if err != nil {
		return err
	}

	data.Contributions++
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	data.ContributionHistory = append(data.ContributionHistory, record)

	return s.save(ctx, userID, data)
}

// ClearUserData deletes the user's aggregate record entirely.
func (s *UserDataService) ClearUserData(ctx context.Context, userID string) error {
	if err := s.kv.Delete(ctx, store.UserDataKey(userID)); err != nil {
		return fmt.Errorf("service/userdata: clearing aggregate: %w", err)
	}
	s.bus.Publish(event.UserDataUpdated, model.EmptyUserData())
	return nil
}

// ActivityStats derives the dashboard's headline numbers from the
// aggregate's list lengths and counters.
func (s *UserDataService) ActivityStats(ctx context.Context, userID string) (model.ActivityStats, error) {
	data, err := s.UserData(ctx, userID)
	if err != nil {
		return model.ActivityStats{}, err
	}

	return model.ActivityStats{
		CommunitiesJoined:      len(data.Communities),
		ProjectsCreated:        len(data.Projects),
		HackathonsParticipated: len(data.Hackathons),
		ProfileViews:           data.ProfileViews,
		Contributions:          data.Contributions,
	}, nil
}

// save persists the aggregate and publishes the user-data-updated
// notification with the new payload.
func (s *UserDataService) save(ctx context.Context, userID string, data model.UserData) error {
	if err := store.WriteJSON(ctx, s.kv, store.UserDataKey(userID), data); err != nil {
		return fmt.Errorf("service/userdata: saving aggregate: %w", err)
	}
	s.bus.Publish(event.UserDataUpdated, data)
	return nil
}
