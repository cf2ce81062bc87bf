package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/service"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{30 * time.Second, "Just now"},
		{59 * time.Second, "Just now"},
		{90 * time.Second, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{59 * time.Minute, "59 minutes ago"},
		{1 * time.Hour, "1 hour ago"},
		{25 * time.Hour, "1 day ago"},
		{3 * 24 * time.Hour, "3 days ago"},
		{8 * 24 * time.Hour, "1 week ago"},
		{21 * 24 * time.Hour, "3 weeks ago"},
		{45 * 24 * time.Hour, "1 month ago"},
		{200 * 24 * time.Hour, "6 months ago"},
		{400 * 24 * time.Hour, "1 year ago"},
		{800 * 24 * time.Hour, "2 years ago"},
	}

	for _, tt := range tests {
		got := service.FormatRelativeTime(now.Add(-tt.elapsed), now)
		assert.Equal(t, tt.want, got, "elapsed %v", tt.elapsed)
	}
}

func TestPointsBreakdown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID := env.register(t, validRegistration())
	session, _ := env.auth.CurrentSession(ctx)

	// One community (30), one hackathon (50), one project (100), and
	// one contribution from the message (5): 185 total.
	community, err := env.communities.Create(ctx, validCommunityInput())
	require.NoError(t, err)
	require.NoError(t, env.communities.Join(ctx, session, community.ID))

	hackathons := service.NewHackathonService(env.userData, testLogger())
	_, err = hackathons.Register(ctx, session, "1")
	require.NoError(t, err)

	_, err = env.userData.AddProject(ctx, userID, service.ProjectInput{Name: "Orbit Tracker"})
	require.NoError(t, err)

	_, err = env.communities.PostMessage(ctx, session, community.ID, "hello", "")
	require.NoError(t, err)

	breakdown, err := env.userData.PointsBreakdown(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 50, breakdown.HackathonParticipation.Points)
	assert.Equal(t, 30, breakdown.CommunityInvolvement.Points)
	assert.Equal(t, 100, breakdown.ProjectCompletion.Points)
	assert.Equal(t, 5, breakdown.Contributions.Points)
	assert.Equal(t, 185, breakdown.TotalPoints)

	// Bar widths are shares of the 2000-point ceiling.
	assert.InDelta(t, 5.0, breakdown.ProjectCompletion.Percentage, 0.001)
	assert.InDelta(t, 2.5, breakdown.HackathonParticipation.Percentage, 0.001)
}

func TestPointsBreakdownZeroTotal(t *testing.T) {
	env := newTestEnv(t)

	breakdown, err := env.userData.PointsBreakdown(context.Background(), "nobody")
	require.NoError(t, err)

	assert.Equal(t, 0, breakdown.TotalPoints)
	assert.Zero(t, breakdown.HackathonParticipation.Percentage)
	assert.Zero(t, breakdown.Contributions.Percentage)
}

func TestRecentActivityOrderAndLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID := env.register(t, validRegistration())

	// Twelve projects: the feed keeps only the newest ten.
	for i := 0; i < 12; i++ {
		_, err := env.userData.AddProject(ctx, userID, service.ProjectInput{
			Name: fmt.Sprintf("Project %d", i),
		})
		require.NoError(t, err)
	}

	feed, err := env.userData.RecentActivity(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, feed, 10)

	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i].Timestamp.After(feed[i-1].Timestamp),
			"feed must be sorted newest first")
	}
}

func TestRecentActivityEntryShapes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID := env.register(t, validRegistration())
	session, _ := env.auth.CurrentSession(ctx)

	community, err := env.communities.Create(ctx, validCommunityInput())
	require.NoError(t, err)
	require.NoError(t, env.communities.Join(ctx, session, community.ID))

	require.NoError(t, env.userData.RecordContribution(ctx, userID, model.ContributionRecord{
		Community: community.CommunityName,
	}))

	feed, err := env.userData.RecentActivity(ctx, userID)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	titles := []string{feed[0].Title, feed[1].Title}
	assert.Contains(t, titles, "Joined Foo Community")
	assert.Contains(t, titles, "Contributed to Foo")

	for _, entry := range feed {
		assert.NotEmpty(t, entry.Icon)
		assert.NotEmpty(t, entry.Color)
	}
}
