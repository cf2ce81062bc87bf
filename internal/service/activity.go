package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sakif/hackhub/internal/model"
)

// Fixed scoring weights and the visualization ceiling for the points
// breakdown bars.
const (
	PointsPerHackathon    = 50
	PointsPerCommunity    = 30
	PointsPerProject      = 100
	PointsPerContribution = 5
	PointsCeiling         = 2000
)

// recentActivityLimit caps the feed at the ten most recent entries.
const recentActivityLimit = 10

// PointsBreakdown computes the fixed-weight score per category. Each
// category's percentage is its share of the 2000-point ceiling (clamped to
// 100) for bar-width rendering, and zero when the user has no points at
// all.
func (s *UserDataService) PointsBreakdown(ctx context.Context, userID string) (model.PointsBreakdown, error) {
	stats, err := s.ActivityStats(ctx, userID)
	if err != nil {
		return model.PointsBreakdown{}, err
	}

	hackathonPoints := stats.HackathonsParticipated * PointsPerHackathon
	communityPoints := stats.CommunitiesJoined * PointsPerCommunity
	projectPoints := stats.ProjectsCreated * PointsPerProject
	contributionPoints := stats.Contributions * PointsPerContribution
	total := hackathonPoints + communityPoints + projectPoints + contributionPoints

	category := func(label string, points int, icon string) model.PointsCategory {
		percentage := 0.0
		if total > 0 {
			percentage = min(float64(points)/PointsCeiling*100, 100)
		}
		return model.PointsCategory{
			Label:      label,
			Points:     points,
			Percentage: percentage,
			Icon:       icon,
		}
	}

	return model.PointsBreakdown{
		HackathonParticipation: category("Hackathon Participation", hackathonPoints, "🎯"),
		CommunityInvolvement:   category("Community Involvement", communityPoints, "💬"),
		ProjectCompletion:      category("Project Completion", projectPoints, "✅"),
		Contributions:          category("Contributions", contributionPoints, "⭐"),
		TotalPoints:            total,
	}, nil
}

// RecentActivity merges the aggregate's timestamped events — hackathon
// registrations, community joins, project creations, and the last five
// contribution-history entries — into one feed sorted newest first,
// returning at most ten entries.
func (s *UserDataService) RecentActivity(ctx context.Context, userID string) ([]model.ActivityEntry, error) {
	data, err := s.UserData(ctx, userID)
	if err != nil {
		return nil, err
	}

	activities := []model.ActivityEntry{}

	for _, h := range data.Hackathons {
		activities = append(activities, model.ActivityEntry{
			Type:      "hackathon",
			Title:     fmt.Sprintf("Participated in %s", h.Name),
			Timestamp: h.RegisteredAt,
			Icon:      "🚀",
			Color:     "#4facfe",
		})
	}

	for _, c := range data.Communities {
		activities = append(activities, model.ActivityEntry{
			Type:      "community",
			Title:     fmt.Sprintf("Joined %s Community", c.CommunityName),
			Timestamp: c.JoinedAt,
			Icon:      "👥",
			Color:     "#764ba2",
		})
	}

	for _, p := range data.Projects {
		activities = append(activities, model.ActivityEntry{
			Type:      "project",
			Title:     fmt.Sprintf("Completed %s", p.Name),
			Timestamp: p.CreatedAt,
			Icon:      "📊",
			Color:     "#f093fb",
		})
	}

	history := data.ContributionHistory
	if len(history) > 5 {
		history = history[len(history)-5:]
	}
	for _, contribution := range history {
		title := contribution.Description
		if title == "" {
			title = fmt.Sprintf("Contributed to %s", contribution.Community)
		}
		activities = append(activities, model.ActivityEntry{
			Type:      "contribution",
			Title:     title,
			Timestamp: contribution.Timestamp,
			Icon:      "⭐",
			Color:     "#fbbf24",
		})
	}

	slices.SortStableFunc(activities, func(a, b model.ActivityEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	if len(activities) > recentActivityLimit {
		activities = activities[:recentActivityLimit]
	}
	return activities, nil
}

// FormatRelativeTime buckets the elapsed time since ts into a
// human-readable phrase: "Just now" under a minute, then integer-divided
// minutes, hours, days, weeks (/7), months (/30), and years (/365), with
// singular/plural matching the count.
func FormatRelativeTime(ts, now time.Time) string {
	seconds := int(now.Sub(ts).Seconds())
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24
	weeks := days / 7
	months := days / 30
	years := days / 365

	switch {
	case seconds < 60:
		return "Just now"
	case minutes < 60:
		return pluralAgo(minutes, "minute")
	case hours < 24:
		return pluralAgo(hours, "hour")
	case days < 7:
		return pluralAgo(days, "day")
	case weeks < 4:
		return pluralAgo(weeks, "week")
	case months < 12:
		return pluralAgo(months, "month")
	default:
		return pluralAgo(years, "year")
	}
}

func pluralAgo(n int, unit string) string {
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
