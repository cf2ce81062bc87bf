package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sakif/hackhub/internal/model"
)

// domainPalette colors domain-chart sectors by frequency rank, cycling
// when there are more domains than colors.
var domainPalette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#EC4899", "#06B6D4",
}

// languageKeywords maps a display language to the skill keywords that count
// toward it. Matching is case-insensitive substring containment over the
// whole skills text, so short keywords over-match ("django" also hits the
// Go keyword "go") — that is the established behavior of this chart, and
// downstream consumers expect it.
var languageKeywords = []struct {
	Language string
	Keywords []string
}{
	{"JavaScript", []string{"javascript", "js", "react", "node", "angular", "vue"}},
	{"Python", []string{"python", "django", "flask", "pandas", "numpy"}},
	{"Java", []string{"java", "spring", "hibernate"}},
	{"C++", []string{"c++", "cpp"}},
	{"TypeScript", []string{"typescript", "ts"}},
	{"Go", []string{"go", "golang"}},
	{"Rust", []string{"rust"}},
	{"PHP", []string{"php", "laravel"}},
	{"Ruby", []string{"ruby", "rails"}},
	{"Swift", []string{"swift", "ios"}},
	{"Kotlin", []string{"kotlin", "android"}},
}

// languageColors are the fixed per-language sector colors.
var languageColors = map[string]string{
	"JavaScript": "#F7DF1E",
	"Python":     "#3776AB",
	"Java":       "#007396",
	"C++":        "#00599C",
	"TypeScript": "#3178C6",
	"Go":         "#00ADD8",
	"Rust":       "#000000",
	"PHP":        "#777BB4",
	"Ruby":       "#CC342D",
	"Swift":      "#FA7343",
	"Kotlin":     "#7F52FF",
}

const defaultLanguageColor = "#6B7280"

// chartTally is one label with its raw hit count, prior to percentage and
// path computation.
type chartTally struct {
	name  string
	count int
}

// DomainChartData groups the user's joined-community snapshots by project
// domain and renders them as pie sectors. Percentages are rounded to the
// nearest integer independently, so they may not sum to exactly 100.
func (s *UserDataService) DomainChartData(ctx context.Context, userID string) ([]model.ChartSlice, error) {
	data, err := s.UserData(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(data.Communities) == 0 {
		return []model.ChartSlice{}, nil
	}

	counts := map[string]int{}
	order := []string{}
	for _, joined := range data.Communities {
		domain := joined.ProjectDomain
		if domain == "" {
			domain = "General"
		}
		if _, seen := counts[domain]; !seen {
			order = append(order, domain)
		}
		counts[domain]++
	}

	tallies := make([]chartTally, 0, len(order))
	for _, domain := range order {
		tallies = append(tallies, chartTally{name: domain, count: counts[domain]})
	}

	return buildSlices(tallies, len(data.Communities), func(name string, rank int) string {
		return domainPalette[rank%len(domainPalette)]
	}), nil
}

// LanguageChartData scans the profile's skills for language keywords and
// renders the tally as pie sectors. It is a pure function of the profile.
func LanguageChartData(profile model.Profile) []model.ChartSlice {
	skills := strings.ToLower(strings.Join(profile.Skills, " "))
	if strings.TrimSpace(skills) == "" {
		return []model.ChartSlice{}
	}

	tallies := []chartTally{}
	total := 0
	for _, entry := range languageKeywords {
		count := 0
		for _, keyword := range entry.Keywords {
			if strings.Contains(skills, keyword) {
				count++
			}
		}
		if count > 0 {
			tallies = append(tallies, chartTally{name: entry.Language, count: count})
			total += count
		}
	}
	if total == 0 {
		return []model.ChartSlice{}
	}

	return buildSlices(tallies, total, func(name string, _ int) string {
		if color, ok := languageColors[name]; ok {
			return color
		}
		return defaultLanguageColor
	})
}

// buildSlices sorts tallies by count (descending, stable so ties keep
// first-appearance order), computes rounded percentage shares, and emits
// one sector per tally with cumulative arc paths.
func buildSlices(tallies []chartTally, total int, colorFor func(name string, rank int) string) []model.ChartSlice {
	// Insertion sort keeps equal counts in their original order.
	for i := 1; i < len(tallies); i++ {
		for j := i; j > 0 && tallies[j].count > tallies[j-1].count; j-- {
			tallies[j], tallies[j-1] = tallies[j-1], tallies[j]
		}
	}

	slices := make([]model.ChartSlice, 0, len(tallies))
	currentAngle := 0.0
	for rank, tally := range tallies {
		percentage := int(math.Round(float64(tally.count) / float64(total) * 100))
		angle := float64(percentage) / 100 * 360

		slices = append(slices, model.ChartSlice{
			Name:       tally.name,
			Percentage: percentage,
			Color:      colorFor(tally.name, rank),
			Path:       sectorPath(currentAngle, angle),
		})
		currentAngle += angle
	}
	return slices
}

// sectorPath renders one pie slice as an SVG path: move to the center,
// line to the arc start, arc to the end, close. Points sit on a radius-50
// circle centered at (50,50); the −90° shift puts the first sector's start
// at 12 o'clock.
func sectorPath(startAngle, angle float64) string {
	endAngle := startAngle + angle

	startX := 50 + 50*math.Cos((startAngle-90)*math.Pi/180)
	startY := 50 + 50*math.Sin((startAngle-90)*math.Pi/180)
	endX := 50 + 50*math.Cos((endAngle-90)*math.Pi/180)
	endY := 50 + 50*math.Sin((endAngle-90)*math.Pi/180)

	largeArc := 0
	if angle > 180 {
		largeArc = 1
	}

	return fmt.Sprintf("M 50 50 L %v %v A 50 50 0 %d 1 %v %v Z",
		round2(startX), round2(startY), largeArc, round2(endX), round2(endY))
}

// round2 trims float noise so paths are stable across platforms.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
