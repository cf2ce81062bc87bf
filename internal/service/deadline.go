package service

import (
	"fmt"
	"math"
	"time"
)

// DeadlineStatus buckets a deadline relative to "today". Every deadline
// falls into exactly one bucket.
type DeadlineStatus string

const (
	StatusOverdue  DeadlineStatus = "overdue"   // date before today
	StatusToday    DeadlineStatus = "today"     // date is today
	StatusThisWeek DeadlineStatus = "this-week" // 1–7 days out
	StatusLater    DeadlineStatus = "later"     // more than 7 days out
)

// DaysUntil returns the whole-day distance from now to the deadline date.
// Both sides are truncated to midnight first, so "tomorrow" is always 1
// regardless of the current time of day. Negative values mean the date has
// passed.
func DaysUntil(date string, now time.Time) (int, error) {
	deadline, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return 0, fmt.Errorf("service: parsing deadline date %q: %w", date, err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Rounding absorbs the 23- and 25-hour days a DST transition produces,
	// so the distance stays in whole calendar days.
	return int(math.Round(deadline.Sub(today).Hours() / 24)), nil
}

// ClassifyDeadline buckets a deadline date relative to now.
func ClassifyDeadline(date string, now time.Time) (DeadlineStatus, error) {
	days, err := DaysUntil(date, now)
	if err != nil {
		return "", err
	}

	switch {
	case days < 0:
		return StatusOverdue, nil
	case days == 0:
		return StatusToday, nil
	case days <= 7:
		return StatusThisWeek, nil
	default:
		return StatusLater, nil
	}
}
