// Package dates parses the loose date and time formats users type in chat.
package dates

import (
	"math"
	"strings"
	"time"
)

var flexibleDateLayouts = []string{
	"2006-01-02 15:04",
	"2006-1-2 15:04",
	"2006-01-02",
	"2006-1-2",
	"02.01.2006 15:04",
	"2.1.2006 15:04",
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
	"2/1/2006",
}

var clockLayouts = []string{
	"15:04",
	"3:04pm",
	"3pm",
}

// ParseFlexibleDate tries several common date formats used in chat flows.
// It returns the parsed time in the local timezone and true on success.
func ParseFlexibleDate(input string) (time.Time, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range flexibleDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseClock parses a bare time of day such as "18:30" or "6pm" and
// returns it normalized to 24-hour "15:04" form.
func ParseClock(input string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return "", false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), true
		}
	}
	return "", false
}

// DaysUntil counts calendar days from now until the date, never negative.
// An exam tomorrow morning is one day away regardless of the hour, so both
// sides are truncated to midnight before comparing.
func DaysUntil(t time.Time, now time.Time) int {
	t = startOfDay(t)
	now = startOfDay(now)
	// Days around DST transitions are not exactly 24 hours long.
	days := int(math.Round(t.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
