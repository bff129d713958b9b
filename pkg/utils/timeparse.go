package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Time-of-day labels are stored the way the booking form builds them:
// "hh:mm AM" / "hh:mm PM". Dates are local "YYYY-MM-DD" strings with no
// UTC conversion.

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FormatDate renders a local calendar date as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a "YYYY-MM-DD" string into a local midnight time.
func ParseDate(s string) (time.Time, error) {
	if !dateRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// BuildTimeLabel renders a 12-hour clock label, e.g. "08:05 AM".
func BuildTimeLabel(hour, minute int, period string) string {
	return fmt.Sprintf("%02d:%02d %s", hour, minute, period)
}

// TimeLabelToMinutes converts a "hh:mm AM/PM" label into minutes since
// midnight, used to compare the start and end of a requested range.
func TimeLabelToMinutes(label string) (int, error) {
	parts := strings.Fields(strings.TrimSpace(label))
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time label %q", label)
	}

	period := strings.ToUpper(parts[1])
	if period != "AM" && period != "PM" {
		return 0, fmt.Errorf("invalid period in time label %q", label)
	}

	hm := strings.Split(parts[0], ":")
	if len(hm) != 2 {
		return 0, fmt.Errorf("invalid time label %q", label)
	}

	hour, err := strconv.Atoi(hm[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("invalid hour in time label %q", label)
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in time label %q", label)
	}

	h := hour % 12
	if period == "PM" {
		h += 12
	}
	return h*60 + minute, nil
}

// ScheduleBounds converts a date plus start/end labels into concrete
// local timestamps for the requested window.
func ScheduleBounds(date string, startLabel, endLabel string) (time.Time, time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	startMin, err := TimeLabelToMinutes(startLabel)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMin, err := TimeLabelToMinutes(endLabel)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day.Add(time.Duration(startMin) * time.Minute),
		day.Add(time.Duration(endMin) * time.Minute), nil
}
