package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLabelToMinutes(t *testing.T) {
	cases := []struct {
		label string
		want  int
	}{
		{"12:00 AM", 0},
		{"12:30 AM", 30},
		{"01:00 AM", 60},
		{"08:05 AM", 485},
		{"12:00 PM", 720},
		{"01:15 PM", 795},
		{"11:59 PM", 1439},
		{"  08:00 am ", 480},
	}
	for _, tc := range cases {
		got, err := TimeLabelToMinutes(tc.label)
		require.NoError(t, err, "label %q", tc.label)
		assert.Equal(t, tc.want, got, "label %q", tc.label)
	}
}

func TestTimeLabelToMinutesRejectsBadInput(t *testing.T) {
	for _, label := range []string{
		"", "08:00", "8 AM", "13:00 PM", "00:00 AM", "08:60 AM",
		"08:00 XM", "eight AM", "08:xx PM",
	} {
		_, err := TimeLabelToMinutes(label)
		assert.Error(t, err, "label %q", label)
	}
}

func TestBuildTimeLabel(t *testing.T) {
	assert.Equal(t, "08:05 AM", BuildTimeLabel(8, 5, "AM"))
	assert.Equal(t, "12:30 PM", BuildTimeLabel(12, 30, "PM"))
}

func TestParseAndFormatDate(t *testing.T) {
	day, err := ParseDate("2025-09-24")
	require.NoError(t, err)
	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, time.September, day.Month())
	assert.Equal(t, 24, day.Day())
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, time.Local, day.Location())

	assert.Equal(t, "2025-09-24", FormatDate(day))

	for _, s := range []string{"", "2025/09/24", "24-09-2025", "2025-9-4", "2025-13-40"} {
		_, err := ParseDate(s)
		assert.Error(t, err, "date %q", s)
	}
}

func TestScheduleBounds(t *testing.T) {
	start, end, err := ScheduleBounds("2025-09-24", "08:00 AM", "10:30 AM")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 24, 8, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2025, 9, 24, 10, 30, 0, 0, time.Local), end)

	_, _, err = ScheduleBounds("bad", "08:00 AM", "10:30 AM")
	assert.Error(t, err)
	_, _, err = ScheduleBounds("2025-09-24", "bad", "10:30 AM")
	assert.Error(t, err)
	_, _, err = ScheduleBounds("2025-09-24", "08:00 AM", "bad")
	assert.Error(t, err)
}
