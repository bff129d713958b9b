package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nkozi444/CampusGo/internal/models"
)

// Everything in this package is a pure projection of an in-memory record
// list. Nothing here mutates its input; every function is safe to rerun
// on each subscription push.

// KPIs are the summary card counts for the admin dashboards.
type KPIs struct {
	Pending           int `json:"pending"`
	Approved          int `json:"approved"`
	Completed         int `json:"completed"`
	AvailableVehicles int `json:"availableVehicles"`
}

// ComputeKPIs tallies booking statuses; available vehicles come from the
// vehicle collection, not from bookings.
func ComputeKPIs(bookings []models.Booking, vehicles []models.Vehicle) KPIs {
	var k KPIs
	for _, b := range bookings {
		switch b.Status {
		case models.BookingStatusPending:
			k.Pending++
		case models.BookingStatusApproved:
			k.Approved++
		case models.BookingStatusCompleted:
			k.Completed++
		}
	}
	for _, v := range vehicles {
		if v.Status == models.VehicleStatusAvailable {
			k.AvailableVehicles++
		}
	}
	return k
}

// DaySummary tallies bookings on one calendar date. Approved and
// completed both count as booked.
type DaySummary struct {
	Pending   int `json:"pending"`
	Booked    int `json:"booked"`
	Cancelled int `json:"cancelled"`
}

// HasActivity reports whether the day should be visually distinguished
// from an empty one.
func (d DaySummary) HasActivity() bool {
	return d.Pending > 0 || d.Booked > 0
}

// CalendarSummary builds the per-date tallies behind the calendar dots,
// keyed by the booking's "YYYY-MM-DD" date.
func CalendarSummary(bookings []models.Booking) map[string]DaySummary {
	summary := make(map[string]DaySummary)
	for _, b := range bookings {
		if b.Date == "" {
			continue
		}
		day := summary[b.Date]
		switch b.Status {
		case models.BookingStatusPending:
			day.Pending++
		case models.BookingStatusApproved, models.BookingStatusCompleted:
			day.Booked++
		case models.BookingStatusCancelled:
			day.Cancelled++
		}
		summary[b.Date] = day
	}
	return summary
}

// BookingsOn returns the bookings for a selected date, actionable first:
// pending, approved, completed, then cancelled, ties kept in arrival
// order.
func BookingsOn(bookings []models.Booking, date string) []models.Booking {
	var rows []models.Booking
	for _, b := range bookings {
		if b.Date == date {
			rows = append(rows, b)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Status.Rank() < rows[j].Status.Rank()
	})
	return rows
}

// SortNewestFirst orders bookings by creation time, newest first, using
// the client timestamp as fallback for rows whose server timestamp has
// not resolved. Pass oldestFirst to flip the toggle.
func SortNewestFirst(bookings []models.Booking, oldestFirst bool) []models.Booking {
	rows := make([]models.Booking, len(bookings))
	copy(rows, bookings)
	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := rows[i].SortTime(), rows[j].SortTime()
		if oldestFirst {
			return ti.Before(tj)
		}
		return tj.Before(ti)
	})
	return rows
}

// FilterBookings matches a case-insensitive substring query against each
// booking's searchable text. An empty query returns the list unchanged.
func FilterBookings(bookings []models.Booking, query string) []models.Booking {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return bookings
	}
	var rows []models.Booking
	for i := range bookings {
		if strings.Contains(bookings[i].SearchText(), q) {
			rows = append(rows, bookings[i])
		}
	}
	return rows
}

// FilterVehicles matches the fleet search query against name, plate,
// type, model, color, notes, and status.
func FilterVehicles(vehicles []models.Vehicle, query string) []models.Vehicle {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return vehicles
	}
	var rows []models.Vehicle
	for i := range vehicles {
		if strings.Contains(vehicles[i].SearchText(), q) {
			rows = append(rows, vehicles[i])
		}
	}
	return rows
}

// FilterDrivers matches the driver search query against name, email,
// phone, license, notes, and status.
func FilterDrivers(drivers []models.Driver, query string) []models.Driver {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return drivers
	}
	var rows []models.Driver
	for i := range drivers {
		if strings.Contains(drivers[i].SearchText(), q) {
			rows = append(rows, drivers[i])
		}
	}
	return rows
}

// VehicleCounts is the fleet status tally plus a total.
type VehicleCounts struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Assigned    int `json:"assigned"`
	Maintenance int `json:"maintenance"`
	Unavailable int `json:"unavailable"`
}

func ComputeVehicleCounts(vehicles []models.Vehicle) VehicleCounts {
	c := VehicleCounts{Total: len(vehicles)}
	for _, v := range vehicles {
		switch v.Status {
		case models.VehicleStatusAvailable:
			c.Available++
		case models.VehicleStatusAssigned:
			c.Assigned++
		case models.VehicleStatusMaintenance:
			c.Maintenance++
		case models.VehicleStatusUnavailable:
			c.Unavailable++
		}
	}
	return c
}

// DriverCounts is the driver status tally plus a total.
type DriverCounts struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Assigned  int `json:"assigned"`
	OffDuty   int `json:"offduty"`
}

func ComputeDriverCounts(drivers []models.Driver) DriverCounts {
	c := DriverCounts{Total: len(drivers)}
	for _, d := range drivers {
		switch d.Status {
		case models.DriverStatusAvailable:
			c.Available++
		case models.DriverStatusAssigned:
			c.Assigned++
		case models.DriverStatusOffDuty:
			c.OffDuty++
		}
	}
	return c
}

// SortVehiclesByName orders fleet listings by name, case-insensitively.
func SortVehiclesByName(vehicles []models.Vehicle) []models.Vehicle {
	rows := make([]models.Vehicle, len(vehicles))
	copy(rows, vehicles)
	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})
	return rows
}

// SortDriversByName orders driver listings by name, case-insensitively.
func SortDriversByName(drivers []models.Driver) []models.Driver {
	rows := make([]models.Driver, len(drivers))
	copy(rows, drivers)
	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})
	return rows
}

// TimelineEvent is one entry in the activity feed derived from recent
// bookings.
type TimelineEvent struct {
	ID    string `json:"id"`
	Type  string `json:"type"` // urgent, success, info
	Title string `json:"title"`
	Text  string `json:"text"`
	Meta  struct {
		User string `json:"user"`
		Date string `json:"date"`
		Time string `json:"time"`
	} `json:"meta"`
	Time string `json:"time"`
}

// RecentEvents derives the timeline feed from the newest bookings.
func RecentEvents(bookings []models.Booking, limit int) []TimelineEvent {
	rows := SortNewestFirst(bookings, false)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	events := make([]TimelineEvent, 0, len(rows))
	for _, b := range rows {
		ev := TimelineEvent{
			ID:    fmt.Sprintf("ev-%d", b.ID),
			Type:  "info",
			Title: "Booking " + strings.ToUpper(string(b.Status)),
			Text:  fmt.Sprintf("%s • %s • %s", b.Purpose, b.Vehicle, b.Destination),
		}
		if b.Urgent {
			ev.Type = "urgent"
		} else if b.Status == models.BookingStatusApproved {
			ev.Type = "success"
		}
		ev.Meta.User = b.UserEmail
		ev.Meta.Date = b.Date
		ev.Meta.Time = b.TimeRange
		if t := b.SortTime(); !t.IsZero() {
			ev.Time = t.Local().Format("1/2/2006, 3:04:05 PM")
		} else {
			ev.Time = "just now"
		}
		events = append(events, ev)
	}
	return events
}
