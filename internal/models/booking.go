package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// NormalizeBookingStatus maps any stored status value onto one of the four
// known states. Unknown or missing values default to pending so records
// always stay renderable.
func NormalizeBookingStatus(s string) BookingStatus {
	switch BookingStatus(strings.ToLower(strings.TrimSpace(s))) {
	case BookingStatusApproved:
		return BookingStatusApproved
	case BookingStatusCompleted:
		return BookingStatusCompleted
	case BookingStatusCancelled:
		return BookingStatusCancelled
	default:
		return BookingStatusPending
	}
}

// CanTransitionTo reports whether a status change is legal. Completed and
// cancelled are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusApproved || next == BookingStatusCancelled
	case BookingStatusApproved:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is legal.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// Rank orders statuses for day-detail lists: actionable items first,
// cancelled last.
func (s BookingStatus) Rank() int {
	switch s {
	case BookingStatusPending:
		return 0
	case BookingStatusApproved:
		return 1
	case BookingStatusCompleted:
		return 2
	default:
		return 3
	}
}

type Booking struct {
	gorm.Model
	UserID    uint   `json:"userId" gorm:"not null;index"`
	User      *User  `json:"user,omitempty"`
	UserEmail string `json:"userEmail" gorm:"not null"`

	Vehicle     string `json:"vehicle" gorm:"not null"`
	Date        string `json:"date" gorm:"not null;index"` // local date, "YYYY-MM-DD"
	Destination string `json:"destination" gorm:"not null"`
	Passengers  int    `json:"passengers" gorm:"not null;default:1"`
	Purpose     string `json:"purpose" gorm:"not null"`
	Notes       string `json:"notes"`
	Urgent      bool   `json:"urgent" gorm:"not null;default:false"`

	StartTimeLabel string `json:"startTimeLabel" gorm:"not null"`
	EndTimeLabel   string `json:"endTimeLabel" gorm:"not null"`
	TimeRange      string `json:"timeRange" gorm:"not null"`

	ScheduleStartAt time.Time `json:"scheduleStartAt"`
	ScheduleEndAt   time.Time `json:"scheduleEndAt"`

	// Assignment is free text, not a relation; the fleet records live in
	// their own collections.
	AssignedVehicle string `json:"assignedVehicle"`
	AssignedDriver  string `json:"assignedDriver"`

	Status BookingStatus `json:"status" gorm:"not null;default:'pending'"`

	// Client-side fallback timestamp for ordering before the row commit
	// resolves CreatedAt.
	CreatedAtClient *time.Time `json:"createdAtClient,omitempty"`
}

// SearchText joins the fields a list search matches against.
func (b *Booking) SearchText() string {
	return strings.ToLower(strings.Join([]string{
		b.UserEmail,
		b.Vehicle,
		b.Destination,
		b.Purpose,
		b.Notes,
		b.Date,
		string(b.Status),
	}, " "))
}

// SortTime is the authoritative ordering timestamp: CreatedAt, falling
// back to the client timestamp, falling back to the zero time.
func (b *Booking) SortTime() time.Time {
	if !b.CreatedAt.IsZero() {
		return b.CreatedAt
	}
	if b.CreatedAtClient != nil {
		return *b.CreatedAtClient
	}
	if !b.UpdatedAt.IsZero() {
		return b.UpdatedAt
	}
	return time.Time{}
}
