package dispatch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nkozi444/CampusGo/internal/models"
)

// Action names a state change a caller may request. The dispatcher is
// the defensive authorization layer: the UI hiding a button is not
// access control, so every write re-checks the role here.
type Action string

const (
	ActionCreateBooking    Action = "create-booking"
	ActionApprove          Action = "approve"
	ActionDecline          Action = "decline"
	ActionMarkComplete     Action = "markComplete"
	ActionCancel           Action = "cancel"
	ActionSetVehicleStatus Action = "setVehicleStatus"
	ActionSetDriverStatus  Action = "setDriverStatus"
)

var (
	// ErrNotAllowed means the role lacks permission; no write was
	// attempted. This is a refusal, not a system fault.
	ErrNotAllowed = errors.New("not allowed")
	// ErrNotConfirmed means the caller declined the confirmation prompt.
	ErrNotConfirmed = errors.New("action not confirmed")
)

// CanPerform reports whether a role may invoke an action. Creating a
// booking is open to any authenticated user; everything else is
// admin/superadmin only.
func CanPerform(role models.Role, action Action) bool {
	if action == ActionCreateBooking {
		return role != ""
	}
	return role.IsAdmin()
}

// TransitionTarget maps a booking action onto the status it moves the
// record to.
func TransitionTarget(action Action) (models.BookingStatus, bool) {
	switch action {
	case ActionApprove:
		return models.BookingStatusApproved, true
	case ActionDecline, ActionCancel:
		return models.BookingStatusCancelled, true
	case ActionMarkComplete:
		return models.BookingStatusCompleted, true
	default:
		return "", false
	}
}

// Prompt is a confirmation question shown before a destructive or
// terminal action.
type Prompt struct {
	Title       string `json:"title"`
	Message     string `json:"message"`
	ConfirmText string `json:"confirmText"`
	Destructive bool   `json:"destructive"`
}

// PromptFor returns the confirmation prompt for an action, or false when
// the action needs no confirmation.
func PromptFor(action Action) (Prompt, bool) {
	switch action {
	case ActionDecline:
		return Prompt{
			Title:       "Decline booking?",
			Message:     "This will cancel the booking request.",
			ConfirmText: "Yes, Decline",
			Destructive: true,
		}, true
	case ActionCancel:
		return Prompt{
			Title:       "Cancel booking?",
			Message:     "This will mark the booking as Cancelled.",
			ConfirmText: "Yes, Cancel",
			Destructive: true,
		}, true
	case ActionMarkComplete:
		return Prompt{
			Title:       "Mark complete?",
			Message:     "This will move the booking to Completed.",
			ConfirmText: "Yes, Complete",
		}, true
	default:
		return Prompt{}, false
	}
}

// Confirmer answers a confirmation prompt. Hosts with a synchronous
// yes/no dialog use a blocking implementation; hosts that collect the
// answer elsewhere wrap it with ConfirmerFunc.
type Confirmer interface {
	Confirm(p Prompt) bool
}

// ConfirmerFunc is the non-blocking adapter: the answer was obtained out
// of band (e.g. a client-side dialog) and is replayed here.
type ConfirmerFunc func(p Prompt) bool

func (f ConfirmerFunc) Confirm(p Prompt) bool { return f(p) }

// StdioConfirmer is the blocking path: it writes the prompt and reads a
// synchronous yes/no answer.
type StdioConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (c *StdioConfirmer) Confirm(p Prompt) bool {
	fmt.Fprintf(c.Out, "%s %s [y/N]: ", p.Title, p.Message)
	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// BookingWriter is the slice of the booking store the dispatcher drives.
type BookingWriter interface {
	UpdateStatus(ctx context.Context, id uint, next models.BookingStatus) (*models.Booking, error)
}

// FleetWriter is the slice of the fleet store the dispatcher drives.
type FleetWriter interface {
	SetVehicleStatus(ctx context.Context, id uint, status string) (*models.Vehicle, error)
	SetDriverStatus(ctx context.Context, id uint, status string) (*models.Driver, error)
}

// Dispatcher validates (role, action) pairs, runs confirmation prompts,
// and only then touches the store. Failures are returned to the caller;
// nothing is optimistically applied locally.
type Dispatcher struct {
	bookings  BookingWriter
	fleet     FleetWriter
	confirmer Confirmer
}

func New(bookings BookingWriter, fleet FleetWriter, confirmer Confirmer) *Dispatcher {
	return &Dispatcher{bookings: bookings, fleet: fleet, confirmer: confirmer}
}

// Transition applies a booking status action for the given role.
func (d *Dispatcher) Transition(ctx context.Context, role models.Role, action Action, bookingID uint) (*models.Booking, error) {
	if !CanPerform(role, action) {
		return nil, ErrNotAllowed
	}

	next, ok := TransitionTarget(action)
	if !ok {
		return nil, fmt.Errorf("unknown booking action %q", action)
	}

	if prompt, needs := PromptFor(action); needs {
		if !d.confirmer.Confirm(prompt) {
			return nil, ErrNotConfirmed
		}
	}

	return d.bookings.UpdateStatus(ctx, bookingID, next)
}

// SetVehicleStatus applies a fleet status assignment for the given role.
func (d *Dispatcher) SetVehicleStatus(ctx context.Context, role models.Role, vehicleID uint, status string) (*models.Vehicle, error) {
	if !CanPerform(role, ActionSetVehicleStatus) {
		return nil, ErrNotAllowed
	}
	return d.fleet.SetVehicleStatus(ctx, vehicleID, status)
}

// SetDriverStatus applies a driver status assignment for the given role.
func (d *Dispatcher) SetDriverStatus(ctx context.Context, role models.Role, driverID uint, status string) (*models.Driver, error) {
	if !CanPerform(role, ActionSetDriverStatus) {
		return nil, ErrNotAllowed
	}
	return d.fleet.SetDriverStatus(ctx, driverID, status)
}
