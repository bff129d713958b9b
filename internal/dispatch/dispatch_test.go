package dispatch

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkozi444/CampusGo/internal/models"
)

type fakeBookingWriter struct {
	writes int
	last   models.BookingStatus
}

func (f *fakeBookingWriter) UpdateStatus(_ context.Context, id uint, next models.BookingStatus) (*models.Booking, error) {
	f.writes++
	f.last = next
	b := &models.Booking{Status: next}
	b.ID = id
	return b, nil
}

type fakeFleetWriter struct {
	vehicleWrites int
	driverWrites  int
}

func (f *fakeFleetWriter) SetVehicleStatus(_ context.Context, id uint, status string) (*models.Vehicle, error) {
	f.vehicleWrites++
	v := &models.Vehicle{Status: models.VehicleStatus(status)}
	v.ID = id
	return v, nil
}

func (f *fakeFleetWriter) SetDriverStatus(_ context.Context, id uint, status string) (*models.Driver, error) {
	f.driverWrites++
	d := &models.Driver{Status: models.DriverStatus(status)}
	d.ID = id
	return d, nil
}

func yes(Prompt) bool { return true }

func TestUserRoleNeverTriggersWrites(t *testing.T) {
	bookings := &fakeBookingWriter{}
	fleet := &fakeFleetWriter{}
	d := New(bookings, fleet, ConfirmerFunc(yes))

	for _, action := range []Action{ActionApprove, ActionDecline, ActionMarkComplete, ActionCancel} {
		_, err := d.Transition(context.Background(), models.RoleUser, action, 1)
		assert.ErrorIs(t, err, ErrNotAllowed, "action %s", action)
	}
	_, err := d.SetVehicleStatus(context.Background(), models.RoleUser, 1, "assigned")
	assert.ErrorIs(t, err, ErrNotAllowed)
	_, err = d.SetDriverStatus(context.Background(), models.RoleUser, 1, "offduty")
	assert.ErrorIs(t, err, ErrNotAllowed)

	assert.Zero(t, bookings.writes, "refusal must not reach the store")
	assert.Zero(t, fleet.vehicleWrites)
	assert.Zero(t, fleet.driverWrites)
}

func TestAdminRolesMayInvokeEveryAction(t *testing.T) {
	for _, role := range []models.Role{models.RoleAdmin, models.RoleSuperAdmin} {
		bookings := &fakeBookingWriter{}
		fleet := &fakeFleetWriter{}
		d := New(bookings, fleet, ConfirmerFunc(yes))

		for _, action := range []Action{ActionApprove, ActionDecline, ActionMarkComplete, ActionCancel} {
			_, err := d.Transition(context.Background(), role, action, 1)
			require.NoError(t, err, "role %s action %s", role, action)
		}
		assert.Equal(t, 4, bookings.writes)

		_, err := d.SetVehicleStatus(context.Background(), role, 1, "maintenance")
		require.NoError(t, err)
		_, err = d.SetDriverStatus(context.Background(), role, 1, "assigned")
		require.NoError(t, err)
	}
}

func TestCreateBookingOpenToAnyAuthenticatedUser(t *testing.T) {
	assert.True(t, CanPerform(models.RoleUser, ActionCreateBooking))
	assert.True(t, CanPerform(models.RoleAdmin, ActionCreateBooking))
	// Empty role means no authenticated identity.
	assert.False(t, CanPerform(models.Role(""), ActionCreateBooking))
}

func TestTransitionTarget(t *testing.T) {
	cases := map[Action]models.BookingStatus{
		ActionApprove:      models.BookingStatusApproved,
		ActionDecline:      models.BookingStatusCancelled,
		ActionCancel:       models.BookingStatusCancelled,
		ActionMarkComplete: models.BookingStatusCompleted,
	}
	for action, want := range cases {
		got, ok := TransitionTarget(action)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := TransitionTarget(ActionCreateBooking)
	assert.False(t, ok)
}

func TestDeclinedConfirmationBlocksWrite(t *testing.T) {
	bookings := &fakeBookingWriter{}
	d := New(bookings, &fakeFleetWriter{}, ConfirmerFunc(func(Prompt) bool { return false }))

	_, err := d.Transition(context.Background(), models.RoleAdmin, ActionDecline, 1)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Zero(t, bookings.writes)

	// Approve needs no confirmation, so the declining confirmer is never
	// consulted.
	_, err = d.Transition(context.Background(), models.RoleAdmin, ActionApprove, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, bookings.writes)
}

func TestPromptFor(t *testing.T) {
	for _, action := range []Action{ActionDecline, ActionCancel, ActionMarkComplete} {
		prompt, needs := PromptFor(action)
		require.True(t, needs, "action %s", action)
		assert.NotEmpty(t, prompt.Title)
		assert.NotEmpty(t, prompt.Message)
	}

	_, needs := PromptFor(ActionApprove)
	assert.False(t, needs)

	prompt, _ := PromptFor(ActionDecline)
	assert.True(t, prompt.Destructive)
}

func TestStdioConfirmer(t *testing.T) {
	prompt, _ := PromptFor(ActionCancel)

	var out strings.Builder
	c := &StdioConfirmer{In: strings.NewReader("y\n"), Out: &out}
	assert.True(t, c.Confirm(prompt))
	assert.Contains(t, out.String(), "Cancel booking?")

	c = &StdioConfirmer{In: strings.NewReader("no\n"), Out: &strings.Builder{}}
	assert.False(t, c.Confirm(prompt))

	c = &StdioConfirmer{In: strings.NewReader("\n"), Out: &strings.Builder{}}
	assert.False(t, c.Confirm(prompt))
}
