package models

import "testing"

func TestNormalizeBookingStatus(t *testing.T) {
	cases := []struct {
		in   string
		want BookingStatus
	}{
		{"pending", BookingStatusPending},
		{"approved", BookingStatusApproved},
		{"completed", BookingStatusCompleted},
		{"cancelled", BookingStatusCancelled},
		{"APPROVED", BookingStatusApproved},
		{"  Cancelled ", BookingStatusCancelled},
		{"", BookingStatusPending},
		{"garbage", BookingStatusPending},
		{"rejected", BookingStatusPending},
	}

	for _, tc := range cases {
		if got := NormalizeBookingStatus(tc.in); got != tc.want {
			t.Errorf("NormalizeBookingStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	all := []BookingStatus{
		BookingStatusPending,
		BookingStatusApproved,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}

	legal := map[BookingStatus][]BookingStatus{
		BookingStatusPending:  {BookingStatusApproved, BookingStatusCancelled},
		BookingStatusApproved: {BookingStatusCompleted, BookingStatusCancelled},
	}

	for _, from := range all {
		allowed := map[BookingStatus]bool{}
		for _, to := range legal[from] {
			allowed[to] = true
		}
		for _, to := range all {
			got := from.CanTransitionTo(to)
			if got != allowed[to] {
				t.Errorf("%s -> %s: CanTransitionTo = %v, want %v", from, to, got, allowed[to])
			}
		}
	}
}

func TestTerminalStatesAreSticky(t *testing.T) {
	for _, s := range []BookingStatus{BookingStatusCompleted, BookingStatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
		for _, next := range []BookingStatus{BookingStatusPending, BookingStatusApproved, BookingStatusCompleted, BookingStatusCancelled} {
			if s.CanTransitionTo(next) {
				t.Errorf("terminal %s must not transition to %s", s, next)
			}
		}
	}
}

func TestStatusRank(t *testing.T) {
	order := []BookingStatus{
		BookingStatusPending,
		BookingStatusApproved,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Errorf("rank(%s)=%d should be below rank(%s)=%d",
				order[i-1], order[i-1].Rank(), order[i], order[i].Rank())
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"  SuperAdmin ", RoleSuperAdmin},
		{"user", RoleUser},
		{"staff", Role("staff")},
		{"", Role("")},
	}
	for _, tc := range cases {
		if got := NormalizeRole(tc.in); got != tc.want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if RoleUser.IsAdmin() {
		t.Error("user role must not be admin")
	}
	if !RoleAdmin.IsAdmin() || !RoleSuperAdmin.IsAdmin() {
		t.Error("admin and superadmin must be admin roles")
	}
}
