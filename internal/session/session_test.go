package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkozi444/CampusGo/internal/models"
)

type fakeCache struct {
	roles map[uint]string
	sets  int
}

func (f *fakeCache) GetRole(_ context.Context, userID uint) (string, error) {
	return f.roles[userID], nil
}

func (f *fakeCache) SetRole(_ context.Context, userID uint, role string) error {
	if f.roles == nil {
		f.roles = map[uint]string{}
	}
	f.roles[userID] = role
	f.sets++
	return nil
}

type fakeLookup struct {
	roles   map[uint]string
	lookups int
}

func (f *fakeLookup) FindRole(_ context.Context, userID uint) (string, error) {
	f.lookups++
	role, ok := f.roles[userID]
	if !ok {
		return "", ErrRoleMissing
	}
	return role, nil
}

func TestResolveFromCache(t *testing.T) {
	cache := &fakeCache{roles: map[uint]string{1: "admin"}}
	lookup := &fakeLookup{}
	r := NewResolver(cache, lookup)

	state, err := r.Resolve(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, state.IsLoggedIn)
	assert.Equal(t, models.RoleAdmin, state.Role)
	assert.Zero(t, lookup.lookups, "cache hit must skip the record lookup")
}

func TestResolveFallsBackToRecordAndCaches(t *testing.T) {
	cache := &fakeCache{}
	lookup := &fakeLookup{roles: map[uint]string{2: "superadmin"}}
	r := NewResolver(cache, lookup)

	state, err := r.Resolve(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, state.Role)
	assert.Equal(t, 1, lookup.lookups)
	assert.Equal(t, "superadmin", cache.roles[2], "resolution must be remembered")

	// Second resolve routes from the cache.
	_, err = r.Resolve(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, lookup.lookups)
}

func TestResolveNormalizesStrayRoleValues(t *testing.T) {
	cache := &fakeCache{roles: map[uint]string{3: "  Admin "}}
	r := NewResolver(cache, &fakeLookup{})

	state, err := r.Resolve(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, state.Role)
}

func TestResolveEmptyRoleFieldDefaultsToUser(t *testing.T) {
	lookup := &fakeLookup{roles: map[uint]string{4: ""}}
	r := NewResolver(&fakeCache{}, lookup)

	state, err := r.Resolve(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, state.Role)
}

func TestResolveMissingRecordIsAnError(t *testing.T) {
	r := NewResolver(&fakeCache{}, &fakeLookup{})

	_, err := r.Resolve(context.Background(), 9)
	assert.ErrorIs(t, err, ErrRoleMissing)
}

func TestResolveNoIdentity(t *testing.T) {
	r := NewResolver(&fakeCache{}, &fakeLookup{})

	state, err := r.Resolve(context.Background(), 0)
	require.NoError(t, err)
	assert.False(t, state.IsLoggedIn)
	assert.Equal(t, RouteLogin, RouteFor(state))
}

func TestRouteFor(t *testing.T) {
	cases := []struct {
		state State
		want  Route
	}{
		{State{IsLoggedIn: true, Role: models.RoleSuperAdmin}, RouteSuperAdminHome},
		{State{IsLoggedIn: true, Role: models.RoleAdmin}, RouteAdminHome},
		{State{IsLoggedIn: true, Role: models.RoleUser}, RouteUserHome},
		// Any other non-empty role behaves as a regular user.
		{State{IsLoggedIn: true, Role: models.Role("staff")}, RouteUserHome},
		{State{IsLoggedIn: false, Role: models.RoleAdmin}, RouteLogin},
		{State{IsLoggedIn: true, Role: models.Role("")}, RouteLogin},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RouteFor(tc.state), "state %+v", tc.state)
	}
}
