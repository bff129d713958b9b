package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nkozi444/CampusGo/internal/models"
	"github.com/nkozi444/CampusGo/internal/services"
)

// ErrRoleMissing means the identity resolved but no role record exists;
// the caller must not proceed to any home screen.
var ErrRoleMissing = errors.New("user data not found")

// Route is the destination a resolved session maps to.
type Route string

const (
	RouteLogin          Route = "login"
	RouteUserHome       Route = "user"
	RouteAdminHome      Route = "admin"
	RouteSuperAdminHome Route = "superadmin"
)

// State is the resolved login state and role.
type State struct {
	IsLoggedIn bool        `json:"isLoggedIn"`
	Role       models.Role `json:"role"`
}

// RoleCache is the fast path: session flags remembered across app
// launches so routing does not wait on a user-record roundtrip. An
// absent entry is ("", nil).
type RoleCache interface {
	GetRole(ctx context.Context, userID uint) (string, error)
	SetRole(ctx context.Context, userID uint, role string) error
}

// UserLookup is the slow path: the backing user-role record.
type UserLookup interface {
	FindRole(ctx context.Context, userID uint) (string, error)
}

// Resolver determines the current user's role and login state, cache
// first, record second.
type Resolver struct {
	cache RoleCache
	users UserLookup
}

func NewResolver(cache RoleCache, users UserLookup) *Resolver {
	return &Resolver{cache: cache, users: users}
}

// Resolve produces the session state for a user id. A zero id means no
// identity. Roles are normalized (trim + lowercase) before use, and a
// record with an empty role field behaves as a regular user. A missing
// record is an error.
func (r *Resolver) Resolve(ctx context.Context, userID uint) (State, error) {
	if userID == 0 {
		return State{}, nil
	}

	if cached, err := r.cache.GetRole(ctx, userID); err == nil && cached != "" {
		return State{IsLoggedIn: true, Role: models.NormalizeRole(cached)}, nil
	}

	raw, err := r.users.FindRole(ctx, userID)
	if err != nil {
		return State{}, err
	}

	role := models.NormalizeRole(raw)
	if role == "" {
		role = models.RoleUser
	}

	// Remember the resolution so the next launch can route without the
	// lookup.
	if err := r.cache.SetRole(ctx, userID, string(role)); err != nil {
		return State{IsLoggedIn: true, Role: role}, nil
	}

	return State{IsLoggedIn: true, Role: role}, nil
}

// RouteFor maps a session state onto its home.
func RouteFor(s State) Route {
	if !s.IsLoggedIn {
		return RouteLogin
	}
	switch s.Role {
	case models.RoleSuperAdmin:
		return RouteSuperAdminHome
	case models.RoleAdmin:
		return RouteAdminHome
	case "":
		return RouteLogin
	default:
		return RouteUserHome
	}
}

// redisRoleCache backs RoleCache with the shared Redis session keys.
type redisRoleCache struct{}

func NewRedisRoleCache() RoleCache {
	return redisRoleCache{}
}

func (redisRoleCache) GetRole(ctx context.Context, userID uint) (string, error) {
	role, err := services.GetSessionRole(ctx, userID)
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return role, err
}

func (redisRoleCache) SetRole(ctx context.Context, userID uint, role string) error {
	return services.SetSessionRole(ctx, userID, role)
}

// gormUserLookup backs UserLookup with the users table.
type gormUserLookup struct {
	db *gorm.DB
}

func NewUserLookup(db *gorm.DB) UserLookup {
	return gormUserLookup{db: db}
}

func (l gormUserLookup) FindRole(ctx context.Context, userID uint) (string, error) {
	var user models.User
	if err := l.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrRoleMissing
		}
		return "", err
	}
	return string(user.Role), nil
}
