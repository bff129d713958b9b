package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// NormalizeRole tolerates stray whitespace and casing from upstream data
// entry. Any non-empty unknown value behaves as a regular user; empty
// means the role record is missing.
func NormalizeRole(s string) Role {
	v := strings.ToLower(strings.TrimSpace(s))
	switch Role(v) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSuperAdmin:
		return RoleSuperAdmin
	default:
		return Role(v)
	}
}

// IsAdmin reports whether the role may manage bookings and fleet records.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type User struct {
	gorm.Model
	Email        string `json:"email" gorm:"column:email;unique;not null"`
	Password     string `json:"-" gorm:"-:migration"` // Temporary field for password handling
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	Role         Role   `json:"role" gorm:"column:role;not null;default:'user'"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// AssignRoleForEmail applies the registration rule: known admin addresses
// get elevated roles, everyone else starts as a regular user.
func AssignRoleForEmail(email string) Role {
	switch strings.ToLower(strings.TrimSpace(email)) {
	case "admin@example.com":
		return RoleAdmin
	case "superadmin@example.com":
		return RoleSuperAdmin
	default:
		return RoleUser
	}
}
