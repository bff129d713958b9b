package models

import (
	"strings"

	"gorm.io/gorm"
)

type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "available"
	DriverStatusAssigned  DriverStatus = "assigned"
	DriverStatusOffDuty   DriverStatus = "offduty"
)

var DriverStatuses = []DriverStatus{
	DriverStatusAvailable,
	DriverStatusAssigned,
	DriverStatusOffDuty,
}

func NormalizeDriverStatus(s string) DriverStatus {
	switch DriverStatus(strings.ToLower(strings.TrimSpace(s))) {
	case DriverStatusAssigned:
		return DriverStatusAssigned
	case DriverStatusOffDuty:
		return DriverStatusOffDuty
	default:
		return DriverStatusAvailable
	}
}

func IsValidDriverStatus(s string) bool {
	for _, v := range DriverStatuses {
		if string(v) == s {
			return true
		}
	}
	return false
}

type Driver struct {
	gorm.Model
	Name      string       `json:"name" gorm:"not null"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	LicenseNo string       `json:"licenseNo" gorm:"column:license_no"`
	Notes     string       `json:"notes"`
	Status    DriverStatus `json:"status" gorm:"not null;default:'available'"`
}

// SearchText joins the fields the driver search matches against.
func (d *Driver) SearchText() string {
	return strings.ToLower(strings.Join([]string{
		d.Name,
		d.Email,
		d.Phone,
		d.LicenseNo,
		d.Notes,
		string(d.Status),
	}, " "))
}
