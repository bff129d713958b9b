package models

import (
	"strings"

	"gorm.io/gorm"
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusAssigned    VehicleStatus = "assigned"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusUnavailable VehicleStatus = "unavailable"
)

// VehicleStatuses lists the legal fleet statuses. This is an assignment
// board, not a lifecycle: any status may move to any other.
var VehicleStatuses = []VehicleStatus{
	VehicleStatusAvailable,
	VehicleStatusAssigned,
	VehicleStatusMaintenance,
	VehicleStatusUnavailable,
}

func NormalizeVehicleStatus(s string) VehicleStatus {
	switch VehicleStatus(strings.ToLower(strings.TrimSpace(s))) {
	case VehicleStatusAssigned:
		return VehicleStatusAssigned
	case VehicleStatusMaintenance:
		return VehicleStatusMaintenance
	case VehicleStatusUnavailable:
		return VehicleStatusUnavailable
	default:
		return VehicleStatusAvailable
	}
}

func IsValidVehicleStatus(s string) bool {
	for _, v := range VehicleStatuses {
		if string(v) == s {
			return true
		}
	}
	return false
}

// VehicleOptions are the vehicle types a booking request may ask for.
var VehicleOptions = []string{"Bus", "Van", "L300", "Vios"}

type Vehicle struct {
	gorm.Model
	Name      string        `json:"name" gorm:"not null"`
	ModelName string        `json:"model" gorm:"column:vehicle_model"`
	PlateNo   string        `json:"plateNo" gorm:"column:plate_no;unique;not null"`
	Type      string        `json:"type"`
	Capacity  int           `json:"capacity" gorm:"not null;default:0"`
	Color     string        `json:"color"`
	Notes     string        `json:"notes"`
	Status    VehicleStatus `json:"status" gorm:"not null;default:'available'"`
}

// SearchText joins the fields the fleet search matches against.
func (v *Vehicle) SearchText() string {
	return strings.ToLower(strings.Join([]string{
		v.Name,
		v.PlateNo,
		v.Type,
		v.ModelName,
		v.Color,
		v.Notes,
		string(v.Status),
	}, " "))
}
