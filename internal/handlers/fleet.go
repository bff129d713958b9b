package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nkozi444/CampusGo/internal/dispatch"
	"github.com/nkozi444/CampusGo/internal/models"
	"github.com/nkozi444/CampusGo/internal/store"
	"github.com/nkozi444/CampusGo/internal/views"
)

// GetVehicles lists the fleet with status tallies, name-ordered,
// optionally filtered by ?q=.
func GetVehicles(fleet *store.FleetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicles, err := fleet.ListVehicles(c.Request.Context())
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch vehicles"})
			return
		}

		counts := views.ComputeVehicleCounts(vehicles)
		vehicles = views.FilterVehicles(vehicles, c.Query("q"))
		vehicles = views.SortVehiclesByName(vehicles)

		c.JSON(200, gin.H{
			"vehicles": vehicles,
			"counts":   counts,
			"statuses": models.VehicleStatuses,
		})
	}
}

// GetVehicleOptions returns the vehicle types a request form offers.
func GetVehicleOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"options": models.VehicleOptions})
	}
}

// CreateVehicle registers a fleet unit. Admin roles only.
func CreateVehicle(fleet *store.FleetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.NormalizeRole(c.GetString("role"))
		if !role.IsAdmin() {
			c.JSON(403, gin.H{"error": "Not allowed"})
			return
		}

		var input struct {
			Name     string `json:"name" binding:"required"`
			Model    string `json:"model"`
			PlateNo  string `json:"plateNo" binding:"required"`
			Type     string `json:"type"`
			Capacity int    `json:"capacity"`
			Color    string `json:"color"`
			Notes    string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		vehicle := models.Vehicle{
			Name:      input.Name,
			ModelName: input.Model,
			PlateNo:   input.PlateNo,
			Type:      input.Type,
			Capacity:  input.Capacity,
			Color:     input.Color,
			Notes:     input.Notes,
			Status:    models.VehicleStatusAvailable,
		}
		if err := fleet.CreateVehicle(c.Request.Context(), &vehicle); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		c.JSON(201, vehicle)
	}
}

// UpdateVehicleStatus sets a vehicle's status through the dispatcher.
func UpdateVehicleStatus(bookings *store.BookingStore, fleet *store.FleetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.NormalizeRole(c.GetString("role"))

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid vehicle ID"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		d := dispatch.New(bookings, fleet, dispatch.ConfirmerFunc(func(dispatch.Prompt) bool { return true }))
		vehicle, err := d.SetVehicleStatus(c.Request.Context(), role, uint(id), input.Status)
		switch {
		case errors.Is(err, dispatch.ErrNotAllowed):
			c.JSON(403, gin.H{"error": "Not allowed"})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(404, gin.H{"error": "Vehicle not found"})
		case err != nil:
			c.JSON(400, gin.H{"error": err.Error()})
		default:
			c.JSON(200, vehicle)
		}
	}
}

// GetDrivers lists drivers with status tallies, name-ordered, optionally
// filtered by ?q=.
func GetDrivers(fleet *store.FleetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		drivers, err := fleet.ListDrivers(c.Request.Context())
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch drivers"})
			return
		}

		counts := views.ComputeDriverCounts(drivers)
		drivers = views.FilterDrivers(drivers, c.Query("q"))
		drivers = views.SortDriversByName(drivers)

		c.JSON(200, gin.H{
			"drivers":  drivers,
			"counts":   counts,
			"statuses": models.DriverStatuses,
		})
	}
}

// CreateDriver registers a driver record. Admin roles only.
func CreateDriver(fleet *store.FleetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.NormalizeRole(c.GetString("role"))
		if !role.IsAdmin() {
			c.JSON(403, gin.H{"error": "Not allowed"})
			return
		}

		var input struct {
			Name      string `json:"name" binding:"required"`
			Email     string `json:"email"`
			Phone     string `json:"phone"`
			LicenseNo string `json:"licenseNo"`
			Notes     string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		driver := models.Driver{
			Name:      input.Name,
			Email:     input.Email,
			Phone:     input.Phone,
			LicenseNo: input.LicenseNo,
			Notes:     input.Notes,
			Status:    models.DriverStatusAvailable,
		}
		if err := fleet.CreateDriver(c.Request.Context(), &driver); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		c.JSON(201, driver)
	}
}

// UpdateDriverStatus sets a driver's status through the dispatcher.
func UpdateDriverStatus(bookings *store.BookingStore, fleet *store.FleetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.NormalizeRole(c.GetString("role"))

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid driver ID"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		d := dispatch.New(bookings, fleet, dispatch.ConfirmerFunc(func(dispatch.Prompt) bool { return true }))
		driver, err := d.SetDriverStatus(c.Request.Context(), role, uint(id), input.Status)
		switch {
		case errors.Is(err, dispatch.ErrNotAllowed):
			c.JSON(403, gin.H{"error": "Not allowed"})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(404, gin.H{"error": "Driver not found"})
		case err != nil:
			c.JSON(400, gin.H{"error": err.Error()})
		default:
			c.JSON(200, driver)
		}
	}
}
