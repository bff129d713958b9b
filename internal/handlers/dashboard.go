package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nkozi444/CampusGo/internal/models"
	"github.com/nkozi444/CampusGo/internal/store"
	"github.com/nkozi444/CampusGo/internal/views"
)

// GetKPIs returns the dashboard summary counts. Booking tallies are
// role-scoped; available vehicles come from the fleet collection.
func GetKPIs(bookings *store.BookingStore, fleet *store.FleetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := models.NormalizeRole(c.GetString("role"))

		rows, err := bookings.ListForRole(c.Request.Context(), role, userID)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		vehicles, err := fleet.ListVehicles(c.Request.Context())
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch vehicles"})
			return
		}

		c.JSON(200, views.ComputeKPIs(rows, vehicles))
	}
}

// GetCalendar returns the per-date booking tallies behind the calendar
// indicators.
func GetCalendar(bookings *store.BookingStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := models.NormalizeRole(c.GetString("role"))

		rows, err := bookings.ListForRole(c.Request.Context(), role, userID)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, views.CalendarSummary(rows))
	}
}

// GetCalendarDay returns the bookings on one date, actionable first.
func GetCalendarDay(bookings *store.BookingStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := models.NormalizeRole(c.GetString("role"))
		date := c.Param("date")

		rows, err := bookings.ListForRole(c.Request.Context(), role, userID)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, views.BookingsOn(rows, date))
	}
}

// GetTimeline returns the activity feed derived from recent bookings.
// Admin roles see the system-wide feed; a regular user their own.
func GetTimeline(bookings *store.BookingStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := models.NormalizeRole(c.GetString("role"))

		rows, err := bookings.ListForRole(c.Request.Context(), role, userID)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		limit := 40
		if !role.IsAdmin() {
			limit = 8
		}
		c.JSON(200, views.RecentEvents(rows, limit))
	}
}
