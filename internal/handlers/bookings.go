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

// CreateBooking handles the creation of a new booking request. The
// record always enters as pending regardless of what the client sends.
func CreateBooking(bookings *store.BookingStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := models.NormalizeRole(c.GetString("role"))
		email := c.GetString("userEmail")

		if !dispatch.CanPerform(role, dispatch.ActionCreateBooking) {
			c.JSON(403, gin.H{"error": "Not allowed"})
			return
		}

		var input struct {
			Vehicle         string `json:"vehicle" binding:"required"`
			Date            string `json:"date" binding:"required"`
			Destination     string `json:"destination" binding:"required"`
			Passengers      int    `json:"passengers"`
			Purpose         string `json:"purpose" binding:"required"`
			Notes           string `json:"notes"`
			Urgent          bool   `json:"urgent"`
			StartTimeLabel  string `json:"startTimeLabel" binding:"required"`
			EndTimeLabel    string `json:"endTimeLabel" binding:"required"`
			Status          string `json:"status"` // ignored
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		booking := models.Booking{
			UserID:         userID,
			UserEmail:      email,
			Vehicle:        input.Vehicle,
			Date:           input.Date,
			Destination:    input.Destination,
			Passengers:     input.Passengers,
			Purpose:        input.Purpose,
			Notes:          input.Notes,
			Urgent:         input.Urgent,
			StartTimeLabel: input.StartTimeLabel,
			EndTimeLabel:   input.EndTimeLabel,
		}

		if err := bookings.Create(c.Request.Context(), &booking); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		c.JSON(201, booking)
	}
}

// GetBookings retrieves the role-scoped booking list: everything for
// admin roles, own requests for a regular user. Supports ?q= search,
// ?sort=oldest, and ?date= day filtering.
func GetBookings(bookings *store.BookingStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := models.NormalizeRole(c.GetString("role"))

		rows, err := bookings.ListForRole(c.Request.Context(), role, userID)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		if date := c.Query("date"); date != "" {
			c.JSON(200, views.BookingsOn(rows, date))
			return
		}

		rows = views.FilterBookings(rows, c.Query("q"))
		rows = views.SortNewestFirst(rows, c.Query("sort") == "oldest")
		c.JSON(200, rows)
	}
}

// GetBookingStatus retrieves a single booking. Only the owner or an
// admin role may read it.
func GetBookingStatus(bookings *store.BookingStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := models.NormalizeRole(c.GetString("role"))

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid booking ID"})
			return
		}

		booking, err := bookings.Get(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.UserID != userID && !role.IsAdmin() {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		c.JSON(200, booking)
	}
}

// UpdateBookingStatus applies a lifecycle action (approve, decline,
// markComplete, cancel) through the dispatcher. Destructive actions
// carry a confirmation: a request without confirmed=true gets the
// prompt back instead of a write.
func UpdateBookingStatus(bookings *store.BookingStore, fleet *store.FleetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.NormalizeRole(c.GetString("role"))

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid booking ID"})
			return
		}

		var input struct {
			Action    string `json:"action" binding:"required,oneof=approve decline markComplete cancel"`
			Confirmed bool   `json:"confirmed"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		action := dispatch.Action(input.Action)
		d := dispatch.New(bookings, fleet, dispatch.ConfirmerFunc(func(dispatch.Prompt) bool {
			return input.Confirmed
		}))

		booking, err := d.Transition(c.Request.Context(), role, action, uint(id))
		switch {
		case errors.Is(err, dispatch.ErrNotAllowed):
			c.JSON(403, gin.H{"error": "Only Admin/Superadmin can change booking status"})
		case errors.Is(err, dispatch.ErrNotConfirmed):
			prompt, _ := dispatch.PromptFor(action)
			c.JSON(409, gin.H{"error": "Confirmation required", "prompt": prompt})
		case errors.Is(err, store.ErrIllegalTransition):
			c.JSON(400, gin.H{"error": "Booking can no longer change status"})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(404, gin.H{"error": "Booking not found"})
		case err != nil:
			c.JSON(500, gin.H{"error": "Failed to update booking status"})
		default:
			c.JSON(200, booking)
		}
	}
}
