package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nkozi444/CampusGo/internal/models"
	"github.com/nkozi444/CampusGo/internal/services"
	"github.com/nkozi444/CampusGo/pkg/utils"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrIllegalTransition = errors.New("illegal status transition")
)

// MinLeadDays is the minimum number of days between submitting a request
// and the requested travel date.
const MinLeadDays = 7

// BookingStore is the sole write path for the bookings collection. It
// forces new records to pending, enforces the status state machine, and
// publishes every committed change to the hub and Redis so subscribers
// converge without manual refresh.
type BookingStore struct {
	db  *gorm.DB
	hub *services.Hub
}

func NewBookingStore(db *gorm.DB, hub *services.Hub) *BookingStore {
	return &BookingStore{db: db, hub: hub}
}

// Create validates and persists a new booking request. Any
// client-supplied status is ignored; a booking always starts pending.
func (s *BookingStore) Create(ctx context.Context, b *models.Booking) error {
	if b.Vehicle == "" || b.Date == "" || b.Destination == "" || b.Purpose == "" ||
		b.StartTimeLabel == "" || b.EndTimeLabel == "" {
		return errors.New("please complete all required fields")
	}

	startAt, endAt, err := utils.ScheduleBounds(b.Date, b.StartTimeLabel, b.EndTimeLabel)
	if err != nil {
		return err
	}
	if !endAt.After(startAt) {
		return errors.New("end time must be after the start time")
	}

	day, _ := utils.ParseDate(b.Date)
	minDate := time.Now().AddDate(0, 0, MinLeadDays)
	if day.Before(time.Date(minDate.Year(), minDate.Month(), minDate.Day(), 0, 0, 0, 0, time.Local)) {
		return fmt.Errorf("travel date must be at least %d days ahead", MinLeadDays)
	}

	if b.Passengers <= 0 {
		b.Passengers = 1
	}
	b.Status = models.BookingStatusPending
	b.TimeRange = b.StartTimeLabel + " - " + b.EndTimeLabel
	b.ScheduleStartAt = startAt
	b.ScheduleEndAt = endAt
	if b.CreatedAtClient == nil {
		now := time.Now()
		b.CreatedAtClient = &now
	}

	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return err
	}

	s.publish(ctx, b)
	return nil
}

// Get fetches a single booking with its status normalized.
func (s *BookingStore) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	b.Status = models.NormalizeBookingStatus(string(b.Status))
	return &b, nil
}

// ListForRole returns the role-scoped booking list: admin roles see all
// bookings, a regular user only their own. Statuses are normalized at
// this boundary so malformed rows stay renderable.
func (s *BookingStore) ListForRole(ctx context.Context, role models.Role, userID uint) ([]models.Booking, error) {
	q := s.db.WithContext(ctx)
	if !role.IsAdmin() {
		q = q.Where("user_id = ?", userID)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	for i := range bookings {
		bookings[i].Status = models.NormalizeBookingStatus(string(bookings[i].Status))
	}
	return bookings, nil
}

// UpdateStatus applies a status transition. Terminal states are sticky;
// re-applying the current status is a no-op for the caller even though
// the row's UpdatedAt is rewritten.
func (s *BookingStore) UpdateStatus(ctx context.Context, id uint, next models.BookingStatus) (*models.Booking, error) {
	var b models.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		current := models.NormalizeBookingStatus(string(b.Status))
		if current != next && !current.CanTransitionTo(next) {
			return ErrIllegalTransition
		}

		b.Status = next
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, &b)
	return &b, nil
}

func (s *BookingStore) publish(ctx context.Context, b *models.Booking) {
	s.hub.SendBookingUpdate(services.BookingUpdate{
		BookingID: b.ID,
		UserID:    b.UserID,
		Status:    string(b.Status),
		Booking:   b,
	})

	if err := services.PublishBookingUpdate(ctx, b.ID, string(b.Status), map[string]interface{}{
		"date":      b.Date,
		"userEmail": b.UserEmail,
	}); err != nil {
		log.WithError(err).WithField("bookingId", b.ID).Warn("Failed to publish booking update")
	}
}
