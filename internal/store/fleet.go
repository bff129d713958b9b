package store

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nkozi444/CampusGo/internal/models"
	"github.com/nkozi444/CampusGo/internal/services"
)

// FleetStore owns the vehicle and driver collections. These are flat
// assignment boards, not lifecycles: any status may be set directly as
// long as it belongs to the record's status set.
type FleetStore struct {
	db  *gorm.DB
	hub *services.Hub
}

func NewFleetStore(db *gorm.DB, hub *services.Hub) *FleetStore {
	return &FleetStore{db: db, hub: hub}
}

// CreateVehicle registers a fleet unit.
func (s *FleetStore) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	if v.Name == "" || v.PlateNo == "" {
		return errors.New("vehicle name and plate number are required")
	}
	v.Status = models.NormalizeVehicleStatus(string(v.Status))
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		return err
	}
	s.publishVehicle(ctx, v)
	return nil
}

// ListVehicles returns all vehicles with statuses normalized.
func (s *FleetStore) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.db.WithContext(ctx).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	for i := range vehicles {
		vehicles[i].Status = models.NormalizeVehicleStatus(string(vehicles[i].Status))
	}
	return vehicles, nil
}

// SetVehicleStatus assigns a vehicle status and stamps UpdatedAt.
func (s *FleetStore) SetVehicleStatus(ctx context.Context, id uint, status string) (*models.Vehicle, error) {
	if !models.IsValidVehicleStatus(status) {
		return nil, fmt.Errorf("unknown vehicle status %q", status)
	}

	var v models.Vehicle
	if err := s.db.WithContext(ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	v.Status = models.VehicleStatus(status)
	if err := s.db.WithContext(ctx).Save(&v).Error; err != nil {
		return nil, err
	}

	s.publishVehicle(ctx, &v)
	return &v, nil
}

// CreateDriver registers a driver record.
func (s *FleetStore) CreateDriver(ctx context.Context, d *models.Driver) error {
	if d.Name == "" {
		return errors.New("driver name is required")
	}
	d.Status = models.NormalizeDriverStatus(string(d.Status))
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return err
	}
	s.publishDriver(ctx, d)
	return nil
}

// ListDrivers returns all drivers with statuses normalized.
func (s *FleetStore) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	var drivers []models.Driver
	if err := s.db.WithContext(ctx).Find(&drivers).Error; err != nil {
		return nil, err
	}
	for i := range drivers {
		drivers[i].Status = models.NormalizeDriverStatus(string(drivers[i].Status))
	}
	return drivers, nil
}

// SetDriverStatus assigns a driver status and stamps UpdatedAt.
func (s *FleetStore) SetDriverStatus(ctx context.Context, id uint, status string) (*models.Driver, error) {
	if !models.IsValidDriverStatus(status) {
		return nil, fmt.Errorf("unknown driver status %q", status)
	}

	var d models.Driver
	if err := s.db.WithContext(ctx).First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	d.Status = models.DriverStatus(status)
	if err := s.db.WithContext(ctx).Save(&d).Error; err != nil {
		return nil, err
	}

	s.publishDriver(ctx, &d)
	return &d, nil
}

func (s *FleetStore) publishVehicle(ctx context.Context, v *models.Vehicle) {
	s.hub.SendFleetUpdate(services.FleetUpdate{
		Collection: "vehicles",
		RecordID:   v.ID,
		Status:     string(v.Status),
		Record:     v,
	})
	if err := services.PublishFleetUpdate(ctx, services.ChannelVehicleUpdates, v.ID, string(v.Status)); err != nil {
		log.WithError(err).WithField("vehicleId", v.ID).Warn("Failed to publish vehicle update")
	}
}

func (s *FleetStore) publishDriver(ctx context.Context, d *models.Driver) {
	s.hub.SendFleetUpdate(services.FleetUpdate{
		Collection: "drivers",
		RecordID:   d.ID,
		Status:     string(d.Status),
		Record:     d,
	})
	if err := services.PublishFleetUpdate(ctx, services.ChannelDriverUpdates, d.ID, string(d.Status)); err != nil {
		log.WithError(err).WithField("driverId", d.ID).Warn("Failed to publish driver update")
	}
}
