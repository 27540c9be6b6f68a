package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/wayvee/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	CreateBooking(booking *models.Booking) error
	ListBookingsForUser(userID uuid.UUID) ([]models.Booking, error)
}

type bookingRepo struct {
	DB *gorm.DB
}

func NewBookingRepo(db *GormDB) BookingRepository {
	return &bookingRepo{db.DB}
}

func (r *bookingRepo) CreateBooking(booking *models.Booking) error {
	if err := r.DB.Create(booking).Error; err != nil {
		return errors.Wrap(err, "could not create booking")
	}
	return nil
}

func (r *bookingRepo) ListBookingsForUser(userID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.DB.
		Preload("Stay").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookings).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list bookings")
	}
	return bookings, nil
}
