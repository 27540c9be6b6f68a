package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking records a reservation of a stay by a user.
type Booking struct {
	Model
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	StayID       uuid.UUID `gorm:"type:uuid;not null;index" json:"stay_id"`
	Stay         *Stay     `gorm:"foreignKey:StayID" json:"stay,omitempty"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	Guests       int       `json:"guests"`
	TotalPrice   float64   `json:"total_price"`
	Status       string    `gorm:"default:'pending'" json:"status"`
}

type CreateBookingRequest struct {
	StayID       string    `json:"stay_id" binding:"required,uuid"`
	CheckInDate  time.Time `json:"check_in_date" binding:"required"`
	CheckOutDate time.Time `json:"check_out_date" binding:"required"`
	Guests       int       `json:"guests" binding:"required,min=1"`
	TotalPrice   float64   `json:"total_price" binding:"required"`
}
