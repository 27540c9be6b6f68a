package models

import (
	"github.com/google/uuid"
)

// Room describes one room within a stay listing.
type Room struct {
	ID               string      `json:"id"`
	RoomName         string      `json:"room_name"`
	BedType          string      `json:"bed_type,omitempty"`
	Images           []StayImage `json:"images"`
	BathroomIncluded bool        `json:"bathroom_included"`
}

type StayImage struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Stay is a bookable listing hosted by an agent.
type Stay struct {
	Model
	HostID             uuid.UUID `gorm:"type:uuid;not null;index" json:"host_id"`
	Host               *User     `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Title              string    `json:"title" binding:"required"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	DisplayImages      []string  `gorm:"serializer:json" json:"display_images"`
	RoomsDescription   []Room    `gorm:"serializer:json" json:"rooms_description"`
	Perks              []string  `gorm:"serializer:json" json:"perks"`
	Amenities          []string  `gorm:"serializer:json" json:"amenities"`
	BaseGuest          int       `json:"base_guest"`
	MaxOccupancy       int       `json:"max_occupancy"`
	PricePerNight      float64   `json:"price_per_night"`
	PerPersonIncrement float64   `json:"per_person_increment"`
	Availability       bool      `json:"availability"`
	Rating             float64   `gorm:"default:0" json:"rating"`
	Discount           float64   `gorm:"default:0" json:"discount"`
}

type UpdateStayRequest struct {
	ID            string    `json:"id" binding:"required,uuid"`
	Title         *string   `json:"title"`
	DisplayImages *[]string `json:"display_images"`
	Perks         *[]string `json:"perks"`
	Amenities     *[]string `json:"amenities"`
	PricePerNight *float64  `json:"price_per_night"`
	Availability  *bool     `json:"availability"`
	Discount      *float64  `json:"discount"`
}

type DeleteStayRequest struct {
	StayID string `json:"stay_id" binding:"required,uuid"`
}
