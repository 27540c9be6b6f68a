package models

import (
	"github.com/google/uuid"
)

// Agent is the listing-agent profile attached to a user once their
// application is approved.
type Agent struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User            *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AgencyName      string    `json:"agency_name" binding:"required"`
	About           string    `gorm:"type:text" json:"about" binding:"required"`
	Rating          float64   `gorm:"default:0" json:"rating"`
	Verified        bool      `gorm:"default:false" json:"verified"`
	Membership      string    `gorm:"default:'regular'" json:"membership"`
	ServicesOffered []string  `gorm:"serializer:json" json:"services_offered" binding:"required"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
}

type ApplyForAgentRequest struct {
	AgencyName      string   `json:"agency_name" binding:"required"`
	About           string   `json:"about" binding:"required"`
	ServicesOffered []string `json:"services_offered" binding:"required,min=1"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
}
