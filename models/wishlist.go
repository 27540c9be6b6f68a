package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem marks a stay saved by a user. The (UserID, StayID) pair is
// the primary key so a stay can be saved at most once.
type WishlistItem struct {
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_wishlist_user" json:"user_id"`
	StayID  uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_wishlist_stay" json:"stay_id"`
	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (WishlistItem) TableName() string {
	return "wishlist"
}

type AddWishlistRequest struct {
	StayID string `json:"stay_id" binding:"required,uuid"`
}

// WishlistedStay is a stay annotated with the caller's wishlist flag.
type WishlistedStay struct {
	Stay
	Wishlisted bool `json:"wishlisted"`
}
