package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/wayvee/models"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	AddItem(item *models.WishlistItem) error
	ListStayIDsForUser(userID uuid.UUID) ([]uuid.UUID, error)
}

type wishlistRepo struct {
	DB *gorm.DB
}

func NewWishlistRepo(db *GormDB) WishlistRepository {
	return &wishlistRepo{db.DB}
}

func (r *wishlistRepo) AddItem(item *models.WishlistItem) error {
	if err := r.DB.Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			// Already wishlisted, treat as a no-op.
			return nil
		}
		return errors.Wrap(err, "could not add to wishlist")
	}
	return nil
}

func (r *wishlistRepo) ListStayIDsForUser(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB.Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Pluck("stay_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list wishlist")
	}
	return ids, nil
}
