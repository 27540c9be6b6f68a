package services

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/techagentng/wayvee/db"
	apiError "github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
)

type WishlistService interface {
	// ListStaysWithWishlistFlag returns the stay catalogue annotated with the
	// caller's wishlist membership.
	ListStaysWithWishlistFlag(userID uuid.UUID, page, limit int) ([]models.WishlistedStay, *apiError.Error)
	AddToWishlist(userID uuid.UUID, request *models.AddWishlistRequest) *apiError.Error
}

type wishlistService struct {
	wishlistRepo db.WishlistRepository
	stayRepo     db.StayRepository
}

func NewWishlistService(wishlistRepo db.WishlistRepository, stayRepo db.StayRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		stayRepo:     stayRepo,
	}
}

func (s *wishlistService) ListStaysWithWishlistFlag(userID uuid.UUID, page, limit int) ([]models.WishlistedStay, *apiError.Error) {
	stayIDs, err := s.wishlistRepo.ListStayIDsForUser(userID)
	if err != nil {
		log.Printf("ListStaysWithWishlistFlag error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	wishlisted := make(map[uuid.UUID]bool, len(stayIDs))
	for _, id := range stayIDs {
		wishlisted[id] = true
	}

	stays, err := s.stayRepo.ListStays(page, limit)
	if err != nil {
		log.Printf("ListStaysWithWishlistFlag stays error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	out := make([]models.WishlistedStay, 0, len(stays))
	for _, stay := range stays {
		out = append(out, models.WishlistedStay{
			Stay:       stay,
			Wishlisted: wishlisted[stay.ID],
		})
	}
	return out, nil
}

func (s *wishlistService) AddToWishlist(userID uuid.UUID, request *models.AddWishlistRequest) *apiError.Error {
	stayID, err := uuid.Parse(request.StayID)
	if err != nil {
		return apiError.New("invalid stay id", http.StatusBadRequest)
	}

	item := &models.WishlistItem{
		UserID: userID,
		StayID: stayID,
	}
	if err := s.wishlistRepo.AddItem(item); err != nil {
		log.Printf("AddToWishlist error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}
