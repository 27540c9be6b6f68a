package services

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/wayvee/db"
	apiError "github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
	"gorm.io/gorm"
)

type StayService interface {
	ListStays(page, limit int) ([]models.Stay, *apiError.Error)
	CreateStay(host *models.User, stay *models.Stay) (*models.Stay, *apiError.Error)
	UpdateStay(host *models.User, request *models.UpdateStayRequest) *apiError.Error
	DeleteStay(host *models.User, stayID uuid.UUID) *apiError.Error
}

type stayService struct {
	stayRepo db.StayRepository
}

func NewStayService(stayRepo db.StayRepository) StayService {
	return &stayService{stayRepo: stayRepo}
}

func (s *stayService) ListStays(page, limit int) ([]models.Stay, *apiError.Error) {
	stays, err := s.stayRepo.ListStays(page, limit)
	if err != nil {
		log.Printf("ListStays error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return stays, nil
}

func (s *stayService) CreateStay(host *models.User, stay *models.Stay) (*models.Stay, *apiError.Error) {
	if !host.IsAgent {
		return nil, apiError.New("only agents can create stays", http.StatusForbidden)
	}

	stay.HostID = host.ID
	if err := s.stayRepo.CreateStay(stay); err != nil {
		log.Printf("CreateStay error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return stay, nil
}

func (s *stayService) UpdateStay(host *models.User, request *models.UpdateStayRequest) *apiError.Error {
	if !host.IsAgent {
		return apiError.New("only agents can update stays", http.StatusForbidden)
	}

	stayID, err := uuid.Parse(request.ID)
	if err != nil {
		return apiError.New("invalid stay id", http.StatusBadRequest)
	}

	stay, err := s.stayRepo.FindStayByIDAndHost(stayID, host.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("stay not found", http.StatusNotFound)
		}
		log.Printf("UpdateStay lookup error: %v", err)
		return apiError.ErrInternalServerError
	}

	if request.Title != nil {
		stay.Title = *request.Title
	}
	if request.DisplayImages != nil {
		stay.DisplayImages = *request.DisplayImages
	}
	if request.Perks != nil {
		stay.Perks = *request.Perks
	}
	if request.Amenities != nil {
		stay.Amenities = *request.Amenities
	}
	if request.PricePerNight != nil {
		stay.PricePerNight = *request.PricePerNight
	}
	if request.Availability != nil {
		stay.Availability = *request.Availability
	}
	if request.Discount != nil {
		stay.Discount = *request.Discount
	}

	if err := s.stayRepo.SaveStay(stay); err != nil {
		log.Printf("UpdateStay error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *stayService) DeleteStay(host *models.User, stayID uuid.UUID) *apiError.Error {
	if !host.IsAgent {
		return apiError.New("only agents can delete stays", http.StatusForbidden)
	}

	if _, err := s.stayRepo.FindStayByIDAndHost(stayID, host.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("stay not found", http.StatusNotFound)
		}
		log.Printf("DeleteStay lookup error: %v", err)
		return apiError.ErrInternalServerError
	}

	if err := s.stayRepo.DeleteStay(stayID); err != nil {
		log.Printf("DeleteStay error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}
