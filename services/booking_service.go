package services

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/wayvee/db"
	apiError "github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/mailingservices"
	"github.com/techagentng/wayvee/models"
	"gorm.io/gorm"
)

type BookingService interface {
	CreateBooking(user *models.User, request *models.CreateBookingRequest) (*models.Booking, *apiError.Error)
	ListMyBookings(userID uuid.UUID) ([]models.Booking, *apiError.Error)
}

type bookingService struct {
	bookingRepo db.BookingRepository
	stayRepo    db.StayRepository
	mail        mailingservices.Mailer
}

func NewBookingService(bookingRepo db.BookingRepository, stayRepo db.StayRepository, mail mailingservices.Mailer) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		stayRepo:    stayRepo,
		mail:        mail,
	}
}

func (s *bookingService) CreateBooking(user *models.User, request *models.CreateBookingRequest) (*models.Booking, *apiError.Error) {
	if !request.CheckOutDate.After(request.CheckInDate) {
		return nil, apiError.New("check-out must be after check-in", http.StatusBadRequest)
	}

	stayID, err := uuid.Parse(request.StayID)
	if err != nil {
		return nil, apiError.New("invalid stay id", http.StatusBadRequest)
	}

	stay, err := s.stayRepo.FindStayByID(stayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("stay not found", http.StatusNotFound)
		}
		log.Printf("CreateBooking stay lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if !stay.Availability {
		return nil, apiError.New("stay is not available", http.StatusConflict)
	}
	if request.Guests > stay.MaxOccupancy {
		return nil, apiError.New("guest count exceeds max occupancy", http.StatusBadRequest)
	}

	booking := &models.Booking{
		UserID:       user.ID,
		StayID:       stay.ID,
		CheckInDate:  request.CheckInDate,
		CheckOutDate: request.CheckOutDate,
		Guests:       request.Guests,
		TotalPrice:   request.TotalPrice,
		Status:       models.BookingPending,
	}
	if err := s.bookingRepo.CreateBooking(booking); err != nil {
		log.Printf("CreateBooking error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	// Confirmation mail is best effort.
	if err := s.mail.SendBookingConfirmation(user.Email, stay.Title, booking.CheckInDate, booking.CheckOutDate); err != nil {
		log.Printf("CreateBooking confirmation mail failed: %v", err)
	}

	return booking, nil
}

func (s *bookingService) ListMyBookings(userID uuid.UUID) ([]models.Booking, *apiError.Error) {
	bookings, err := s.bookingRepo.ListBookingsForUser(userID)
	if err != nil {
		log.Printf("ListMyBookings error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return bookings, nil
}
