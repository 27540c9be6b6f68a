package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/wayvee/models"
	"gorm.io/gorm"
)

type fakeStayRepo struct {
	stays map[uuid.UUID]*models.Stay
}

func newFakeStayRepo() *fakeStayRepo {
	return &fakeStayRepo{stays: make(map[uuid.UUID]*models.Stay)}
}

func (f *fakeStayRepo) addStay(hostID uuid.UUID, maxOccupancy int, available bool) *models.Stay {
	stay := &models.Stay{
		HostID:       hostID,
		Title:        "Sea View Loft",
		MaxOccupancy: maxOccupancy,
		Availability: available,
	}
	stay.ID = uuid.New()
	f.stays[stay.ID] = stay
	return stay
}

func (f *fakeStayRepo) CreateStay(stay *models.Stay) error {
	stay.ID = uuid.New()
	f.stays[stay.ID] = stay
	return nil
}

func (f *fakeStayRepo) ListStays(page, limit int) ([]models.Stay, error) {
	var out []models.Stay
	for _, s := range f.stays {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStayRepo) FindStayByID(id uuid.UUID) (*models.Stay, error) {
	if s, ok := f.stays[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStayRepo) FindStayByIDAndHost(id, hostID uuid.UUID) (*models.Stay, error) {
	if s, ok := f.stays[id]; ok && s.HostID == hostID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStayRepo) SaveStay(stay *models.Stay) error {
	f.stays[stay.ID] = stay
	return nil
}

func (f *fakeStayRepo) DeleteStay(id uuid.UUID) error {
	delete(f.stays, id)
	return nil
}

type fakeBookingRepo struct {
	bookings []models.Booking
}

func (f *fakeBookingRepo) CreateBooking(booking *models.Booking) error {
	booking.ID = uuid.New()
	f.bookings = append(f.bookings, *booking)
	return nil
}

func (f *fakeBookingRepo) ListBookingsForUser(userID uuid.UUID) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeMailer struct {
	confirmations int
}

func (f *fakeMailer) SendResetPasswordMail(string, string) error { return nil }
func (f *fakeMailer) SendWelcomeMail(string, string) error       { return nil }
func (f *fakeMailer) SendBookingConfirmation(string, string, time.Time, time.Time) error {
	f.confirmations++
	return nil
}

func bookingRequest(stayID uuid.UUID, guests int) *models.CreateBookingRequest {
	checkIn := time.Now().Add(48 * time.Hour)
	return &models.CreateBookingRequest{
		StayID:       stayID.String(),
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.Add(72 * time.Hour),
		Guests:       guests,
		TotalPrice:   420,
	}
}

func TestCreateBooking(t *testing.T) {
	stayRepo := newFakeStayRepo()
	bookingRepo := &fakeBookingRepo{}
	mailer := &fakeMailer{}
	svc := NewBookingService(bookingRepo, stayRepo, mailer)

	guest := &models.User{Email: "guest@example.com"}
	guest.ID = uuid.New()
	stay := stayRepo.addStay(uuid.New(), 4, true)

	booking, err := svc.CreateBooking(guest, bookingRequest(stay.ID, 2))
	require.Nil(t, err)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, guest.ID, booking.UserID)
	assert.Equal(t, stay.ID, booking.StayID)
	assert.Equal(t, 1, mailer.confirmations)

	bookings, err := svc.ListMyBookings(guest.ID)
	require.Nil(t, err)
	assert.Len(t, bookings, 1)
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
	stayRepo := newFakeStayRepo()
	svc := NewBookingService(&fakeBookingRepo{}, stayRepo, &fakeMailer{})

	guest := &models.User{}
	guest.ID = uuid.New()
	stay := stayRepo.addStay(uuid.New(), 4, true)

	req := bookingRequest(stay.ID, 2)
	req.CheckOutDate = req.CheckInDate
	_, err := svc.CreateBooking(guest, req)
	require.NotNil(t, err)
	assert.Equal(t, 400, err.Status)
}

func TestCreateBookingUnavailableStay(t *testing.T) {
	stayRepo := newFakeStayRepo()
	svc := NewBookingService(&fakeBookingRepo{}, stayRepo, &fakeMailer{})

	guest := &models.User{}
	guest.ID = uuid.New()
	stay := stayRepo.addStay(uuid.New(), 4, false)

	_, err := svc.CreateBooking(guest, bookingRequest(stay.ID, 2))
	require.NotNil(t, err)
	assert.Equal(t, 409, err.Status)
}

func TestCreateBookingOverOccupancy(t *testing.T) {
	stayRepo := newFakeStayRepo()
	svc := NewBookingService(&fakeBookingRepo{}, stayRepo, &fakeMailer{})

	guest := &models.User{}
	guest.ID = uuid.New()
	stay := stayRepo.addStay(uuid.New(), 2, true)

	_, err := svc.CreateBooking(guest, bookingRequest(stay.ID, 5))
	require.NotNil(t, err)
	assert.Equal(t, 400, err.Status)
}

func TestCreateBookingUnknownStay(t *testing.T) {
	svc := NewBookingService(&fakeBookingRepo{}, newFakeStayRepo(), &fakeMailer{})

	guest := &models.User{}
	guest.ID = uuid.New()
	_, err := svc.CreateBooking(guest, bookingRequest(uuid.New(), 2))
	require.NotNil(t, err)
	assert.Equal(t, 404, err.Status)
}
