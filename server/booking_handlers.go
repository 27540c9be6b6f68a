package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
	"github.com/techagentng/wayvee/server/response"
)

func (s *Server) handleCreateBooking() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		var request models.CreateBookingRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		booking, svcErr := s.BookingService.CreateBooking(user, &request)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "booking created successfully", http.StatusCreated, booking, nil)
	}
}

func (s *Server) handleListMyBookings() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		bookings, svcErr := s.BookingService.ListMyBookings(user.ID)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "bookings retrieved successfully", http.StatusOK, bookings, nil)
	}
}
