package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
	"github.com/techagentng/wayvee/server/response"
)

const (
	DefaultPageSize = 20
	DefaultPage     = 1
)

func pagination(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if err != nil || limit < 1 || limit > 100 {
		limit = DefaultPageSize
	}
	return page, limit
}

func (s *Server) handleListStays() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)
		stays, svcErr := s.StayService.ListStays(page, limit)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "stays retrieved successfully", http.StatusOK, stays, nil)
	}
}

func (s *Server) handleCreateStay() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		var stay models.Stay
		if err := decode(c, &stay); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		created, svcErr := s.StayService.CreateStay(user, &stay)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "stay created successfully", http.StatusCreated, created, nil)
	}
}

func (s *Server) handleUpdateStay() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		var request models.UpdateStayRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		if svcErr := s.StayService.UpdateStay(user, &request); svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "stay updated successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleDeleteStay() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		stayID, err := uuid.Parse(c.Param("stayId"))
		if err != nil {
			response.JSON(c, "invalid stay id", http.StatusBadRequest, nil, errors.ErrBadRequest)
			return
		}
		if svcErr := s.StayService.DeleteStay(user, stayID); svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "stay deleted successfully", http.StatusOK, nil, nil)
	}
}
