package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
	"github.com/techagentng/wayvee/server/response"
)

func (s *Server) handleListStaysWithWishlist() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		page, limit := pagination(c)
		stays, svcErr := s.WishlistService.ListStaysWithWishlistFlag(user.ID, page, limit)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "stays retrieved successfully", http.StatusOK, stays, nil)
	}
}

func (s *Server) handleAddToWishlist() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		var request models.AddWishlistRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		if svcErr := s.WishlistService.AddToWishlist(user.ID, &request); svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "stay added to wishlist", http.StatusCreated, nil, nil)
	}
}
