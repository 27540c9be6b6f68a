package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
	"github.com/techagentng/wayvee/server/response"
)

func (s *Server) handleApplyForAgent() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		var request models.ApplyForAgentRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		if svcErr := s.AgentService.ApplyForAgent(user, &request); svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "agent application successful", http.StatusCreated, nil, nil)
	}
}

func (s *Server) handleGetAgentProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("userId"))
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, errors.ErrBadRequest)
			return
		}
		agent, svcErr := s.AgentService.GetAgentProfile(userID)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "agent profile retrieved successfully", http.StatusOK, agent, nil)
	}
}
