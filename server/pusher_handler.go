package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
	"github.com/techagentng/wayvee/server/response"
)

// handleChannelAuth signs private-channel subscriptions. Pusher's client
// library posts form-encoded bodies; our own clients post JSON, so both
// shapes are accepted.
func (s *Server) handleChannelAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}

		socketID := c.PostForm("socket_id")
		channelName := c.PostForm("channel_name")
		if socketID == "" || channelName == "" {
			var req models.ChannelAuthRequest
			if err := decode(c, &req); err != nil {
				response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
				return
			}
			socketID = req.SocketID
			channelName = req.ChannelName
		}
		if socketID == "" || strings.TrimSpace(channelName) == "" {
			response.JSON(c, "socket_id and channel_name are required", http.StatusBadRequest, nil, errors.ErrBadRequest)
			return
		}

		grant, svcErr := s.MessageService.AuthorizeChannel(user, socketID, channelName)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		c.Data(http.StatusOK, "application/json", grant)
	}
}
