package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
	"github.com/techagentng/wayvee/server/response"
)

func (s *Server) handleListConversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		conversations, err := s.MessageService.ListConversations(user)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "conversations retrieved successfully", http.StatusOK, conversations, nil)
	}
}

func (s *Server) handleGetConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		otherID, err := uuid.Parse(c.Param("otherId"))
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, errors.ErrBadRequest)
			return
		}
		conversation, messages, svcErr := s.MessageService.GetConversation(user, otherID)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "conversation retrieved successfully", http.StatusOK, gin.H{
			"conversation": conversation,
			"messages":     messages,
		}, nil)
	}
}

func (s *Server) handleSendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		var req models.SendMessageRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		receiverID, err := uuid.Parse(req.ReceiverID)
		if err != nil {
			response.JSON(c, "invalid receiver id", http.StatusBadRequest, nil, errors.ErrBadRequest)
			return
		}
		message, conversation, svcErr := s.MessageService.SendMessage(user, receiverID, req.Content)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "message sent successfully", http.StatusCreated, gin.H{
			"message":      message,
			"conversation": conversation,
		}, nil)
	}
}

func (s *Server) handleMarkConversationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		var req models.MarkReadRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		conversationID, err := uuid.Parse(req.ConversationID)
		if err != nil {
			response.JSON(c, "invalid conversation id", http.StatusBadRequest, nil, errors.ErrBadRequest)
			return
		}
		if svcErr := s.MessageService.MarkConversationRead(user, conversationID); svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "conversation marked as read", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleSendTyping() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		var req models.TypingRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		receiverID, err := uuid.Parse(req.ReceiverID)
		if err != nil {
			response.JSON(c, "invalid receiver id", http.StatusBadRequest, nil, errors.ErrBadRequest)
			return
		}
		if svcErr := s.MessageService.SendTyping(user, receiverID, req.IsTyping); svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "typing event sent", http.StatusOK, nil, nil)
	}
}
