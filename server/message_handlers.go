package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/models"
	"github.com/teamuphq/teamup/server/response"
)

func (s *Server) handleSendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		senderID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.SendMessageRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "receiver id and message content are required", http.StatusBadRequest, nil, err)
			return
		}

		message, apiErr := s.MessageService.SendMessage(senderID, request.ReceiverID, request.Content, request.MessageType)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		// push to the receiver's channel if they are online; offline
		// receivers catch up through history
		if s.Hub != nil {
			s.Hub.DeliverMessage(message)
		}
		response.JSON(c, "message sent successfully", http.StatusCreated, message, nil)
	}
}

func (s *Server) handleGetMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		otherID, err := paramUint(c, "userID")
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, err)
			return
		}

		messages, apiErr := s.MessageService.GetMessages(userID, otherID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "messages retrieved", http.StatusOK, messages, nil)
	}
}

func (s *Server) handleGetConversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		conversations, apiErr := s.MessageService.GetConversations(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "conversations retrieved", http.StatusOK, conversations, nil)
	}
}
