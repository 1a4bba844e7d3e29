package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/server/response"
)

func (s *Server) handleSendConnectionRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		senderID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		receiverID, err := paramUint(c, "userID")
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, err)
			return
		}

		request, apiErr := s.ConnectionService.SendRequest(senderID, receiverID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "connection request sent successfully", http.StatusCreated, request, nil)
	}
}

func (s *Server) handleAcceptConnectionRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		requestID, err := paramUint(c, "requestID")
		if err != nil {
			response.JSON(c, "invalid request id", http.StatusBadRequest, nil, err)
			return
		}

		request, apiErr := s.ConnectionService.AcceptRequest(requestID, userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "connection request accepted", http.StatusOK, request, nil)
	}
}

func (s *Server) handleRejectConnectionRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		requestID, err := paramUint(c, "requestID")
		if err != nil {
			response.JSON(c, "invalid request id", http.StatusBadRequest, nil, err)
			return
		}

		request, apiErr := s.ConnectionService.RejectRequest(requestID, userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "connection request rejected", http.StatusOK, request, nil)
	}
}

func (s *Server) handleRemoveConnection() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		targetID, err := paramUint(c, "userID")
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.ConnectionService.RemoveConnection(userID, targetID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "connection removed successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetConnections() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		connections, apiErr := s.ConnectionService.GetConnections(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "connections retrieved", http.StatusOK, connections, nil)
	}
}
