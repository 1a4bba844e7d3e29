package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/server/response"
)

func (s *Server) handleGetNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		notifications, apiErr := s.NotificationService.GetNotifications(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "notifications retrieved", http.StatusOK, gin.H{
			"count":         len(notifications),
			"notifications": notifications,
		}, nil)
	}
}

func (s *Server) handleMarkNotificationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		notificationID, err := paramUint(c, "id")
		if err != nil {
			response.JSON(c, "invalid notification id", http.StatusBadRequest, nil, err)
			return
		}

		notification, apiErr := s.NotificationService.MarkAsRead(notificationID, userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "notification marked as read", http.StatusOK, notification, nil)
	}
}

func (s *Server) handleDeleteNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		notificationID, err := paramUint(c, "id")
		if err != nil {
			response.JSON(c, "invalid notification id", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.NotificationService.DeleteNotification(notificationID, userID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "notification deleted", http.StatusOK, nil, nil)
	}
}
