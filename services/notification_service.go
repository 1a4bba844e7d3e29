package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/teamuphq/teamup/config"
	"github.com/teamuphq/teamup/db"
	apiError "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/models"
	"gorm.io/gorm"
)

// NotificationService manages the informational notification feed. Deleting
// a notification never affects the domain record it announced.
type NotificationService interface {
	CreateNotification(senderID, receiverID uint, notificationType, message, link string) (*models.Notification, *apiError.Error)
	GetNotifications(userID uint) ([]models.Notification, *apiError.Error)
	MarkAsRead(notificationID, userID uint) (*models.Notification, *apiError.Error)
	DeleteNotification(notificationID, userID uint) *apiError.Error
}

type notificationService struct {
	Config           *config.Config
	notificationRepo db.NotificationRepository
}

func NewNotificationService(notificationRepo db.NotificationRepository, conf *config.Config) NotificationService {
	return &notificationService{
		Config:           conf,
		notificationRepo: notificationRepo,
	}
}

func (s *notificationService) CreateNotification(senderID, receiverID uint, notificationType, message, link string) (*models.Notification, *apiError.Error) {
	if receiverID == 0 || message == "" {
		return nil, apiError.New("receiver and message are required", http.StatusBadRequest)
	}
	if notificationType == "" {
		notificationType = models.NotificationTypeSystem
	}

	notification, err := s.notificationRepo.CreateNotification(&models.Notification{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Type:       notificationType,
		Message:    message,
		Link:       link,
	})
	if err != nil {
		log.Printf("CreateNotification error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return notification, nil
}

func (s *notificationService) GetNotifications(userID uint) ([]models.Notification, *apiError.Error) {
	notifications, err := s.notificationRepo.GetNotificationsForUser(userID)
	if err != nil {
		log.Printf("GetNotifications error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return notifications, nil
}

func (s *notificationService) MarkAsRead(notificationID, userID uint) (*models.Notification, *apiError.Error) {
	notification, apiErr := s.findOwned(notificationID, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := s.notificationRepo.MarkAsRead(notification.ID); err != nil {
		log.Printf("MarkAsRead error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	notification.Read = true
	return notification, nil
}

func (s *notificationService) DeleteNotification(notificationID, userID uint) *apiError.Error {
	notification, apiErr := s.findOwned(notificationID, userID)
	if apiErr != nil {
		return apiErr
	}

	if err := s.notificationRepo.DeleteNotification(notification.ID); err != nil {
		log.Printf("DeleteNotification error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *notificationService) findOwned(notificationID, userID uint) (*models.Notification, *apiError.Error) {
	notification, err := s.notificationRepo.FindNotificationByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("notification not found", http.StatusNotFound)
		}
		log.Printf("findOwned error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if notification.ReceiverID != userID {
		return nil, apiError.New("unauthorized", http.StatusForbidden)
	}
	return notification, nil
}
