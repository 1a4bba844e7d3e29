package db

import (
	"github.com/pkg/errors"
	"github.com/teamuphq/teamup/models"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateNotification(notification *models.Notification) (*models.Notification, error)
	FindNotificationByID(id uint) (*models.Notification, error)
	GetNotificationsForUser(userID uint) ([]models.Notification, error)
	MarkAsRead(id uint) error
	DeleteNotification(id uint) error
}

type notificationRepo struct {
	DB *gorm.DB
}

func NewNotificationRepo(db *GormDB) NotificationRepository {
	return &notificationRepo{db.DB}
}

func (n *notificationRepo) CreateNotification(notification *models.Notification) (*models.Notification, error) {
	if err := n.DB.Create(notification).Error; err != nil {
		return nil, errors.Wrap(err, "could not create notification")
	}
	return notification, nil
}

func (n *notificationRepo) FindNotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := n.DB.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (n *notificationRepo) GetNotificationsForUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := n.DB.Preload("Sender").
		Where("receiver_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list notifications")
	}
	return notifications, nil
}

func (n *notificationRepo) MarkAsRead(id uint) error {
	err := n.DB.Model(&models.Notification{}).Where("id = ?", id).Update("read", true).Error
	return errors.Wrap(err, "could not mark notification read")
}

func (n *notificationRepo) DeleteNotification(id uint) error {
	err := n.DB.Delete(&models.Notification{}, id).Error
	return errors.Wrap(err, "could not delete notification")
}
