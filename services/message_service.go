package services

import (
	"log"
	"net/http"
	"strings"

	"github.com/teamuphq/teamup/config"
	"github.com/teamuphq/teamup/db"
	apiError "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/models"
)

// MessageService is the append-only message log. Send is the only write
// path; history and conversations are derived reads.
type MessageService interface {
	SendMessage(senderID, receiverID uint, content, messageType string) (*models.Message, *apiError.Error)
	GetMessages(userID, otherID uint) ([]models.Message, *apiError.Error)
	GetConversations(userID uint) ([]models.Conversation, *apiError.Error)
}

type messageService struct {
	Config      *config.Config
	authRepo    db.AuthRepository
	messageRepo db.MessageRepository
}

func NewMessageService(authRepo db.AuthRepository, messageRepo db.MessageRepository, conf *config.Config) MessageService {
	return &messageService{
		Config:      conf,
		authRepo:    authRepo,
		messageRepo: messageRepo,
	}
}

func (s *messageService) SendMessage(senderID, receiverID uint, content, messageType string) (*models.Message, *apiError.Error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apiError.New("message content is required", http.StatusBadRequest)
	}
	if receiverID == 0 {
		return nil, apiError.New("receiver id is required", http.StatusBadRequest)
	}

	exists, err := s.authRepo.UserExists(receiverID)
	if err != nil {
		log.Printf("SendMessage error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if !exists {
		return nil, apiError.New("receiver not found", http.StatusNotFound)
	}

	if messageType == "" {
		messageType = models.MessageTypeText
	}

	message, err := s.messageRepo.CreateMessage(&models.Message{
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Content:     content,
		MessageType: messageType,
	})
	if err != nil {
		log.Printf("SendMessage error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return message, nil
}

func (s *messageService) GetMessages(userID, otherID uint) ([]models.Message, *apiError.Error) {
	messages, err := s.messageRepo.GetMessagesBetween(userID, otherID)
	if err != nil {
		log.Printf("GetMessages error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	// reading the thread is the pull-based catch-up; inbound messages are
	// seen once fetched
	if err := s.messageRepo.MarkSeen(userID, otherID); err != nil {
		log.Printf("GetMessages mark seen error: %v", err)
	}
	return messages, nil
}

func (s *messageService) GetConversations(userID uint) ([]models.Conversation, *apiError.Error) {
	conversations, err := s.messageRepo.GetConversations(userID)
	if err != nil {
		log.Printf("GetConversations error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return conversations, nil
}
