package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/teamuphq/teamup/config"
	"github.com/teamuphq/teamup/db"
	apiError "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/mailingservices"
	"github.com/teamuphq/teamup/models"
	"gorm.io/gorm"
)

// ConnectionService governs the connection request workflow and the
// symmetric connection graph it feeds.
type ConnectionService interface {
	SendRequest(senderID, receiverID uint) (*models.ConnectionRequest, *apiError.Error)
	AcceptRequest(requestID, actingUserID uint) (*models.ConnectionRequest, *apiError.Error)
	RejectRequest(requestID, actingUserID uint) (*models.ConnectionRequest, *apiError.Error)
	RemoveConnection(userID, targetID uint) *apiError.Error
	GetConnections(userID uint) ([]models.UserResponse, *apiError.Error)
}

type connectionService struct {
	Config           *config.Config
	authRepo         db.AuthRepository
	connectionRepo   db.ConnectionRepository
	notificationRepo db.NotificationRepository
	mail             mailingservices.Mailer
}

func NewConnectionService(authRepo db.AuthRepository, connectionRepo db.ConnectionRepository, notificationRepo db.NotificationRepository, mail mailingservices.Mailer, conf *config.Config) ConnectionService {
	return &connectionService{
		Config:           conf,
		authRepo:         authRepo,
		connectionRepo:   connectionRepo,
		notificationRepo: notificationRepo,
		mail:             mail,
	}
}

func (s *connectionService) SendRequest(senderID, receiverID uint) (*models.ConnectionRequest, *apiError.Error) {
	if senderID == receiverID {
		return nil, apiError.New("you cannot send a connection request to yourself", http.StatusBadRequest)
	}

	exists, err := s.authRepo.UserExists(receiverID)
	if err != nil {
		log.Printf("SendRequest error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if !exists {
		return nil, apiError.New("user not found", http.StatusNotFound)
	}

	connected, err := s.connectionRepo.IsConnected(receiverID, senderID)
	if err != nil {
		log.Printf("SendRequest error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if connected {
		return nil, apiError.New("you are already connected with this user", http.StatusBadRequest)
	}

	pending, err := s.connectionRepo.HasPendingRequest(senderID, receiverID)
	if err != nil {
		log.Printf("SendRequest error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if pending {
		return nil, apiError.New("connection request already sent", http.StatusBadRequest)
	}

	request, err := s.connectionRepo.CreateRequest(&models.ConnectionRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.ConnectionRequestStatusPending,
	})
	if err != nil {
		// the pending-pair unique index catches the write that lost a race
		// past the check above
		if apiErr := apiError.GetUniqueContraintError(err); apiErr.Status == http.StatusBadRequest {
			return nil, apiError.New("connection request already sent", http.StatusBadRequest)
		}
		log.Printf("SendRequest error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	s.raiseNotification(senderID, receiverID, models.NotificationTypeConnectionRequest, "wants to connect with you")
	return request, nil
}

func (s *connectionService) AcceptRequest(requestID, actingUserID uint) (*models.ConnectionRequest, *apiError.Error) {
	request, apiErr := s.resolveRequest(requestID, actingUserID, "accept")
	if apiErr != nil {
		return nil, apiErr
	}

	if err := s.connectionRepo.AddConnectionPair(request.SenderID, request.ReceiverID); err != nil {
		log.Printf("AcceptRequest error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if err := s.connectionRepo.UpdateRequestStatus(request.ID, models.ConnectionRequestStatusAccepted); err != nil {
		if errors.Is(err, db.ErrRequestResolved) {
			return nil, apiError.New("request already resolved", http.StatusBadRequest)
		}
		log.Printf("AcceptRequest error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	request.Status = models.ConnectionRequestStatusAccepted

	s.raiseNotification(actingUserID, request.SenderID, models.NotificationTypeConnectionAccept, "accepted your connection request")
	if s.mail != nil && request.Sender.Email != "" {
		s.mail.SendConnectionAccepted(request.Sender.Email, request.Sender.Name, request.Receiver.Name)
	}
	return request, nil
}

func (s *connectionService) RejectRequest(requestID, actingUserID uint) (*models.ConnectionRequest, *apiError.Error) {
	request, apiErr := s.resolveRequest(requestID, actingUserID, "reject")
	if apiErr != nil {
		return nil, apiErr
	}

	if err := s.connectionRepo.UpdateRequestStatus(request.ID, models.ConnectionRequestStatusRejected); err != nil {
		if errors.Is(err, db.ErrRequestResolved) {
			return nil, apiError.New("request already resolved", http.StatusBadRequest)
		}
		log.Printf("RejectRequest error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	request.Status = models.ConnectionRequestStatusRejected
	return request, nil
}

// resolveRequest loads a request and enforces the rules shared by accept and
// reject: only the receiver may resolve it, and only once. A second attempt
// on a resolved request is an error, not a silent no-op, so double
// submissions surface to the caller.
func (s *connectionService) resolveRequest(requestID, actingUserID uint, action string) (*models.ConnectionRequest, *apiError.Error) {
	request, err := s.connectionRepo.FindRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("request not found", http.StatusNotFound)
		}
		log.Printf("resolveRequest error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if request.ReceiverID != actingUserID {
		return nil, apiError.New("you are not authorized to "+action+" this request", http.StatusForbidden)
	}
	if request.Status != models.ConnectionRequestStatusPending {
		return nil, apiError.New("request already resolved", http.StatusBadRequest)
	}
	return request, nil
}

func (s *connectionService) RemoveConnection(userID, targetID uint) *apiError.Error {
	exists, err := s.authRepo.UserExists(targetID)
	if err != nil {
		log.Printf("RemoveConnection error: %v", err)
		return apiError.ErrInternalServerError
	}
	if !exists {
		return apiError.New("user not found", http.StatusNotFound)
	}

	if err := s.connectionRepo.RemoveConnectionPair(userID, targetID); err != nil {
		log.Printf("RemoveConnection error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *connectionService) GetConnections(userID uint) ([]models.UserResponse, *apiError.Error) {
	users, err := s.connectionRepo.GetConnections(userID)
	if err != nil {
		log.Printf("GetConnections error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].Response())
	}
	return responses, nil
}

func (s *connectionService) raiseNotification(senderID, receiverID uint, notificationType, message string) {
	_, err := s.notificationRepo.CreateNotification(&models.Notification{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Type:       notificationType,
		Message:    message,
	})
	if err != nil {
		// informational projection only, never fails the workflow
		log.Printf("raiseNotification error: %v", err)
	}
}
