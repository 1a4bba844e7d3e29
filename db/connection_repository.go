package db

import (
	"github.com/pkg/errors"
	"github.com/teamuphq/teamup/models"
	"gorm.io/gorm"
)

type ConnectionRepository interface {
	CreateRequest(request *models.ConnectionRequest) (*models.ConnectionRequest, error)
	FindRequestByID(id uint) (*models.ConnectionRequest, error)
	HasPendingRequest(senderID, receiverID uint) (bool, error)
	UpdateRequestStatus(id uint, status models.ConnectionRequestStatus) error
	AddConnectionPair(userA, userB uint) error
	RemoveConnectionPair(userA, userB uint) error
	IsConnected(userA, userB uint) (bool, error)
	GetConnections(userID uint) ([]models.User, error)
}

type connectionRepo struct {
	DB *gorm.DB
}

func NewConnectionRepo(db *GormDB) ConnectionRepository {
	return &connectionRepo{db.DB}
}

func (r *connectionRepo) CreateRequest(request *models.ConnectionRequest) (*models.ConnectionRequest, error) {
	if err := r.DB.Create(request).Error; err != nil {
		return nil, errors.Wrap(err, "could not create connection request")
	}
	return request, nil
}

func (r *connectionRepo) FindRequestByID(id uint) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	err := r.DB.Preload("Sender").Preload("Receiver").First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *connectionRepo) HasPendingRequest(senderID, receiverID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.ConnectionRequest{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, models.ConnectionRequestStatusPending).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "gorm count error")
	}
	return count > 0, nil
}

// ErrRequestResolved reports a status update that lost to an earlier
// resolution: terminal states are immutable, so only one caller may flip a
// request out of pending.
var ErrRequestResolved = errors.New("request already resolved")

// UpdateRequestStatus flips a pending request to a terminal status. The
// update is a compare-and-swap on the current status, so two concurrent
// resolutions cannot both succeed.
func (r *connectionRepo) UpdateRequestStatus(id uint, status models.ConnectionRequestStatus) error {
	res := r.DB.Model(&models.ConnectionRequest{}).
		Where("id = ? AND status = ?", id, models.ConnectionRequestStatusPending).
		Update("status", status)
	if res.Error != nil {
		return errors.Wrap(res.Error, "could not update request status")
	}
	if res.RowsAffected == 0 {
		return ErrRequestResolved
	}
	return nil
}

// AddConnectionPair writes both sides of the relation in a single
// transaction so a crash between the two inserts cannot leave the graph
// asymmetric. Re-adding an existing member is a no-op.
func (r *connectionRepo) AddConnectionPair(userA, userB uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		pair := []models.Connection{
			{UserID: userA, ConnectionID: userB},
			{UserID: userB, ConnectionID: userA},
		}
		for i := range pair {
			if err := tx.Where(models.Connection{UserID: pair[i].UserID, ConnectionID: pair[i].ConnectionID}).
				FirstOrCreate(&pair[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrap(err, "could not add connection pair")
}

func (r *connectionRepo) RemoveConnectionPair(userA, userB uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Where(
			"(user_id = ? AND connection_id = ?) OR (user_id = ? AND connection_id = ?)",
			userA, userB, userB, userA,
		).Delete(&models.Connection{}).Error
	})
	return errors.Wrap(err, "could not remove connection pair")
}

func (r *connectionRepo) IsConnected(userA, userB uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Connection{}).
		Where("user_id = ? AND connection_id = ?", userA, userB).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "gorm count error")
	}
	return count > 0, nil
}

func (r *connectionRepo) GetConnections(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.DB.
		Joins("JOIN connections ON connections.connection_id = users.id").
		Where("connections.user_id = ? AND connections.deleted_at IS NULL", userID).
		Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list connections")
	}
	return users, nil
}
