package db

import (
	"github.com/pkg/errors"
	"github.com/teamuphq/teamup/models"
	"gorm.io/gorm"
)

type MessageRepository interface {
	CreateMessage(message *models.Message) (*models.Message, error)
	GetMessagesBetween(userA, userB uint) ([]models.Message, error)
	GetConversations(userID uint) ([]models.Conversation, error)
	MarkSeen(receiverID, senderID uint) error
	CountUnread(receiverID, senderID uint) (int64, error)
}

type messageRepo struct {
	DB *gorm.DB
}

func NewMessageRepo(db *GormDB) MessageRepository {
	return &messageRepo{db.DB}
}

func (m *messageRepo) CreateMessage(message *models.Message) (*models.Message, error) {
	if err := m.DB.Create(message).Error; err != nil {
		return nil, errors.Wrap(err, "could not create message")
	}
	if err := m.DB.Preload("Sender").Preload("Receiver").First(message, message.ID).Error; err != nil {
		return nil, errors.Wrap(err, "could not load created message")
	}
	return message, nil
}

// GetMessagesBetween returns both directions of the exchange ascending by
// creation time; the result is identical whichever way the pair is passed.
func (m *messageRepo) GetMessagesBetween(userA, userB uint) ([]models.Message, error) {
	var messages []models.Message
	err := m.DB.Preload("Sender").Preload("Receiver").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list messages")
	}
	return messages, nil
}

// GetConversations collapses the user's message history to the newest
// message per counterparty, newest conversation first. The log is
// append-only with monotonically increasing ids, so the max id per
// counterparty is the newest message and the unread counts come out of the
// same grouped pass.
func (m *messageRepo) GetConversations(userID uint) ([]models.Conversation, error) {
	type conversationRow struct {
		CounterpartyID uint
		LastMessageID  uint
		Unread         int64
	}
	var rows []conversationRow
	err := m.DB.Model(&models.Message{}).
		Select("CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS counterparty_id, "+
			"MAX(id) AS last_message_id, "+
			"SUM(CASE WHEN receiver_id = ? AND seen = ? THEN 1 ELSE 0 END) AS unread",
			userID, userID, false).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Group("counterparty_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not aggregate conversations")
	}
	if len(rows) == 0 {
		return []models.Conversation{}, nil
	}

	unreadByCounterparty := make(map[uint]int64, len(rows))
	lastIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		unreadByCounterparty[row.CounterpartyID] = row.Unread
		lastIDs = append(lastIDs, row.LastMessageID)
	}

	var messages []models.Message
	err = m.DB.Preload("Sender").Preload("Receiver").
		Where("id IN ?", lastIDs).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not load conversation messages")
	}

	conversations := make([]models.Conversation, 0, len(messages))
	for i := range messages {
		msg := messages[i]
		counterparty := msg.Sender
		if msg.SenderID == userID {
			counterparty = msg.Receiver
		}
		conversations = append(conversations, models.Conversation{
			Counterparty: counterparty.Response(),
			LastMessage:  msg,
			Unread:       unreadByCounterparty[counterparty.ID],
		})
	}
	return conversations, nil
}

func (m *messageRepo) MarkSeen(receiverID, senderID uint) error {
	err := m.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND seen = ?", receiverID, senderID, false).
		Update("seen", true).Error
	return errors.Wrap(err, "could not mark messages seen")
}

func (m *messageRepo) CountUnread(receiverID, senderID uint) (int64, error) {
	var count int64
	err := m.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND seen = ?", receiverID, senderID, false).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "gorm count error")
	}
	return count, nil
}
