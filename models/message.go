package models

const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeFile  = "file"
)

// Message is an append-only direct message. There is no edit or delete path;
// ordering is by creation time with the id breaking exact ties.
type Message struct {
	Model
	SenderID    uint   `json:"sender_id" gorm:"not null;index:idx_message_pair"`
	ReceiverID  uint   `json:"receiver_id" gorm:"not null;index:idx_message_pair"`
	Content     string `json:"content" gorm:"type:text;not null"`
	MessageType string `json:"message_type" gorm:"default:text"`
	Seen        bool   `json:"seen" gorm:"default:false"`
	FileURL     string `json:"file_url,omitempty"`

	Sender   User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver User `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
}

type SendMessageRequest struct {
	ReceiverID  uint   `json:"receiver_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
	MessageType string `json:"message_type" binding:"omitempty,oneof=text image file"`
}

// Conversation is derived, not stored: the newest message exchanged with one
// counterparty.
type Conversation struct {
	Counterparty UserResponse `json:"counterparty"`
	LastMessage  Message      `json:"last_message"`
	Unread       int64        `json:"unread"`
}
