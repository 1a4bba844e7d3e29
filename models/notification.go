package models

const (
	NotificationTypeConnectionRequest = "connection_request"
	NotificationTypeConnectionAccept  = "connection_accept"
	NotificationTypeMessage           = "message"
	NotificationTypeSystem            = "system"
)

// Notification is a purely informational projection raised as a side effect
// of domain events. It never carries workflow state; resolving a connection
// request happens on the ConnectionRequest row, not here.
type Notification struct {
	Model
	SenderID   uint   `json:"sender_id"`
	ReceiverID uint   `json:"receiver_id" gorm:"not null;index"`
	Type       string `json:"type" gorm:"not null"`
	Message    string `json:"message"`
	Link       string `json:"link"`
	Read       bool   `json:"read" gorm:"default:false"`

	Sender User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}
