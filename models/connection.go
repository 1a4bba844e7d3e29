package models

type ConnectionRequestStatus string

const (
	ConnectionRequestStatusPending  ConnectionRequestStatus = "pending"
	ConnectionRequestStatusAccepted ConnectionRequestStatus = "accepted"
	ConnectionRequestStatusRejected ConnectionRequestStatus = "rejected"
)

// ConnectionRequest tracks the workflow between two users. At most one
// pending row may exist per ordered (sender, receiver) pair, backed by a
// partial unique index; accepted and rejected are terminal.
type ConnectionRequest struct {
	Model
	SenderID   uint                    `json:"sender_id" gorm:"not null;index:idx_conn_req_pair;index:idx_conn_req_pending,unique,where:status = 'pending'"`
	ReceiverID uint                    `json:"receiver_id" gorm:"not null;index:idx_conn_req_pair;index:idx_conn_req_pending,unique"`
	Status     ConnectionRequestStatus `json:"status" gorm:"not null;default:'pending';size:20"`

	Sender   User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver User `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
}

// Connection is one side of an accepted relation. Rows come in symmetric
// pairs: (A,B) exists iff (B,A) exists, both written in the same transaction.
type Connection struct {
	Model
	UserID       uint `json:"user_id" gorm:"not null;uniqueIndex:idx_connection_pair"`
	ConnectionID uint `json:"connection_id" gorm:"not null;uniqueIndex:idx_connection_pair"`
}
