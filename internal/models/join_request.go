package models

import "gorm.io/gorm"

// JoinRequestStatus is the lifecycle state of a join request.
type JoinRequestStatus string

const (
	// RequestPending means the request awaits the leader's decision.
	RequestPending JoinRequestStatus = "pending"

	// RequestAccepted and RequestRejected are terminal.
	RequestAccepted JoinRequestStatus = "accepted"
	RequestRejected JoinRequestStatus = "rejected"
)

// JoinRequest is a prospective member's ask to join a room, resolved by the
// room leader. A sender can have at most one request per room.
type JoinRequest struct {
	gorm.Model
	SenderID uint              `gorm:"not null;uniqueIndex:idx_request_sender_room"`
	RoomID   uint              `gorm:"not null;uniqueIndex:idx_request_sender_room"`
	Status   JoinRequestStatus `gorm:"size:10;not null;default:'pending';index"`
	IsSeen   bool              `gorm:"not null;default:false"`

	Sender User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE;"`
	Room   Room `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE;"`
}
