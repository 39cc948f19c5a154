package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomKind tags the team size of a room.
type RoomKind string

const (
	RoomDuo       RoomKind = "duo"
	RoomTrio      RoomKind = "trio"
	RoomFiveStack RoomKind = "five_stack"
)

// roomCapacities fixes the member cap per kind.
var roomCapacities = map[RoomKind]int{
	RoomDuo:       2,
	RoomTrio:      3,
	RoomFiveStack: 5,
}

// CapacityForKind returns the member cap of a room kind.
func CapacityForKind(kind RoomKind) (int, bool) {
	capacity, ok := roomCapacities[kind]
	return capacity, ok
}

// Room is a fixed-capacity team group. The creator is the leader and the
// first member; a chat is created alongside and never shared across rooms.
type Room struct {
	gorm.Model
	Kind        RoomKind `gorm:"size:20;not null;index"`
	Capacity    int      `gorm:"not null"`
	Description string   `gorm:"size:500;not null"`
	JoinCode    string   `gorm:"size:20;not null"`
	LeaderID    uint     `gorm:"not null;index"`
	Ready       bool     `gorm:"not null;default:false"`
	ChatID      uint     `gorm:"not null"`

	Leader  User   `gorm:"foreignKey:LeaderID"`
	Members []User `gorm:"many2many:room_members;"`
	Chat    Chat   `gorm:"foreignKey:ChatID"`
}

// IsFull reports whether the room has reached its capacity.
func (r Room) IsFull() bool {
	return len(r.Members) >= r.Capacity
}

// RoomMember is the membership join row. CreatedAt records the join order,
// which decides leader succession when the leader leaves.
type RoomMember struct {
	RoomID    uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey"`
	CreatedAt time.Time
}
