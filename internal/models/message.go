package models

import "gorm.io/gorm"

type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeSystem MessageType = "system"
)

// Message represents a chat message within a room's chat.
type Message struct {
	gorm.Model
	ChatID   uint        `gorm:"not null;index"`
	SenderID *uint       // Nullable for system messages
	Type     MessageType `gorm:"size:50;not null;default:'text'"`
	Content  string      `gorm:"size:500;not null"`

	Sender User `gorm:"foreignKey:SenderID"`
}
