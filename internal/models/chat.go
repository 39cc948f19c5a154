package models

import "gorm.io/gorm"

// Chat is the message channel linked to a room. Its member set mirrors the
// room's members.
type Chat struct {
	gorm.Model
	Members  []User    `gorm:"many2many:chat_members;"`
	Messages []Message `gorm:"foreignKey:ChatID"`
}
