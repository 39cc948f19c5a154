package models

import "gorm.io/gorm"

// User represents a player account.
type User struct {
	gorm.Model
	Username     string `gorm:"size:150;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`

	// Accounts start inactive and are activated by email verification.
	IsActive bool `gorm:"not null;default:false"`
}
