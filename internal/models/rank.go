package models

import "gorm.io/gorm"

// Rank is a competitive tier.
type Rank struct {
	gorm.Model
	Name string `gorm:"size:20;unique;not null"`
}

// RankNames lists the competitive tiers from lowest to highest.
var RankNames = []string{
	"Iron", "Bronze", "Silver", "Gold",
	"Platinum", "Diamond", "Immortal", "Radiant",
}
