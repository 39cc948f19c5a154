package models

import "gorm.io/gorm"

// Platform is a gaming platform a player plays on.
type Platform struct {
	gorm.Model
	Name string `gorm:"size:20;unique;not null"`
}

// PlatformNames is the set of accepted platform names.
var PlatformNames = []string{"PC", "XBOX", "PLAYSTATION", "MOBILE"}
