package models

import "gorm.io/gorm"

// Region is a competitive server region.
type Region struct {
	gorm.Model
	Code string `gorm:"size:10;unique;not null"`
}

// RegionCodes lists the accepted region codes.
var RegionCodes = []string{"AP", "BR", "EU", "KR", "LATAM", "NA"}
