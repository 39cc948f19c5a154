package models

import "time"

// VerificationTokenTTL is how long an email verification token stays valid
// after it was issued.
const VerificationTokenTTL = 10 * time.Minute

// EmailVerification stores the one-time token mailed to a user after
// registration. At most one row exists per user; a resend replaces it.
type EmailVerification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex"`
	Token     string `gorm:"size:64;unique;not null"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

// IsValid reports whether the token is still inside its validity window at
// the given instant. The boundary itself counts as expired.
func (v EmailVerification) IsValid(now time.Time) bool {
	return now.Before(v.CreatedAt.Add(VerificationTokenTTL))
}
