package models

import "gorm.io/gorm"

// Profile is a user's matchmaking profile entry: their chosen agent on a
// platform with a described play style. A user may keep several entries as
// long as the (user, agent, play style) triple stays unique.
type Profile struct {
	gorm.Model
	UserID     uint   `gorm:"not null;index;uniqueIndex:idx_profile_user_agent_style"`
	RiotID     string `gorm:"size:50;not null"`
	RegionID   uint   `gorm:"not null"`
	AgentID    uint   `gorm:"not null;uniqueIndex:idx_profile_user_agent_style"`
	PlatformID uint   `gorm:"not null"`
	PlayStyle  string `gorm:"size:500;not null;uniqueIndex:idx_profile_user_agent_style"`

	// Rank is optional until the player sets it.
	RankID *uint

	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Region   Region   `gorm:"foreignKey:RegionID"`
	Agent    Agent    `gorm:"foreignKey:AgentID"`
	Platform Platform `gorm:"foreignKey:PlatformID"`
	Rank     *Rank    `gorm:"foreignKey:RankID"`
}

// IsComplete reports whether every field required for matchmaking is set.
// Room creation and join requests are gated on this.
func (p Profile) IsComplete() bool {
	return p.RiotID != "" && p.RegionID != 0 && p.AgentID != 0 &&
		p.PlatformID != 0 && p.PlayStyle != ""
}
