// Package repository defines the storage ports the services talk to, plus
// their GORM implementations. Business rules never touch *gorm.DB directly
// so they can be unit-tested against in-memory fakes.
package repository

import (
	"errors"
	"time"

	"valomate/backend/internal/models"
)

// ErrNotFound is returned by every repository when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate record")

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByLogin(login string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	UsernameTaken(username string) (bool, error)
	Update(user *models.User) error
	Delete(id uint) error
}

type VerificationRepository interface {
	Create(v *models.EmailVerification) error
	FindByToken(token string) (*models.EmailVerification, error)
	FindByUser(userID uint) (*models.EmailVerification, error)
	Delete(id uint) error
}

// TaxonomyRepository manages the fixed agent/platform/rank/region tables.
type TaxonomyRepository interface {
	CreateAgent(agent *models.Agent) error
	ListAgents() ([]models.Agent, error)
	FindAgentByName(name string) (*models.Agent, error)

	CreatePlatform(platform *models.Platform) error
	ListPlatforms() ([]models.Platform, error)
	FindPlatformByName(name string) (*models.Platform, error)

	CreateRank(rank *models.Rank) error
	ListRanks() ([]models.Rank, error)
	FindRankByName(name string) (*models.Rank, error)

	CreateRegion(region *models.Region) error
	ListRegions() ([]models.Region, error)
	FindRegionByCode(code string) (*models.Region, error)
}

type ProfileRepository interface {
	Create(profile *models.Profile) error
	FindByUser(userID uint) ([]models.Profile, error)
	FirstByUser(userID uint) (*models.Profile, error)
	Update(profile *models.Profile) error
	UpdatePlatformForUser(userID, platformID uint) error
	// ReplaceForUser swaps the user's whole profile list in one
	// transaction, so a failed insert rolls the delete back.
	ReplaceForUser(userID uint, profiles []*models.Profile) error
	DeleteByUser(userID uint) error
}

type RoomRepository interface {
	// Create persists the room with the leader as its only member,
	// alongside a fresh chat, in one transaction.
	Create(room *models.Room) error
	FindByID(id uint) (*models.Room, error)
	ListOpen(kind models.RoomKind, page, limit int) ([]models.Room, int64, error)

	// Admit records an accepted join request in one transaction: the
	// request status, the room and chat membership rows, the deletion of
	// the sender's other pending requests, and the ready flag.
	Admit(roomID, chatID, requestID, senderID uint, ready bool) error

	RemoveMember(roomID, userID uint) error
	SetReady(roomID uint, ready bool) error
	SetLeader(roomID, leaderID uint) error
	Delete(id uint) error

	// OldestMember returns the earliest-joined member other than exceptID.
	OldestMember(roomID, exceptID uint) (uint, error)

	// UserInAnyRoom reports whether the user leads or belongs to any room.
	UserInAnyRoom(userID uint) (bool, error)

	// FindByMember returns the room the user currently belongs to.
	FindByMember(userID uint) (*models.Room, error)
}

type JoinRequestRepository interface {
	Create(req *models.JoinRequest) error
	FindByID(id uint) (*models.JoinRequest, error)
	ListByRoom(roomID uint) ([]models.JoinRequest, error)
	UpdateStatus(id uint, status models.JoinRequestStatus) error
	MarkSeen(roomID uint) error
	DeleteByUser(userID uint) error
}

type ChatRepository interface {
	RemoveMember(chatID, userID uint) error
	IsMember(chatID, userID uint) (bool, error)
	CreateMessage(msg *models.Message) error
	ListMessages(chatID uint) ([]models.Message, error)
	Delete(chatID uint) error
}

// Clock abstracts time for token-expiry rules.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock used outside tests.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
