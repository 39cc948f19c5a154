package repository

import (
	"valomate/backend/internal/models"

	"gorm.io/gorm"
)

type GormRoomRepo struct {
	db *gorm.DB
}

func NewGormRoomRepo(db *gorm.DB) *GormRoomRepo {
	return &GormRoomRepo{db: db}
}

// Create persists the chat, the room and the leader's membership in a
// single transaction.
func (r *GormRoomRepo) Create(room *models.Room) error {
	return translate(r.db.Transaction(func(tx *gorm.DB) error {
		chat := models.Chat{}
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}
		room.ChatID = chat.ID

		leader := models.User{Model: gorm.Model{ID: room.LeaderID}}
		room.Members = []models.User{leader}
		if err := tx.Create(room).Error; err != nil {
			return err
		}

		return tx.Model(&chat).Association("Members").Append(&leader)
	}))
}

func (r *GormRoomRepo) FindByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.Preload("Leader").Preload("Members").First(&room, id).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

// ListOpen returns rooms that still have free slots, newest first.
func (r *GormRoomRepo) ListOpen(kind models.RoomKind, page, limit int) ([]models.Room, int64, error) {
	query := r.db.Model(&models.Room{}).
		Joins("LEFT JOIN room_members ON room_members.room_id = rooms.id").
		Group("rooms.id").
		Having("COUNT(room_members.user_id) < rooms.capacity")
	if kind != "" {
		query = query.Where("rooms.kind = ?", kind)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	var rooms []models.Room
	offset := (page - 1) * limit
	err := query.Preload("Leader").Preload("Members").
		Order("rooms.created_at DESC").
		Offset(offset).Limit(limit).Find(&rooms).Error
	if err != nil {
		return nil, 0, err
	}
	return rooms, totalItems, nil
}

// Admit applies every effect of an accepted join request in one
// transaction, so a failure cannot leave the request accepted without the
// membership rows.
func (r *GormRoomRepo) Admit(roomID, chatID, requestID, senderID uint, ready bool) error {
	return translate(r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.JoinRequest{}).
			Where("id = ?", requestID).
			Update("status", models.RequestAccepted).Error
		if err != nil {
			return err
		}

		sender := models.User{Model: gorm.Model{ID: senderID}}
		room := models.Room{Model: gorm.Model{ID: roomID}}
		if err := tx.Model(&room).Association("Members").Append(&sender); err != nil {
			return err
		}
		chat := models.Chat{Model: gorm.Model{ID: chatID}}
		if err := tx.Model(&chat).Association("Members").Append(&sender); err != nil {
			return err
		}

		err = tx.Unscoped().
			Where("sender_id = ? AND status = ? AND id <> ?", senderID, models.RequestPending, requestID).
			Delete(&models.JoinRequest{}).Error
		if err != nil {
			return err
		}

		if ready {
			return tx.Model(&models.Room{}).Where("id = ?", roomID).Update("ready", true).Error
		}
		return nil
	}))
}

func (r *GormRoomRepo) RemoveMember(roomID, userID uint) error {
	room := models.Room{Model: gorm.Model{ID: roomID}}
	user := models.User{Model: gorm.Model{ID: userID}}
	return r.db.Model(&room).Association("Members").Delete(&user)
}

func (r *GormRoomRepo) SetReady(roomID uint, ready bool) error {
	return r.db.Model(&models.Room{}).Where("id = ?", roomID).Update("ready", ready).Error
}

func (r *GormRoomRepo) SetLeader(roomID, leaderID uint) error {
	return r.db.Model(&models.Room{}).Where("id = ?", roomID).Update("leader_id", leaderID).Error
}

func (r *GormRoomRepo) Delete(id uint) error {
	return translate(r.db.Unscoped().Delete(&models.Room{}, id).Error)
}

// OldestMember orders by the join-row timestamp, not the user ID, so the
// longest-standing member takes over an abandoned room.
func (r *GormRoomRepo) OldestMember(roomID, exceptID uint) (uint, error) {
	var member models.RoomMember
	err := r.db.Where("room_id = ? AND user_id <> ?", roomID, exceptID).
		Order("created_at").First(&member).Error
	if err != nil {
		return 0, translate(err)
	}
	return member.UserID, nil
}

func (r *GormRoomRepo) FindByMember(userID uint) (*models.Room, error) {
	var room models.Room
	err := r.db.Preload("Leader").Preload("Members").
		Joins("JOIN room_members ON room_members.room_id = rooms.id").
		Where("room_members.user_id = ?", userID).
		First(&room).Error
	if err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (r *GormRoomRepo) UserInAnyRoom(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Room{}).Where("leader_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.Table("room_members").Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
