package repository

import (
	"valomate/backend/internal/models"

	"gorm.io/gorm"
)

type GormChatRepo struct {
	db *gorm.DB
}

func NewGormChatRepo(db *gorm.DB) *GormChatRepo {
	return &GormChatRepo{db: db}
}

func (r *GormChatRepo) RemoveMember(chatID, userID uint) error {
	chat := models.Chat{Model: gorm.Model{ID: chatID}}
	user := models.User{Model: gorm.Model{ID: userID}}
	return r.db.Model(&chat).Association("Members").Delete(&user)
}

func (r *GormChatRepo) IsMember(chatID, userID uint) (bool, error) {
	var count int64
	err := r.db.Table("chat_members").
		Where("chat_id = ? AND user_id = ?", chatID, userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormChatRepo) CreateMessage(msg *models.Message) error {
	return translate(r.db.Create(msg).Error)
}

func (r *GormChatRepo) ListMessages(chatID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.Preload("Sender").
		Where("chat_id = ?", chatID).Order("created_at").Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *GormChatRepo) Delete(chatID uint) error {
	return translate(r.db.Unscoped().Delete(&models.Chat{}, chatID).Error)
}
