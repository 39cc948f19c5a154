package repository

import (
	"valomate/backend/internal/models"

	"gorm.io/gorm"
)

type GormJoinRequestRepo struct {
	db *gorm.DB
}

func NewGormJoinRequestRepo(db *gorm.DB) *GormJoinRequestRepo {
	return &GormJoinRequestRepo{db: db}
}

func (r *GormJoinRequestRepo) Create(req *models.JoinRequest) error {
	return translate(r.db.Create(req).Error)
}

func (r *GormJoinRequestRepo) FindByID(id uint) (*models.JoinRequest, error) {
	var req models.JoinRequest
	if err := r.db.Preload("Sender").First(&req, id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *GormJoinRequestRepo) ListByRoom(roomID uint) ([]models.JoinRequest, error) {
	var reqs []models.JoinRequest
	err := r.db.Preload("Sender").
		Where("room_id = ?", roomID).Order("created_at").Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *GormJoinRequestRepo) UpdateStatus(id uint, status models.JoinRequestStatus) error {
	return r.db.Model(&models.JoinRequest{}).Where("id = ?", id).Update("status", status).Error
}

func (r *GormJoinRequestRepo) MarkSeen(roomID uint) error {
	return r.db.Model(&models.JoinRequest{}).
		Where("room_id = ? AND is_seen = ?", roomID, false).
		Update("is_seen", true).Error
}

func (r *GormJoinRequestRepo) DeleteByUser(userID uint) error {
	return r.db.Unscoped().Where("sender_id = ?", userID).Delete(&models.JoinRequest{}).Error
}
