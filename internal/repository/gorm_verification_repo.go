package repository

import (
	"valomate/backend/internal/models"

	"gorm.io/gorm"
)

type GormVerificationRepo struct {
	db *gorm.DB
}

func NewGormVerificationRepo(db *gorm.DB) *GormVerificationRepo {
	return &GormVerificationRepo{db: db}
}

func (r *GormVerificationRepo) Create(v *models.EmailVerification) error {
	return translate(r.db.Create(v).Error)
}

func (r *GormVerificationRepo) FindByToken(token string) (*models.EmailVerification, error) {
	var v models.EmailVerification
	if err := r.db.Where("token = ?", token).First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *GormVerificationRepo) FindByUser(userID uint) (*models.EmailVerification, error) {
	var v models.EmailVerification
	if err := r.db.Where("user_id = ?", userID).First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *GormVerificationRepo) Delete(id uint) error {
	return translate(r.db.Delete(&models.EmailVerification{}, id).Error)
}
