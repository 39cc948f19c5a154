package repository

import (
	"valomate/backend/internal/models"

	"gorm.io/gorm"
)

type GormProfileRepo struct {
	db *gorm.DB
}

func NewGormProfileRepo(db *gorm.DB) *GormProfileRepo {
	return &GormProfileRepo{db: db}
}

func (r *GormProfileRepo) Create(profile *models.Profile) error {
	return translate(r.db.Create(profile).Error)
}

func (r *GormProfileRepo) FindByUser(userID uint) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Preload("Agent").Preload("Platform").Preload("Rank").Preload("Region").
		Where("user_id = ?", userID).Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *GormProfileRepo) FirstByUser(userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("Agent").Preload("Platform").Preload("Rank").Preload("Region").
		Where("user_id = ?", userID).Order("id").First(&profile).Error
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *GormProfileRepo) Update(profile *models.Profile) error {
	return translate(r.db.Save(profile).Error)
}

func (r *GormProfileRepo) UpdatePlatformForUser(userID, platformID uint) error {
	return r.db.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("platform_id", platformID).Error
}

// ReplaceForUser deletes and recreates the user's profile list in one
// transaction; a failed insert rolls back the delete.
func (r *GormProfileRepo) ReplaceForUser(userID uint, profiles []*models.Profile) error {
	return translate(r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		for _, profile := range profiles {
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

func (r *GormProfileRepo) DeleteByUser(userID uint) error {
	return r.db.Unscoped().Where("user_id = ?", userID).Delete(&models.Profile{}).Error
}
