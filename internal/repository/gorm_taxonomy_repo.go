package repository

import (
	"valomate/backend/internal/models"

	"gorm.io/gorm"
)

type GormTaxonomyRepo struct {
	db *gorm.DB
}

func NewGormTaxonomyRepo(db *gorm.DB) *GormTaxonomyRepo {
	return &GormTaxonomyRepo{db: db}
}

func (r *GormTaxonomyRepo) CreateAgent(agent *models.Agent) error {
	return translate(r.db.Create(agent).Error)
}

func (r *GormTaxonomyRepo) ListAgents() ([]models.Agent, error) {
	var agents []models.Agent
	if err := r.db.Order("category, name").Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *GormTaxonomyRepo) FindAgentByName(name string) (*models.Agent, error) {
	var agent models.Agent
	if err := r.db.Where("name = ?", name).First(&agent).Error; err != nil {
		return nil, translate(err)
	}
	return &agent, nil
}

func (r *GormTaxonomyRepo) CreatePlatform(platform *models.Platform) error {
	return translate(r.db.Create(platform).Error)
}

func (r *GormTaxonomyRepo) ListPlatforms() ([]models.Platform, error) {
	var platforms []models.Platform
	if err := r.db.Find(&platforms).Error; err != nil {
		return nil, err
	}
	return platforms, nil
}

func (r *GormTaxonomyRepo) FindPlatformByName(name string) (*models.Platform, error) {
	var platform models.Platform
	if err := r.db.Where("name = ?", name).First(&platform).Error; err != nil {
		return nil, translate(err)
	}
	return &platform, nil
}

func (r *GormTaxonomyRepo) CreateRank(rank *models.Rank) error {
	return translate(r.db.Create(rank).Error)
}

func (r *GormTaxonomyRepo) ListRanks() ([]models.Rank, error) {
	var ranks []models.Rank
	if err := r.db.Find(&ranks).Error; err != nil {
		return nil, err
	}
	return ranks, nil
}

func (r *GormTaxonomyRepo) FindRankByName(name string) (*models.Rank, error) {
	var rank models.Rank
	if err := r.db.Where("name = ?", name).First(&rank).Error; err != nil {
		return nil, translate(err)
	}
	return &rank, nil
}

func (r *GormTaxonomyRepo) CreateRegion(region *models.Region) error {
	return translate(r.db.Create(region).Error)
}

func (r *GormTaxonomyRepo) ListRegions() ([]models.Region, error) {
	var regions []models.Region
	if err := r.db.Find(&regions).Error; err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *GormTaxonomyRepo) FindRegionByCode(code string) (*models.Region, error) {
	var region models.Region
	if err := r.db.Where("code = ?", code).First(&region).Error; err != nil {
		return nil, translate(err)
	}
	return &region, nil
}
