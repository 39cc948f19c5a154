package service

import (
	"errors"
	"fmt"
	"strings"

	"valomate/backend/internal/models"
	"valomate/backend/internal/repository"
)

// TaxonomyService manages the fixed agent/platform/rank/region tables that
// admins seed and profiles reference.
type TaxonomyService struct {
	taxonomy repository.TaxonomyRepository
}

func NewTaxonomyService(taxonomy repository.TaxonomyRepository) *TaxonomyService {
	return &TaxonomyService{taxonomy: taxonomy}
}

// CreateAgent adds an agent. The category is derived from the fixed
// name→category table; names outside the taxonomy are rejected.
func (s *TaxonomyService) CreateAgent(name string) (*models.Agent, error) {
	category, ok := models.CategoryForAgent(name)
	if !ok {
		return nil, fmt.Errorf("%w: invalid agent name", ErrValidation)
	}

	agent := &models.Agent{Name: name, Category: category}
	if err := s.taxonomy.CreateAgent(agent); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: agent already exists", ErrConflict)
		}
		return nil, err
	}
	return agent, nil
}

func (s *TaxonomyService) ListAgents() ([]models.Agent, error) {
	return s.taxonomy.ListAgents()
}

func (s *TaxonomyService) CreatePlatform(name string) (*models.Platform, error) {
	name = strings.ToUpper(name)
	if !contains(models.PlatformNames, name) {
		return nil, fmt.Errorf("%w: invalid platform name", ErrValidation)
	}

	platform := &models.Platform{Name: name}
	if err := s.taxonomy.CreatePlatform(platform); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: platform already exists", ErrConflict)
		}
		return nil, err
	}
	return platform, nil
}

func (s *TaxonomyService) ListPlatforms() ([]models.Platform, error) {
	return s.taxonomy.ListPlatforms()
}

func (s *TaxonomyService) CreateRank(name string) (*models.Rank, error) {
	if !contains(models.RankNames, name) {
		return nil, fmt.Errorf("%w: invalid rank name", ErrValidation)
	}

	rank := &models.Rank{Name: name}
	if err := s.taxonomy.CreateRank(rank); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: rank already exists", ErrConflict)
		}
		return nil, err
	}
	return rank, nil
}

func (s *TaxonomyService) ListRanks() ([]models.Rank, error) {
	return s.taxonomy.ListRanks()
}

func (s *TaxonomyService) CreateRegion(code string) (*models.Region, error) {
	code = strings.ToUpper(code)
	if !contains(models.RegionCodes, code) {
		return nil, fmt.Errorf("%w: invalid region code", ErrValidation)
	}

	region := &models.Region{Code: code}
	if err := s.taxonomy.CreateRegion(region); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: region already exists", ErrConflict)
		}
		return nil, err
	}
	return region, nil
}

func (s *TaxonomyService) ListRegions() ([]models.Region, error) {
	return s.taxonomy.ListRegions()
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
