package service

import (
	"errors"
	"fmt"
	"strings"

	"valomate/backend/internal/models"
	"valomate/backend/internal/repository"
)

// AgentSelection is one profile entry as submitted by the client. Names are
// resolved against the taxonomy tables; unknown names are rejected.
type AgentSelection struct {
	RiotID    string
	Agent     string
	Platform  string
	PlayStyle string
	Region    string
	Rank      string // optional
}

// ProfileService manages matchmaking profiles and the taxonomy behind them.
type ProfileService struct {
	profiles repository.ProfileRepository
	taxonomy repository.TaxonomyRepository
}

func NewProfileService(profiles repository.ProfileRepository, taxonomy repository.TaxonomyRepository) *ProfileService {
	return &ProfileService{profiles: profiles, taxonomy: taxonomy}
}

func (s *ProfileService) resolve(sel AgentSelection) (*models.Profile, error) {
	agent, err := s.taxonomy.FindAgentByName(sel.Agent)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: agent does not exist", ErrValidation)
		}
		return nil, err
	}

	platform, err := s.taxonomy.FindPlatformByName(strings.ToUpper(sel.Platform))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: platform does not exist", ErrValidation)
		}
		return nil, err
	}

	region, err := s.taxonomy.FindRegionByCode(strings.ToUpper(sel.Region))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: region does not exist", ErrValidation)
		}
		return nil, err
	}

	profile := &models.Profile{
		RiotID:     sel.RiotID,
		AgentID:    agent.ID,
		PlatformID: platform.ID,
		RegionID:   region.ID,
		PlayStyle:  sel.PlayStyle,
	}

	if sel.Rank != "" {
		rank, err := s.taxonomy.FindRankByName(sel.Rank)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: rank does not exist", ErrValidation)
			}
			return nil, err
		}
		profile.RankID = &rank.ID
	}

	return profile, nil
}

// SelectAgent adds a profile entry for the user.
func (s *ProfileService) SelectAgent(userID uint, sel AgentSelection) (*models.Profile, error) {
	profile, err := s.resolve(sel)
	if err != nil {
		return nil, err
	}
	profile.UserID = userID

	if err := s.profiles.Create(profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: this agent and play style are already selected", ErrConflict)
		}
		return nil, err
	}
	return profile, nil
}

// Me returns the user's primary profile entry.
func (s *ProfileService) Me(userID uint) (*models.Profile, error) {
	profile, err := s.profiles.FirstByUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no matchmaking profile for this user", ErrNotFound)
		}
		return nil, err
	}
	return profile, nil
}

// List returns every profile entry of the user.
func (s *ProfileService) List(userID uint) ([]models.Profile, error) {
	return s.profiles.FindByUser(userID)
}

// ReplaceAgents swaps the user's whole agent list for the given selections.
func (s *ProfileService) ReplaceAgents(userID uint, sels []AgentSelection) error {
	resolved := make([]*models.Profile, 0, len(sels))
	for _, sel := range sels {
		profile, err := s.resolve(sel)
		if err != nil {
			return err
		}
		profile.UserID = userID
		resolved = append(resolved, profile)
	}

	return s.profiles.ReplaceForUser(userID, resolved)
}

// UpdatePlatform sets the platform on every profile entry of the user.
func (s *ProfileService) UpdatePlatform(userID uint, platformName string) error {
	platform, err := s.taxonomy.FindPlatformByName(strings.ToUpper(platformName))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: invalid platform name", ErrValidation)
		}
		return err
	}
	return s.profiles.UpdatePlatformForUser(userID, platform.ID)
}

// UpdateRank sets the rank of the user's primary profile entry.
func (s *ProfileService) UpdateRank(userID uint, rankName string) (*models.Profile, error) {
	profile, err := s.profiles.FirstByUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no matchmaking profile for this user", ErrNotFound)
		}
		return nil, err
	}

	rank, err := s.taxonomy.FindRankByName(rankName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: rank not found", ErrNotFound)
		}
		return nil, err
	}

	profile.RankID = &rank.ID
	profile.Rank = rank
	if err := s.profiles.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateRegion sets the region of the user's primary profile entry.
func (s *ProfileService) UpdateRegion(userID uint, regionCode string) (*models.Profile, error) {
	profile, err := s.profiles.FirstByUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no matchmaking profile for this user", ErrNotFound)
		}
		return nil, err
	}

	region, err := s.taxonomy.FindRegionByCode(strings.ToUpper(regionCode))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: region does not exist", ErrValidation)
		}
		return nil, err
	}

	profile.RegionID = region.ID
	profile.Region = *region
	if err := s.profiles.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// HasCompleteProfile reports whether the user has at least one fully filled
// profile entry. Matchmaking actions are gated on this.
func (s *ProfileService) HasCompleteProfile(userID uint) (bool, error) {
	profile, err := s.profiles.FirstByUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return profile.IsComplete(), nil
}
