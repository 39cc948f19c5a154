package handler

import (
	"net/http"

	"valomate/backend/internal/models"
	"valomate/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// AgentSelectionInput is one profile entry as submitted by the client.
type AgentSelectionInput struct {
	RiotID    string `json:"riot_id" binding:"required,max=50" example:"Player#EU1"`
	Agent     string `json:"agent" binding:"required" example:"Jett"`
	Platform  string `json:"platform" binding:"required" example:"PC"`
	PlayStyle string `json:"play_style" binding:"required,max=500" example:"Aggressive entry fragger"`
	Region    string `json:"region" binding:"required" example:"EU"`
	Rank      string `json:"rank" example:"Diamond"`
}

func (in AgentSelectionInput) toSelection() service.AgentSelection {
	return service.AgentSelection{
		RiotID:    in.RiotID,
		Agent:     in.Agent,
		Platform:  in.Platform,
		PlayStyle: in.PlayStyle,
		Region:    in.Region,
		Rank:      in.Rank,
	}
}

// ReplaceAgentsInput replaces the caller's whole agent list.
type ReplaceAgentsInput struct {
	Agents []AgentSelectionInput `json:"agents" binding:"required,min=1,dive"`
}

// PlatformUpdateInput names the platform to switch to.
type PlatformUpdateInput struct {
	Platform string `json:"platform" binding:"required" example:"PC"`
}

// RankUpdateInput names the rank to set.
type RankUpdateInput struct {
	Rank string `json:"rank" binding:"required" example:"Immortal"`
}

// RegionUpdateInput names the region code to set.
type RegionUpdateInput struct {
	Region string `json:"region" binding:"required" example:"NA"`
}

// ProfileResponse is one matchmaking profile entry.
type ProfileResponse struct {
	ID        uint   `json:"id" example:"1"`
	RiotID    string `json:"riot_id" example:"Player#EU1"`
	Agent     string `json:"agent" example:"Jett"`
	Category  string `json:"category" example:"Duelist"`
	Platform  string `json:"platform" example:"PC"`
	PlayStyle string `json:"play_style" example:"Aggressive entry fragger"`
	Region    string `json:"region" example:"EU"`
	Rank      string `json:"rank,omitempty" example:"Diamond"`
}

func newProfileResponse(p models.Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:        p.ID,
		RiotID:    p.RiotID,
		Agent:     p.Agent.Name,
		Category:  string(p.Agent.Category),
		Platform:  p.Platform.Name,
		PlayStyle: p.PlayStyle,
		Region:    p.Region.Code,
	}
	if p.Rank != nil {
		resp.Rank = p.Rank.Name
	}
	return resp
}

// endregion

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// SelectAgent godoc
// @Summary      Add a profile entry
// @Description  Selects an agent with a play style for the current user. Agent, platform, region and rank are validated by name.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AgentSelectionInput true "Agent selection"
// @Success      201  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse "Unknown agent, platform, region or rank"
// @Failure      409  {object}  ErrorResponse "Agent and play style already selected"
// @Router       /profile/agents/select [post]
func (h *ProfileHandler) SelectAgent(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input AgentSelectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.SelectAgent(userID.(uint), input.toSelection())
	if err != nil {
		respondError(c, err)
		return
	}

	// Reload names for the response
	full, err := h.profiles.Me(userID.(uint))
	if err == nil && full.ID == profile.ID {
		c.JSON(http.StatusCreated, newProfileResponse(*full))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": profile.ID})
}

// GetMe godoc
// @Summary      Get the current user's matchmaking profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      404  {object}  ErrorResponse "No profile yet"
// @Router       /profile/me [get]
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, _ := c.Get("userID")

	profile, err := h.profiles.Me(userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(*profile))
}

// ReplaceAgents godoc
// @Summary      Replace the current user's agent list
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ReplaceAgentsInput true "New agent list"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /profile/agent/update [put]
func (h *ProfileHandler) ReplaceAgents(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input ReplaceAgentsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sels := make([]service.AgentSelection, 0, len(input.Agents))
	for _, in := range input.Agents {
		sels = append(sels, in.toSelection())
	}

	if err := h.profiles.ReplaceAgents(userID.(uint), sels); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Agent list updated successfully!"})
}

// UpdatePlatform godoc
// @Summary      Update the platform on every profile entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PlatformUpdateInput true "Platform name"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Invalid platform name"
// @Router       /profile/platform/update [patch]
func (h *ProfileHandler) UpdatePlatform(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input PlatformUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.profiles.UpdatePlatform(userID.(uint), input.Platform); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Platform updated successfully!"})
}

// UpdateRank godoc
// @Summary      Update the rank on the primary profile entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RankUpdateInput true "Rank name"
// @Success      200  {object}  ProfileResponse
// @Failure      404  {object}  ErrorResponse "Rank or profile not found"
// @Router       /profile/rank/update [put]
func (h *ProfileHandler) UpdateRank(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input RankUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.UpdateRank(userID.(uint), input.Rank)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(*profile))
}

// UpdateRegion godoc
// @Summary      Update the region on the primary profile entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RegionUpdateInput true "Region code"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse "Unknown region code"
// @Failure      404  {object}  ErrorResponse "No profile yet"
// @Router       /profile/region/update [patch]
func (h *ProfileHandler) UpdateRegion(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input RegionUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.UpdateRegion(userID.(uint), input.Region)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(*profile))
}
