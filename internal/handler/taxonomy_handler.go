package handler

import (
	"net/http"

	"valomate/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// NameInput carries a bare taxonomy name or code.
type NameInput struct {
	Name string `json:"name" binding:"required" example:"Jett"`
}

type TaxonomyHandler struct {
	taxonomy *service.TaxonomyService
}

func NewTaxonomyHandler(taxonomy *service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy}
}

// CreateAgent godoc
// @Summary      Add an agent (Admin only)
// @Description  The category is derived from the fixed agent taxonomy.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body NameInput true "Agent name"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse "Invalid agent name"
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/agents [post]
func (h *TaxonomyHandler) CreateAgent(c *gin.Context) {
	var input NameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := h.taxonomy.CreateAgent(input.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": agent.ID, "name": agent.Name, "category": agent.Category})
}

// ListAgents godoc
// @Summary      List all agents
// @Tags         taxonomy
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  map[string]interface{}
// @Router       /agents [get]
func (h *TaxonomyHandler) ListAgents(c *gin.Context) {
	agents, err := h.taxonomy.ListAgents()
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]gin.H, 0, len(agents))
	for _, agent := range agents {
		resp = append(resp, gin.H{"id": agent.ID, "name": agent.Name, "category": agent.Category})
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePlatform godoc
// @Summary      Add a platform (Admin only)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body NameInput true "Platform name"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/platforms [post]
func (h *TaxonomyHandler) CreatePlatform(c *gin.Context) {
	var input NameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	platform, err := h.taxonomy.CreatePlatform(input.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": platform.ID, "name": platform.Name})
}

// ListPlatforms godoc
// @Summary      List all platforms
// @Tags         taxonomy
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  map[string]interface{}
// @Router       /platforms [get]
func (h *TaxonomyHandler) ListPlatforms(c *gin.Context) {
	platforms, err := h.taxonomy.ListPlatforms()
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]gin.H, 0, len(platforms))
	for _, platform := range platforms {
		resp = append(resp, gin.H{"id": platform.ID, "name": platform.Name})
	}
	c.JSON(http.StatusOK, resp)
}

// CreateRank godoc
// @Summary      Add a rank (Admin only)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body NameInput true "Rank name"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/ranks [post]
func (h *TaxonomyHandler) CreateRank(c *gin.Context) {
	var input NameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rank, err := h.taxonomy.CreateRank(input.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": rank.ID, "name": rank.Name})
}

// ListRanks godoc
// @Summary      List all ranks
// @Tags         taxonomy
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  map[string]interface{}
// @Router       /ranks [get]
func (h *TaxonomyHandler) ListRanks(c *gin.Context) {
	ranks, err := h.taxonomy.ListRanks()
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]gin.H, 0, len(ranks))
	for _, rank := range ranks {
		resp = append(resp, gin.H{"id": rank.ID, "name": rank.Name})
	}
	c.JSON(http.StatusOK, resp)
}

// CreateRegion godoc
// @Summary      Add a region (Admin only)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body NameInput true "Region code"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/regions [post]
func (h *TaxonomyHandler) CreateRegion(c *gin.Context) {
	var input NameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	region, err := h.taxonomy.CreateRegion(input.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": region.ID, "code": region.Code})
}

// ListRegions godoc
// @Summary      List all regions
// @Tags         taxonomy
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  map[string]interface{}
// @Router       /regions [get]
func (h *TaxonomyHandler) ListRegions(c *gin.Context) {
	regions, err := h.taxonomy.ListRegions()
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]gin.H, 0, len(regions))
	for _, region := range regions {
		resp = append(resp, gin.H{"id": region.ID, "code": region.Code})
	}
	c.JSON(http.StatusOK, resp)
}
