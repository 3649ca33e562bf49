package handler

import (
	"errors"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

// GetCommunity GET /api/v1/communities/:id
func (h *CommunityHandler) GetCommunity(c *gin.Context) {
	community, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "community not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, community)
}

// ListCommunities GET /api/v1/clients/:id/communities
func (h *CommunityHandler) ListCommunities(c *gin.Context) {
	communities, err := h.svc.ListByClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, communities)
}

// CreateCommunity POST /api/v1/communities
func (h *CommunityHandler) CreateCommunity(c *gin.Context) {
	var input service.CreateCommunityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}

	community, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, community)
}

type setRateSheetOverrideRequest struct {
	RateSheetID *string `json:"rate_sheet_id"`
}

// SetRateSheetOverride PUT /api/v1/communities/:id/rate-sheet
func (h *CommunityHandler) SetRateSheetOverride(c *gin.Context) {
	var req setRateSheetOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	community, err := h.svc.SetRateSheetOverride(c.Request.Context(), c.Param("id"), req.RateSheetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "community not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, community)
}

// ListOverrides GET /api/v1/communities/:id/overrides
func (h *CommunityHandler) ListOverrides(c *gin.Context) {
	overrides, err := h.svc.ListOverrides(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "community not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, overrides)
}

// UpsertOverride PUT /api/v1/communities/:id/overrides
func (h *CommunityHandler) UpsertOverride(c *gin.Context) {
	var input service.UpsertOverrideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}

	override, err := h.svc.UpsertOverride(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "community not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, override)
}

// DeleteOverride DELETE /api/v1/communities/:id/overrides/:skuId
func (h *CommunityHandler) DeleteOverride(c *gin.Context) {
	if err := h.svc.DeleteOverride(c.Request.Context(), c.Param("id"), c.Param("skuId")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "override not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}
