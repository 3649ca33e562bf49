package handler

import (
	"errors"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type BusinessUnitHandler struct {
	svc *service.BusinessUnitService
}

func NewBusinessUnitHandler(svc *service.BusinessUnitService) *BusinessUnitHandler {
	return &BusinessUnitHandler{svc: svc}
}

// ListBusinessUnits GET /api/v1/business-units
func (h *BusinessUnitHandler) ListBusinessUnits(c *gin.Context) {
	units, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, units)
}

// GetBusinessUnit GET /api/v1/business-units/:id
func (h *BusinessUnitHandler) GetBusinessUnit(c *gin.Context) {
	bu, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "business unit not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, bu)
}

// CreateBusinessUnit POST /api/v1/business-units
func (h *BusinessUnitHandler) CreateBusinessUnit(c *gin.Context) {
	var input service.CreateBusinessUnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}

	bu, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, bu)
}

type setDefaultRateSheetRequest struct {
	RateSheetID *string `json:"rate_sheet_id"`
}

// SetDefaultRateSheet PUT /api/v1/business-units/:id/default-rate-sheet
func (h *BusinessUnitHandler) SetDefaultRateSheet(c *gin.Context) {
	var req setDefaultRateSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := h.svc.SetDefaultRateSheet(c.Request.Context(), c.Param("id"), req.RateSheetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}
