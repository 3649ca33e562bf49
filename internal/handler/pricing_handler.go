package handler

import (
	"errors"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	svc *service.PricingService
}

func NewPricingHandler(svc *service.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// ResolvePrice GET /api/v1/pricing/resolve?sku_id=...&client_id=...&community_id=...&business_unit_id=...
func (h *PricingHandler) ResolvePrice(c *gin.Context) {
	skuID := c.Query("sku_id")
	if skuID == "" {
		BadRequest(c, "sku_id is required")
		return
	}

	resolved, err := h.svc.Resolve(c.Request.Context(), service.ResolveRequest{
		SKUID:          skuID,
		ClientID:       c.Query("client_id"),
		CommunityID:    c.Query("community_id"),
		BusinessUnitID: c.Query("business_unit_id"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSKUNotFound):
			NotFound(c, err.Error())
		case errors.Is(err, service.ErrInvalidMargin),
			errors.Is(err, service.ErrInvalidPriceResult):
			Unprocessable(c, err.Error())
		case errors.Is(err, service.ErrUpstreamUnavailable):
			ServiceUnavailable(c, err.Error())
		default:
			InternalError(c, err.Error())
		}
		return
	}

	Success(c, resolved)
}
