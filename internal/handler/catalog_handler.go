package handler

import (
	"errors"
	"strconv"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListSKUs GET /api/v1/skus
func (h *CatalogHandler) ListSKUs(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.SKUListParams{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}
	if a := c.Query("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			params.Active = &v
		}
	}

	skus, total, err := h.svc.ListSKUs(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	Success(c, ListResponse{
		Items: skus,
		Pagination: &Pagination{
			Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages,
		},
	})
}

// GetSKU GET /api/v1/skus/:id
func (h *CatalogHandler) GetSKU(c *gin.Context) {
	sku, err := h.svc.GetSKU(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "sku not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, sku)
}

// CreateSKU POST /api/v1/skus
func (h *CatalogHandler) CreateSKU(c *gin.Context) {
	var input service.CreateSKUInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}

	sku, err := h.svc.CreateSKU(c.Request.Context(), &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, sku)
}

// UpdateSKU PUT /api/v1/skus/:id
func (h *CatalogHandler) UpdateSKU(c *gin.Context) {
	var input service.UpdateSKUInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}

	sku, err := h.svc.UpdateSKU(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "sku not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, sku)
}

// DeactivateSKU DELETE /api/v1/skus/:id
func (h *CatalogHandler) DeactivateSKU(c *gin.Context) {
	if err := h.svc.DeactivateSKU(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "sku not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}
