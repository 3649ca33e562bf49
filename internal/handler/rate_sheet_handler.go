package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type RateSheetHandler struct {
	svc *service.RateSheetService
}

func NewRateSheetHandler(svc *service.RateSheetService) *RateSheetHandler {
	return &RateSheetHandler{svc: svc}
}

// ListRateSheets GET /api/v1/rate-sheets
func (h *RateSheetHandler) ListRateSheets(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("active_only"))
	sheets, err := h.svc.List(c.Request.Context(), activeOnly)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, sheets)
}

// GetRateSheet GET /api/v1/rate-sheets/:id
func (h *RateSheetHandler) GetRateSheet(c *gin.Context) {
	sheet, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "rate sheet not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, sheet)
}

// CreateRateSheet POST /api/v1/rate-sheets
func (h *RateSheetHandler) CreateRateSheet(c *gin.Context) {
	var input service.CreateRateSheetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}

	sheet, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, sheet)
}

// UpdateRateSheet PUT /api/v1/rate-sheets/:id
func (h *RateSheetHandler) UpdateRateSheet(c *gin.Context) {
	var input service.UpdateRateSheetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}

	sheet, err := h.svc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "rate sheet not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, sheet)
}

// DeleteRateSheet DELETE /api/v1/rate-sheets/:id
func (h *RateSheetHandler) DeleteRateSheet(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "rate sheet not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// ListItems GET /api/v1/rate-sheets/:id/items
func (h *RateSheetHandler) ListItems(c *gin.Context) {
	items, err := h.svc.ListItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "rate sheet not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, items)
}

// UpsertItem PUT /api/v1/rate-sheets/:id/items
func (h *RateSheetHandler) UpsertItem(c *gin.Context) {
	var input service.UpsertItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.UpsertItem(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, err.Error())
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, item)
}

// DeleteItem DELETE /api/v1/rate-sheets/:id/items/:skuId
func (h *RateSheetHandler) DeleteItem(c *gin.Context) {
	if err := h.svc.DeleteItem(c.Request.Context(), c.Param("id"), c.Param("skuId")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "rate sheet item not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// ExportItems GET /api/v1/rate-sheets/:id/items/export
func (h *RateSheetHandler) ExportItems(c *gin.Context) {
	f, err := h.svc.ExportItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "rate sheet not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("rate_sheet_%s_items.xlsx", c.Param("id"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write workbook: "+err.Error())
	}
}

// ImportItems POST /api/v1/rate-sheets/:id/items/import
func (h *RateSheetHandler) ImportItems(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "upload an xlsx file under the \"file\" form field")
		return
	}
	defer file.Close()

	result, err := h.svc.ImportItems(c.Request.Context(), c.Param("id"), file)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "rate sheet not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, result)
}
