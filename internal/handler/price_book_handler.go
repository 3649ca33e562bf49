package handler

import (
	"errors"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type PriceBookHandler struct {
	svc *service.PriceBookService
}

func NewPriceBookHandler(svc *service.PriceBookService) *PriceBookHandler {
	return &PriceBookHandler{svc: svc}
}

// ListPriceBooks GET /api/v1/price-books
func (h *PriceBookHandler) ListPriceBooks(c *gin.Context) {
	books, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, books)
}

// GetPriceBook GET /api/v1/price-books/:id
func (h *PriceBookHandler) GetPriceBook(c *gin.Context) {
	book, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "price book not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, book)
}

// CreatePriceBook POST /api/v1/price-books
func (h *PriceBookHandler) CreatePriceBook(c *gin.Context) {
	var input service.CreatePriceBookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}

	book, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, book)
}

type addItemRequest struct {
	SKUID string `json:"sku_id" binding:"required"`
}

// AddItem POST /api/v1/price-books/:id/items
func (h *PriceBookHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := h.svc.AddItem(c.Request.Context(), c.Param("id"), req.SKUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "price book not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Created(c, nil)
}

// RemoveItem DELETE /api/v1/price-books/:id/items/:skuId
func (h *PriceBookHandler) RemoveItem(c *gin.Context) {
	if err := h.svc.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("skuId")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "price book item not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// ListAssignments GET /api/v1/clients/:id/price-book-assignments
func (h *PriceBookHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.svc.ListAssignments(c.Request.Context(), c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, assignments)
}

// CreateAssignment POST /api/v1/clients/:id/price-book-assignments
func (h *PriceBookHandler) CreateAssignment(c *gin.Context) {
	var input service.CreateAssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}

	assignment, err := h.svc.CreateAssignment(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, err.Error())
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Created(c, assignment)
}

// DeleteAssignment DELETE /api/v1/price-book-assignments/:id
func (h *PriceBookHandler) DeleteAssignment(c *gin.Context) {
	if err := h.svc.DeleteAssignment(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "assignment not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}
