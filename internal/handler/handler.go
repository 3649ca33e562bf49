package handler

import (
	"strconv"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every handler for wiring.
type Handlers struct {
	Pricing      *PricingHandler
	Catalog      *CatalogHandler
	RateSheet    *RateSheetHandler
	Community    *CommunityHandler
	PriceBook    *PriceBookHandler
	BusinessUnit *BusinessUnitHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Pricing:      NewPricingHandler(svc.Pricing),
		Catalog:      NewCatalogHandler(svc.Catalog),
		RateSheet:    NewRateSheetHandler(svc.RateSheet),
		Community:    NewCommunityHandler(svc.Community),
		PriceBook:    NewPriceBookHandler(svc.PriceBook),
		BusinessUnit: NewBusinessUnitHandler(svc.BusinessUnit),
	}
}

// Response is the envelope every endpoint returns.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse wraps paginated list payloads.
type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{Code: 0, Message: "success", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{Code: 0, Message: "success", Data: data})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{Code: code, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Unprocessable(c *gin.Context, message string) {
	Error(c, 42200, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, 50300, message)
}

// GetPagination reads page/page_size query params with sane bounds.
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 200 {
			pageSize = v
		}
	}
	return page, pageSize
}
