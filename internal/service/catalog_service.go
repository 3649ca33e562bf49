package service

import (
	"context"
	"fmt"
	"time"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CatalogService manages catalog SKUs. Every write invalidates the pricing
// SKU cache so resolutions never price against a stale row for long.
type CatalogService struct {
	repo *repository.CatalogRepository
	rdb  *redis.Client
}

func NewCatalogService(repo *repository.CatalogRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{repo: repo, rdb: rdb}
}

type CreateSKUInput struct {
	Code      string  `json:"code" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"`
	SellPrice float64 `json:"sell_price" binding:"gte=0"`
	Cost      float64 `json:"cost" binding:"gte=0"`
}

type UpdateSKUInput struct {
	Name      *string  `json:"name"`
	Category  *string  `json:"category"`
	Unit      *string  `json:"unit"`
	SellPrice *float64 `json:"sell_price"`
	Cost      *float64 `json:"cost"`
	Active    *bool    `json:"active"`
}

func (s *CatalogService) ListSKUs(ctx context.Context, params repository.SKUListParams) ([]entity.SKU, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *CatalogService) GetSKU(ctx context.Context, id string) (*entity.SKU, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) CreateSKU(ctx context.Context, input *CreateSKUInput) (*entity.SKU, error) {
	unit := input.Unit
	if unit == "" {
		unit = "ft"
	}
	sku := &entity.SKU{
		ID:        uuid.New().String(),
		Code:      input.Code,
		Name:      input.Name,
		Category:  input.Category,
		Unit:      unit,
		SellPrice: input.SellPrice,
		Cost:      input.Cost,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, sku); err != nil {
		return nil, fmt.Errorf("create sku: %w", err)
	}
	return sku, nil
}

func (s *CatalogService) UpdateSKU(ctx context.Context, id string, input *UpdateSKUInput) (*entity.SKU, error) {
	sku, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		sku.Name = *input.Name
	}
	if input.Category != nil {
		sku.Category = *input.Category
	}
	if input.Unit != nil {
		sku.Unit = *input.Unit
	}
	if input.SellPrice != nil {
		if *input.SellPrice < 0 {
			return nil, fmt.Errorf("sell price must be non-negative")
		}
		sku.SellPrice = *input.SellPrice
	}
	if input.Cost != nil {
		sku.Cost = *input.Cost
	}
	if input.Active != nil {
		sku.Active = *input.Active
	}
	sku.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, sku); err != nil {
		return nil, fmt.Errorf("update sku: %w", err)
	}
	s.invalidate(ctx, id)
	return sku, nil
}

func (s *CatalogService) DeactivateSKU(ctx context.Context, id string) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if s.rdb != nil {
		s.rdb.Del(ctx, SKUCacheKey(id))
	}
}
