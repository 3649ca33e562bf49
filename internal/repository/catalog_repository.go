package repository

import (
	"context"
	"errors"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*entity.SKU, error) {
	var sku entity.SKU
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sku, nil
}

func (r *CatalogRepository) FindByCode(ctx context.Context, code string) (*entity.SKU, error) {
	var sku entity.SKU
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sku, nil
}

type SKUListParams struct {
	Category string
	Active   *bool
	Search   string
	Page     int
	PageSize int
}

func (r *CatalogRepository) List(ctx context.Context, params SKUListParams) ([]entity.SKU, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.SKU{})

	if params.Category != "" {
		q = q.Where("category = ?", params.Category)
	}
	if params.Active != nil {
		q = q.Where("active = ?", *params.Active)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		q = q.Where("name ILIKE ? OR code ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var skus []entity.SKU
	err := q.Order("code").
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&skus).Error
	if err != nil {
		return nil, 0, err
	}
	return skus, total, nil
}

func (r *CatalogRepository) Create(ctx context.Context, sku *entity.SKU) error {
	return r.db.WithContext(ctx).Create(sku).Error
}

func (r *CatalogRepository) Update(ctx context.Context, sku *entity.SKU) error {
	return r.db.WithContext(ctx).Save(sku).Error
}

func (r *CatalogRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&entity.SKU{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
