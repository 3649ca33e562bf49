package repository

import (
	"context"
	"errors"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RateSheetRepository struct {
	db *gorm.DB
}

func NewRateSheetRepository(db *gorm.DB) *RateSheetRepository {
	return &RateSheetRepository{db: db}
}

func (r *RateSheetRepository) FindByID(ctx context.Context, id string) (*entity.RateSheet, error) {
	var sheet entity.RateSheet
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sheet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sheet, nil
}

func (r *RateSheetRepository) List(ctx context.Context, activeOnly bool) ([]entity.RateSheet, error) {
	q := r.db.WithContext(ctx).Model(&entity.RateSheet{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var sheets []entity.RateSheet
	if err := q.Order("name").Find(&sheets).Error; err != nil {
		return nil, err
	}
	return sheets, nil
}

func (r *RateSheetRepository) Create(ctx context.Context, sheet *entity.RateSheet) error {
	return r.db.WithContext(ctx).Create(sheet).Error
}

func (r *RateSheetRepository) Update(ctx context.Context, sheet *entity.RateSheet) error {
	return r.db.WithContext(ctx).Save(sheet).Error
}

func (r *RateSheetRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rate_sheet_id = ?", id).Delete(&entity.RateSheetItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entity.RateSheet{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// FindItem returns the item pinning pricing for skuID within sheetID, if any.
func (r *RateSheetRepository) FindItem(ctx context.Context, sheetID, skuID string) (*entity.RateSheetItem, error) {
	var item entity.RateSheetItem
	err := r.db.WithContext(ctx).
		Where("rate_sheet_id = ? AND sku_id = ?", sheetID, skuID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *RateSheetRepository) ListItems(ctx context.Context, sheetID string) ([]entity.RateSheetItem, error) {
	var items []entity.RateSheetItem
	err := r.db.WithContext(ctx).
		Preload("SKU").
		Where("rate_sheet_id = ?", sheetID).
		Order("sku_id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertItem inserts or replaces the single item for (rate_sheet, sku).
// The composite unique index makes the pair the conflict target.
func (r *RateSheetRepository) UpsertItem(ctx context.Context, item *entity.RateSheetItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "rate_sheet_id"}, {Name: "sku_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"pricing_method", "fixed_price", "fixed_material_price",
				"fixed_labor_price", "labor_markup_pct", "material_markup_pct",
				"target_margin_pct", "cost_plus_amount", "updated_at",
			}),
		}).
		Create(item).Error
}

func (r *RateSheetRepository) DeleteItem(ctx context.Context, sheetID, skuID string) error {
	res := r.db.WithContext(ctx).
		Where("rate_sheet_id = ? AND sku_id = ?", sheetID, skuID).
		Delete(&entity.RateSheetItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
