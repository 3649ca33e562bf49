package repository

import (
	"context"
	"errors"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"gorm.io/gorm"
)

// PricingRepository bundles the read paths the price resolution cascade
// needs. It backs the pricing service's store interface; misses surface as
// ErrNotFound and the cascade decides what a miss means per tier.
type PricingRepository struct {
	db *gorm.DB
}

func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

func (r *PricingRepository) GetSKU(ctx context.Context, id string) (*entity.SKU, error) {
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

func (r *PricingRepository) GetCommunityOverride(ctx context.Context, communityID, skuID string) (*entity.CommunityProductOverride, error) {
	var override entity.CommunityProductOverride
	err := r.db.WithContext(ctx).
		Where("community_id = ? AND sku_id = ?", communityID, skuID).
		First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &override, nil
}

func (r *PricingRepository) GetCommunity(ctx context.Context, id string) (*entity.Community, error) {
	var community entity.Community
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&community).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &community, nil
}

// GetClientPriceBookAssignments returns the client's assignments in the
// tie-break order the cascade depends on (assignmentBefore).
func (r *PricingRepository) GetClientPriceBookAssignments(ctx context.Context, clientID string) ([]entity.ClientPriceBookAssignment, error) {
	return listClientAssignments(ctx, r.db, clientID)
}

func (r *PricingRepository) GetBusinessUnit(ctx context.Context, id string) (*entity.BusinessUnit, error) {
	var bu entity.BusinessUnit
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&bu).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &bu, nil
}

func (r *PricingRepository) GetRateSheet(ctx context.Context, id string) (*entity.RateSheet, error) {
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

func (r *PricingRepository) GetRateSheetItem(ctx context.Context, sheetID, skuID string) (*entity.RateSheetItem, error) {
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
