package repository

import (
	"context"
	"errors"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"gorm.io/gorm"
)

type BusinessUnitRepository struct {
	db *gorm.DB
}

func NewBusinessUnitRepository(db *gorm.DB) *BusinessUnitRepository {
	return &BusinessUnitRepository{db: db}
}

func (r *BusinessUnitRepository) FindByID(ctx context.Context, id string) (*entity.BusinessUnit, error) {
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

func (r *BusinessUnitRepository) List(ctx context.Context) ([]entity.BusinessUnit, error) {
	var units []entity.BusinessUnit
	if err := r.db.WithContext(ctx).Order("name").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *BusinessUnitRepository) Create(ctx context.Context, bu *entity.BusinessUnit) error {
	return r.db.WithContext(ctx).Create(bu).Error
}

func (r *BusinessUnitRepository) SetDefaultRateSheet(ctx context.Context, id string, rateSheetID *string) error {
	res := r.db.WithContext(ctx).
		Model(&entity.BusinessUnit{}).
		Where("id = ?", id).
		Update("default_rate_sheet_id", rateSheetID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
