package repository

import (
	"context"
	"errors"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

func (r *CommunityRepository) FindByID(ctx context.Context, id string) (*entity.Community, error) {
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

func (r *CommunityRepository) ListByClient(ctx context.Context, clientID string) ([]entity.Community, error) {
	var communities []entity.Community
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("name").
		Find(&communities).Error
	if err != nil {
		return nil, err
	}
	return communities, nil
}

func (r *CommunityRepository) Create(ctx context.Context, community *entity.Community) error {
	return r.db.WithContext(ctx).Create(community).Error
}

func (r *CommunityRepository) Update(ctx context.Context, community *entity.Community) error {
	return r.db.WithContext(ctx).Save(community).Error
}

// FindOverride returns the fixed-price override for the exact
// (community, sku) pair. No inheritance, no wildcards.
func (r *CommunityRepository) FindOverride(ctx context.Context, communityID, skuID string) (*entity.CommunityProductOverride, error) {
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

func (r *CommunityRepository) ListOverrides(ctx context.Context, communityID string) ([]entity.CommunityProductOverride, error) {
	var overrides []entity.CommunityProductOverride
	err := r.db.WithContext(ctx).
		Preload("SKU").
		Where("community_id = ?", communityID).
		Order("sku_id").
		Find(&overrides).Error
	if err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *CommunityRepository) UpsertOverride(ctx context.Context, override *entity.CommunityProductOverride) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "community_id"}, {Name: "sku_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "reason", "updated_at"}),
		}).
		Create(override).Error
}

func (r *CommunityRepository) DeleteOverride(ctx context.Context, communityID, skuID string) error {
	res := r.db.WithContext(ctx).
		Where("community_id = ? AND sku_id = ?", communityID, skuID).
		Delete(&entity.CommunityProductOverride{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
