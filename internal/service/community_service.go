package service

import (
	"context"
	"fmt"
	"time"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/google/uuid"
)

type CommunityService struct {
	repo *repository.CommunityRepository
}

func NewCommunityService(repo *repository.CommunityRepository) *CommunityService {
	return &CommunityService{repo: repo}
}

type CreateCommunityInput struct {
	Name     string `json:"name" binding:"required"`
	ClientID string `json:"client_id" binding:"required"`
}

type UpsertOverrideInput struct {
	SKUID  string  `json:"sku_id" binding:"required"`
	Price  float64 `json:"price" binding:"gte=0"`
	Reason string  `json:"reason"`
}

func (s *CommunityService) Get(ctx context.Context, id string) (*entity.Community, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CommunityService) ListByClient(ctx context.Context, clientID string) ([]entity.Community, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *CommunityService) Create(ctx context.Context, input *CreateCommunityInput) (*entity.Community, error) {
	community := &entity.Community{
		ID:        uuid.New().String(),
		Name:      input.Name,
		ClientID:  input.ClientID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, community); err != nil {
		return nil, fmt.Errorf("create community: %w", err)
	}
	return community, nil
}

// SetRateSheetOverride points the community at a rate sheet (tier 1 of the
// cascade) or clears it when rateSheetID is nil.
func (s *CommunityService) SetRateSheetOverride(ctx context.Context, communityID string, rateSheetID *string) (*entity.Community, error) {
	community, err := s.repo.FindByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	community.RateSheetOverrideID = rateSheetID
	community.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, community); err != nil {
		return nil, fmt.Errorf("set community rate sheet override: %w", err)
	}
	return community, nil
}

func (s *CommunityService) ListOverrides(ctx context.Context, communityID string) ([]entity.CommunityProductOverride, error) {
	if _, err := s.repo.FindByID(ctx, communityID); err != nil {
		return nil, err
	}
	return s.repo.ListOverrides(ctx, communityID)
}

func (s *CommunityService) UpsertOverride(ctx context.Context, communityID string, input *UpsertOverrideInput) (*entity.CommunityProductOverride, error) {
	if _, err := s.repo.FindByID(ctx, communityID); err != nil {
		return nil, err
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("override price must be non-negative")
	}

	override := &entity.CommunityProductOverride{
		ID:          uuid.New().String(),
		CommunityID: communityID,
		SKUID:       input.SKUID,
		Price:       input.Price,
		Reason:      input.Reason,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.repo.UpsertOverride(ctx, override); err != nil {
		return nil, fmt.Errorf("upsert community override: %w", err)
	}
	return override, nil
}

func (s *CommunityService) DeleteOverride(ctx context.Context, communityID, skuID string) error {
	return s.repo.DeleteOverride(ctx, communityID, skuID)
}
