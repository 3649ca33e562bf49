package service

import (
	"context"
	"fmt"
	"time"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/google/uuid"
)

type BusinessUnitService struct {
	repo      *repository.BusinessUnitRepository
	rateSheet *repository.RateSheetRepository
}

func NewBusinessUnitService(repo *repository.BusinessUnitRepository, rateSheet *repository.RateSheetRepository) *BusinessUnitService {
	return &BusinessUnitService{repo: repo, rateSheet: rateSheet}
}

type CreateBusinessUnitInput struct {
	Name string `json:"name" binding:"required"`
}

func (s *BusinessUnitService) List(ctx context.Context) ([]entity.BusinessUnit, error) {
	return s.repo.List(ctx)
}

func (s *BusinessUnitService) Get(ctx context.Context, id string) (*entity.BusinessUnit, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BusinessUnitService) Create(ctx context.Context, input *CreateBusinessUnitInput) (*entity.BusinessUnit, error) {
	bu := &entity.BusinessUnit{
		ID:        uuid.New().String(),
		Name:      input.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, bu); err != nil {
		return nil, fmt.Errorf("create business unit: %w", err)
	}
	return bu, nil
}

// SetDefaultRateSheet assigns the tier-3 default sheet, or clears it when
// rateSheetID is nil.
func (s *BusinessUnitService) SetDefaultRateSheet(ctx context.Context, id string, rateSheetID *string) error {
	if rateSheetID != nil {
		if _, err := s.rateSheet.FindByID(ctx, *rateSheetID); err != nil {
			return fmt.Errorf("rate sheet %s: %w", *rateSheetID, err)
		}
	}
	return s.repo.SetDefaultRateSheet(ctx, id, rateSheetID)
}
