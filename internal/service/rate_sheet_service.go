package service

import (
	"context"
	"fmt"
	"time"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/google/uuid"
)

type RateSheetService struct {
	repo    *repository.RateSheetRepository
	catalog *repository.CatalogRepository
}

func NewRateSheetService(repo *repository.RateSheetRepository, catalog *repository.CatalogRepository) *RateSheetService {
	return &RateSheetService{repo: repo, catalog: catalog}
}

type CreateRateSheetInput struct {
	Name                     string     `json:"name" binding:"required"`
	PricingType              string     `json:"pricing_type"`
	DefaultLaborMarkupPct    float64    `json:"default_labor_markup_pct"`
	DefaultMaterialMarkupPct float64    `json:"default_material_markup_pct"`
	DefaultTargetMarginPct   *float64   `json:"default_target_margin_pct"`
	EffectiveDate            *time.Time `json:"effective_date"`
	ExpiryDate               *time.Time `json:"expiry_date"`
}

type UpdateRateSheetInput struct {
	Name                     *string    `json:"name"`
	PricingType              *string    `json:"pricing_type"`
	DefaultLaborMarkupPct    *float64   `json:"default_labor_markup_pct"`
	DefaultMaterialMarkupPct *float64   `json:"default_material_markup_pct"`
	DefaultTargetMarginPct   *float64   `json:"default_target_margin_pct"`
	Active                   *bool      `json:"active"`
	EffectiveDate            *time.Time `json:"effective_date"`
	ExpiryDate               *time.Time `json:"expiry_date"`
}

// UpsertItemInput sets the pricing rule for one SKU on one sheet. The
// method decides which fields matter; the rest may stay nil.
type UpsertItemInput struct {
	SKUID              string   `json:"sku_id" binding:"required"`
	PricingMethod      string   `json:"pricing_method" binding:"required"`
	FixedPrice         *float64 `json:"fixed_price"`
	FixedMaterialPrice *float64 `json:"fixed_material_price"`
	FixedLaborPrice    *float64 `json:"fixed_labor_price"`
	LaborMarkupPct     *float64 `json:"labor_markup_pct"`
	MaterialMarkupPct  *float64 `json:"material_markup_pct"`
	TargetMarginPct    *float64 `json:"target_margin_pct"`
	CostPlusAmount     *float64 `json:"cost_plus_amount"`
}

func validPricingType(t string) bool {
	switch t {
	case entity.PricingTypeCustom, entity.PricingTypeFormula, entity.PricingTypeHybrid:
		return true
	}
	return false
}

func validPricingMethod(m string) bool {
	switch m {
	case entity.MethodFixed, entity.MethodMarkup, entity.MethodMargin, entity.MethodCostPlus:
		return true
	}
	return false
}

func (s *RateSheetService) List(ctx context.Context, activeOnly bool) ([]entity.RateSheet, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *RateSheetService) Get(ctx context.Context, id string) (*entity.RateSheet, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RateSheetService) Create(ctx context.Context, input *CreateRateSheetInput) (*entity.RateSheet, error) {
	pricingType := input.PricingType
	if pricingType == "" {
		pricingType = entity.PricingTypeCustom
	}
	if !validPricingType(pricingType) {
		return nil, fmt.Errorf("invalid pricing type %q", pricingType)
	}
	if input.DefaultTargetMarginPct != nil && *input.DefaultTargetMarginPct >= 100 {
		return nil, fmt.Errorf("%w: default target margin %.2f%%", ErrInvalidMargin, *input.DefaultTargetMarginPct)
	}

	sheet := &entity.RateSheet{
		ID:                       uuid.New().String(),
		Name:                     input.Name,
		PricingType:              pricingType,
		DefaultLaborMarkupPct:    input.DefaultLaborMarkupPct,
		DefaultMaterialMarkupPct: input.DefaultMaterialMarkupPct,
		DefaultTargetMarginPct:   input.DefaultTargetMarginPct,
		Active:                   true,
		EffectiveDate:            input.EffectiveDate,
		ExpiryDate:               input.ExpiryDate,
		CreatedAt:                time.Now(),
		UpdatedAt:                time.Now(),
	}
	if err := s.repo.Create(ctx, sheet); err != nil {
		return nil, fmt.Errorf("create rate sheet: %w", err)
	}
	return sheet, nil
}

func (s *RateSheetService) Update(ctx context.Context, id string, input *UpdateRateSheetInput) (*entity.RateSheet, error) {
	sheet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		sheet.Name = *input.Name
	}
	if input.PricingType != nil {
		if !validPricingType(*input.PricingType) {
			return nil, fmt.Errorf("invalid pricing type %q", *input.PricingType)
		}
		sheet.PricingType = *input.PricingType
	}
	if input.DefaultLaborMarkupPct != nil {
		sheet.DefaultLaborMarkupPct = *input.DefaultLaborMarkupPct
	}
	if input.DefaultMaterialMarkupPct != nil {
		sheet.DefaultMaterialMarkupPct = *input.DefaultMaterialMarkupPct
	}
	if input.DefaultTargetMarginPct != nil {
		if *input.DefaultTargetMarginPct >= 100 {
			return nil, fmt.Errorf("%w: default target margin %.2f%%", ErrInvalidMargin, *input.DefaultTargetMarginPct)
		}
		sheet.DefaultTargetMarginPct = input.DefaultTargetMarginPct
	}
	if input.Active != nil {
		sheet.Active = *input.Active
	}
	if input.EffectiveDate != nil {
		sheet.EffectiveDate = input.EffectiveDate
	}
	if input.ExpiryDate != nil {
		sheet.ExpiryDate = input.ExpiryDate
	}
	sheet.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, sheet); err != nil {
		return nil, fmt.Errorf("update rate sheet: %w", err)
	}
	return sheet, nil
}

func (s *RateSheetService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *RateSheetService) ListItems(ctx context.Context, sheetID string) ([]entity.RateSheetItem, error) {
	if _, err := s.repo.FindByID(ctx, sheetID); err != nil {
		return nil, err
	}
	return s.repo.ListItems(ctx, sheetID)
}

func (s *RateSheetService) UpsertItem(ctx context.Context, sheetID string, input *UpsertItemInput) (*entity.RateSheetItem, error) {
	if _, err := s.repo.FindByID(ctx, sheetID); err != nil {
		return nil, err
	}
	if err := validateItemInput(input); err != nil {
		return nil, err
	}
	if _, err := s.catalog.FindByID(ctx, input.SKUID); err != nil {
		return nil, fmt.Errorf("sku %s: %w", input.SKUID, err)
	}

	item := &entity.RateSheetItem{
		ID:                 uuid.New().String(),
		RateSheetID:        sheetID,
		SKUID:              input.SKUID,
		PricingMethod:      input.PricingMethod,
		FixedPrice:         input.FixedPrice,
		FixedMaterialPrice: input.FixedMaterialPrice,
		FixedLaborPrice:    input.FixedLaborPrice,
		LaborMarkupPct:     input.LaborMarkupPct,
		MaterialMarkupPct:  input.MaterialMarkupPct,
		TargetMarginPct:    input.TargetMarginPct,
		CostPlusAmount:     input.CostPlusAmount,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return nil, fmt.Errorf("upsert rate sheet item: %w", err)
	}
	return item, nil
}

func (s *RateSheetService) DeleteItem(ctx context.Context, sheetID, skuID string) error {
	return s.repo.DeleteItem(ctx, sheetID, skuID)
}

func validateItemInput(input *UpsertItemInput) error {
	if !validPricingMethod(input.PricingMethod) {
		return fmt.Errorf("invalid pricing method %q", input.PricingMethod)
	}
	switch input.PricingMethod {
	case entity.MethodFixed:
		if input.FixedPrice != nil && *input.FixedPrice < 0 {
			return fmt.Errorf("fixed price must be non-negative")
		}
	case entity.MethodMargin:
		if input.TargetMarginPct != nil && *input.TargetMarginPct >= 100 {
			return fmt.Errorf("%w: target margin %.2f%%", ErrInvalidMargin, *input.TargetMarginPct)
		}
	}
	return nil
}
