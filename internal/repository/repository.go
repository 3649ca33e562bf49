package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories bundles every repository for wiring.
type Repositories struct {
	Catalog       *CatalogRepository
	RateSheet     *RateSheetRepository
	Community     *CommunityRepository
	PriceBook     *PriceBookRepository
	BusinessUnit  *BusinessUnitRepository
	Pricing       *PricingRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Catalog:      NewCatalogRepository(db),
		RateSheet:    NewRateSheetRepository(db),
		Community:    NewCommunityRepository(db),
		PriceBook:    NewPriceBookRepository(db),
		BusinessUnit: NewBusinessUnitRepository(db),
		Pricing:      NewPricingRepository(db),
	}
}
