package service

import (
	"time"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Services bundles every service for wiring.
type Services struct {
	Pricing      *PricingService
	Catalog      *CatalogService
	RateSheet    *RateSheetService
	Community    *CommunityService
	PriceBook    *PriceBookService
	BusinessUnit *BusinessUnitService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger, pricingReadTimeout time.Duration) *Services {
	return &Services{
		Pricing:      NewPricingService(repos.Pricing, rdb, logger, pricingReadTimeout),
		Catalog:      NewCatalogService(repos.Catalog, rdb),
		RateSheet:    NewRateSheetService(repos.RateSheet, repos.Catalog),
		Community:    NewCommunityService(repos.Community),
		PriceBook:    NewPriceBookService(repos.PriceBook),
		BusinessUnit: NewBusinessUnitService(repos.BusinessUnit, repos.RateSheet),
	}
}
