package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Resolution error kinds. All are fatal to the resolution that raised them;
// the engine never retries and never falls back past an error.
var (
	ErrSKUNotFound        = errors.New("sku not found or inactive")
	ErrInvalidMargin      = errors.New("invalid target margin")
	ErrInvalidPriceResult = errors.New("invalid price result")
	ErrUpstreamUnavailable = errors.New("pricing store unavailable")
)

const (
	defaultReadTimeout = 3 * time.Second
	skuCacheTTL        = 5 * time.Minute
)

// SKUCacheKey is the redis key caching a catalog SKU row. The catalog
// service deletes it on every write.
func SKUCacheKey(id string) string {
	return "pricing:sku:" + id
}

// PricingStore is the record-store capability the resolution cascade
// consumes. Misses surface as repository.ErrNotFound; any other error fails
// the resolution.
type PricingStore interface {
	GetSKU(ctx context.Context, id string) (*entity.SKU, error)
	GetCommunityOverride(ctx context.Context, communityID, skuID string) (*entity.CommunityProductOverride, error)
	GetCommunity(ctx context.Context, id string) (*entity.Community, error)
	GetClientPriceBookAssignments(ctx context.Context, clientID string) ([]entity.ClientPriceBookAssignment, error)
	GetBusinessUnit(ctx context.Context, id string) (*entity.BusinessUnit, error)
	GetRateSheet(ctx context.Context, id string) (*entity.RateSheet, error)
	GetRateSheetItem(ctx context.Context, sheetID, skuID string) (*entity.RateSheetItem, error)
}

// ResolveRequest identifies the pricing context. SKUID is required; the
// other ids are optional and simply disable their cascade tiers when empty.
type ResolveRequest struct {
	SKUID          string
	ClientID       string
	CommunityID    string
	BusinessUnitID string
}

// PricingService resolves effective unit prices by walking the override →
// rate-sheet → catalog cascade. It is stateless; concurrent resolutions
// need no coordination.
type PricingService struct {
	store       PricingStore
	rdb         *redis.Client
	logger      *zap.Logger
	readTimeout time.Duration
	now         func() time.Time
}

func NewPricingService(store PricingStore, rdb *redis.Client, logger *zap.Logger, readTimeout time.Duration) *PricingService {
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}
	return &PricingService{
		store:       store,
		rdb:         rdb,
		logger:      logger,
		readTimeout: readTimeout,
		now:         time.Now,
	}
}

// Resolve computes the effective price for one SKU in one context.
//
// Cascade, strictly in order and short-circuiting:
//  1. community product override (terminal fixed price)
//  2. community rate-sheet override
//  3. first client price-book assignment whose book contains the SKU
//  4. business-unit default rate sheet
//  5. catalog sell price
//
// A tier whose rate sheet is out of effect, or is non-formula with no item
// for the SKU, yields nothing and the cascade continues.
func (s *PricingService) Resolve(ctx context.Context, req ResolveRequest) (*entity.ResolvedPrice, error) {
	if req.SKUID == "" {
		return nil, fmt.Errorf("sku id is required")
	}

	sku, err := s.getSKU(ctx, req.SKUID)
	if err != nil {
		return nil, err
	}

	// Community product override wins over everything.
	if req.CommunityID != "" {
		override, err := s.getCommunityOverride(ctx, req.CommunityID, req.SKUID)
		if err != nil {
			return nil, err
		}
		if override != nil {
			source := "Community Override"
			if override.Reason != "" {
				source += ": " + override.Reason
			}
			result, err := calculatePrice(calcInput{
				Method:     entity.MethodFixed,
				FixedPrice: &override.Price,
			}, sku.SellPrice)
			if err != nil {
				return nil, err
			}
			return s.assemble(sku, result, entity.MethodFixed, source, nil), nil
		}
	}

	// Tier 1: community rate-sheet override.
	if req.CommunityID != "" {
		community, err := s.getCommunity(ctx, req.CommunityID)
		if err != nil {
			return nil, err
		}
		if community != nil && community.RateSheetOverrideID != nil {
			eval, sheet, err := s.evaluateSheet(ctx, *community.RateSheetOverrideID, sku)
			if err != nil {
				return nil, err
			}
			if eval != nil {
				return s.assemble(sku, eval.result, eval.method, "Community Rate Sheet: "+sheet.Name, sheet), nil
			}
		}
	}

	// Tier 2: client price-book rate sheet. Only the first assignment whose
	// book contains the SKU is consulted; if its sheet yields nothing the
	// whole tier yields nothing.
	if req.ClientID != "" {
		assignments, err := s.getClientAssignments(ctx, req.ClientID)
		if err != nil {
			return nil, err
		}
		for _, a := range assignments {
			if a.RateSheetID == nil || !priceBookContains(a.PriceBook, req.SKUID) {
				continue
			}
			eval, sheet, err := s.evaluateSheet(ctx, *a.RateSheetID, sku)
			if err != nil {
				return nil, err
			}
			if eval != nil {
				return s.assemble(sku, eval.result, eval.method, "Client Rate Sheet: "+sheet.Name, sheet), nil
			}
			break
		}
	}

	// Tier 3: business-unit default rate sheet.
	if req.BusinessUnitID != "" {
		bu, err := s.getBusinessUnit(ctx, req.BusinessUnitID)
		if err != nil {
			return nil, err
		}
		if bu != nil && bu.DefaultRateSheetID != nil {
			eval, sheet, err := s.evaluateSheet(ctx, *bu.DefaultRateSheetID, sku)
			if err != nil {
				return nil, err
			}
			if eval != nil {
				return s.assemble(sku, eval.result, eval.method, "BU Default: "+sheet.Name, sheet), nil
			}
		}
	}

	// Catalog default.
	return s.assemble(sku, calcResult{UnitPrice: sku.SellPrice}, entity.MethodCatalog, "Catalog Default", nil), nil
}

type sheetEvaluation struct {
	result calcResult
	method string
}

// evaluateSheet prices the SKU against one rate sheet: the sheet's item for
// that SKU if present, else the sheet-wide formula defaults. A nil
// evaluation (no error) means the sheet yields nothing for this SKU.
func (s *PricingService) evaluateSheet(ctx context.Context, sheetID string, sku *entity.SKU) (*sheetEvaluation, *entity.RateSheet, error) {
	sheet, err := s.getRateSheet(ctx, sheetID)
	if err != nil {
		return nil, nil, err
	}
	if sheet == nil || !sheet.InEffect(s.now()) {
		return nil, nil, nil
	}

	item, err := s.getRateSheetItem(ctx, sheetID, sku.ID)
	if err != nil {
		return nil, nil, err
	}
	if item != nil {
		result, err := calculatePrice(calcInput{
			Method:             item.PricingMethod,
			FixedPrice:         item.FixedPrice,
			FixedMaterialPrice: item.FixedMaterialPrice,
			FixedLaborPrice:    item.FixedLaborPrice,
			LaborMarkupPct:     item.LaborMarkupPct,
			MaterialMarkupPct:  item.MaterialMarkupPct,
			TargetMarginPct:    item.TargetMarginPct,
			CostPlusAmount:     item.CostPlusAmount,
		}, sku.SellPrice)
		if err != nil {
			return nil, nil, err
		}
		return &sheetEvaluation{result: result, method: item.PricingMethod}, sheet, nil
	}

	// No item: only formula sheets carry usable sheet-wide defaults.
	if sheet.PricingType != entity.PricingTypeFormula {
		return nil, nil, nil
	}

	if sheet.DefaultTargetMarginPct != nil {
		result, err := calculatePrice(calcInput{
			Method:          entity.MethodMargin,
			TargetMarginPct: sheet.DefaultTargetMarginPct,
		}, sku.SellPrice)
		if err != nil {
			return nil, nil, err
		}
		return &sheetEvaluation{result: result, method: entity.MethodMargin}, sheet, nil
	}

	result, err := calculatePrice(calcInput{
		Method:            entity.MethodMarkup,
		LaborMarkupPct:    &sheet.DefaultLaborMarkupPct,
		MaterialMarkupPct: &sheet.DefaultMaterialMarkupPct,
	}, sku.SellPrice)
	if err != nil {
		return nil, nil, err
	}
	return &sheetEvaluation{result: result, method: entity.MethodMarkup}, sheet, nil
}

func (s *PricingService) assemble(sku *entity.SKU, result calcResult, method, source string, sheet *entity.RateSheet) *entity.ResolvedPrice {
	resolved := &entity.ResolvedPrice{
		SKUID:         sku.ID,
		UnitPrice:     roundCents(result.UnitPrice),
		Unit:          sku.Unit,
		PricingMethod: method,
		PricingSource: source,
	}
	if result.MaterialPrice != nil {
		v := roundCents(*result.MaterialPrice)
		resolved.MaterialPrice = &v
	}
	if result.LaborPrice != nil {
		v := roundCents(*result.LaborPrice)
		resolved.LaborPrice = &v
	}
	if sheet != nil {
		id := sheet.ID
		resolved.RateSheetID = &id
		resolved.RateSheetName = sheet.Name
	}
	if s.logger != nil {
		s.logger.Debug("price resolved",
			zap.String("sku_id", sku.ID),
			zap.Float64("unit_price", resolved.UnitPrice),
			zap.String("method", method),
			zap.String("source", source),
		)
	}
	return resolved
}

// ---- store reads ----
//
// Every read runs under its own timeout. A miss is a nil record; a store
// failure or timeout fails the resolution with ErrUpstreamUnavailable so a
// degraded store can never silently bill catalog prices. Caller
// cancellation propagates as-is and produces no result.

func (s *PricingService) getSKU(ctx context.Context, id string) (*entity.SKU, error) {
	if cached := s.cachedSKU(ctx, id); cached != nil {
		if !cached.Active {
			return nil, fmt.Errorf("%w: %s", ErrSKUNotFound, id)
		}
		return cached, nil
	}

	rctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	sku, err := s.store.GetSKU(rctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSKUNotFound, id)
		}
		return nil, s.storeFailure(ctx, "get sku", err)
	}
	s.cacheSKU(ctx, sku)
	if !sku.Active {
		return nil, fmt.Errorf("%w: %s", ErrSKUNotFound, id)
	}
	return sku, nil
}

func (s *PricingService) getCommunityOverride(ctx context.Context, communityID, skuID string) (*entity.CommunityProductOverride, error) {
	rctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	override, err := s.store.GetCommunityOverride(rctx, communityID, skuID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.storeFailure(ctx, "get community override", err)
	}
	return override, nil
}

func (s *PricingService) getCommunity(ctx context.Context, id string) (*entity.Community, error) {
	rctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	community, err := s.store.GetCommunity(rctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.storeFailure(ctx, "get community", err)
	}
	return community, nil
}

func (s *PricingService) getClientAssignments(ctx context.Context, clientID string) ([]entity.ClientPriceBookAssignment, error) {
	rctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	assignments, err := s.store.GetClientPriceBookAssignments(rctx, clientID)
	if err != nil {
		return nil, s.storeFailure(ctx, "get client assignments", err)
	}
	return assignments, nil
}

func (s *PricingService) getBusinessUnit(ctx context.Context, id string) (*entity.BusinessUnit, error) {
	rctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	bu, err := s.store.GetBusinessUnit(rctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.storeFailure(ctx, "get business unit", err)
	}
	return bu, nil
}

func (s *PricingService) getRateSheet(ctx context.Context, id string) (*entity.RateSheet, error) {
	rctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	sheet, err := s.store.GetRateSheet(rctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Dangling reference; the tier yields nothing.
			return nil, nil
		}
		return nil, s.storeFailure(ctx, "get rate sheet", err)
	}
	return sheet, nil
}

func (s *PricingService) getRateSheetItem(ctx context.Context, sheetID, skuID string) (*entity.RateSheetItem, error) {
	rctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	item, err := s.store.GetRateSheetItem(rctx, sheetID, skuID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.storeFailure(ctx, "get rate sheet item", err)
	}
	return item, nil
}

func (s *PricingService) storeFailure(ctx context.Context, op string, err error) error {
	// The caller going away is not a store failure.
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if s.logger != nil {
		s.logger.Warn("pricing store read failed", zap.String("op", op), zap.Error(err))
	}
	return fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, op, err)
}

// ---- sku cache ----
//
// The SKU row is consulted on every resolution, so it is the one read worth
// caching. Cache failures fall back to the store; they never fail or delay
// a resolution beyond the redis client's own timeout.

func (s *PricingService) cachedSKU(ctx context.Context, id string) *entity.SKU {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, SKUCacheKey(id)).Result()
	if err != nil {
		return nil
	}
	var sku entity.SKU
	if err := json.Unmarshal([]byte(data), &sku); err != nil {
		return nil
	}
	return &sku
}

func (s *PricingService) cacheSKU(ctx context.Context, sku *entity.SKU) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(sku)
	if err != nil {
		return
	}
	s.rdb.Set(ctx, SKUCacheKey(sku.ID), payload, skuCacheTTL)
}

func priceBookContains(book *entity.PriceBook, skuID string) bool {
	if book == nil {
		return false
	}
	for _, item := range book.Items {
		if item.SKUID == skuID {
			return true
		}
	}
	return false
}
