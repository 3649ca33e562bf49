package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
)

// fakeStore is an in-memory PricingStore. Misses return
// repository.ErrNotFound exactly like the gorm-backed store; failOps makes
// named ops fail to exercise the upstream-unavailable path.
type fakeStore struct {
	skus          map[string]*entity.SKU
	overrides     map[string]*entity.CommunityProductOverride
	communities   map[string]*entity.Community
	assignments   map[string][]entity.ClientPriceBookAssignment
	businessUnits map[string]*entity.BusinessUnit
	sheets        map[string]*entity.RateSheet
	items         map[string]*entity.RateSheetItem
	failOps       map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		skus:          map[string]*entity.SKU{},
		overrides:     map[string]*entity.CommunityProductOverride{},
		communities:   map[string]*entity.Community{},
		assignments:   map[string][]entity.ClientPriceBookAssignment{},
		businessUnits: map[string]*entity.BusinessUnit{},
		sheets:        map[string]*entity.RateSheet{},
		items:         map[string]*entity.RateSheetItem{},
		failOps:       map[string]error{},
	}
}

func pairKey(a, b string) string { return a + "|" + b }

func (f *fakeStore) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := f.failOps[op]; ok {
		return err
	}
	return nil
}

func (f *fakeStore) GetSKU(ctx context.Context, id string) (*entity.SKU, error) {
	if err := f.check(ctx, "sku"); err != nil {
		return nil, err
	}
	if sku, ok := f.skus[id]; ok {
		return sku, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) GetCommunityOverride(ctx context.Context, communityID, skuID string) (*entity.CommunityProductOverride, error) {
	if err := f.check(ctx, "override"); err != nil {
		return nil, err
	}
	if o, ok := f.overrides[pairKey(communityID, skuID)]; ok {
		return o, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) GetCommunity(ctx context.Context, id string) (*entity.Community, error) {
	if err := f.check(ctx, "community"); err != nil {
		return nil, err
	}
	if c, ok := f.communities[id]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) GetClientPriceBookAssignments(ctx context.Context, clientID string) ([]entity.ClientPriceBookAssignment, error) {
	if err := f.check(ctx, "assignments"); err != nil {
		return nil, err
	}
	return f.assignments[clientID], nil
}

func (f *fakeStore) GetBusinessUnit(ctx context.Context, id string) (*entity.BusinessUnit, error) {
	if err := f.check(ctx, "business_unit"); err != nil {
		return nil, err
	}
	if bu, ok := f.businessUnits[id]; ok {
		return bu, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) GetRateSheet(ctx context.Context, id string) (*entity.RateSheet, error) {
	if err := f.check(ctx, "rate_sheet"); err != nil {
		return nil, err
	}
	if s, ok := f.sheets[id]; ok {
		return s, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) GetRateSheetItem(ctx context.Context, sheetID, skuID string) (*entity.RateSheetItem, error) {
	if err := f.check(ctx, "rate_sheet_item"); err != nil {
		return nil, err
	}
	if item, ok := f.items[pairKey(sheetID, skuID)]; ok {
		return item, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) addSKU(id string, sellPrice float64) {
	f.skus[id] = &entity.SKU{ID: id, Code: "C-" + id, Name: id, Unit: "ft", SellPrice: sellPrice, Active: true}
}

func (f *fakeStore) addSheet(id, name, pricingType string) *entity.RateSheet {
	sheet := &entity.RateSheet{ID: id, Name: name, PricingType: pricingType, Active: true}
	f.sheets[id] = sheet
	return sheet
}

func (f *fakeStore) addBook(id string, skuIDs ...string) *entity.PriceBook {
	book := &entity.PriceBook{ID: id, Name: id, Active: true}
	for _, skuID := range skuIDs {
		book.Items = append(book.Items, entity.PriceBookItem{PriceBookID: id, SKUID: skuID})
	}
	return book
}

func newTestService(store PricingStore) *PricingService {
	return NewPricingService(store, nil, nil, time.Second)
}

func TestResolve_CommunityOverrideWins(t *testing.T) {
	store := newFakeStore()
	store.addSKU("S3", 10)
	store.overrides[pairKey("C1", "S3")] = &entity.CommunityProductOverride{
		CommunityID: "C1", SKUID: "S3", Price: 99, Reason: "custom install",
	}
	// A client rate sheet that would price S3 differently; the override
	// must win without it ever being consulted.
	sheet := store.addSheet("RS-B", "Builder Sheet", entity.PricingTypeCustom)
	store.items[pairKey(sheet.ID, "S3")] = &entity.RateSheetItem{
		RateSheetID: sheet.ID, SKUID: "S3", PricingMethod: entity.MethodFixed, FixedPrice: fp(50),
	}
	store.assignments["CL1"] = []entity.ClientPriceBookAssignment{
		{ClientID: "CL1", RateSheetID: &sheet.ID, PriceBook: store.addBook("PB1", "S3")},
	}

	resolved, err := newTestService(store).Resolve(context.Background(), ResolveRequest{
		SKUID: "S3", ClientID: "CL1", CommunityID: "C1",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	nearlyEqual(t, "unitPrice", resolved.UnitPrice, 99)
	if resolved.PricingMethod != entity.MethodFixed {
		t.Fatalf("method = %q, want fixed", resolved.PricingMethod)
	}
	if resolved.PricingSource != "Community Override: custom install" {
		t.Fatalf("source = %q", resolved.PricingSource)
	}
}

func TestResolve_CommunityOverrideWithoutReason(t *testing.T) {
	store := newFakeStore()
	store.addSKU("S1", 10)
	store.overrides[pairKey("C1", "S1")] = &entity.CommunityProductOverride{
		CommunityID: "C1", SKUID: "S1", Price: 12,
	}

	resolved, err := newTestService(store).Resolve(context.Background(), ResolveRequest{
		SKUID: "S1", CommunityID: "C1",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.PricingSource != "Community Override" {
		t.Fatalf("source = %q", resolved.PricingSource)
	}
}

func TestResolve_CatalogDefaultWhenNoContext(t *testing.T) {
	store := newFakeStore()
	store.addSKU("S1", 10)

	resolved, err := newTestService(store).Resolve(context.Background(), ResolveRequest{SKUID: "S1"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	nearlyEqual(t, "unitPrice", resolved.UnitPrice, 10)
	if resolved.PricingMethod != entity.MethodCatalog {
		t.Fatalf("method = %q, want catalog", resolved.PricingMethod)
	}
	if resolved.PricingSource != "Catalog Default" {
		t.Fatalf("source = %q", resolved.PricingSource)
	}
	if resolved.RateSheetID != nil {
		t.Fatalf("unexpected rate sheet id %v", *resolved.RateSheetID)
	}
}

func TestResolve_NonFormulaSheetWithoutItemFallsThrough(t *testing.T) {
	store := newFakeStore()
	store.addSKU("S1", 10)
	sheet := store.addSheet("RS-A", "Community Sheet", entity.PricingTypeCustom)
	store.communities["C1"] = &entity.Community{ID: "C1", Name: "Oak Ridge", RateSheetOverrideID: &sheet.ID}

	resolved, err := newTestService(store).Resolve(context.Background(), ResolveRequest{
		SKUID: "S1", CommunityID: "C1",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	nearlyEqual(t, "unitPrice", resolved.UnitPrice, 10)
	if resolved.PricingSource != "Catalog Default" {
		t.Fatalf("source = %q, want Catalog Default", resolved.PricingSource)
	}
}

func TestResolve_ClientRateSheetMargin(t *testing.T) {
	store := newFakeStore()
	store.addSKU("S2", 20)
	sheet := store.addSheet("RS-B", "Builder 40", entity.PricingTypeCustom)
	store.items[pairKey(sheet.ID, "S2")] = &entity.RateSheetItem{
		RateSheetID: sheet.ID, SKUID: "S2",
		PricingMethod: entity.MethodMargin, TargetMarginPct: fp(40),
	}
	store.assignments["CL1"] = []entity.ClientPriceBookAssignment{
		{ClientID: "CL1", RateSheetID: &sheet.ID, PriceBook: store.addBook("PB1", "S2")},
	}

	resolved, err := newTestService(store).Resolve(context.Background(), ResolveRequest{
		SKUID: "S2", ClientID: "CL1",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// 20 / 0.60 = 33.333..., rounded half away from zero to cents.
	nearlyEqual(t, "unitPrice", resolved.UnitPrice, 33.33)
	if resolved.PricingMethod != entity.MethodMargin {
		t.Fatalf("method = %q, want margin", resolved.PricingMethod)
	}
	if resolved.PricingSource != "Client Rate Sheet: Builder 40" {
		t.Fatalf("source = %q", resolved.PricingSource)
	}
	if resolved.RateSheetID == nil || *resolved.RateSheetID != "RS-B" {
		t.Fatalf("rate sheet id = %v, want RS-B", resolved.RateSheetID)
	}
}

func TestResolve_FirstMatchingAssignmentOnly(t *testing.T) {
	store := newFakeStore()
	store.addSKU("S1", 10)

	// First assignment's book does not contain S1; it must be skipped.
	otherSheet := store.addSheet("RS-X", "Other", entity.PricingTypeCustom)
	store.items[pairKey(otherSheet.ID, "S1")] = &entity.RateSheetItem{
		RateSheetID: otherSheet.ID, SKUID: "S1", PricingMethod: entity.MethodFixed, FixedPrice: fp(1),
	}

	// Second assignment matches; its custom sheet has no item for S1, so
	// the whole tier yields nothing even though a third assignment would
	// have priced it.
	emptySheet := store.addSheet("RS-E", "Empty", entity.PricingTypeCustom)
	thirdSheet := store.addSheet("RS-T", "Third", entity.PricingTypeCustom)
	store.items[pairKey(thirdSheet.ID, "S1")] = &entity.RateSheetItem{
		RateSheetID: thirdSheet.ID, SKUID: "S1", PricingMethod: entity.MethodFixed, FixedPrice: fp(2),
	}

	store.assignments["CL1"] = []entity.ClientPriceBookAssignment{
		{ClientID: "CL1", RateSheetID: &otherSheet.ID, PriceBook: store.addBook("PB-X", "S9")},
		{ClientID: "CL1", RateSheetID: &emptySheet.ID, PriceBook: store.addBook("PB-E", "S1")},
		{ClientID: "CL1", RateSheetID: &thirdSheet.ID, PriceBook: store.addBook("PB-T", "S1")},
	}

	resolved, err := newTestService(store).Resolve(context.Background(), ResolveRequest{
		SKUID: "S1", ClientID: "CL1",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.PricingSource != "Catalog Default" {
		t.Fatalf("source = %q, want Catalog Default", resolved.PricingSource)
	}
}

func TestResolve_BusinessUnitDefault(t *testing.T) {
	store := newFakeStore()
	store.addSKU("S1", 10)
	sheet := store.addSheet("RS-BU", "Residential Default", entity.PricingTypeCustom)
	store.items[pairKey(sheet.ID, "S1")] = &entity.RateSheetItem{
		RateSheetID: sheet.ID, SKUID: "S1",
		PricingMethod: entity.MethodCostPlus, CostPlusAmount: fp(5),
	}
	store.businessUnits["BU1"] = &entity.BusinessUnit{ID: "BU1", Name: "Residential", DefaultRateSheetID: &sheet.ID}

	resolved, err := newTestService(store).Resolve(context.Background(), ResolveRequest{
		SKUID: "S1", BusinessUnitID: "BU1",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	nearlyEqual(t, "unitPrice", resolved.UnitPrice, 15)
	if resolved.PricingSource != "BU Default: Residential Default" {
		t.Fatalf("source = %q", resolved.PricingSource)
	}
}

func TestResolve_FormulaSheetDefaults(t *testing.T) {
	store := newFakeStore()
	store.addSKU("S1", 100)

	t.Run("target margin", func(t *testing.T) {
		sheet := store.addSheet("RS-F1", "Formula Margin", entity.PricingTypeFormula)
		sheet.DefaultTargetMarginPct = fp(20)
		store.communities["C1"] = &entity.Community{ID: "C1", RateSheetOverrideID: &sheet.ID}

		resolved, err := newTestService(store).Resolve(context.Background(), ResolveRequest{
			SKUID: "S1", CommunityID: "C1",
		})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		nearlyEqual(t, "unitPrice", resolved.UnitPrice, 125)
		if resolved.PricingMethod != entity.MethodMargin {
			t.Fatalf("method = %q, want margin", resolved.PricingMethod)
		}
	})

	t.Run("markup average", func(t *testing.T) {
		sheet := store.addSheet("RS-F2", "Formula Markup", entity.PricingTypeFormula)
		sheet.DefaultLaborMarkupPct = 20
		sheet.DefaultMaterialMarkupPct = 40
		store.communities["C2"] = &entity.Community{ID: "C2", RateSheetOverrideID: &sheet.ID}

		resolved, err := newTestService(store).Resolve(context.Background(), ResolveRequest{
			SKUID: "S1", CommunityID: "C2",
		})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		nearlyEqual(t, "unitPrice", resolved.UnitPrice, 130)
		if resolved.PricingMethod != entity.MethodMarkup {
			t.Fatalf("method = %q, want markup", resolved.PricingMethod)
		}
	})
}

func TestResolve_OutOfEffectSheetYieldsNothing(t *testing.T) {
	store := newFakeStore()
	store.addSKU("S1", 10)

	inactive := store.addSheet("RS-I", "Retired", entity.PricingTypeCustom)
	inactive.Active = false
	store.items[pairKey(inactive.ID, "S1")] = &entity.RateSheetItem{
		RateSheetID: inactive.ID, SKUID: "S1", PricingMethod: entity.MethodFixed, FixedPrice: fp(1),
	}
	store.communities["C1"] = &entity.Community{ID: "C1", RateSheetOverrideID: &inactive.ID}

	expired := store.addSheet("RS-EX", "Expired", entity.PricingTypeCustom)
	past := time.Now().Add(-24 * time.Hour)
	expired.ExpiryDate = &past
	store.items[pairKey(expired.ID, "S1")] = &entity.RateSheetItem{
		RateSheetID: expired.ID, SKUID: "S1", PricingMethod: entity.MethodFixed, FixedPrice: fp(2),
	}
	store.businessUnits["BU1"] = &entity.BusinessUnit{ID: "BU1", DefaultRateSheetID: &expired.ID}

	resolved, err := newTestService(store).Resolve(context.Background(), ResolveRequest{
		SKUID: "S1", CommunityID: "C1", BusinessUnitID: "BU1",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.PricingSource != "Catalog Default" {
		t.Fatalf("source = %q, want Catalog Default", resolved.PricingSource)
	}
}

func TestResolve_SKUNotFound(t *testing.T) {
	store := newFakeStore()

	_, err := newTestService(store).Resolve(context.Background(), ResolveRequest{SKUID: "missing"})
	if !errors.Is(err, ErrSKUNotFound) {
		t.Fatalf("err = %v, want ErrSKUNotFound", err)
	}

	store.addSKU("S1", 10)
	store.skus["S1"].Active = false
	_, err = newTestService(store).Resolve(context.Background(), ResolveRequest{SKUID: "S1"})
	if !errors.Is(err, ErrSKUNotFound) {
		t.Fatalf("err = %v, want ErrSKUNotFound for inactive sku", err)
	}
}

func TestResolve_InvalidMarginPropagates(t *testing.T) {
	store := newFakeStore()
	store.addSKU("S1", 10)
	sheet := store.addSheet("RS-M", "Broken", entity.PricingTypeCustom)
	store.items[pairKey(sheet.ID, "S1")] = &entity.RateSheetItem{
		RateSheetID: sheet.ID, SKUID: "S1",
		PricingMethod: entity.MethodMargin, TargetMarginPct: fp(100),
	}
	store.communities["C1"] = &entity.Community{ID: "C1", RateSheetOverrideID: &sheet.ID}

	_, err := newTestService(store).Resolve(context.Background(), ResolveRequest{
		SKUID: "S1", CommunityID: "C1",
	})
	if !errors.Is(err, ErrInvalidMargin) {
		t.Fatalf("err = %v, want ErrInvalidMargin", err)
	}
}

func TestResolve_StoreFailureIsUpstreamUnavailable(t *testing.T) {
	store := newFakeStore()
	store.addSKU("S1", 10)
	store.failOps["override"] = fmt.Errorf("connection refused")

	_, err := newTestService(store).Resolve(context.Background(), ResolveRequest{
		SKUID: "S1", CommunityID: "C1",
	})
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

// slowStore stalls override reads until the per-read deadline fires.
type slowStore struct {
	*fakeStore
}

func (s *slowStore) GetCommunityOverride(ctx context.Context, communityID, skuID string) (*entity.CommunityProductOverride, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestResolve_ReadTimeoutIsUpstreamUnavailable(t *testing.T) {
	store := newFakeStore()
	store.addSKU("S1", 10)
	svc := NewPricingService(&slowStore{fakeStore: store}, nil, nil, 50*time.Millisecond)

	start := time.Now()
	resolved, err := svc.Resolve(context.Background(), ResolveRequest{
		SKUID: "S1", CommunityID: "C1",
	})
	if resolved != nil {
		t.Fatalf("expected no result from a stalled store, got %+v", resolved)
	}
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("err = %v, want ErrUpstreamUnavailable", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("resolution took %v, want roughly the 50ms read budget", elapsed)
	}
}

func TestResolve_CancelledContextAborts(t *testing.T) {
	store := newFakeStore()
	store.addSKU("S1", 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resolved, err := newTestService(store).Resolve(ctx, ResolveRequest{SKUID: "S1"})
	if resolved != nil {
		t.Fatalf("expected no result from cancelled resolution, got %+v", resolved)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestResolve_RequiresSKUID(t *testing.T) {
	if _, err := newTestService(newFakeStore()).Resolve(context.Background(), ResolveRequest{}); err == nil {
		t.Fatal("expected error for empty sku id")
	}
}
