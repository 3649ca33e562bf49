package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

// stubStore serves exactly one SKU, one override, and one broken rate sheet,
// enough to drive every status the resolve endpoint can answer.
type stubStore struct {
	storeDown bool
}

func (s *stubStore) GetSKU(ctx context.Context, id string) (*entity.SKU, error) {
	if s.storeDown {
		return nil, fmt.Errorf("connection refused")
	}
	if id == "S1" {
		return &entity.SKU{ID: "S1", Code: "FEN-001", Name: "Cedar Picket", Unit: "ft", SellPrice: 10, Active: true}, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubStore) GetCommunityOverride(ctx context.Context, communityID, skuID string) (*entity.CommunityProductOverride, error) {
	if communityID == "C1" && skuID == "S1" {
		return &entity.CommunityProductOverride{CommunityID: "C1", SKUID: "S1", Price: 99, Reason: "custom install"}, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubStore) GetCommunity(ctx context.Context, id string) (*entity.Community, error) {
	if id == "C-BAD" {
		sheetID := "RS-BAD"
		return &entity.Community{ID: id, RateSheetOverrideID: &sheetID}, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubStore) GetClientPriceBookAssignments(ctx context.Context, clientID string) ([]entity.ClientPriceBookAssignment, error) {
	return nil, nil
}

func (s *stubStore) GetBusinessUnit(ctx context.Context, id string) (*entity.BusinessUnit, error) {
	return nil, repository.ErrNotFound
}

func (s *stubStore) GetRateSheet(ctx context.Context, id string) (*entity.RateSheet, error) {
	if id == "RS-BAD" {
		return &entity.RateSheet{ID: id, Name: "Broken", PricingType: entity.PricingTypeCustom, Active: true}, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubStore) GetRateSheetItem(ctx context.Context, sheetID, skuID string) (*entity.RateSheetItem, error) {
	if sheetID == "RS-BAD" {
		pct := 100.0
		return &entity.RateSheetItem{
			RateSheetID: sheetID, SKUID: skuID,
			PricingMethod: entity.MethodMargin, TargetMarginPct: &pct,
		}, nil
	}
	return nil, repository.ErrNotFound
}

func newResolveRouter(store service.PricingStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewPricingService(store, nil, nil, time.Second)
	r := gin.New()
	r.GET("/api/v1/pricing/resolve", NewPricingHandler(svc).ResolvePrice)
	return r
}

func doResolve(t *testing.T, r *gin.Engine, query string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/resolve"+query, nil)
	r.ServeHTTP(w, req)

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, w.Body.String())
	}
	return w, resp
}

func TestResolvePrice_Success(t *testing.T) {
	r := newResolveRouter(&stubStore{})

	w, resp := doResolve(t, r, "?sku_id=S1&community_id=C1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp.Code != 0 {
		t.Fatalf("envelope code = %d, want 0", resp.Code)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data is %T, want object", resp.Data)
	}
	if got := data["unit_price"].(float64); got != 99 {
		t.Fatalf("unit_price = %v, want 99", got)
	}
	if got := data["pricing_source"].(string); got != "Community Override: custom install" {
		t.Fatalf("pricing_source = %q", got)
	}
}

func TestResolvePrice_MissingSKUID(t *testing.T) {
	r := newResolveRouter(&stubStore{})

	w, resp := doResolve(t, r, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp.Code != 40000 {
		t.Fatalf("envelope code = %d, want 40000", resp.Code)
	}
}

func TestResolvePrice_UnknownSKU(t *testing.T) {
	r := newResolveRouter(&stubStore{})

	w, resp := doResolve(t, r, "?sku_id=missing")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if resp.Code != 40400 {
		t.Fatalf("envelope code = %d, want 40400", resp.Code)
	}
}

func TestResolvePrice_InvalidMargin(t *testing.T) {
	r := newResolveRouter(&stubStore{})

	w, resp := doResolve(t, r, "?sku_id=S1&community_id=C-BAD")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if resp.Code != 42200 {
		t.Fatalf("envelope code = %d, want 42200", resp.Code)
	}
}

func TestResolvePrice_StoreDown(t *testing.T) {
	r := newResolveRouter(&stubStore{storeDown: true})

	w, resp := doResolve(t, r, "?sku_id=S1")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if resp.Code != 50300 {
		t.Fatalf("envelope code = %d, want 50300", resp.Code)
	}
}
