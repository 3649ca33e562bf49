package entity

import "time"

// Rate sheet pricing types. The type only matters when a sheet has no item
// for a SKU: formula sheets fall back to sheet-wide defaults, the others
// yield nothing.
const (
	PricingTypeCustom  = "custom"
	PricingTypeFormula = "formula"
	PricingTypeHybrid  = "hybrid"
)

// Pricing methods for rate sheet items and resolved prices.
const (
	MethodFixed    = "fixed"
	MethodMarkup   = "markup"
	MethodMargin   = "margin"
	MethodCostPlus = "cost_plus"
	MethodCatalog  = "catalog"
)

// RateSheet is a named pricing policy owning zero or more RateSheetItems.
type RateSheet struct {
	ID                       string     `json:"id" gorm:"primaryKey;size:36"`
	Name                     string     `json:"name" gorm:"size:128;not null"`
	PricingType              string     `json:"pricing_type" gorm:"size:16;not null;default:custom"`
	DefaultLaborMarkupPct    float64    `json:"default_labor_markup_pct" gorm:"type:decimal(6,2);not null;default:0"`
	DefaultMaterialMarkupPct float64    `json:"default_material_markup_pct" gorm:"type:decimal(6,2);not null;default:0"`
	DefaultTargetMarginPct   *float64   `json:"default_target_margin_pct,omitempty" gorm:"type:decimal(6,2)"`
	Active                   bool       `json:"active" gorm:"not null;default:true"`
	EffectiveDate            *time.Time `json:"effective_date,omitempty"`
	ExpiryDate               *time.Time `json:"expiry_date,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`

	Items []RateSheetItem `json:"items,omitempty" gorm:"foreignKey:RateSheetID"`
}

func (RateSheet) TableName() string {
	return "rate_sheets"
}

// InEffect reports whether the sheet governs pricing at t. Unset dates are
// unbounded on that side.
func (rs *RateSheet) InEffect(t time.Time) bool {
	if !rs.Active {
		return false
	}
	if rs.EffectiveDate != nil && t.Before(*rs.EffectiveDate) {
		return false
	}
	if rs.ExpiryDate != nil && t.After(*rs.ExpiryDate) {
		return false
	}
	return true
}

// RateSheetItem overrides pricing for one SKU within one rate sheet.
// At most one item per (rate_sheet, sku) pair; the unique index enforces it.
type RateSheetItem struct {
	ID                 string    `json:"id" gorm:"primaryKey;size:36"`
	RateSheetID        string    `json:"rate_sheet_id" gorm:"size:36;not null;uniqueIndex:idx_rate_sheet_sku"`
	SKUID              string    `json:"sku_id" gorm:"size:36;not null;uniqueIndex:idx_rate_sheet_sku"`
	PricingMethod      string    `json:"pricing_method" gorm:"size:16;not null"`
	FixedPrice         *float64  `json:"fixed_price,omitempty" gorm:"type:decimal(12,2)"`
	FixedMaterialPrice *float64  `json:"fixed_material_price,omitempty" gorm:"type:decimal(12,2)"`
	FixedLaborPrice    *float64  `json:"fixed_labor_price,omitempty" gorm:"type:decimal(12,2)"`
	LaborMarkupPct     *float64  `json:"labor_markup_pct,omitempty" gorm:"type:decimal(6,2)"`
	MaterialMarkupPct  *float64  `json:"material_markup_pct,omitempty" gorm:"type:decimal(6,2)"`
	TargetMarginPct    *float64  `json:"target_margin_pct,omitempty" gorm:"type:decimal(6,2)"`
	CostPlusAmount     *float64  `json:"cost_plus_amount,omitempty" gorm:"type:decimal(12,2)"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	RateSheet *RateSheet `json:"rate_sheet,omitempty" gorm:"foreignKey:RateSheetID"`
	SKU       *SKU       `json:"sku,omitempty" gorm:"foreignKey:SKUID"`
}

func (RateSheetItem) TableName() string {
	return "rate_sheet_items"
}
