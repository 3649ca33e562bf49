package entity

// ResolvedPrice is the output of a price resolution. It is recomputed on
// every request and never persisted.
type ResolvedPrice struct {
	SKUID         string   `json:"sku_id"`
	UnitPrice     float64  `json:"unit_price"`
	MaterialPrice *float64 `json:"material_price,omitempty"`
	LaborPrice    *float64 `json:"labor_price,omitempty"`
	Unit          string   `json:"unit"`
	PricingMethod string   `json:"pricing_method"`
	PricingSource string   `json:"pricing_source"`
	RateSheetID   *string  `json:"rate_sheet_id,omitempty"`
	RateSheetName string   `json:"rate_sheet_name,omitempty"`
}
