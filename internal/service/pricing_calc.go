package service

import (
	"fmt"
	"math"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
)

// Margin items with no percent set fall back to a 33% target margin.
const defaultTargetMarginPct = 33.0

// calcInput carries the method-specific fields of a rate sheet item, a
// sheet-wide default, or a community override.
type calcInput struct {
	Method             string
	FixedPrice         *float64
	FixedMaterialPrice *float64
	FixedLaborPrice    *float64
	LaborMarkupPct     *float64
	MaterialMarkupPct  *float64
	TargetMarginPct    *float64
	CostPlusAmount     *float64
}

type calcResult struct {
	UnitPrice     float64
	MaterialPrice *float64
	LaborPrice    *float64
}

// calculatePrice applies one pricing method to the catalog base price.
// Percent fields are whole-number percentages (40 means 40%). The markup
// method averages the material and labor percents against the single
// catalog base; that matches the pricing data this engine inherits, even
// though it never splits the base into material and labor components.
func calculatePrice(in calcInput, basePrice float64) (calcResult, error) {
	var out calcResult

	switch in.Method {
	case entity.MethodFixed:
		out.UnitPrice = deref(in.FixedPrice)
		out.MaterialPrice = in.FixedMaterialPrice
		out.LaborPrice = in.FixedLaborPrice

	case entity.MethodMarkup:
		avg := (deref(in.MaterialMarkupPct)/100 + deref(in.LaborMarkupPct)/100) / 2
		out.UnitPrice = basePrice * (1 + avg)

	case entity.MethodMargin:
		pct := defaultTargetMarginPct
		if in.TargetMarginPct != nil {
			pct = *in.TargetMarginPct
		}
		if pct >= 100 {
			return calcResult{}, fmt.Errorf("%w: target margin %.2f%%", ErrInvalidMargin, pct)
		}
		out.UnitPrice = basePrice / (1 - pct/100)

	case entity.MethodCostPlus:
		out.UnitPrice = basePrice + deref(in.CostPlusAmount)

	default:
		return calcResult{}, fmt.Errorf("unknown pricing method %q", in.Method)
	}

	if out.UnitPrice < 0 {
		return calcResult{}, fmt.Errorf("%w: unit price %.4f", ErrInvalidPriceResult, out.UnitPrice)
	}
	if out.MaterialPrice != nil && *out.MaterialPrice < 0 {
		return calcResult{}, fmt.Errorf("%w: material price %.4f", ErrInvalidPriceResult, *out.MaterialPrice)
	}
	if out.LaborPrice != nil && *out.LaborPrice < 0 {
		return calcResult{}, fmt.Errorf("%w: labor price %.4f", ErrInvalidPriceResult, *out.LaborPrice)
	}

	return out, nil
}

// roundCents rounds half away from zero to two decimals. Applied once, when
// the resolved price is assembled.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
