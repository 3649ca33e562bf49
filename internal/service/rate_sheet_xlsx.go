package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const itemSheetName = "Rate Sheet Items"

var itemSheetHeader = []string{
	"SKU Code", "SKU Name", "Pricing Method",
	"Fixed Price", "Fixed Material Price", "Fixed Labor Price",
	"Labor Markup %", "Material Markup %", "Target Margin %", "Cost Plus Amount",
}

// ExportItems renders a sheet's items as an XLSX workbook. The layout
// matches what ImportItems accepts, so an exported file round-trips.
func (s *RateSheetService) ExportItems(ctx context.Context, sheetID string) (*excelize.File, error) {
	items, err := s.ListItems(ctx, sheetID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", itemSheetName)

	for col, title := range itemSheetHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(itemSheetName, cell, title)
	}

	for i, item := range items {
		row := i + 2
		code := item.SKUID
		name := ""
		if item.SKU != nil {
			code = item.SKU.Code
			name = item.SKU.Name
		}
		values := []interface{}{
			code, name, item.PricingMethod,
			cellFloat(item.FixedPrice), cellFloat(item.FixedMaterialPrice), cellFloat(item.FixedLaborPrice),
			cellFloat(item.LaborMarkupPct), cellFloat(item.MaterialMarkupPct),
			cellFloat(item.TargetMarginPct), cellFloat(item.CostPlusAmount),
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(itemSheetName, cell, v)
		}
	}

	return f, nil
}

// ImportResult reports what an XLSX import did, row by row.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportItems reads rate sheet items from an XLSX upload and upserts them.
// Bad rows are reported and skipped; they never abort the rest of the file.
func (s *RateSheetService) ImportItems(ctx context.Context, sheetID string, r io.Reader) (*ImportResult, error) {
	if _, err := s.repo.FindByID(ctx, sheetID); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse xlsx: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows in %q", sheetName)
	}

	result := &ImportResult{}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if len(row) == 0 || strings.TrimSpace(cellAt(row, 0)) == "" {
			continue
		}
		if err := s.importRow(ctx, sheetID, row); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Imported++
	}
	return result, nil
}

// parseItemRow turns one spreadsheet row into an upsert input plus the SKU
// code it references. Columns 3..9 map onto the method-specific fields;
// blank means unset.
func parseItemRow(row []string) (string, *UpsertItemInput, error) {
	code := strings.TrimSpace(cellAt(row, 0))
	method := strings.TrimSpace(strings.ToLower(cellAt(row, 2)))

	if !validPricingMethod(method) {
		return "", nil, fmt.Errorf("invalid pricing method %q", method)
	}

	input := &UpsertItemInput{PricingMethod: method}
	fields := []**float64{
		&input.FixedPrice, &input.FixedMaterialPrice, &input.FixedLaborPrice,
		&input.LaborMarkupPct, &input.MaterialMarkupPct,
		&input.TargetMarginPct, &input.CostPlusAmount,
	}
	for j, field := range fields {
		raw := strings.TrimSpace(cellAt(row, j+3))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", nil, fmt.Errorf("column %q: %v", itemSheetHeader[j+3], err)
		}
		*field = &v
	}

	if err := validateItemInput(input); err != nil {
		return "", nil, err
	}
	return code, input, nil
}

func (s *RateSheetService) importRow(ctx context.Context, sheetID string, row []string) error {
	code, input, err := parseItemRow(row)
	if err != nil {
		return err
	}

	sku, err := s.catalog.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("unknown sku code %q", code)
		}
		return err
	}
	input.SKUID = sku.ID

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
	return s.repo.UpsertItem(ctx, item)
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func cellFloat(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
