package gst

import (
	"fmt"

	"github.com/shopspring/decimal"

	"gstbill/internal/config"
	"gstbill/internal/domain"
)

// Calculator computes GST breakdowns from line items. It is pure: no side
// effects, deterministic for a given rate configuration.
type Calculator struct {
	igstRate decimal.Decimal
	cgstRate decimal.Decimal
	sgstRate decimal.Decimal
}

// NewCalculator creates a Calculator from the configured rates.
func NewCalculator(cfg *config.TaxConfig) *Calculator {
	return &Calculator{
		igstRate: decimal.NewFromFloat(cfg.IGSTRate),
		cgstRate: decimal.NewFromFloat(cfg.CGSTRate),
		sgstRate: decimal.NewFromFloat(cfg.SGSTRate),
	}
}

// Rates returns the configured rates as display percentages, e.g. "5.00%".
func (c *Calculator) Rates() (igst, cgst, sgst string) {
	pct := func(d decimal.Decimal) string {
		return d.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
	}
	return pct(c.igstRate), pct(c.cgstRate), pct(c.sgstRate)
}

// Compute derives the tax breakdown for the given items and tax election.
// An unknown tax type falls back to IGST. Items must be non-empty with
// non-negative quantities and rates.
func (c *Calculator) Compute(items []domain.LineItem, taxType domain.TaxType) (*domain.TaxBreakdown, error) {
	if len(items) == 0 {
		return nil, domain.NewValidationError("items", "at least one item is required")
	}

	if !taxType.Valid() {
		taxType = domain.TaxTypeIGST
	}

	amounts := make([]decimal.Decimal, 0, len(items))
	subtotal := decimal.Zero
	for i := range items {
		it := &items[i]
		if it.Quantity < 0 {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must not be negative")
		}
		if it.Rate < 0 {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].rate", i), "must not be negative")
		}
		amount := decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.Rate))
		amounts = append(amounts, amount)
		subtotal = subtotal.Add(amount)
	}

	igst := decimal.Zero
	cgst := decimal.Zero
	sgst := decimal.Zero
	switch taxType {
	case domain.TaxTypeIGST:
		igst = subtotal.Mul(c.igstRate)
	case domain.TaxTypeCGSTSGST:
		cgst = subtotal.Mul(c.cgstRate)
		sgst = subtotal.Mul(c.sgstRate)
	}

	totalBefore := subtotal.Add(igst).Add(cgst).Add(sgst)
	rounded := totalBefore.Round(0)
	roundOff := rounded.Sub(totalBefore)

	return &domain.TaxBreakdown{
		ItemAmounts:      amounts,
		Subtotal:         subtotal,
		IGST:             igst,
		CGST:             cgst,
		SGST:             sgst,
		TotalBeforeRound: totalBefore,
		RoundedTotal:     rounded,
		RoundOff:         roundOff,
		TaxType:          taxType,
	}, nil
}
