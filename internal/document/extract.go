package document

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"gstbill/internal/domain"
	"gstbill/internal/transport"
)

var (
	bagsPattern    = regexp.MustCompile(`(?i)\((\d+)\s*Bags?\)`)
	ordinalPattern = regexp.MustCompile(`^\d+\.\s*`)
)

// Extract reads a generated invoice back into structured data so it can be
// edited and regenerated. Item amounts are not read back; they are always
// recomputed from quantity and rate.
func (c *Cloner) Extract(path string) (*domain.ExtractedInvoice, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("invoice %s: %w", path, domain.ErrInvoiceNotFound)
		}
		return nil, fmt.Errorf("opening invoice %s: %w", path, err)
	}
	defer f.Close()
	return c.extractFrom(f)
}

func (c *Cloner) extractFrom(f *excelize.File) (*domain.ExtractedInvoice, error) {
	l := c.layout
	sheet := l.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("invoice workbook has no sheets: %w", domain.ErrInvoiceNotFound)
		}
		sheet = sheets[0]
	}

	ext := &domain.ExtractedInvoice{
		InvoiceNumber: parseNumberHeader(cellValue(f, sheet, l.InvoiceNumberCell)),
		TransportMode: transport.Core(cellValue(f, sheet, l.TransportCell)),
	}

	date, err := parseDateHeader(cellValue(f, sheet, l.DateCell))
	if err != nil {
		return nil, err
	}
	ext.InvoiceDate = date

	for row := l.BuyerStartRow; row <= l.BuyerEndRow; row++ {
		line := strings.TrimSpace(cellValue(f, sheet, l.cell(l.BuyerCol, row)))
		if line != "" {
			ext.BuyerDetails = append(ext.BuyerDetails, line)
		}
	}

	for row := l.ItemStartRow; row <= l.ItemEndRow; row++ {
		desc := strings.TrimSpace(cellValue(f, sheet, l.cell(l.ItemDescCol, row)))
		qtyRaw := cellValue(f, sheet, l.cell(l.ItemQtyCol, row))
		if desc == "" && strings.TrimSpace(qtyRaw) == "" {
			continue
		}

		item := domain.LineItem{
			Quantity: parseNumber(qtyRaw),
			Rate:     parseNumber(cellValue(f, sheet, l.cell(l.ItemRateCol, row))),
		}
		item.Description, item.Bags = parseDescription(desc)
		ext.Items = append(ext.Items, item)
	}

	// A non-zero CGST amount means the intra-state election was active.
	ext.TaxType = domain.TaxTypeIGST
	if parseNumber(cellValue(f, sheet, l.cell(l.TaxAmountCol, l.CGSTRow))) > 0 {
		ext.TaxType = domain.TaxTypeCGSTSGST
	}
	return ext, nil
}

// parseNumberHeader strips the "INVOICE No." prefix from the header cell.
func parseNumberHeader(raw string) string {
	v := strings.TrimSpace(raw)
	low := strings.ToLower(v)
	if strings.HasPrefix(low, "invoice no.") {
		v = strings.TrimSpace(v[len("invoice no."):])
	}
	return v
}

// parseDateHeader accepts the written "Date : dd/mm/yyyy" form and the ISO
// form, returning the ISO date string.
func parseDateHeader(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", nil
	}
	low := strings.ToLower(v)
	if strings.HasPrefix(low, "date") {
		if _, rest, found := strings.Cut(v, ":"); found {
			v = strings.TrimSpace(rest)
		}
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", domain.NewValidationError("invoice_date", fmt.Sprintf("unrecognized date %q", v))
}

// parseDescription strips the leading ordinal and pulls the bag count out of
// its parenthetical, e.g. "1. Utensils (12 Bags)" -> ("Utensils", 12).
func parseDescription(desc string) (string, int) {
	desc = ordinalPattern.ReplaceAllString(desc, "")

	bags := 0
	if m := bagsPattern.FindStringSubmatch(desc); m != nil {
		bags, _ = strconv.Atoi(m[1])
		desc = bagsPattern.ReplaceAllString(desc, "")
	}
	return strings.TrimSpace(desc), bags
}

func parseNumber(raw string) float64 {
	v := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if v == "" {
		return 0
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return n
}

func cellValue(f *excelize.File, sheet, cell string) string {
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		return ""
	}
	return v
}
