package document

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"gstbill/internal/domain"
)

// Cloner produces invoice documents by cloning a template workbook and
// overwriting the data cells defined by its Layout.
type Cloner struct {
	layout Layout
}

// NewCloner creates a Cloner writing at the given layout's coordinates.
func NewCloner(layout Layout) *Cloner {
	return &Cloner{layout: layout}
}

// Layout returns the coordinate contract the cloner writes and reads.
func (c *Cloner) Layout() Layout {
	return c.layout
}

// Render clones the template into destPath and writes the invoice data into
// it. The destination only appears once fully written; rendering the same
// data twice produces the same document.
func (c *Cloner) Render(templatePath, destPath string, inv *domain.InvoiceData) error {
	src, err := excelize.OpenFile(templatePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("template %s: %w", templatePath, domain.ErrTemplateNotFound)
		}
		return fmt.Errorf("opening template %s: %w", templatePath, err)
	}
	defer src.Close()

	dst := excelize.NewFile()
	defer dst.Close()

	if err := cloneWorkbook(src, dst); err != nil {
		return fmt.Errorf("cloning template: %w", err)
	}

	sheet := c.layout.Sheet
	if sheet == "" {
		sheet = dst.GetSheetList()[0]
	}
	if err := c.writeInvoice(dst, sheet, inv); err != nil {
		return err
	}

	return saveAtomically(dst, destPath)
}

// writeInvoice overwrites the data cells in the cloned workbook.
func (c *Cloner) writeInvoice(f *excelize.File, sheet string, inv *domain.InvoiceData) error {
	l := c.layout

	setString(f, sheet, l.InvoiceNumberCell, inv.NumberDisplay())
	setString(f, sheet, l.DateCell, inv.DateDisplay())

	// Buyer block: fill the fixed slots, blank the rest.
	for row := l.BuyerStartRow; row <= l.BuyerEndRow; row++ {
		idx := row - l.BuyerStartRow
		line := ""
		if idx < len(inv.BuyerDetails) {
			line = inv.BuyerDetails[idx]
		}
		setString(f, sheet, l.cell(l.BuyerCol, row), line)
	}

	setString(f, sheet, l.TransportCell, inv.TransportMode)

	// Item table: fixed rows, unused ones blanked.
	for row := l.ItemStartRow; row <= l.ItemEndRow; row++ {
		idx := row - l.ItemStartRow
		if idx >= len(inv.Items) {
			setString(f, sheet, l.cell(l.ItemDescCol, row), "")
			setString(f, sheet, l.cell(l.ItemQtyCol, row), "")
			setString(f, sheet, l.cell(l.ItemRateCol, row), "")
			setString(f, sheet, l.cell(l.ItemAmountCol, row), "")
			continue
		}
		item := inv.Items[idx]
		setString(f, sheet, l.cell(l.ItemDescCol, row), fmt.Sprintf("%d. %s", idx+1, item.DisplayDescription()))
		setMoney(f, sheet, l.cell(l.ItemQtyCol, row), decimal.NewFromFloat(item.Quantity))
		setMoney(f, sheet, l.cell(l.ItemRateCol, row), decimal.NewFromFloat(item.Rate))
		setMoney(f, sheet, l.cell(l.ItemAmountCol, row), inv.Breakdown.ItemAmounts[idx])
	}

	b := inv.Breakdown
	setMoney(f, sheet, l.SubtotalCell, b.Subtotal)

	c.writeTaxRow(f, sheet, l.IGSTRow, "IGST", b.IGST, b.Subtotal)
	c.writeTaxRow(f, sheet, l.CGSTRow, "CGST", b.CGST, b.Subtotal)
	c.writeTaxRow(f, sheet, l.SGSTRow, "SGST", b.SGST, b.Subtotal)

	setMoney(f, sheet, l.RoundOffCell, b.RoundOff)
	setMoney(f, sheet, l.TotalCell, b.RoundedTotal)
	setString(f, sheet, l.WordsCell, "AMOUNT : "+inv.AmountInWords)
	return nil
}

// writeTaxRow writes one label/percent/amount triple. The inactive election
// is zeroed, never left with stale template content.
func (c *Cloner) writeTaxRow(f *excelize.File, sheet string, row int, label string, amount, subtotal decimal.Decimal) {
	l := c.layout
	setString(f, sheet, l.cell(l.TaxLabelCol, row), label)

	percent := decimal.Zero
	if amount.IsPositive() && subtotal.IsPositive() {
		percent = amount.Div(subtotal).Mul(decimal.NewFromInt(100))
	}
	setString(f, sheet, l.cell(l.TaxPercentCol, row), percent.StringFixed(2)+"%")
	setMoney(f, sheet, l.cell(l.TaxAmountCol, row), amount)
}

func setString(f *excelize.File, sheet, cell, value string) {
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		log.Printf("document.Render: could not set %s!%s: %v", sheet, cell, err)
	}
}

// setMoney writes a numeric cell and pins its display to two decimals while
// keeping the template's other formatting (borders, font).
func setMoney(f *excelize.File, sheet, cell string, value decimal.Decimal) {
	if err := f.SetCellValue(sheet, cell, value.InexactFloat64()); err != nil {
		log.Printf("document.Render: could not set %s!%s: %v", sheet, cell, err)
		return
	}
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		style = &excelize.Style{}
	}
	style.NumFmt = 2 // "0.00"
	newID, err := f.NewStyle(style)
	if err != nil {
		return
	}
	_ = f.SetCellStyle(sheet, cell, cell, newID)
}

// cloneWorkbook copies every sheet of src into dst: values, styles, merged
// ranges, column widths and visibility, row heights and visibility, page
// setup and margins.
func cloneWorkbook(src, dst *excelize.File) error {
	for i, sheet := range src.GetSheetList() {
		if i == 0 {
			if err := dst.SetSheetName(dst.GetSheetList()[0], sheet); err != nil {
				return err
			}
		} else {
			if _, err := dst.NewSheet(sheet); err != nil {
				return err
			}
		}
		if err := cloneSheet(src, dst, sheet); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func cloneSheet(src, dst *excelize.File, sheet string) error {
	maxCol, maxRow, err := sheetExtent(src, sheet)
	if err != nil {
		return err
	}

	// Style IDs are file-local; resolved styles are re-registered in dst once.
	styleCache := make(map[int]int)
	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= maxCol; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			if err := cloneCellValue(src, dst, sheet, cell); err != nil {
				return err
			}
			if err := cloneCellStyle(src, dst, sheet, cell, styleCache); err != nil {
				return err
			}
		}
	}

	merges, err := src.GetMergeCells(sheet)
	if err != nil {
		return err
	}
	for _, m := range merges {
		if err := dst.MergeCell(sheet, m.GetStartAxis(), m.GetEndAxis()); err != nil {
			return err
		}
	}

	for col := 1; col <= maxCol; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if w, err := src.GetColWidth(sheet, name); err == nil {
			_ = dst.SetColWidth(sheet, name, name, w)
		}
		if visible, err := src.GetColVisible(sheet, name); err == nil && !visible {
			_ = dst.SetColVisible(sheet, name, false)
		}
	}
	for row := 1; row <= maxRow; row++ {
		if h, err := src.GetRowHeight(sheet, row); err == nil {
			_ = dst.SetRowHeight(sheet, row, h)
		}
		if visible, err := src.GetRowVisible(sheet, row); err == nil && !visible {
			_ = dst.SetRowVisible(sheet, row, false)
		}
	}

	if layout, err := src.GetPageLayout(sheet); err == nil {
		_ = dst.SetPageLayout(sheet, &layout)
	}
	if margins, err := src.GetPageMargins(sheet); err == nil {
		_ = dst.SetPageMargins(sheet, &margins)
	}
	return nil
}

// cloneCellValue copies one cell preserving its type: formulas stay formulas
// and numeric cells stay numeric instead of being flattened to strings.
func cloneCellValue(src, dst *excelize.File, sheet, cell string) error {
	if formula, err := src.GetCellFormula(sheet, cell); err == nil && formula != "" {
		return dst.SetCellFormula(sheet, cell, formula)
	}

	raw, err := src.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil || raw == "" {
		return nil
	}

	cellType, err := src.GetCellType(sheet, cell)
	if err != nil {
		cellType = excelize.CellTypeUnset
	}
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return dst.SetCellStr(sheet, cell, raw)
	case excelize.CellTypeBool:
		return dst.SetCellBool(sheet, cell, raw == "1" || strings.EqualFold(raw, "TRUE"))
	default:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return dst.SetCellValue(sheet, cell, n)
		}
		return dst.SetCellValue(sheet, cell, raw)
	}
}

func cloneCellStyle(src, dst *excelize.File, sheet, cell string, cache map[int]int) error {
	srcID, err := src.GetCellStyle(sheet, cell)
	if err != nil {
		return err
	}
	if srcID == 0 {
		return nil
	}
	dstID, ok := cache[srcID]
	if !ok {
		style, err := src.GetStyle(srcID)
		if err != nil || style == nil {
			return nil
		}
		dstID, err = dst.NewStyle(style)
		if err != nil {
			return err
		}
		cache[srcID] = dstID
	}
	return dst.SetCellStyle(sheet, cell, cell, dstID)
}

// sheetExtent parses the sheet dimension into column and row counts.
func sheetExtent(f *excelize.File, sheet string) (maxCol, maxRow int, err error) {
	dim, err := f.GetSheetDimension(sheet)
	if err != nil {
		return 0, 0, err
	}
	_, end, found := strings.Cut(dim, ":")
	if !found {
		end = dim
	}
	col, row, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return 0, 0, err
	}
	return col, row, nil
}

// saveAtomically writes the workbook next to destPath and renames it into
// place, so a crashed save never leaves a half-written invoice visible.
func saveAtomically(f *excelize.File, destPath string) error {
	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".invoice-*.xlsx")
	if err != nil {
		return fmt.Errorf("creating temp document: %w", err)
	}
	tmpName := tmp.Name()
	tmp.Close()

	if err := f.SaveAs(tmpName); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("saving document: %w", err)
	}
	if err := os.Rename(tmpName, destPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("moving document into place: %w", err)
	}
	return nil
}
