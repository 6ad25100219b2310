package document

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gstbill/internal/domain"
)

// writeTemplate builds a minimal invoice template workbook for tests.
func writeTemplate(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
	require.NoError(t, f.SetCellValue(sheet, "A1", "TAX INVOICE"))
	require.NoError(t, f.SetCellValue(sheet, "A17", "Description of Goods"))
	require.NoError(t, f.SetCellValue(sheet, "F17", "Qty"))
	require.NoError(t, f.SetCellValue(sheet, "G17", "Rate"))
	require.NoError(t, f.SetCellValue(sheet, "I17", "Amount"))
	require.NoError(t, f.SetCellValue(sheet, "A29", "Sub Total"))
	require.NoError(t, f.MergeCell(sheet, "A1", "I1"))
	require.NoError(t, f.SetColWidth(sheet, "A", "A", 32))

	styleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "A1", "A1", styleID))

	path := filepath.Join(dir, "bill_template.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func sampleInvoice() *domain.InvoiceData {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return &domain.InvoiceData{
		InvoiceNumber: "004/2025-26",
		InvoiceDate:   time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		BuyerDetails:  []string{"Acme Traders", "12 Market Road", "Mumbai"},
		TransportMode: "Mode of Transport: Road",
		Items: []domain.LineItem{
			{Description: "Utensils", Bags: 12, Quantity: 100, Rate: 10},
		},
		Breakdown: &domain.TaxBreakdown{
			ItemAmounts:      []decimal.Decimal{d("1000")},
			Subtotal:         d("1000"),
			IGST:             d("50"),
			CGST:             d("0"),
			SGST:             d("0"),
			TotalBeforeRound: d("1050"),
			RoundedTotal:     d("1050"),
			RoundOff:         d("0"),
			TaxType:          domain.TaxTypeIGST,
		},
		AmountInWords: "One Thousand And Fifty Only",
	}
}

func TestRender_MissingTemplate(t *testing.T) {
	dir := t.TempDir()
	c := NewCloner(DefaultLayout())

	err := c.Render(filepath.Join(dir, "nope.xlsx"), filepath.Join(dir, "out.xlsx"), sampleInvoice())
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestRender_WritesContractCells(t *testing.T) {
	dir := t.TempDir()
	template := writeTemplate(t, dir)
	dest := filepath.Join(dir, "Invoice_004_2025_26_Acme_Traders.xlsx")

	c := NewCloner(DefaultLayout())
	require.NoError(t, c.Render(template, dest, sampleInvoice()))

	f, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer f.Close()
	sheet := f.GetSheetList()[0]

	get := func(cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "INVOICE No. 004/2025-26", get("E2"))
	assert.Equal(t, "Date : 01/09/2025", get("H2"))
	assert.Equal(t, "Acme Traders", get("A8"))
	assert.Equal(t, "Mode of Transport: Road", get("E10"))
	assert.Equal(t, "1. Utensils (12 Bags)", get("A18"))
	assert.Equal(t, "1000.00", get("I18"))
	assert.Equal(t, "1000.00", get("I29"))

	// Active election shows its percent, the inactive rows are zeroed.
	assert.Equal(t, "IGST", get("C30"))
	assert.Equal(t, "5.00%", get("E30"))
	assert.Equal(t, "50.00", get("I30"))
	assert.Equal(t, "0.00%", get("E31"))
	assert.Equal(t, "0.00", get("I31"))
	assert.Equal(t, "0.00%", get("E32"))

	assert.Equal(t, "0.00", get("I34"))
	assert.Equal(t, "1050.00", get("I35"))
	assert.Equal(t, "AMOUNT : One Thousand And Fifty Only", get("A37"))

	// Template content outside the contract survives the clone.
	assert.Equal(t, "TAX INVOICE", get("A1"))
	assert.Equal(t, "Sub Total", get("A29"))
}

func TestRender_PreservesTemplateStructure(t *testing.T) {
	dir := t.TempDir()
	template := writeTemplate(t, dir)
	dest := filepath.Join(dir, "out.xlsx")

	c := NewCloner(DefaultLayout())
	require.NoError(t, c.Render(template, dest, sampleInvoice()))

	f, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer f.Close()
	sheet := f.GetSheetList()[0]

	merges, err := f.GetMergeCells(sheet)
	require.NoError(t, err)
	require.Len(t, merges, 1)
	assert.Equal(t, "A1", merges[0].GetStartAxis())
	assert.Equal(t, "I1", merges[0].GetEndAxis())

	w, err := f.GetColWidth(sheet, "A")
	require.NoError(t, err)
	assert.InDelta(t, 32, w, 0.01)
}

func TestRender_PreservesCellTypes(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	require.NoError(t, f.SetCellValue(sheet, "A1", "TAX INVOICE"))
	require.NoError(t, f.SetCellValue(sheet, "B3", 42.5))
	require.NoError(t, f.SetCellFormula(sheet, "C3", "SUM(1,2)"))
	template := filepath.Join(dir, "bill_template.xlsx")
	require.NoError(t, f.SaveAs(template))
	require.NoError(t, f.Close())

	dest := filepath.Join(dir, "out.xlsx")
	c := NewCloner(DefaultLayout())
	require.NoError(t, c.Render(template, dest, sampleInvoice()))

	out, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer out.Close()

	// The numeric cell stays a number, not a stringified copy.
	cellType, err := out.GetCellType(sheet, "B3")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
	assert.NotEqual(t, excelize.CellTypeInlineString, cellType)

	raw, err := out.GetCellValue(sheet, "B3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "42.5", raw)

	formula, err := out.GetCellFormula(sheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "SUM(1,2)", formula)

	v, err := out.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "TAX INVOICE", v)
}

func TestRender_NoPartialFileOnSuccess(t *testing.T) {
	dir := t.TempDir()
	template := writeTemplate(t, dir)
	dest := filepath.Join(dir, "out.xlsx")

	c := NewCloner(DefaultLayout())
	require.NoError(t, c.Render(template, dest, sampleInvoice()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".invoice-", "temp file left behind")
	}
}

func TestRenderExtract_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	template := writeTemplate(t, dir)
	dest := filepath.Join(dir, "Invoice_004_2025_26_Acme_Traders.xlsx")

	c := NewCloner(DefaultLayout())
	inv := sampleInvoice()
	require.NoError(t, c.Render(template, dest, inv))

	ext, err := c.Extract(dest)
	require.NoError(t, err)

	assert.Equal(t, "004/2025-26", ext.InvoiceNumber)
	assert.Equal(t, "2025-09-01", ext.InvoiceDate)
	assert.Equal(t, inv.BuyerDetails, ext.BuyerDetails)
	assert.Equal(t, "Road", ext.TransportMode)
	assert.Equal(t, domain.TaxTypeIGST, ext.TaxType)

	require.Len(t, ext.Items, 1)
	assert.Equal(t, "Utensils", ext.Items[0].Description)
	assert.Equal(t, 12, ext.Items[0].Bags)
	assert.InDelta(t, 100, ext.Items[0].Quantity, 0.005)
	assert.InDelta(t, 10, ext.Items[0].Rate, 0.005)
}

func TestExtract_MissingFile(t *testing.T) {
	c := NewCloner(DefaultLayout())
	_, err := c.Extract(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestList_NewestFirstSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	template := writeTemplate(t, dir)
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	c := NewCloner(DefaultLayout())

	first := sampleInvoice()
	require.NoError(t, c.Render(template, filepath.Join(outDir, Filename(first.InvoiceNumber, "Acme Traders")), first))

	second := sampleInvoice()
	second.InvoiceNumber = "005/2025-26"
	secondPath := filepath.Join(outDir, Filename(second.InvoiceNumber, "Acme Traders"))
	require.NoError(t, c.Render(template, secondPath, second))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(secondPath, later, later))

	require.NoError(t, os.WriteFile(filepath.Join(outDir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "~$Invoice_x.xlsx"), []byte("x"), 0o644))

	summaries, err := c.List(outDir)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "005/2025-26", summaries[0].InvoiceNumber)
	assert.Equal(t, "004/2025-26", summaries[1].InvoiceNumber)
	assert.Equal(t, "Acme Traders", summaries[0].BuyerName)
	assert.Equal(t, "1050.00", summaries[0].TotalAmount)
	assert.Equal(t, 1, summaries[0].ItemsCount)
}

func TestList_MissingDirIsEmpty(t *testing.T) {
	c := NewCloner(DefaultLayout())
	summaries, err := c.List(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
