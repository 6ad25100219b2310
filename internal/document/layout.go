// Package document renders invoices into a cloned spreadsheet template and
// reads them back. The writer and the reader share one Layout, so a document
// produced by Render can always be reopened for editing by Extract.
package document

import "fmt"

// Layout is the cell coordinate contract between Render and Extract.
type Layout struct {
	// Sheet is the sheet to write and read; empty means the first sheet.
	Sheet string

	InvoiceNumberCell string
	DateCell          string

	BuyerCol      string
	BuyerStartRow int
	BuyerEndRow   int

	TransportCell string

	ItemStartRow  int
	ItemEndRow    int
	ItemDescCol   string
	ItemQtyCol    string
	ItemRateCol   string
	ItemAmountCol string

	SubtotalCell string

	IGSTRow       int
	CGSTRow       int
	SGSTRow       int
	TaxLabelCol   string
	TaxPercentCol string
	TaxAmountCol  string

	RoundOffCell string
	TotalCell    string
	WordsCell    string
}

// DefaultLayout matches the shipped invoice template.
func DefaultLayout() Layout {
	return Layout{
		InvoiceNumberCell: "E2",
		DateCell:          "H2",
		BuyerCol:          "A",
		BuyerStartRow:     8,
		BuyerEndRow:       15,
		TransportCell:     "E10",
		ItemStartRow:      18,
		ItemEndRow:        27,
		ItemDescCol:       "A",
		ItemQtyCol:        "F",
		ItemRateCol:       "G",
		ItemAmountCol:     "I",
		SubtotalCell:      "I29",
		IGSTRow:           30,
		CGSTRow:           31,
		SGSTRow:           32,
		TaxLabelCol:       "C",
		TaxPercentCol:     "E",
		TaxAmountCol:      "I",
		RoundOffCell:      "I34",
		TotalCell:         "I35",
		WordsCell:         "A37",
	}
}

func (l Layout) cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
