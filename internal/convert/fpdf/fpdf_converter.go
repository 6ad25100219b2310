// Package fpdf produces invoice PDFs natively, without LibreOffice. The
// spreadsheet stays the source of truth: the converter reads the generated
// document back and draws a plain A4 rendition of the same data.
package fpdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"gstbill/internal/document"
	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type fpdfConverter struct {
	cloner *document.Cloner
}

// NewConverter creates a DocumentConverter drawing PDFs with gofpdf. The
// cloner supplies the reverse extraction of the source spreadsheet.
func NewConverter(cloner *document.Cloner) port.DocumentConverter {
	return &fpdfConverter{cloner: cloner}
}

func (c *fpdfConverter) Convert(ctx context.Context, sourcePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext, err := c.cloner.Extract(sourcePath)
	if err != nil {
		return "", fmt.Errorf("reading %s for PDF: %w", sourcePath, err)
	}

	pdfPath := strings.TrimSuffix(sourcePath, ".xlsx") + ".pdf"
	if err := draw(ext, pdfPath); err != nil {
		return "", fmt.Errorf("drawing %s: %w", pdfPath, domain.ErrConversionFailed)
	}
	return pdfPath, nil
}

func draw(inv *domain.ExtractedInvoice, pdfPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "TAX INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 8, "Invoice No. "+inv.InvoiceNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 8, "Date: "+inv.InvoiceDate, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, "Buyer", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, line := range inv.BuyerDetails {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	if inv.TransportMode != "" {
		pdf.CellFormat(0, 6, "Mode of Transport: "+inv.TransportMode, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(100, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Rate", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.Items {
		amount := item.Quantity * item.Rate
		pdf.CellFormat(100, 7, item.DisplayDescription(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", amount), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "Tax election: "+string(inv.TaxType), "", 1, "L", false, 0, "")

	return pdf.OutputFileAndClose(pdfPath)
}
