package document

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"gstbill/internal/domain"
)

// List returns summaries of the generated invoices in dir, newest first.
// Files that cannot be read are skipped with a log line rather than failing
// the whole listing.
func (c *Cloner) List(dir string) ([]domain.InvoiceSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var summaries []domain.InvoiceSummary
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "Invoice_") || !strings.HasSuffix(name, ".xlsx") {
			continue
		}
		if strings.HasPrefix(name, "~$") {
			continue
		}

		summary, err := c.summarize(filepath.Join(dir, name))
		if err != nil {
			log.Printf("document.List: skipping %s: %v", name, err)
			continue
		}
		if info, err := e.Info(); err == nil {
			summary.ModifiedAt = info.ModTime()
		}
		summary.Filename = name
		summaries = append(summaries, *summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ModifiedAt.After(summaries[j].ModifiedAt)
	})
	return summaries, nil
}

func (c *Cloner) summarize(path string) (*domain.InvoiceSummary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ext, err := c.extractFrom(f)
	if err != nil {
		return nil, err
	}

	sheet := c.layout.Sheet
	if sheet == "" {
		sheet = f.GetSheetList()[0]
	}

	buyerName := ""
	if len(ext.BuyerDetails) > 0 {
		buyerName = ext.BuyerDetails[0]
	}
	return &domain.InvoiceSummary{
		InvoiceNumber: ext.InvoiceNumber,
		BuyerName:     buyerName,
		TotalAmount:   cellValue(f, sheet, c.layout.TotalCell),
		ItemsCount:    len(ext.Items),
		TaxType:       ext.TaxType,
		TransportMode: ext.TransportMode,
	}, nil
}
