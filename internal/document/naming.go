package document

import (
	"fmt"
	"regexp"
	"strings"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Filename builds the canonical generated-invoice filename, e.g.
// "Invoice_004_2025_26_Acme_Traders.xlsx". The sequence number stays the
// first numeric group, which the allocator relies on when scanning the
// output directory.
func Filename(invoiceNumber, buyerName string) string {
	return fmt.Sprintf("Invoice_%s_%s.xlsx", safeName(invoiceNumber), safeName(buyerName))
}

func safeName(s string) string {
	safe := unsafeNameChars.ReplaceAllString(strings.TrimSpace(s), "_")
	return strings.Trim(safe, "_")
}
