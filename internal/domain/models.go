package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxBuyerDetailLines bounds the buyer address block written into a document.
const MaxBuyerDetailLines = 8

// BuyerProfile is a stored buyer record. ProfileID is the GSTIN when one is
// known, otherwise a generated token; it is unique within the store.
type BuyerProfile struct {
	ProfileID      string   `json:"profile_id"`
	BuyerName      string   `json:"buyer_name"`
	BuyerDetails   []string `json:"buyer_details"`
	GSTIN          string   `json:"gstin"`
	DefaultTaxType TaxType  `json:"default_tax_type"`
}

// Valid reports whether the profile carries the minimum fields required to be
// listed or used for generation.
func (p *BuyerProfile) Valid() bool {
	return p.ProfileID != "" && strings.TrimSpace(p.BuyerName) != ""
}

// LineItem is a single invoice line. Amount is always computed from quantity
// and rate, never stored.
type LineItem struct {
	Description string  `json:"description"`
	Bags        int     `json:"bags,omitempty"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// DisplayDescription returns the description with the bag count appended in
// the parenthetical form used on printed invoices, e.g. "Utensils (12 Bags)".
func (it *LineItem) DisplayDescription() string {
	desc := strings.TrimSpace(it.Description)
	if it.Bags > 0 {
		return fmt.Sprintf("%s (%d Bags)", desc, it.Bags)
	}
	return desc
}

// TaxBreakdown is the computed GST arithmetic for one invoice. Exactly one of
// IGST or the CGST/SGST pair is non-zero for a positive subtotal.
type TaxBreakdown struct {
	ItemAmounts      []decimal.Decimal `json:"item_amounts"`
	Subtotal         decimal.Decimal   `json:"subtotal"`
	IGST             decimal.Decimal   `json:"igst_amount"`
	CGST             decimal.Decimal   `json:"cgst_amount"`
	SGST             decimal.Decimal   `json:"sgst_amount"`
	TotalBeforeRound decimal.Decimal   `json:"total_before_round_off"`
	RoundedTotal     decimal.Decimal   `json:"rounded_total"`
	RoundOff         decimal.Decimal   `json:"round_off_value"`
	TaxType          TaxType           `json:"tax_type"`
}

// InvoiceData is everything the document writer needs to produce an invoice.
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   time.Time
	BuyerDetails  []string
	TransportMode string
	Items         []LineItem
	Breakdown     *TaxBreakdown
	AmountInWords string
}

// NumberDisplay returns the header string written into the document.
func (d *InvoiceData) NumberDisplay() string {
	if d.InvoiceNumber == "" {
		return ""
	}
	return "INVOICE No. " + d.InvoiceNumber
}

// DateDisplay returns the date header string in dd/mm/yyyy form.
func (d *InvoiceData) DateDisplay() string {
	if d.InvoiceDate.IsZero() {
		return ""
	}
	return "Date : " + d.InvoiceDate.Format("02/01/2006")
}

// ExtractedInvoice is what reverse extraction recovers from a generated
// document. Item amounts are recomputed from quantity and rate, not read back.
type ExtractedInvoice struct {
	InvoiceNumber string     `json:"invoice_number"`
	InvoiceDate   string     `json:"invoice_date"`
	BuyerDetails  []string   `json:"buyer_details"`
	TransportMode string     `json:"transport_mode"`
	Items         []LineItem `json:"items"`
	TaxType       TaxType    `json:"tax_type"`
}

// InvoiceSummary is the listing metadata for one generated invoice file.
type InvoiceSummary struct {
	Filename      string    `json:"filename"`
	InvoiceNumber string    `json:"invoice_number"`
	BuyerName     string    `json:"buyer_name"`
	ModifiedAt    time.Time `json:"modified_at"`
	TotalAmount   string    `json:"total_amount"`
	ItemsCount    int       `json:"items_count"`
	TaxType       TaxType   `json:"tax_type"`
	TransportMode string    `json:"transport_mode"`
}

// SequenceState is the persisted invoice-number counter.
type SequenceState struct {
	LastInvoiceNumber int `json:"last_invoice_number"`
}
