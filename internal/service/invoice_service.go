package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gstbill/internal/config"
	"gstbill/internal/document"
	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/port"
	"gstbill/internal/profile"
	"gstbill/internal/sequence"
	"gstbill/internal/transport"
)

// GenerateInvoiceInput is the DTO for generating an invoice.
type GenerateInvoiceInput struct {
	ProfileID     string
	BuyerDetails  []string
	InvoiceNumber string
	InvoiceDate   string
	TransportMode string
	Items         []domain.LineItem
	TaxType       string
	GeneratePDF   bool
}

// GenerateInvoiceResult reports the produced artifacts.
type GenerateInvoiceResult struct {
	Filename      string               `json:"filename"`
	InvoiceNumber string               `json:"invoice_number"`
	PDFFilename   string               `json:"pdf_filename,omitempty"`
	PDFGenerated  bool                 `json:"pdf_generated"`
	Breakdown     *domain.TaxBreakdown `json:"breakdown"`
	AmountInWords string               `json:"amount_in_words"`
}

// PreviewResult carries the live tax preview for the UI.
type PreviewResult struct {
	Breakdown     *domain.TaxBreakdown `json:"breakdown"`
	AmountInWords string               `json:"amount_in_words"`
}

// InvoiceService defines the invoice generation contract.
type InvoiceService interface {
	Generate(ctx context.Context, input *GenerateInvoiceInput) (*GenerateInvoiceResult, error)
	Preview(items []domain.LineItem, taxType string) (*PreviewResult, error)
	NextNumber() string
	List() ([]domain.InvoiceSummary, error)
	Load(filename string) (*domain.ExtractedInvoice, error)
	ArtifactPath(filename string, format domain.ArtifactFormat) (string, error)
}

type invoiceService struct {
	cfg       *config.Config
	calc      *gst.Calculator
	alloc     *sequence.Allocator
	cloner    *document.Cloner
	profiles  *profile.Store
	modes     *transport.Store
	converter port.DocumentConverter
}

// NewInvoiceService wires the invoice generation pipeline.
func NewInvoiceService(
	cfg *config.Config,
	calc *gst.Calculator,
	alloc *sequence.Allocator,
	cloner *document.Cloner,
	profiles *profile.Store,
	modes *transport.Store,
	converter port.DocumentConverter,
) InvoiceService {
	return &invoiceService{
		cfg:       cfg,
		calc:      calc,
		alloc:     alloc,
		cloner:    cloner,
		profiles:  profiles,
		modes:     modes,
		converter: converter,
	}
}

// Generate runs the full pipeline: resolve buyer, compute tax, render the
// document, commit the sequence number, and optionally convert to PDF. PDF
// failure never fails the invoice.
func (s *invoiceService) Generate(ctx context.Context, input *GenerateInvoiceInput) (*GenerateInvoiceResult, error) {
	buyerName, buyerDetails, taxTypeRaw, err := s.resolveBuyer(input)
	if err != nil {
		return nil, err
	}

	taxType := domain.ParseTaxType(taxTypeRaw)
	breakdown, err := s.calc.Compute(input.Items, taxType)
	if err != nil {
		return nil, err
	}

	invoiceDate, err := parseInputDate(input.InvoiceDate)
	if err != nil {
		return nil, err
	}

	invoiceNumber := strings.TrimSpace(input.InvoiceNumber)
	if invoiceNumber == "" {
		invoiceNumber = s.alloc.SuggestNextFor(invoiceDate)
	} else {
		taken, err := s.alloc.InUse(invoiceNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("invoice number %s already generated: %w", invoiceNumber, domain.ErrSequenceConflict)
		}
	}

	transportMode := transport.Normalize(input.TransportMode)
	if _, err := s.modes.SaveIfNew(input.TransportMode); err != nil {
		log.Printf("invoiceService.Generate: could not save transport mode: %v", err)
	}

	templatePath := s.cfg.DiscoverTemplate()
	if templatePath == "" {
		return nil, fmt.Errorf("no invoice template configured: %w", domain.ErrTemplateNotFound)
	}

	inv := &domain.InvoiceData{
		InvoiceNumber: invoiceNumber,
		InvoiceDate:   invoiceDate,
		BuyerDetails:  buyerDetails,
		TransportMode: transportMode,
		Items:         input.Items,
		Breakdown:     breakdown,
		AmountInWords: gst.AmountInWords(breakdown.RoundedTotal.IntPart()),
	}

	filename := document.Filename(invoiceNumber, buyerName)
	destPath := filepath.Join(s.cfg.Output.Dir, filename)
	if err := s.cloner.Render(templatePath, destPath, inv); err != nil {
		return nil, err
	}
	log.Printf("invoiceService.Generate: wrote %s", filename)

	if err := s.alloc.Commit(invoiceNumber); err != nil {
		log.Printf("invoiceService.Generate: sequence commit for %s failed: %v", invoiceNumber, err)
	}

	result := &GenerateInvoiceResult{
		Filename:      filename,
		InvoiceNumber: invoiceNumber,
		Breakdown:     breakdown,
		AmountInWords: inv.AmountInWords,
	}

	if input.GeneratePDF && s.converter != nil {
		result.PDFFilename, result.PDFGenerated = s.convertPDF(ctx, destPath)
	}
	return result, nil
}

// convertPDF runs the converter and moves the PDF into the PDF directory.
// All failures are logged and swallowed.
func (s *invoiceService) convertPDF(ctx context.Context, sourcePath string) (string, bool) {
	pdfPath, err := s.converter.Convert(ctx, sourcePath)
	if err != nil {
		log.Printf("invoiceService.Generate: PDF conversion failed for %s: %v", sourcePath, err)
		return "", false
	}
	if pdfPath == "" {
		return "", false
	}

	pdfName := filepath.Base(pdfPath)
	if dir := s.cfg.Output.PDFDir; dir != "" && dir != filepath.Dir(pdfPath) {
		target := filepath.Join(dir, pdfName)
		if err := os.Rename(pdfPath, target); err != nil {
			log.Printf("invoiceService.Generate: could not move %s to %s: %v", pdfPath, dir, err)
			return "", false
		}
	}
	return pdfName, true
}

// Preview computes the breakdown and amount words without touching any store.
func (s *invoiceService) Preview(items []domain.LineItem, taxType string) (*PreviewResult, error) {
	breakdown, err := s.calc.Compute(items, domain.ParseTaxType(taxType))
	if err != nil {
		return nil, err
	}
	return &PreviewResult{
		Breakdown:     breakdown,
		AmountInWords: gst.AmountInWords(breakdown.RoundedTotal.IntPart()),
	}, nil
}

// NextNumber suggests the next invoice number without reserving it.
func (s *invoiceService) NextNumber() string {
	return s.alloc.SuggestNext()
}

// List returns summaries of generated invoices, newest first.
func (s *invoiceService) List() ([]domain.InvoiceSummary, error) {
	return s.cloner.List(s.cfg.Output.Dir)
}

// Load reads a generated invoice back for editing.
func (s *invoiceService) Load(filename string) (*domain.ExtractedInvoice, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}
	return s.cloner.Extract(filepath.Join(s.cfg.Output.Dir, filename))
}

// ArtifactPath resolves a generated artifact for download.
func (s *invoiceService) ArtifactPath(filename string, format domain.ArtifactFormat) (string, error) {
	if err := validateFilename(filename); err != nil {
		return "", err
	}

	path := filepath.Join(s.cfg.Output.Dir, filename)
	if format == domain.ArtifactPDF {
		pdfName := strings.TrimSuffix(filename, ".xlsx") + ".pdf"
		path = filepath.Join(s.cfg.Output.PDFDir, pdfName)
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("artifact %s: %w", filename, domain.ErrInvoiceNotFound)
	}
	return path, nil
}

// resolveBuyer merges profile data with the request. A profile supplies the
// name, detail block, and default tax election; without one the request's
// detail lines stand alone and the first line doubles as the buyer name.
func (s *invoiceService) resolveBuyer(input *GenerateInvoiceInput) (name string, details []string, taxType string, err error) {
	taxType = input.TaxType

	if input.ProfileID != "" {
		p, err := s.profiles.Get(input.ProfileID)
		if err != nil {
			return "", nil, "", err
		}
		details = append([]string{p.BuyerName}, p.BuyerDetails...)
		if taxType == "" {
			taxType = string(p.DefaultTaxType)
		}
		return p.BuyerName, capDetails(details), taxType, nil
	}

	details = trimBlankLines(input.BuyerDetails)
	if len(details) == 0 {
		return "", nil, "", domain.NewValidationError("buyer_details", "profile_id or buyer_details required")
	}
	return details[0], capDetails(details), taxType, nil
}

func capDetails(details []string) []string {
	if len(details) > domain.MaxBuyerDetailLines {
		return details[:domain.MaxBuyerDetailLines]
	}
	return details
}

func trimBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}

// parseInputDate accepts ISO and dd/mm/yyyy dates; empty means today.
func parseInputDate(raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError("invoice_date", fmt.Sprintf("unrecognized date %q", v))
}

// validateFilename rejects anything that could escape the output directory.
func validateFilename(filename string) error {
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return domain.NewValidationError("filename", "invalid filename")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		return domain.NewValidationError("filename", "must be an .xlsx document")
	}
	return nil
}
