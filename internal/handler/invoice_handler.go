package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// InvoiceHandler handles invoice generation and retrieval endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

type invoiceRequest struct {
	ProfileID     string            `json:"profile_id"`
	BuyerDetails  []string          `json:"buyer_details"`
	InvoiceNumber string            `json:"invoice_number"`
	InvoiceDate   string            `json:"invoice_date"`
	TransportMode string            `json:"transport_mode"`
	Items         []domain.LineItem `json:"items" binding:"required"`
	TaxType       string            `json:"tax_type"`
	GeneratePDF   bool              `json:"generate_pdf"`
}

// Generate handles POST /api/v1/invoices
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "items are required")
		return
	}

	result, err := h.invoiceService.Generate(c.Request.Context(), &service.GenerateInvoiceInput{
		ProfileID:     req.ProfileID,
		BuyerDetails:  req.BuyerDetails,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   req.InvoiceDate,
		TransportMode: req.TransportMode,
		Items:         req.Items,
		TaxType:       req.TaxType,
		GeneratePDF:   req.GeneratePDF,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// Preview handles POST /api/v1/invoices/preview
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var req struct {
		Items   []domain.LineItem `json:"items" binding:"required"`
		TaxType string            `json:"tax_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "items are required")
		return
	}

	preview, err := h.invoiceService.Preview(req.Items, req.TaxType)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, preview)
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	summaries, err := h.invoiceService.List()
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"invoices": summaries, "count": len(summaries)})
}

// NextNumber handles GET /api/v1/invoices/next-number
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	RespondOK(c, gin.H{"invoice_number": h.invoiceService.NextNumber()})
}

// Load handles GET /api/v1/invoices/:filename
func (h *InvoiceHandler) Load(c *gin.Context) {
	ext, err := h.invoiceService.Load(c.Param("filename"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ext)
}

// Download handles GET /api/v1/invoices/:filename/download
func (h *InvoiceHandler) Download(c *gin.Context) {
	format := domain.ArtifactXLSX
	if c.Query("format") == string(domain.ArtifactPDF) {
		format = domain.ArtifactPDF
	}

	path, err := h.invoiceService.ArtifactPath(c.Param("filename"), format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}
