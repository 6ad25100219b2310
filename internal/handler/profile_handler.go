package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// ProfileHandler handles buyer profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type profileRequest struct {
	BuyerName      string   `json:"buyer_name" binding:"required"`
	BuyerDetails   []string `json:"buyer_details"`
	GSTIN          string   `json:"gstin"`
	DefaultTaxType string   `json:"default_tax_type"`
}

func (r *profileRequest) toDomain() domain.BuyerProfile {
	return domain.BuyerProfile{
		BuyerName:      r.BuyerName,
		BuyerDetails:   r.BuyerDetails,
		GSTIN:          r.GSTIN,
		DefaultTaxType: domain.ParseTaxType(r.DefaultTaxType),
	}
}

// List handles GET /api/v1/profiles
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileService.List()
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"profiles": profiles, "count": len(profiles)})
}

// Get handles GET /api/v1/profiles/:id
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.profileService.Get(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, p)
}

// Create handles POST /api/v1/profiles
func (h *ProfileHandler) Create(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "buyer_name is required")
		return
	}

	created, err := h.profileService.Create(req.toDomain())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, created)
}

// Update handles PUT /api/v1/profiles/:id
func (h *ProfileHandler) Update(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "buyer_name is required")
		return
	}

	updated, err := h.profileService.Update(c.Param("id"), req.toDomain())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, updated)
}

// Delete handles DELETE /api/v1/profiles/:id
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profileService.Delete(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": c.Param("id")})
}

// Cleanup handles POST /api/v1/profiles/cleanup
func (h *ProfileHandler) Cleanup(c *gin.Context) {
	removed, err := h.profileService.Cleanup()
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"removed": removed})
}
