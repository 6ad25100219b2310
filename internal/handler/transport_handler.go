package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/service"
)

// TransportHandler handles transport mode endpoints.
type TransportHandler struct {
	transportService service.TransportService
}

// NewTransportHandler creates a new TransportHandler.
func NewTransportHandler(transportService service.TransportService) *TransportHandler {
	return &TransportHandler{transportService: transportService}
}

// List handles GET /api/v1/transport-modes
func (h *TransportHandler) List(c *gin.Context) {
	cores, err := h.transportService.Cores()
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"transport_modes": cores})
}

// Create handles POST /api/v1/transport-modes
func (h *TransportHandler) Create(c *gin.Context) {
	var req struct {
		Mode string `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "mode is required")
		return
	}

	added, err := h.transportService.Save(req.Mode)
	if err != nil {
		HandleError(c, err)
		return
	}

	if added {
		RespondCreated(c, gin.H{"added": true})
		return
	}
	RespondOK(c, gin.H{"added": false})
}
