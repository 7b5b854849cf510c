package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crbill/internal/service"
)

// TDSHandler handles TDS rate history endpoints.
type TDSHandler struct {
	tdsService service.TDSService
}

// NewTDSHandler creates a new TDSHandler.
func NewTDSHandler(tdsService service.TDSService) *TDSHandler {
	return &TDSHandler{tdsService: tdsService}
}

// SetRate handles PUT /api/v1/tds
func (h *TDSHandler) SetRate(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.SetTDSRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	rate, err := h.tdsService.SetRate(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rate)
}

// Current handles GET /api/v1/tds/current
func (h *TDSHandler) Current(c *gin.Context) {
	rate, err := h.tdsService.Current(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rate)
}

// History handles GET /api/v1/tds/history
func (h *TDSHandler) History(c *gin.Context) {
	rates, err := h.tdsService.History(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rates)
}
