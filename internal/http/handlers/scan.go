package handlers

import (
	"github.com/remitrack/internal/http/response"
	"github.com/remitrack/internal/scancode"

	"github.com/gin-gonic/gin"
)

type parseScanRequest struct {
	Codigo string `json:"codigo" binding:"required"`
}

// ParseScanCode extracts a piece candidate from a raw scanner payload.
// An unparseable payload is a normal outcome, not an error: the client
// gets a null candidate and lets the operator capture manually.
func (h *Handler) ParseScanCode(c *gin.Context) {
	var req parseScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parámetros inválidos")
		return
	}

	parsed := scancode.Parse(req.Codigo)
	if parsed == nil {
		requestLog(c).Debugw("scan_code_unparsed", "codigo", req.Codigo)
	}
	response.Success(c, parsed)
}
