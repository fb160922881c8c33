package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DownloadReport streams the pre-staging PDF of one remision.
func (h *Handler) DownloadReport(c *gin.Context) {
	remisionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	pdfBytes, filename, err := h.ReportService.GeneratePreembarqueReport(remisionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("report_generated", "remision_id", remisionID, "filename", filename, "bytes", len(pdfBytes))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
