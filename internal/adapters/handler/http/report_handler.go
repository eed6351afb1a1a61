package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/momentum/internal/core/services"
)

type ReportHandler struct {
	svc *services.ReportService
}

func NewReportHandler(svc *services.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/reports/weekly", h.GetWeekly)
	r.GET("/reports/weekly/download", h.DownloadWeekly)
}

func (h *ReportHandler) GetWeekly(c *gin.Context) {
	report, err := h.svc.Weekly(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// DownloadWeekly renders into a buffer first so that a failure still
// produces a clean JSON error instead of a truncated attachment.
func (h *ReportHandler) DownloadWeekly(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.svc.Weekly(ctx)
	if err != nil {
		handleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.Render(ctx, &buf, report); err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.svc.Filename(report)))
	c.Data(http.StatusOK, h.svc.ContentType(), buf.Bytes())
}
