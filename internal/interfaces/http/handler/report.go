package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/backoffice/server/internal/application/report"
)

// ReportHandler exposes on-demand sales report generation
type ReportHandler struct {
	BaseHandler
	salesReportService *reportapp.SalesReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(salesReportService *reportapp.SalesReportService) *ReportHandler {
	return &ReportHandler{
		salesReportService: salesReportService,
	}
}

// GenerateSales triggers sales report generation and returns the payload
// that was published
func (h *ReportHandler) GenerateSales(c *gin.Context) {
	result, err := h.salesReportService.Generate(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.POST("/sales", h.GenerateSales)
	}
}
