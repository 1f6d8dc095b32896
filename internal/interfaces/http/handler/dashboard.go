package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/backoffice/server/internal/application/report"
	"github.com/backoffice/server/internal/domain/report"
	"github.com/backoffice/server/internal/interfaces/http/dto"
)

// dateLayout is the wire format of dashboard date filters
const dateLayout = "2006-01-02"

// DashboardHandler serves the aggregated dashboard endpoint
type DashboardHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Get returns aggregated revenue and KPIs for the requested filters
func (h *DashboardHandler) Get(c *gin.Context) {
	// Bind without validation tags rejecting malformed ids here: the
	// resolver owns id validation so the error codes stay uniform
	filter := report.DashboardFilter{
		CategoryID: c.Query("category"),
		ProductID:  c.Query("product"),
	}

	granularity, err := report.ParseGranularity(c.Query("period"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	filter.Granularity = granularity

	if raw := c.Query("start"); raw != "" {
		start, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidDateRange, "start must be formatted as YYYY-MM-DD")
			return
		}
		filter.StartDate = &start
	}
	if raw := c.Query("end"); raw != "" {
		end, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidDateRange, "end must be formatted as YYYY-MM-DD")
			return
		}
		filter.EndDate = &end
	}

	data, err := h.dashboardService.GetDashboard(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, data)
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Get)
}
