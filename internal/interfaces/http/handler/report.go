package handler

import (
	"time"

	reportapp "github.com/chabatake/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles the read-only ledger report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DateRangeRequest carries the optional date bounds of history reports
type DateRangeRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

func (r DateRangeRequest) bounds() (start, end *time.Time, err error) {
	if r.StartDate != "" {
		parsed, perr := time.Parse(dateLayout, r.StartDate)
		if perr != nil {
			return nil, nil, perr
		}
		start = &parsed
	}
	if r.EndDate != "" {
		parsed, perr := time.Parse(dateLayout, r.EndDate)
		if perr != nil {
			return nil, nil, perr
		}
		end = &parsed
	}
	return start, end, nil
}

// Inventory returns current stock per batch
func (h *ReportHandler) Inventory(c *gin.Context) {
	rows, err := h.reportService.Inventory(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Shipments returns shipment history, optionally date-filtered
func (h *ReportHandler) Shipments(c *gin.Context) {
	var req DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	start, end, err := req.bounds()
	if err != nil {
		h.BadRequest(c, "Invalid date filter")
		return
	}

	rows, err := h.reportService.ShipmentHistory(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Quality returns per-batch quality data, optionally date-filtered
func (h *ReportHandler) Quality(c *gin.Context) {
	var req DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	start, end, err := req.bounds()
	if err != nil {
		h.BadRequest(c, "Invalid date filter")
		return
	}

	rows, err := h.reportService.Quality(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Summary returns per-category aggregates
func (h *ReportHandler) Summary(c *gin.Context) {
	rows, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/inventory", h.Inventory)
	rg.GET("/reports/shipments", h.Shipments)
	rg.GET("/reports/quality", h.Quality)
	rg.GET("/reports/summary", h.Summary)
}
