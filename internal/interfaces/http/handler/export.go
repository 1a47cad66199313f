package handler

import (
	exportapp "github.com/chabatake/backend/internal/application/export"
	"github.com/gin-gonic/gin"
)

// ExportHandler handles the CSV bulk export endpoint
type ExportHandler struct {
	BaseHandler
	exportService *exportapp.Service
	defaultDir    string
}

// NewExportHandler creates a new ExportHandler writing to defaultDir unless
// the request names another directory
func NewExportHandler(exportService *exportapp.Service, defaultDir string) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		defaultDir:    defaultDir,
	}
}

// ExportRequest is the request body for a bulk export
type ExportRequest struct {
	Directory string `json:"directory" binding:"omitempty,max=255"`
}

// Export dumps the three ledger tables to CSV files
func (h *ExportHandler) Export(c *gin.Context) {
	var req ExportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleBindingError(c, err)
			return
		}
	}

	dir := req.Directory
	if dir == "" {
		dir = h.defaultDir
	}

	result, err := h.exportService.ExportAll(c.Request.Context(), dir)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers export routes
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/export", h.Export)
}
