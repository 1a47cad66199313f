package handler

import (
	"strconv"
	"time"

	"github.com/chabatake/backend/internal/application/accounting"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ProductionHandler handles production batch API endpoints
type ProductionHandler struct {
	BaseHandler
	accountingService *accounting.Service
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(accountingService *accounting.Service) *ProductionHandler {
	return &ProductionHandler{accountingService: accountingService}
}

// CreateProductionRequest is the request body for recording a production batch
type CreateProductionRequest struct {
	TeaCategory    string          `json:"tea_category" binding:"required,teacategory"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	ProductionDate string          `json:"production_date" binding:"omitempty,datetime=2006-01-02"`
	QualityGrade   *string         `json:"quality_grade" binding:"omitempty,qualitygrade"`
}

// UpdateQualityRequest is the request body for a quality check
type UpdateQualityRequest struct {
	QualityGrade string `json:"quality_grade" binding:"required,qualitygrade"`
	QualityNotes string `json:"quality_notes" binding:"max=500"`
}

// ProductionResponse carries the identifier of a recorded batch
type ProductionResponse struct {
	ID uint `json:"id"`
}

// Create records a production batch together with its opening inventory
func (h *ProductionHandler) Create(c *gin.Context) {
	var req CreateProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	var productionDate time.Time
	if req.ProductionDate != "" {
		parsed, err := time.Parse(dateLayout, req.ProductionDate)
		if err != nil {
			h.BadRequest(c, "Invalid production date")
			return
		}
		productionDate = parsed
	}

	id, err := h.accountingService.RecordProduction(c.Request.Context(), accounting.RecordProductionInput{
		TeaCategory:    req.TeaCategory,
		Quantity:       req.Quantity,
		ProductionDate: productionDate,
		QualityGrade:   req.QualityGrade,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ProductionResponse{ID: id})
}

// UpdateQuality records a quality check against an existing batch
func (h *ProductionHandler) UpdateQuality(c *gin.Context) {
	batchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || batchID == 0 {
		h.BadRequest(c, "Invalid production batch ID")
		return
	}

	var req UpdateQualityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	updated, err := h.accountingService.UpdateQualityCheck(c.Request.Context(), uint(batchID), req.QualityGrade, req.QualityNotes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if updated == 0 {
		h.NotFound(c, "Production batch not found")
		return
	}

	h.Success(c, ProductionResponse{ID: uint(batchID)})
}

// RegisterRoutes registers production routes
func (h *ProductionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/productions", h.Create)
	rg.PUT("/productions/:id/quality", h.UpdateQuality)
}
