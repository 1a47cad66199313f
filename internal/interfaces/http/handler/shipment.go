package handler

import (
	"time"

	"github.com/chabatake/backend/internal/application/accounting"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ShipmentHandler handles shipment API endpoints
type ShipmentHandler struct {
	BaseHandler
	accountingService *accounting.Service
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(accountingService *accounting.Service) *ShipmentHandler {
	return &ShipmentHandler{accountingService: accountingService}
}

// CreateShipmentRequest is the request body for recording a shipment
type CreateShipmentRequest struct {
	BatchID         uint            `json:"batch_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	CustomerName    string          `json:"customer_name" binding:"required,max=100"`
	CustomerContact string          `json:"customer_contact" binding:"max=100"`
	ShipmentDate    string          `json:"shipment_date" binding:"omitempty,datetime=2006-01-02"`
}

// ShipmentResponse carries the identifier of a recorded shipment
type ShipmentResponse struct {
	ID uint `json:"id"`
}

// Create records a shipment and decrements the batch's inventory balance
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	var shipmentDate time.Time
	if req.ShipmentDate != "" {
		parsed, err := time.Parse(dateLayout, req.ShipmentDate)
		if err != nil {
			h.BadRequest(c, "Invalid shipment date")
			return
		}
		shipmentDate = parsed
	}

	id, err := h.accountingService.RecordShipment(c.Request.Context(), accounting.RecordShipmentInput{
		BatchID:         req.BatchID,
		Quantity:        req.Quantity,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		ShipmentDate:    shipmentDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ShipmentResponse{ID: id})
}

// RegisterRoutes registers shipment routes
func (h *ShipmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/shipments", h.Create)
}
