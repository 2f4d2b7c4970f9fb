package billing

import (
	"errors"
	"net/http"
	"strconv"

	"hotelier/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/invoice", h.GenerateInvoice)
	rg.POST("/bookings/:id/charges", h.AddCharge)
	rg.GET("/bookings/:id/charges", h.ListCharges)
	rg.GET("/invoices/:id", h.GetInvoice)
	rg.POST("/invoices/:id/payments", h.ApplyPayment)
}

func (h *Handler) GenerateInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	inv, err := h.service.GenerateInvoice(c.Request.Context(), id)
	if err != nil {
		writeBillingError(c, err, "Failed to generate invoice")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invoice": inv})
}

func (h *Handler) AddCharge(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AddChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	charge, err := h.service.AddCharge(c.Request.Context(), id, req)
	if err != nil {
		writeBillingError(c, err, "Failed to add charge")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"charge": charge})
}

func (h *Handler) ListCharges(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	charges, err := h.service.ListCharges(c.Request.Context(), id)
	if err != nil {
		writeBillingError(c, err, "Failed to list charges")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"charges": charges})
}

func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	details, err := h.service.GetInvoiceDetails(c.Request.Context(), id)
	if err != nil {
		writeBillingError(c, err, "Failed to load invoice")
		return
	}
	response.Success(c, http.StatusOK, details)
}

func (h *Handler) ApplyPayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	p, err := h.service.ApplyPayment(c.Request.Context(), id, req.Amount, req.Method)
	if err != nil {
		writeBillingError(c, err, "Failed to apply payment")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": p})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", name+" must be an integer")
		return 0, false
	}
	return id, true
}

func writeBillingError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid billing data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Invoice or booking not found")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATE_TRANSITION", "Operation not allowed for the booking's current status")
	case errors.Is(err, ErrPaymentOverflow):
		response.Error(c, http.StatusUnprocessableEntity, "PAYMENT_OVERFLOW", "Payment exceeds the balance due")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
