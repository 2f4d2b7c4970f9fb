package booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"hotelier/internal/domain"
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
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings", h.ListByGuest)
	rg.GET("/bookings/:id", h.GetByID)
	rg.PUT("/bookings/:id", h.Edit)
	rg.DELETE("/bookings/:id", h.Delete)
	rg.POST("/bookings/:id/checkin", h.CheckIn)
	rg.POST("/bookings/:id/checkout", h.CheckOut)
	rg.POST("/bookings/:id/cancel", h.Cancel)
	rg.POST("/bookings/sweep-no-shows", h.SweepNoShows)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeBookingError(c, err, "Failed to create booking")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) Edit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req EditBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Edit(c.Request.Context(), id, req)
	if err != nil {
		writeBookingError(c, err, "Failed to edit booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err, "Failed to load booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListByGuest(c *gin.Context) {
	guestID, err := strconv.ParseInt(c.Query("guest_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "guest_id query parameter is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.ListByGuest(c.Request.Context(), guestID, limit, offset)
	if err != nil {
		writeBookingError(c, err, "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeBookingError(c, err, "Failed to delete booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CheckIn(c *gin.Context) {
	h.transition(c, h.service.CheckIn, "Failed to check in")
}

func (h *Handler) CheckOut(c *gin.Context) {
	h.transition(c, h.service.CheckOut, "Failed to check out")
}

func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel, "Failed to cancel booking")
}

// SweepNoShows lets an external scheduler trigger the sweep over HTTP;
// cmd/api also runs it on an internal cron.
func (h *Handler) SweepNoShows(c *gin.Context) {
	report, err := h.service.NoShowSweep(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "No-show sweep failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": report})
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, id int64) (*domain.Booking, error), failMsg string) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := op(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err, failMsg)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "id must be an integer")
		return 0, false
	}
	return id, true
}

func writeBookingError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking, room, or guest not found")
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusConflict, "AVAILABILITY_CONFLICT", "Room is not available for the selected dates")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATE_TRANSITION", "Operation not allowed for the booking's current status")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
