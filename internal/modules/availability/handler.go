package availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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
	rg.GET("/availability", h.FindAvailableRooms)
}

func (h *Handler) FindAvailableRooms(c *gin.Context) {
	checkIn, err1 := time.Parse("2006-01-02", c.Query("check_in"))
	checkOut, err2 := time.Parse("2006-01-02", c.Query("check_out"))
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in and check_out must be YYYY-MM-DD dates")
		return
	}

	req := FindRequest{CheckIn: checkIn, CheckOut: checkOut}
	if t := c.Query("type"); t != "" {
		rt := domain.RoomType(t)
		if !rt.Valid() {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown room type")
			return
		}
		req.Type = &rt
	}
	if mc := c.Query("min_capacity"); mc != "" {
		n, err := strconv.Atoi(mc)
		if err != nil || n < 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "min_capacity must be a non-negative integer")
			return
		}
		req.MinCapacity = n
	}
	if ex := c.Query("exclude_booking_id"); ex != "" {
		id, err := strconv.ParseInt(ex, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "exclude_booking_id must be an integer")
			return
		}
		req.ExcludeBookingID = &id
	}

	rooms, err := h.service.FindAvailableRooms(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_out must be after check_in")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to search availability")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}
