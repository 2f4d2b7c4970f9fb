package directory

import (
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
	rg.GET("/rooms", h.ListRooms)
	rg.POST("/rooms", h.CreateRoom)
	rg.GET("/rooms/:id", h.GetRoom)
	rg.PUT("/rooms/:id", h.UpdateRoom)
	rg.PUT("/rooms/:id/maintenance", h.SetMaintenance)
	rg.DELETE("/rooms/:id", h.DeleteRoom)

	rg.GET("/guests", h.ListGuests)
	rg.POST("/guests", h.CreateGuest)
	rg.GET("/guests/:id", h.GetGuest)
	rg.PUT("/guests/:id", h.UpdateGuest)
	rg.DELETE("/guests/:id", h.DeleteGuest)

	rg.GET("/promotions", h.ListActivePromotions)
	rg.POST("/promotions", h.CreatePromotion)
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	room, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		writeDirectoryError(c, err, "Failed to create room")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	room, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		writeDirectoryError(c, err, "Failed to load room")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) ListRooms(c *gin.Context) {
	var roomType *domain.RoomType
	if t := c.Query("type"); t != "" {
		rt := domain.RoomType(t)
		if !rt.Valid() {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown room type")
			return
		}
		roomType = &rt
	}
	minCapacity, _ := strconv.Atoi(c.DefaultQuery("min_capacity", "0"))

	rooms, err := h.service.ListRooms(c.Request.Context(), roomType, minCapacity)
	if err != nil {
		writeDirectoryError(c, err, "Failed to list rooms")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	room, err := h.service.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		writeDirectoryError(c, err, "Failed to update room")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) SetMaintenance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req SetMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	room, err := h.service.SetMaintenance(c.Request.Context(), id, req.Maintenance)
	if err != nil {
		writeDirectoryError(c, err, "Failed to update maintenance flag")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRoom(c.Request.Context(), id); err != nil {
		writeDirectoryError(c, err, "Failed to delete room")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CreateGuest(c *gin.Context) {
	var req CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	g, err := h.service.CreateGuest(c.Request.Context(), req)
	if err != nil {
		writeDirectoryError(c, err, "Failed to create guest")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"guest": g})
}

func (h *Handler) GetGuest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	g, err := h.service.GetGuest(c.Request.Context(), id)
	if err != nil {
		writeDirectoryError(c, err, "Failed to load guest")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guest": g})
}

func (h *Handler) ListGuests(c *gin.Context) {
	if doc := c.Query("document"); doc != "" {
		g, err := h.service.FindGuestByDocument(c.Request.Context(), doc)
		if err != nil {
			writeDirectoryError(c, err, "Failed to look up guest")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"guests": []any{g}})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	guests, err := h.service.ListGuests(c.Request.Context(), limit, offset)
	if err != nil {
		writeDirectoryError(c, err, "Failed to list guests")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guests": guests})
}

func (h *Handler) UpdateGuest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	g, err := h.service.UpdateGuest(c.Request.Context(), id, req)
	if err != nil {
		writeDirectoryError(c, err, "Failed to update guest")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guest": g})
}

func (h *Handler) DeleteGuest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteGuest(c.Request.Context(), id); err != nil {
		writeDirectoryError(c, err, "Failed to delete guest")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CreatePromotion(c *gin.Context) {
	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	p, err := h.service.CreatePromotion(c.Request.Context(), req)
	if err != nil {
		writeDirectoryError(c, err, "Failed to create promotion")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"promotion": p})
}

func (h *Handler) ListActivePromotions(c *gin.Context) {
	promos, err := h.service.ListActivePromotions(c.Request.Context())
	if err != nil {
		writeDirectoryError(c, err, "Failed to list promotions")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"promotions": promos})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "id must be an integer")
		return 0, false
	}
	return id, true
}

func writeDirectoryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid directory data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Record not found")
	case errors.Is(err, ErrDuplicate):
		response.Error(c, http.StatusConflict, "DUPLICATE", "Record already exists")
	case errors.Is(err, ErrInUse):
		response.Error(c, http.StatusConflict, "RECORD_IN_USE", "Record is referenced by existing bookings")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
