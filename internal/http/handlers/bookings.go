package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelbooking/internal/domain/models"
	"travelbooking/internal/http/middleware"
	"travelbooking/internal/services"
)

// BookingHandlers covers the user's own bookings and the admin views.
type BookingHandlers struct{}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

func bookingIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id", err)
		return 0, false
	}
	return id, true
}

// GET /api/bookings
func (h BookingHandlers) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	out, err := bookingService(c).ListByUser(userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /api/bookings/:id
func (h BookingHandlers) GetMine(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	out, err := bookingService(c).GetForUser(id, middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": out})
}

// PUT /api/bookings/:id/cancel
func (h BookingHandlers) CancelMine(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	if err := bookingService(c).Cancel(id, middleware.GetUserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// GET /api/admin/bookings
func (h BookingHandlers) AdminList(c *gin.Context) {
	status := models.BookingStatus(c.Query("status"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	out, err := bookingService(c).List(status, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /api/admin/bookings/:id
func (h BookingHandlers) AdminGet(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	out, err := bookingService(c).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": out})
}

type statusUpdateRequest struct {
	Status models.BookingStatus `json:"status"`
}

// PUT /api/admin/bookings/:id/status
func (h BookingHandlers) AdminUpdateStatus(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var req statusUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := bookingService(c).UpdateStatus(id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

// GET /api/admin/stats
func (h BookingHandlers) AdminStats(c *gin.Context) {
	out, err := bookingService(c).Stats()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": out})
}
