package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelbooking/internal/domain/models"
	"travelbooking/internal/repositories"
)

// CatalogHandlers serves the public browse endpoints and the admin CRUD
// for destinations, tours, flights and activities.
type CatalogHandlers struct{}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}

// GET /api/destinations
func (h CatalogHandlers) ListDestinations(c *gin.Context) {
	out, err := repositories.DestinationRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destinations": out})
}

// POST /api/admin/destinations
func (h CatalogHandlers) CreateDestination(c *gin.Context) {
	var d models.Destination
	if !BindJSONOrError(c, &d) {
		return
	}
	if err := (repositories.DestinationRepository{}).Create(&d); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"destination": d})
}

// PUT /api/admin/destinations/:id
func (h CatalogHandlers) UpdateDestination(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var d models.Destination
	if !BindJSONOrError(c, &d) {
		return
	}
	d.ID = id
	if err := (repositories.DestinationRepository{}).Update(d); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destination": d})
}

// DELETE /api/admin/destinations/:id
func (h CatalogHandlers) DeleteDestination(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := (repositories.DestinationRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "destination deleted"})
}

// GET /api/tours
func (h CatalogHandlers) ListTours(c *gin.Context) {
	out, err := repositories.TourRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tours": out})
}

// GET /api/tours/:id
func (h CatalogHandlers) GetTour(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	out, err := repositories.TourRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tour": out})
}

// POST /api/admin/tours
func (h CatalogHandlers) CreateTour(c *gin.Context) {
	var t models.Tour
	if !BindJSONOrError(c, &t) {
		return
	}
	if err := (repositories.TourRepository{}).Create(&t); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tour": t})
}

// PUT /api/admin/tours/:id
func (h CatalogHandlers) UpdateTour(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var t models.Tour
	if !BindJSONOrError(c, &t) {
		return
	}
	t.ID = id
	if err := (repositories.TourRepository{}).Update(t); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tour": t})
}

// DELETE /api/admin/tours/:id
func (h CatalogHandlers) DeleteTour(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := (repositories.TourRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tour deleted"})
}

// GET /api/flights
func (h CatalogHandlers) ListFlights(c *gin.Context) {
	out, err := repositories.FlightRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flights": out})
}

// GET /api/flights/:id
func (h CatalogHandlers) GetFlight(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	out, err := repositories.FlightRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flight": out})
}

// POST /api/admin/flights
func (h CatalogHandlers) CreateFlight(c *gin.Context) {
	var f models.Flight
	if !BindJSONOrError(c, &f) {
		return
	}
	if err := (repositories.FlightRepository{}).Create(&f); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"flight": f})
}

// PUT /api/admin/flights/:id
func (h CatalogHandlers) UpdateFlight(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var f models.Flight
	if !BindJSONOrError(c, &f) {
		return
	}
	f.ID = id
	if err := (repositories.FlightRepository{}).Update(f); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flight": f})
}

// DELETE /api/admin/flights/:id
func (h CatalogHandlers) DeleteFlight(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := (repositories.FlightRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flight deleted"})
}

// GET /api/activities
func (h CatalogHandlers) ListActivities(c *gin.Context) {
	out, err := repositories.ActivityRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": out})
}

// GET /api/activities/:id
func (h CatalogHandlers) GetActivity(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	out, err := repositories.ActivityRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": out})
}

// POST /api/admin/activities
func (h CatalogHandlers) CreateActivity(c *gin.Context) {
	var a models.Activity
	if !BindJSONOrError(c, &a) {
		return
	}
	if err := (repositories.ActivityRepository{}).Create(&a); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"activity": a})
}

// PUT /api/admin/activities/:id
func (h CatalogHandlers) UpdateActivity(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var a models.Activity
	if !BindJSONOrError(c, &a) {
		return
	}
	a.ID = id
	if err := (repositories.ActivityRepository{}).Update(a); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": a})
}

// DELETE /api/admin/activities/:id
func (h CatalogHandlers) DeleteActivity(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := (repositories.ActivityRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "activity deleted"})
}
