package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/services"
)

type PlantHandler struct {
	svc *services.PlantService
}

func NewPlantHandler(svc *services.PlantService) *PlantHandler {
	return &PlantHandler{svc: svc}
}

type plantRequest struct {
	PlantBedID          string     `json:"plant_bed_id"`
	Name                string     `json:"name"`
	ScientificName      string     `json:"scientific_name"`
	Variety             string     `json:"variety"`
	Color               string     `json:"color"`
	Height              *float64   `json:"height"`
	PlantingDate        *time.Time `json:"planting_date"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date"`
	Status              string     `json:"status"`
	Notes               string     `json:"notes"`
	CareInstructions    string     `json:"care_instructions"`
	WateringFrequency   *int       `json:"watering_frequency"`
}

type plantPatchRequest struct {
	Name                *string    `json:"name"`
	ScientificName      *string    `json:"scientific_name"`
	Variety             *string    `json:"variety"`
	Color               *string    `json:"color"`
	Height              *float64   `json:"height"`
	PlantingDate        *time.Time `json:"planting_date"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date"`
	Status              *string    `json:"status"`
	Notes               *string    `json:"notes"`
	CareInstructions    *string    `json:"care_instructions"`
	WateringFrequency   *int       `json:"watering_frequency"`
}

func (h *PlantHandler) RegisterRoutes(router *gin.RouterGroup) {
	plants := router.Group("/plants")
	{
		plants.GET("", h.List)
		plants.GET("/:id", h.Get)
		plants.POST("", h.Create)
		plants.PUT("/:id", h.Update)
		plants.PATCH("/:id", h.Update)
		plants.DELETE("/:id", h.Delete)
	}
}

func (h *PlantHandler) List(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.GetAll(c.Request.Context(), c.Query("plant_bed_id")))
}

func (h *PlantHandler) Get(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.GetByID(c.Request.Context(), c.Param("id")))
}

func (h *PlantHandler) Create(c *gin.Context) {
	var req plantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respond(c, http.StatusCreated, h.svc.Create(c.Request.Context(), domain.PlantInput(req)))
}

func (h *PlantHandler) Update(c *gin.Context) {
	var req plantPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respond(c, http.StatusOK, h.svc.Update(c.Request.Context(), c.Param("id"), domain.PlantPatch(req)))
}

// Delete removes the plant for good.
func (h *PlantHandler) Delete(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.Delete(c.Request.Context(), c.Param("id")))
}
