package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/services"
)

type PlantBedHandler struct {
	svc *services.PlantBedService
}

func NewPlantBedHandler(svc *services.PlantBedService) *PlantBedHandler {
	return &PlantBedHandler{svc: svc}
}

type plantBedRequest struct {
	GardenID    string `json:"garden_id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Size        string `json:"size"`
	SoilType    string `json:"soil_type"`
	SunExposure string `json:"sun_exposure"`
	Description string `json:"description"`
}

type plantBedPatchRequest struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Size        *string `json:"size"`
	SoilType    *string `json:"soil_type"`
	SunExposure *string `json:"sun_exposure"`
	Description *string `json:"description"`
}

func (h *PlantBedHandler) RegisterRoutes(router *gin.RouterGroup) {
	beds := router.Group("/plant-beds")
	{
		beds.GET("", h.List)
		beds.GET("/:id", h.Get)
		beds.POST("", h.Create)
		beds.PUT("/:id", h.Update)
		beds.PATCH("/:id", h.Update)
		beds.DELETE("/:id", h.Delete)
	}
}

// List accepts an optional ?garden_id= filter.
func (h *PlantBedHandler) List(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.GetAll(c.Request.Context(), c.Query("garden_id")))
}

func (h *PlantBedHandler) Get(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.GetByID(c.Request.Context(), c.Param("id")))
}

func (h *PlantBedHandler) Create(c *gin.Context) {
	var req plantBedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respond(c, http.StatusCreated, h.svc.Create(c.Request.Context(), domain.PlantBedInput(req)))
}

func (h *PlantBedHandler) Update(c *gin.Context) {
	var req plantBedPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respond(c, http.StatusOK, h.svc.Update(c.Request.Context(), c.Param("id"), domain.PlantBedPatch(req)))
}

func (h *PlantBedHandler) Delete(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.Delete(c.Request.Context(), c.Param("id")))
}
