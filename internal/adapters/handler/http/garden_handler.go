package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/services"
)

type GardenHandler struct {
	svc *services.GardenService
}

func NewGardenHandler(svc *services.GardenService) *GardenHandler {
	return &GardenHandler{
		svc: svc,
	}
}

type gardenRequest struct {
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	TotalArea       *float64   `json:"total_area"`
	Length          *float64   `json:"length"`
	Width           *float64   `json:"width"`
	GardenType      string     `json:"garden_type"`
	EstablishedDate *time.Time `json:"established_date"`
	Notes           string     `json:"notes"`
}

type gardenPatchRequest struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	Location        *string    `json:"location"`
	TotalArea       *float64   `json:"total_area"`
	Length          *float64   `json:"length"`
	Width           *float64   `json:"width"`
	GardenType      *string    `json:"garden_type"`
	EstablishedDate *time.Time `json:"established_date"`
	Notes           *string    `json:"notes"`
}

func (h *GardenHandler) RegisterRoutes(router *gin.RouterGroup) {
	gardens := router.Group("/gardens")
	{
		gardens.GET("", h.List)
		gardens.GET("/:id", h.Get)
		gardens.POST("", h.Create)
		gardens.PUT("/:id", h.Update)
		gardens.PATCH("/:id", h.Update)
		gardens.DELETE("/:id", h.Delete)
	}
}

func (h *GardenHandler) List(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.GetAll(c.Request.Context()))
}

func (h *GardenHandler) Get(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.GetByID(c.Request.Context(), c.Param("id")))
}

func (h *GardenHandler) Create(c *gin.Context) {
	var req gardenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	respond(c, http.StatusCreated, h.svc.Create(c.Request.Context(), domain.GardenInput{
		Name:            req.Name,
		Description:     req.Description,
		Location:        req.Location,
		TotalArea:       req.TotalArea,
		Length:          req.Length,
		Width:           req.Width,
		GardenType:      req.GardenType,
		EstablishedDate: req.EstablishedDate,
		Notes:           req.Notes,
	}))
}

func (h *GardenHandler) Update(c *gin.Context) {
	var req gardenPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	respond(c, http.StatusOK, h.svc.Update(c.Request.Context(), c.Param("id"), domain.GardenPatch(req)))
}

func (h *GardenHandler) Delete(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.Delete(c.Request.Context(), c.Param("id")))
}
