package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/services"
)

type LogbookHandler struct {
	svc *services.LogbookService
}

func NewLogbookHandler(svc *services.LogbookService) *LogbookHandler {
	return &LogbookHandler{svc: svc}
}

type logbookRequest struct {
	GardenID   string     `json:"garden_id"`
	PlantBedID *string    `json:"plant_bed_id"`
	PlantID    *string    `json:"plant_id"`
	EntryDate  *time.Time `json:"entry_date"`
	Notes      string     `json:"notes"`
	PhotoURL   string     `json:"photo_url"`
}

type logbookPatchRequest struct {
	EntryDate *time.Time `json:"entry_date"`
	Notes     *string    `json:"notes"`
	PhotoURL  *string    `json:"photo_url"`
}

func (h *LogbookHandler) RegisterRoutes(router *gin.RouterGroup) {
	logbook := router.Group("/logbook")
	{
		logbook.GET("", h.List)
		logbook.GET("/:id", h.Get)
		logbook.POST("", h.Create)
		logbook.PUT("/:id", h.Update)
		logbook.PATCH("/:id", h.Update)
		logbook.DELETE("/:id", h.Delete)
	}
}

func (h *LogbookHandler) List(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.GetAll(c.Request.Context(), services.LogbookFilter{
		GardenID:   c.Query("garden_id"),
		PlantBedID: c.Query("plant_bed_id"),
		PlantID:    c.Query("plant_id"),
	}))
}

func (h *LogbookHandler) Get(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.GetByID(c.Request.Context(), c.Param("id")))
}

func (h *LogbookHandler) Create(c *gin.Context) {
	var req logbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respond(c, http.StatusCreated, h.svc.Create(c.Request.Context(), domain.LogbookEntryInput(req)))
}

func (h *LogbookHandler) Update(c *gin.Context) {
	var req logbookPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respond(c, http.StatusOK, h.svc.Update(c.Request.Context(), c.Param("id"), domain.LogbookEntryPatch(req)))
}

func (h *LogbookHandler) Delete(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.Delete(c.Request.Context(), c.Param("id")))
}
