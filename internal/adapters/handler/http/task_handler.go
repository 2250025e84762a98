package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/services"
)

type TaskHandler struct {
	svc *services.TaskService
}

func NewTaskHandler(svc *services.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

type taskRequest struct {
	PlantID     *string    `json:"plant_id"`
	PlantBedID  *string    `json:"plant_bed_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
	TaskType    string     `json:"task_type"`
}

type taskPatchRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"`
	TaskType    *string    `json:"task_type"`
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	{
		tasks.GET("", h.List)
		tasks.GET("/:id", h.Get)
		tasks.POST("", h.Create)
		tasks.PUT("/:id", h.Update)
		tasks.PATCH("/:id", h.Update)
		tasks.POST("/:id/complete", h.Complete)
		tasks.DELETE("/:id", h.Delete)
	}
}

func (h *TaskHandler) List(c *gin.Context) {
	filter := services.TaskFilter{
		PlantID:    c.Query("plant_id"),
		PlantBedID: c.Query("plant_bed_id"),
	}
	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		filter.Completed = &completed
	}
	respond(c, http.StatusOK, h.svc.GetAll(c.Request.Context(), filter))
}

func (h *TaskHandler) Get(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.GetByID(c.Request.Context(), c.Param("id")))
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respond(c, http.StatusCreated, h.svc.Create(c.Request.Context(), domain.TaskInput(req)))
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req taskPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respond(c, http.StatusOK, h.svc.Update(c.Request.Context(), c.Param("id"), domain.TaskPatch(req)))
}

func (h *TaskHandler) Complete(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.Complete(c.Request.Context(), c.Param("id")))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	respond(c, http.StatusOK, h.svc.Delete(c.Request.Context(), c.Param("id")))
}
