package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	TaskTypeWatering    = "watering"
	TaskTypeFertilizing = "fertilizing"
	TaskTypePruning     = "pruning"
	TaskTypeHarvesting  = "harvesting"
	TaskTypePlanting    = "planting"
	TaskTypePestControl = "pest_control"
	TaskTypeGeneral     = "general"
)

func IsValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func IsValidTaskType(t string) bool {
	switch t {
	case TaskTypeWatering, TaskTypeFertilizing, TaskTypePruning, TaskTypeHarvesting,
		TaskTypePlanting, TaskTypePestControl, TaskTypeGeneral:
		return true
	}
	return false
}

type Task struct {
	ID          string     `json:"id" db:"id"`
	PlantID     *string    `json:"plant_id,omitempty" db:"plant_id"`
	PlantBedID  *string    `json:"plant_bed_id,omitempty" db:"plant_bed_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	DueDate     time.Time  `json:"due_date" db:"due_date"`
	Priority    string     `json:"priority" db:"priority"`
	TaskType    string     `json:"task_type" db:"task_type"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type TaskInput struct {
	PlantID     *string
	PlantBedID  *string
	Title       string
	Description string
	DueDate     *time.Time
	Priority    string
	TaskType    string
}

type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *string
	TaskType    *string
}

func NewTask(in TaskInput) *Task {
	now := time.Now().UTC()
	t := &Task{
		ID:          uuid.NewString(),
		PlantID:     in.PlantID,
		PlantBedID:  in.PlantBedID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		TaskType:    in.TaskType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate.UTC()
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.TaskType == "" {
		t.TaskType = TaskTypeGeneral
	}
	return t
}

// Complete marks the task done. Completing twice keeps the first timestamp.
func (t *Task) Complete() {
	if t.Completed {
		return
	}
	now := time.Now().UTC()
	t.Completed = true
	t.CompletedAt = &now
	t.UpdatedAt = now
}

func (t *Task) Row() Row {
	return Row{
		"id":           t.ID,
		"plant_id":     t.PlantID,
		"plant_bed_id": t.PlantBedID,
		"title":        t.Title,
		"description":  t.Description,
		"due_date":     t.DueDate,
		"priority":     t.Priority,
		"task_type":    t.TaskType,
		"completed":    t.Completed,
		"completed_at": t.CompletedAt,
		"created_at":   t.CreatedAt,
		"updated_at":   t.UpdatedAt,
	}
}

func (p TaskPatch) Row() Row {
	row := Row{}
	setString(row, "title", p.Title)
	setString(row, "description", p.Description)
	setTime(row, "due_date", p.DueDate)
	setString(row, "priority", p.Priority)
	setString(row, "task_type", p.TaskType)
	return row
}
