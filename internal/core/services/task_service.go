package services

import (
	"context"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/validate"
)

// CompletionQueue receives tasks right after they are marked completed.
type CompletionQueue interface {
	Enqueue(task domain.Task)
}

type TaskFilter struct {
	PlantID    string
	PlantBedID string
	Completed  *bool
}

func (f TaskFilter) filter() domain.Filter {
	out := domain.Filter{}
	if f.PlantID != "" {
		out["plant_id"] = f.PlantID
	}
	if f.PlantBedID != "" {
		out["plant_bed_id"] = f.PlantBedID
	}
	if f.Completed != nil {
		out["completed"] = *f.Completed
	}
	return out
}

type TaskService struct {
	store *store[domain.Task]
	queue CompletionQueue
}

func NewTaskService(deps Deps) *TaskService {
	return &TaskService{
		store: newStore[domain.Task](deps, domain.TableTasks, "task", "tasks", "Task"),
	}
}

// SetCompletionQueue wires the consumer of completed tasks. Without one,
// completing a task only updates the row.
func (s *TaskService) SetCompletionQueue(q CompletionQueue) {
	s.queue = q
}

func (s *TaskService) GetAll(ctx context.Context, f TaskFilter) domain.Result[[]domain.Task] {
	return s.store.list(ctx, f.filter())
}

func (s *TaskService) GetByID(ctx context.Context, id string) domain.Result[domain.Task] {
	return s.store.get(ctx, id)
}

func (s *TaskService) Create(ctx context.Context, in domain.TaskInput) domain.Result[domain.Task] {
	err := validate.Required(
		validate.F("title", in.Title),
		validate.F("due_date", in.DueDate),
	)
	if err != nil {
		return domain.Fail[domain.Task](domain.FailureValidation, err.Error())
	}
	if in.PlantID == nil && in.PlantBedID == nil {
		return domain.Fail[domain.Task](domain.FailureValidation, "plant_id or plant_bed_id is required")
	}
	if msg := checkTaskEnums(in.Priority, in.TaskType); msg != "" {
		return domain.Fail[domain.Task](domain.FailureValidation, msg)
	}
	return s.store.create(ctx, domain.NewTask(in).Row())
}

func (s *TaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) domain.Result[domain.Task] {
	if patch.Title != nil && *patch.Title == "" {
		return domain.Fail[domain.Task](domain.FailureValidation, (&domain.ValidationError{Field: "title"}).Error())
	}
	if patch.Priority != nil && !domain.IsValidPriority(*patch.Priority) {
		return domain.Fail[domain.Task](domain.FailureValidation, domain.ErrInvalidPriority.Error())
	}
	if patch.TaskType != nil && !domain.IsValidTaskType(*patch.TaskType) {
		return domain.Fail[domain.Task](domain.FailureValidation, domain.ErrInvalidTaskType.Error())
	}
	return s.store.update(ctx, id, patch.Row())
}

// Complete marks the task done and hands it to the completion queue. Only the
// call that flips completed from false to true enqueues; a task that is
// already completed is returned as stored.
func (s *TaskService) Complete(ctx context.Context, id string) domain.Result[domain.Task] {
	current := s.store.get(ctx, id)
	if !current.Success {
		return current
	}

	task := current.Value()
	if task.Completed {
		return current
	}
	task.Complete()

	res, flipped := s.store.updateIf(ctx, id, domain.Filter{"completed": false}, domain.Row{
		"completed":    true,
		"completed_at": *task.CompletedAt,
	})
	if flipped && s.queue != nil {
		s.queue.Enqueue(res.Value())
	}
	return res
}

func (s *TaskService) Delete(ctx context.Context, id string) domain.Result[bool] {
	return s.store.remove(ctx, id)
}

func checkTaskEnums(priority, taskType string) string {
	if priority != "" && !domain.IsValidPriority(priority) {
		return domain.ErrInvalidPriority.Error()
	}
	if taskType != "" && !domain.IsValidTaskType(taskType) {
		return domain.ErrInvalidTaskType.Error()
	}
	return ""
}
