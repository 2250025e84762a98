package workers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
)

type LogbookWriter interface {
	Create(ctx context.Context, in domain.LogbookEntryInput) domain.Result[domain.LogbookEntry]
}

type PlantBedReader interface {
	GetByID(ctx context.Context, id string) domain.Result[domain.PlantBed]
}

type PlantReader interface {
	GetByID(ctx context.Context, id string) domain.Result[domain.Plant]
}

type LogbookJob struct {
	Task domain.Task
}

// LogbookWorker writes a logbook entry for every completed task, off the
// request path.
type LogbookWorker struct {
	logbook LogbookWriter
	beds    PlantBedReader
	plants  PlantReader
	log     *slog.Logger
	jobs    chan LogbookJob
}

func NewLogbookWorker(logbook LogbookWriter, beds PlantBedReader, plants PlantReader, log *slog.Logger) *LogbookWorker {
	if log == nil {
		log = slog.Default()
	}
	return &LogbookWorker{
		logbook: logbook,
		beds:    beds,
		plants:  plants,
		log:     log.With("component", "logbook_worker"),
		jobs:    make(chan LogbookJob, 100),
	}
}

// Start consumes jobs until ctx is cancelled. The returned channel is closed
// once the loop has exited.
func (w *LogbookWorker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.log.Info("logbook worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.log.Info("logbook worker shutting down")
				return
			}
		}
	}()
	return done
}

// Enqueue never blocks. Jobs are dropped when the queue is full.
func (w *LogbookWorker) Enqueue(task domain.Task) {
	select {
	case w.jobs <- LogbookJob{Task: task}:
	default:
		w.log.Warn("queue full, dropping job", "task_id", task.ID)
	}
}

func (w *LogbookWorker) processJob(ctx context.Context, job LogbookJob) {
	task := job.Task

	gardenID, bedID, err := w.resolveGarden(ctx, task)
	if err != nil {
		w.log.Warn("cannot place task in a garden", "task_id", task.ID, "error", err)
		return
	}

	in := domain.LogbookEntryInput{
		GardenID:   gardenID,
		PlantBedID: bedID,
		PlantID:    task.PlantID,
		EntryDate:  task.CompletedAt,
		Notes:      completionNote(task),
	}

	res := w.logbook.Create(ctx, in)
	if !res.Success {
		w.log.Error("failed to write logbook entry", "task_id", task.ID, "error", res.ErrorMessage())
		return
	}
	w.log.Debug("logbook entry written", "task_id", task.ID, "entry_id", res.Value().ID)
}

// resolveGarden walks task -> plant -> plant bed -> garden.
func (w *LogbookWorker) resolveGarden(ctx context.Context, task domain.Task) (string, *string, error) {
	bedID := task.PlantBedID
	if bedID == nil && task.PlantID != nil {
		plant := w.plants.GetByID(ctx, *task.PlantID)
		if !plant.Success {
			return "", nil, fmt.Errorf("plant %s: %s", *task.PlantID, plant.ErrorMessage())
		}
		id := plant.Value().PlantBedID
		bedID = &id
	}
	if bedID == nil {
		return "", nil, fmt.Errorf("task has neither plant nor plant bed")
	}

	bed := w.beds.GetByID(ctx, *bedID)
	if !bed.Success {
		return "", nil, fmt.Errorf("plant bed %s: %s", *bedID, bed.ErrorMessage())
	}
	return bed.Value().GardenID, bedID, nil
}

func completionNote(task domain.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task completed: %s", task.Title)
	if task.TaskType != "" && task.TaskType != domain.TaskTypeGeneral {
		fmt.Fprintf(&b, " (%s)", strings.ReplaceAll(task.TaskType, "_", " "))
	}
	if task.Description != "" {
		b.WriteString("\n")
		b.WriteString(task.Description)
	}
	return b.String()
}
