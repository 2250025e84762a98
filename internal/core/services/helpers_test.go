package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/adapters/gateway"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/retry"
)

func ptr[T any](v T) *T {
	return &v
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeGateway counts every backend call and can fail the next calls with
// queued errors before falling through to the in-memory tables.
type fakeGateway struct {
	*gateway.MemoryGateway

	mu       sync.Mutex
	calls    int
	failures []error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{MemoryGateway: gateway.NewMemoryGateway()}
}

func (f *fakeGateway) failNext(errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, errs...)
}

func (f *fakeGateway) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeGateway) resetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = 0
}

func (f *fakeGateway) hit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.failures) == 0 {
		return nil
	}
	err := f.failures[0]
	f.failures = f.failures[1:]
	return err
}

func (f *fakeGateway) Query(ctx context.Context, table string, filter domain.Filter) ([]domain.Row, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return f.MemoryGateway.Query(ctx, table, filter)
}

func (f *fakeGateway) Insert(ctx context.Context, table string, row domain.Row) (domain.Row, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return f.MemoryGateway.Insert(ctx, table, row)
}

func (f *fakeGateway) Update(ctx context.Context, table string, filter domain.Filter, partial domain.Row) (domain.Row, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return f.MemoryGateway.Update(ctx, table, filter, partial)
}

func (f *fakeGateway) Delete(ctx context.Context, table string, filter domain.Filter) error {
	if err := f.hit(); err != nil {
		return err
	}
	return f.MemoryGateway.Delete(ctx, table, filter)
}

func noSleep(ctx context.Context, d time.Duration) error {
	return nil
}

func testDeps(gw domain.Gateway) Deps {
	return Deps{
		Gateway:                gw,
		Retrier:                retry.New(retry.DefaultPolicy, retry.WithSleeper(noSleep), retry.WithLogger(discardLogger)),
		Logger:                 discardLogger,
		MissingRelationAsEmpty: true,
	}
}

type queueSpy struct {
	mu    sync.Mutex
	tasks []domain.Task
}

func (q *queueSpy) Enqueue(task domain.Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
}
