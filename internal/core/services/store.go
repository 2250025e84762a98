package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/errclass"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/retry"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/validate"
)

// Deps is what every repository service is built from.
type Deps struct {
	Gateway domain.Gateway
	Retrier *retry.Retrier
	Logger  *slog.Logger

	// MissingRelationAsEmpty makes GetAll report an empty list instead of a
	// failure when the backing table has not been created yet.
	MissingRelationAsEmpty bool
}

// store implements the five repository methods once for any entity type.
type store[T any] struct {
	gw      domain.Gateway
	retrier *retry.Retrier
	log     *slog.Logger

	missingAsEmpty bool

	table   string
	entity  string
	plural  string
	label   string
	scope   domain.Filter
	softDel bool
	nowFn   func() time.Time
}

// resolveDeps fills in the default logger and retrier.
func resolveDeps(deps Deps) Deps {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Retrier == nil {
		deps.Retrier = retry.New(retry.DefaultPolicy, retry.WithLogger(deps.Logger))
	}
	return deps
}

func newStore[T any](deps Deps, table, entity, plural, label string) *store[T] {
	deps = resolveDeps(deps)
	return &store[T]{
		gw:             deps.Gateway,
		retrier:        deps.Retrier,
		log:            deps.Logger.With("table", table),
		missingAsEmpty: deps.MissingRelationAsEmpty,
		table:          table,
		entity:         entity,
		plural:         plural,
		label:          label,
		nowFn:          func() time.Time { return time.Now().UTC() },
	}
}

// softDelete restricts every read to active rows and turns delete into
// is_active=false.
func (s *store[T]) softDelete() *store[T] {
	s.softDel = true
	s.scope = domain.Filter{"is_active": true}
	return s
}

func (s *store[T]) notFound() string {
	return fmt.Sprintf("%s not found", s.label)
}

// scoped merges the store's standing filter into f without touching f.
func (s *store[T]) scoped(f domain.Filter) domain.Filter {
	out := make(domain.Filter, len(f)+len(s.scope))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range s.scope {
		out[k] = v
	}
	return out
}

func (s *store[T]) list(ctx context.Context, filter domain.Filter) domain.Result[[]T] {
	op := "get_all_" + s.plural
	rows, err := retry.Do(ctx, s.retrier, op, func(ctx context.Context) ([]domain.Row, error) {
		return s.gw.Query(ctx, s.table, s.scoped(filter))
	})
	if err != nil {
		if s.missingAsEmpty && errclass.IsMissingRelation(err) {
			s.log.Warn("table missing, returning empty list", "op", op)
			return domain.OK([]T{})
		}
		return fail[[]T](s.log, op, err)
	}

	items, err := decodeRows[T](rows)
	if err != nil {
		return fail[[]T](s.log, op, err)
	}
	return domain.OK(items)
}

func (s *store[T]) get(ctx context.Context, id string) domain.Result[T] {
	op := fmt.Sprintf("get_%s_by_id", s.entity)
	if err := validate.Required(validate.F("id", id)); err != nil {
		return fail[T](s.log, op, err)
	}

	rows, err := retry.Do(ctx, s.retrier, op, func(ctx context.Context) ([]domain.Row, error) {
		return absentAsEmpty(s.gw.Query(ctx, s.table, s.scoped(domain.Filter{"id": id})))
	})
	if err != nil {
		return fail[T](s.log, op, err)
	}
	if len(rows) == 0 {
		return domain.Fail[T](domain.FailureNotFound, s.notFound())
	}

	item, err := decodeRow[T](rows[0])
	if err != nil {
		return fail[T](s.log, op, err)
	}
	return domain.OK(item)
}

func (s *store[T]) create(ctx context.Context, row domain.Row) domain.Result[T] {
	op := "create_" + s.entity
	out, err := retry.Do(ctx, s.retrier, op, func(ctx context.Context) (domain.Row, error) {
		return s.gw.Insert(ctx, s.table, row)
	})
	if err != nil && errclass.Extract(err).Code == domain.CodeUniqueViolation {
		// An earlier attempt may have been stored before its response was lost.
		out, err = s.recoverInsert(ctx, op, row, err)
	}
	if err != nil {
		return fail[T](s.log, op, err)
	}

	item, err := decodeRow[T](out)
	if err != nil {
		return fail[T](s.log, op, err)
	}
	return domain.OK(item)
}

func (s *store[T]) update(ctx context.Context, id string, partial domain.Row) domain.Result[T] {
	op := "update_" + s.entity
	out, err := s.write(ctx, op, id, nil, partial)
	if err != nil {
		return fail[T](s.log, op, err)
	}
	if out == nil {
		return domain.Fail[T](domain.FailureNotFound, s.notFound())
	}

	item, err := decodeRow[T](out)
	if err != nil {
		return fail[T](s.log, op, err)
	}
	return domain.OK(item)
}

// updateIf applies partial only while the row also matches cond. matched is
// false when it did not; the result then holds the row as currently stored.
func (s *store[T]) updateIf(ctx context.Context, id string, cond domain.Filter, partial domain.Row) (res domain.Result[T], matched bool) {
	op := "update_" + s.entity
	out, err := s.write(ctx, op, id, cond, partial)
	if err != nil {
		return fail[T](s.log, op, err), false
	}
	if out == nil {
		return s.get(ctx, id), false
	}

	item, err := decodeRow[T](out)
	if err != nil {
		return fail[T](s.log, op, err), false
	}
	return domain.OK(item), true
}

// write runs one retried Update on the row with the given id. A nil row means
// nothing matched.
func (s *store[T]) write(ctx context.Context, op, id string, cond domain.Filter, partial domain.Row) (domain.Row, error) {
	if err := validate.Required(validate.F("id", id)); err != nil {
		return nil, err
	}

	filter := s.scoped(cond)
	filter["id"] = id
	partial["updated_at"] = s.nowFn()

	return retry.Do(ctx, s.retrier, op, func(ctx context.Context) (domain.Row, error) {
		return absentAsEmpty(s.gw.Update(ctx, s.table, filter, partial))
	})
}

// recoverInsert looks for row by its generated id after a unique violation.
// When it is there the insert did land and the stored row is returned.
func (s *store[T]) recoverInsert(ctx context.Context, op string, row domain.Row, insertErr error) (domain.Row, error) {
	id, ok := row["id"].(string)
	if !ok || id == "" {
		return nil, insertErr
	}
	rows, err := retry.Do(ctx, s.retrier, op, func(ctx context.Context) ([]domain.Row, error) {
		return absentAsEmpty(s.gw.Query(ctx, s.table, domain.Filter{"id": id}))
	})
	if err != nil || len(rows) == 0 {
		return nil, insertErr
	}
	s.log.Warn("insert already stored by an earlier attempt", "op", op, "id", id)
	return rows[0], nil
}

func (s *store[T]) remove(ctx context.Context, id string) domain.Result[bool] {
	op := "delete_" + s.entity
	if err := validate.Required(validate.F("id", id)); err != nil {
		return fail[bool](s.log, op, err)
	}

	if s.softDel {
		out, err := s.write(ctx, op, id, nil, domain.Row{"is_active": false})
		if err != nil {
			return fail[bool](s.log, op, err)
		}
		if out == nil {
			return domain.Fail[bool](domain.FailureNotFound, s.notFound())
		}
		return domain.OK(true)
	}

	_, err := retry.Do(ctx, s.retrier, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.gw.Delete(ctx, s.table, domain.Filter{"id": id})
	})
	if err != nil {
		return fail[bool](s.log, op, err)
	}
	return domain.OK(true)
}

// absentAsEmpty turns a backend "no rows" answer into an empty one so the
// retry loop does not back off on it.
func absentAsEmpty[R any](v R, err error) (R, error) {
	if err != nil && errclass.IsNotFound(err) {
		var zero R
		return zero, nil
	}
	return v, err
}

// fail converts an error into a failed Result. Raw backend errors never reach
// the caller; they are logged and replaced by a display message.
func fail[T any](log *slog.Logger, op string, err error) domain.Result[T] {
	if domain.IsValidation(err) {
		return domain.Fail[T](domain.FailureValidation, err.Error())
	}
	if errclass.IsNotFound(err) {
		return domain.Fail[T](domain.FailureNotFound, errclass.CategoryNotFound.Message())
	}

	log.Error("operation failed", "op", op, "error", err)

	kind := domain.FailureBackend
	category := errclass.Classify(err)
	if category == errclass.CategoryAuth {
		kind = domain.FailureUnauthorized
	}
	return domain.Fail[T](kind, category.Message())
}
