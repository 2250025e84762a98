package gateway

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
)

var _ domain.Gateway = (*MemoryGateway)(nil)

// MemoryGateway keeps every table in process memory. Rows are keyed by their
// "id" column and returned in insertion order.
type MemoryGateway struct {
	mu     sync.RWMutex
	tables map[string]*memTable
}

type memTable struct {
	order []string
	rows  map[string]domain.Row
}

func NewMemoryGateway() *MemoryGateway {
	tables := make(map[string]*memTable, len(KnownTables))
	for _, t := range KnownTables {
		tables[t] = &memTable{rows: make(map[string]domain.Row)}
	}
	return &MemoryGateway{tables: tables}
}

func (g *MemoryGateway) Query(ctx context.Context, table string, filter domain.Filter) ([]domain.Row, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	t, err := g.table(table)
	if err != nil {
		return nil, err
	}

	out := []domain.Row{}
	for _, id := range t.order {
		row := t.rows[id]
		if matches(row, filter) {
			out = append(out, cloneRow(row))
		}
	}
	return out, nil
}

func (g *MemoryGateway) Insert(ctx context.Context, table string, row domain.Row) (domain.Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, err := g.table(table)
	if err != nil {
		return nil, err
	}

	id, ok := row["id"].(string)
	if !ok || id == "" {
		return nil, &domain.ValidationError{Field: "id"}
	}
	if _, exists := t.rows[id]; exists {
		return nil, domain.NewBackendError(domain.CodeUniqueViolation,
			fmt.Sprintf("duplicate key value violates unique constraint \"%s_pkey\"", table))
	}

	stored := cloneRow(row)
	t.rows[id] = stored
	t.order = append(t.order, id)
	return cloneRow(stored), nil
}

func (g *MemoryGateway) Update(ctx context.Context, table string, filter domain.Filter, partial domain.Row) (domain.Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, err := g.table(table)
	if err != nil {
		return nil, err
	}
	if len(filter) == 0 {
		return nil, &domain.ValidationError{Field: "filter"}
	}

	var first domain.Row
	for _, id := range t.order {
		row := t.rows[id]
		if !matches(row, filter) {
			continue
		}
		for k, v := range partial {
			row[k] = deref(v)
		}
		if first == nil {
			first = cloneRow(row)
		}
	}
	return first, nil
}

func (g *MemoryGateway) Delete(ctx context.Context, table string, filter domain.Filter) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, err := g.table(table)
	if err != nil {
		return err
	}
	if len(filter) == 0 {
		return &domain.ValidationError{Field: "filter"}
	}

	kept := t.order[:0]
	for _, id := range t.order {
		if matches(t.rows[id], filter) {
			delete(t.rows, id)
			continue
		}
		kept = append(kept, id)
	}
	t.order = kept
	return nil
}

func (g *MemoryGateway) Ping(ctx context.Context) error {
	return ctx.Err()
}

// DropTable simulates a backend where the table has not been created yet.
func (g *MemoryGateway) DropTable(table string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.tables, table)
}

func (g *MemoryGateway) table(name string) (*memTable, error) {
	t, ok := g.tables[name]
	if !ok {
		return nil, domain.NewBackendError(domain.CodeUndefinedTable, fmt.Sprintf("relation %q does not exist", name))
	}
	return t, nil
}

func matches(row domain.Row, filter domain.Filter) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(deref(row[k]), deref(want)) {
			return false
		}
	}
	return true
}

func cloneRow(row domain.Row) domain.Row {
	out := make(domain.Row, len(row))
	for k, v := range row {
		out[k] = deref(v)
	}
	return out
}

// deref stores pointed-to values so callers cannot mutate stored rows and a
// typed nil compares equal to nil.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v
	}
	if rv.IsNil() {
		return nil
	}
	return rv.Elem().Interface()
}
