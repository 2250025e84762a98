package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
)

var _ domain.Gateway = (*SQLGateway)(nil)

var identRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// KnownTables lists every table the gateways accept.
var KnownTables = []string{
	domain.TableGardens,
	domain.TablePlantBeds,
	domain.TablePlants,
	domain.TableTasks,
	domain.TableLogbookEntries,
	domain.TableUsers,
}

// SQLGateway implements domain.Gateway on any sqlx database. Placeholders are
// written as '?' and rebound for the driver in use.
type SQLGateway struct {
	db     *sqlx.DB
	tables map[string]bool
	log    *slog.Logger
}

func NewSQLGateway(db *sqlx.DB, log *slog.Logger) *SQLGateway {
	if log == nil {
		log = slog.Default()
	}
	tables := make(map[string]bool, len(KnownTables))
	for _, t := range KnownTables {
		tables[t] = true
	}
	return &SQLGateway{db: db, tables: tables, log: log}
}

func (g *SQLGateway) Query(ctx context.Context, table string, filter domain.Filter) ([]domain.Row, error) {
	if err := g.checkTable(table); err != nil {
		return nil, err
	}
	where, args, err := buildWhere(filter)
	if err != nil {
		return nil, err
	}

	query := g.db.Rebind(fmt.Sprintf("SELECT * FROM %s%s ORDER BY created_at ASC", table, where))

	rows, err := g.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	return collect(rows)
}

func (g *SQLGateway) Insert(ctx context.Context, table string, row domain.Row) (domain.Row, error) {
	if err := g.checkTable(table); err != nil {
		return nil, err
	}
	if len(row) == 0 {
		return nil, &domain.ValidationError{Field: "row"}
	}

	cols, args, err := splitRow(row)
	if err != nil {
		return nil, err
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

	query := g.db.Rebind(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(cols, ", "), placeholders,
	))

	rows, err := g.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	out, err := collect(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, domain.NewBackendError(domain.CodeNoRows, "insert returned no row")
	}
	return out[0], nil
}

func (g *SQLGateway) Update(ctx context.Context, table string, filter domain.Filter, partial domain.Row) (domain.Row, error) {
	if err := g.checkTable(table); err != nil {
		return nil, err
	}
	if len(filter) == 0 {
		return nil, &domain.ValidationError{Field: "filter"}
	}
	if len(partial) == 0 {
		return nil, &domain.ValidationError{Field: "partial"}
	}

	cols, setArgs, err := splitRow(partial)
	if err != nil {
		return nil, err
	}
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}

	where, whereArgs, err := buildWhere(filter)
	if err != nil {
		return nil, err
	}

	query := g.db.Rebind(fmt.Sprintf("UPDATE %s SET %s%s RETURNING *", table, strings.Join(sets, ", "), where))

	rows, err := g.db.QueryxContext(ctx, query, append(setArgs, whereArgs...)...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	out, err := collect(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (g *SQLGateway) Delete(ctx context.Context, table string, filter domain.Filter) error {
	if err := g.checkTable(table); err != nil {
		return err
	}
	if len(filter) == 0 {
		return &domain.ValidationError{Field: "filter"}
	}
	where, args, err := buildWhere(filter)
	if err != nil {
		return err
	}

	res, err := g.db.ExecContext(ctx, g.db.Rebind(fmt.Sprintf("DELETE FROM %s%s", table, where)), args...)
	if err != nil {
		return translateError(err)
	}
	if n, err := res.RowsAffected(); err == nil {
		g.log.Debug("rows deleted", "table", table, "count", n)
	}
	return nil
}

func (g *SQLGateway) Ping(ctx context.Context) error {
	return translateError(g.db.PingContext(ctx))
}

func (g *SQLGateway) checkTable(table string) error {
	if !g.tables[table] {
		return domain.NewBackendError(domain.CodeUndefinedTable, fmt.Sprintf("relation %q does not exist", table))
	}
	return nil
}

func collect(rows *sqlx.Rows) ([]domain.Row, error) {
	out := []domain.Row{}
	for rows.Next() {
		m := map[string]any{}
		if err := rows.MapScan(m); err != nil {
			return nil, translateError(err)
		}
		out = append(out, normalizeRow(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// normalizeRow turns driver byte slices into strings so rows decode the same
// way regardless of driver.
func normalizeRow(m map[string]any) domain.Row {
	row := make(domain.Row, len(m))
	for k, v := range m {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
			continue
		}
		row[k] = v
	}
	return row
}

func sortedKeys[M ~map[string]any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func splitRow(row domain.Row) ([]string, []any, error) {
	cols := sortedKeys(row)
	args := make([]any, len(cols))
	for i, c := range cols {
		if !identRegex.MatchString(c) {
			return nil, nil, &domain.ValidationError{Field: c}
		}
		args[i] = row[c]
	}
	return cols, args, nil
}

func buildWhere(filter domain.Filter) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	cols := sortedKeys(filter)
	conds := make([]string, len(cols))
	args := make([]any, 0, len(cols))
	for i, c := range cols {
		if !identRegex.MatchString(c) {
			return "", nil, &domain.ValidationError{Field: c}
		}
		if filter[c] == nil {
			conds[i] = c + " IS NULL"
			continue
		}
		conds[i] = c + " = ?"
		args = append(args, filter[c])
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}
