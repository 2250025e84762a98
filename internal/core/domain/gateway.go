package domain

import (
	"context"
)

const (
	TableGardens        = "gardens"
	TablePlantBeds      = "plant_beds"
	TablePlants         = "plants"
	TableTasks          = "tasks"
	TableLogbookEntries = "logbook_entries"
	TableUsers          = "users"
)

// Row is a single record as it crosses the gateway, keyed by column name.
type Row map[string]any

// Filter is a conjunction of column = value conditions.
type Filter map[string]any

// Gateway is the remote data backend the repository layer talks to.
// Every error it returns should be a *BackendError so the classifier can read its code.
type Gateway interface {
	// Query returns every row of table matching filter, oldest first.
	Query(ctx context.Context, table string, filter Filter) ([]Row, error)

	// Insert stores row and returns it as persisted.
	Insert(ctx context.Context, table string, row Row) (Row, error)

	// Update applies partial to the rows matching filter and returns the first updated row,
	// or nil when nothing matched.
	Update(ctx context.Context, table string, filter Filter, partial Row) (Row, error)

	// Delete removes the rows matching filter.
	Delete(ctx context.Context, table string, filter Filter) error

	// Ping validates that the backend is reachable.
	Ping(ctx context.Context) error
}
