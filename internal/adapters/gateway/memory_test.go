package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/errclass"
)

func TestMemoryGateway_CRUD(t *testing.T) {
	gw := NewMemoryGateway()
	ctx := context.Background()
	now := time.Now().UTC()

	area := 12.5
	_, err := gw.Insert(ctx, domain.TableGardens, domain.Row{
		"id": "g-1", "name": "Moestuin", "location": "Utrecht",
		"total_area": &area, "is_active": true, "created_at": now, "updated_at": now,
	})
	require.NoError(t, err)

	_, err = gw.Insert(ctx, domain.TableGardens, domain.Row{
		"id": "g-2", "name": "Siertuin", "location": "Delft", "is_active": false, "created_at": now, "updated_at": now,
	})
	require.NoError(t, err)

	t.Run("Query with filter", func(t *testing.T) {
		rows, err := gw.Query(ctx, domain.TableGardens, domain.Filter{"is_active": true})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "g-1", rows[0]["id"])
		assert.Equal(t, 12.5, rows[0]["total_area"], "pointers are stored dereferenced")
	})

	t.Run("Query without filter keeps insertion order", func(t *testing.T) {
		rows, err := gw.Query(ctx, domain.TableGardens, nil)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "g-1", rows[0]["id"])
		assert.Equal(t, "g-2", rows[1]["id"])
	})

	t.Run("Returned rows are copies", func(t *testing.T) {
		rows, _ := gw.Query(ctx, domain.TableGardens, domain.Filter{"id": "g-1"})
		rows[0]["name"] = "mutated"

		again, _ := gw.Query(ctx, domain.TableGardens, domain.Filter{"id": "g-1"})
		assert.Equal(t, "Moestuin", again[0]["name"])
	})

	t.Run("Duplicate id is a unique violation", func(t *testing.T) {
		_, err := gw.Insert(ctx, domain.TableGardens, domain.Row{"id": "g-1"})
		assert.Equal(t, domain.CodeUniqueViolation, errclass.Extract(err).Code)
	})

	t.Run("Update returns first match or nil", func(t *testing.T) {
		row, err := gw.Update(ctx, domain.TableGardens, domain.Filter{"id": "g-1"}, domain.Row{"name": "Volkstuin"})
		require.NoError(t, err)
		assert.Equal(t, "Volkstuin", row["name"])

		row, err = gw.Update(ctx, domain.TableGardens, domain.Filter{"id": "nope"}, domain.Row{"name": "x"})
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("Delete removes rows", func(t *testing.T) {
		require.NoError(t, gw.Delete(ctx, domain.TableGardens, domain.Filter{"id": "g-2"}))

		rows, _ := gw.Query(ctx, domain.TableGardens, nil)
		assert.Len(t, rows, 1)
	})

	t.Run("Mutations require a filter", func(t *testing.T) {
		assert.True(t, domain.IsValidation(gw.Delete(ctx, domain.TableGardens, nil)))
		_, err := gw.Update(ctx, domain.TableGardens, domain.Filter{}, domain.Row{"name": "x"})
		assert.True(t, domain.IsValidation(err))
	})
}

func TestMemoryGateway_MissingTable(t *testing.T) {
	gw := NewMemoryGateway()
	gw.DropTable(domain.TableTasks)

	_, err := gw.Query(context.Background(), domain.TableTasks, nil)
	assert.True(t, errclass.IsMissingRelation(err))
	assert.False(t, errclass.IsRetryable(err))
}

func TestMemoryGateway_NilFilterValueMatchesTypedNil(t *testing.T) {
	gw := NewMemoryGateway()
	ctx := context.Background()

	var noPlant *string
	_, err := gw.Insert(ctx, domain.TableTasks, domain.Row{"id": "t-1", "plant_id": noPlant})
	require.NoError(t, err)

	rows, err := gw.Query(ctx, domain.TableTasks, domain.Filter{"plant_id": nil})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
