package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/config"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/retry"
)

type apiResult struct {
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
	Success bool            `json:"success"`
}

type client struct {
	base  string
	token string
}

func (c *client) fetch(method, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	return resp.StatusCode, out, err
}

func (c *client) call(t *testing.T, method, path string, payload any) (int, []byte) {
	t.Helper()
	status, body, err := c.fetch(method, path, payload)
	require.NoError(t, err)
	return status, body
}

func (c *client) result(t *testing.T, method, path string, payload any, wantStatus int, into any) apiResult {
	t.Helper()
	status, body := c.call(t, method, path, payload)
	require.Equal(t, wantStatus, status, string(body))

	var res apiResult
	require.NoError(t, json.Unmarshal(body, &res))
	if into != nil {
		require.NoError(t, json.Unmarshal(res.Data, into))
	}
	return res
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Port:                   "0",
		LogLevel:               slog.LevelInfo,
		Backend:                config.BackendSQLite,
		SQLitePath:             filepath.Join(t.TempDir(), "tuin.db"),
		JWTSecret:              "e2e-secret",
		JWTIssuer:              "tuinbeheer",
		TokenTTL:               time.Hour,
		Retry:                  retry.Policy{MaxRetries: 1, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffMultiplier: 1},
		MissingRelationAsEmpty: true,
	}
}

func TestEndToEnd_GardenLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, testConfig(t), log)
	require.NoError(t, err)
	defer a.close()

	workerDone := a.worker.Start(ctx)

	srv := httptest.NewServer(a.router)
	defer srv.Close()

	c := &client{base: srv.URL}

	t.Run("1. Register and login", func(t *testing.T) {
		status, body := c.call(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"email": "Tuinier@Example.nl", "password": "Zonnebloem2024!",
		})
		require.Equal(t, http.StatusCreated, status, string(body))

		status, body = c.call(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"email": "tuinier@example.nl", "password": "Zonnebloem2024!",
		})
		require.Equal(t, http.StatusOK, status, string(body))

		var login struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(body, &login))
		require.NotEmpty(t, login.Token)
		c.token = login.Token
	})

	var garden domain.Garden
	var bed domain.PlantBed
	var plant domain.Plant
	var task domain.Task

	t.Run("2. Build the hierarchy", func(t *testing.T) {
		c.result(t, http.MethodPost, "/api/v1/gardens", map[string]any{
			"name": "Volkstuin De Bloei", "location": "Amersfoort", "total_area": 250.5,
		}, http.StatusCreated, &garden)
		assert.True(t, garden.IsActive)

		c.result(t, http.MethodPost, "/api/v1/plant-beds", map[string]any{
			"garden_id": garden.ID, "name": "Bed 1", "sun_exposure": "partial-sun",
		}, http.StatusCreated, &bed)

		c.result(t, http.MethodPost, "/api/v1/plants", map[string]any{
			"plant_bed_id": bed.ID, "name": "Courgette", "status": "healthy",
		}, http.StatusCreated, &plant)

		c.result(t, http.MethodPost, "/api/v1/tasks", map[string]any{
			"plant_id": plant.ID, "title": "Mulchen", "description": "Stro rond de stelen",
			"due_date": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
			"priority": "medium", "task_type": "general",
		}, http.StatusCreated, &task)
		assert.False(t, task.Completed)
	})

	t.Run("3. Validation failures keep the envelope", func(t *testing.T) {
		res := c.result(t, http.MethodPost, "/api/v1/gardens", map[string]any{"name": "", "location": "X"}, http.StatusBadRequest, nil)
		assert.False(t, res.Success)
		require.NotNil(t, res.Error)
		assert.Equal(t, "Name and location are required", *res.Error)
		assert.Equal(t, "null", string(res.Data))
	})

	t.Run("4. Completing a task writes a logbook entry", func(t *testing.T) {
		var done domain.Task
		c.result(t, http.MethodPost, "/api/v1/tasks/"+task.ID+"/complete", nil, http.StatusOK, &done)
		assert.True(t, done.Completed)

		var entries []domain.LogbookEntry
		require.Eventually(t, func() bool {
			status, body, err := c.fetch(http.MethodGet, "/api/v1/logbook?garden_id="+garden.ID, nil)
			if err != nil || status != http.StatusOK {
				return false
			}
			var res apiResult
			if json.Unmarshal(body, &res) != nil || json.Unmarshal(res.Data, &entries) != nil {
				return false
			}
			return len(entries) == 1
		}, 3*time.Second, 20*time.Millisecond)

		require.NotNil(t, entries[0].PlantID)
		assert.Equal(t, plant.ID, *entries[0].PlantID)
		assert.Contains(t, entries[0].Notes, "Task completed: Mulchen")
	})

	t.Run("5. Soft delete hides the garden but keeps the row", func(t *testing.T) {
		var deleted bool
		c.result(t, http.MethodDelete, "/api/v1/gardens/"+garden.ID, nil, http.StatusOK, &deleted)
		assert.True(t, deleted)

		c.result(t, http.MethodGet, "/api/v1/gardens/"+garden.ID, nil, http.StatusNotFound, nil)

		var gardens []domain.Garden
		c.result(t, http.MethodGet, "/api/v1/gardens", nil, http.StatusOK, &gardens)
		assert.Empty(t, gardens)

		var b domain.PlantBed
		c.result(t, http.MethodGet, "/api/v1/plant-beds/"+bed.ID, nil, http.StatusOK, &b)
		assert.Equal(t, garden.ID, b.GardenID)
	})

	t.Run("6. Health reports the database", func(t *testing.T) {
		status, body := c.call(t, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), `"database":"connected"`)
	})

	cancel()
	select {
	case <-workerDone:
	case <-time.After(2 * time.Second):
		t.Fatal("logbook worker did not stop")
	}
}
