package userdata_test

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"torch-calculator/feature/userdata"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Data    map[string]any `json:"data"`
}

func setupTestApp(t *testing.T) (*fiber.App, *userdata.Store) {
	store := newStore(t)
	app := fiber.New()
	require.NoError(t, userdata.NewFeature(store, nil, zap.NewNop()).Load(app))
	return app, store
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, apiResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHandleLoad_Empty(t *testing.T) {
	app, _ := setupTestApp(t)

	status, body := do(t, app, "GET", "/api/load-data", "")
	assert.Equal(t, 200, status)
	assert.True(t, body.Success)
	assert.NotNil(t, body.Data)
	assert.Empty(t, body.Data)
}

func TestHandleSave_ThenLoad(t *testing.T) {
	app, _ := setupTestApp(t)

	status, body := do(t, app, "POST", "/api/save-data", `{"theme":"dark","prices":{"灰烬":3}}`)
	assert.Equal(t, 200, status)
	assert.True(t, body.Success)

	status, _ = do(t, app, "POST", "/api/save-data", `{"theme":"light"}`)
	require.Equal(t, 200, status)

	status, body = do(t, app, "GET", "/api/load-data", "")
	assert.Equal(t, 200, status)
	assert.True(t, body.Success)
	assert.Equal(t, "light", body.Data["theme"])
	assert.Equal(t, map[string]any{"灰烬": float64(3)}, body.Data["prices"])
}

func TestHandleSave_InvalidFormat(t *testing.T) {
	for _, payload := range []string{`[1,2,3]`, `"x"`, `7`, `not json`} {
		t.Run(payload, func(t *testing.T) {
			app, store := setupTestApp(t)

			status, body := do(t, app, "POST", "/api/save-data", payload)
			assert.Equal(t, 400, status)
			assert.False(t, body.Success)
			assert.Equal(t, "无效的数据格式", body.Error)
			assert.NoFileExists(t, store.Path())
		})
	}
}

func TestHandleSave_WriteFailure(t *testing.T) {
	app, store := setupTestApp(t)
	require.NoError(t, os.Mkdir(store.Path(), 0o755))

	status, body := do(t, app, "POST", "/api/save-data", `{"a":1}`)
	assert.Equal(t, 500, status)
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
}

func TestHandleLoad_CorruptFile(t *testing.T) {
	app, store := setupTestApp(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{broken"), 0o644))

	status, body := do(t, app, "GET", "/api/load-data", "")
	assert.Equal(t, 500, status)
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
}

func TestHandleSave_Concurrent(t *testing.T) {
	app, store := setupTestApp(t)

	var wg sync.WaitGroup
	for _, payload := range []string{`{"a":1}`, `{"b":2}`} {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			req := httptest.NewRequest("POST", "/api/save-data", strings.NewReader(p))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if assert.NoError(t, err) {
				assert.Equal(t, 200, resp.StatusCode)
			}
		}(payload)
	}
	wg.Wait()

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Contains(t, doc, "a")
	assert.Contains(t, doc, "b")
}
