package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/security-scanner/dashboard/internal/client"
	"github.com/security-scanner/dashboard/internal/dashboard"
	"github.com/security-scanner/dashboard/internal/notify"
	"github.com/security-scanner/dashboard/internal/view"
)

func stubBackend() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
	mux.HandleFunc("/api/stats/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"total_scans": 1}`)
	})
	mux.HandleFunc("/api/scans/create/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"id": 9}`)
	})
	mux.HandleFunc("/api/scans/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/logs/") {
			writeJSON(w, `[{"level": "INFO", "message": "probe"}]`)
			return
		}
		if r.URL.Path != "/api/scans/" {
			writeJSON(w, `{"id": 3, "target_url": "https://detail.example.com", "status": "COMPLETED"}`)
			return
		}
		writeJSON(w, `[{"id": 1, "target_url": "https://list.example.com", "status": "PENDING"}]`)
	})
	mux.HandleFunc("/api/search/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[{"id": 2, "target_url": "https://found.example.com", "status": "COMPLETED"}]`)
	})
	mux.HandleFunc("/api/templates/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[]`)
	})
	return mux
}

func newUIApp(t *testing.T) (*fiber.App, *dashboard.Controller, *notify.Center) {
	t.Helper()
	ts := httptest.NewServer(stubBackend())
	t.Cleanup(ts.Close)

	notes := notify.New()
	api := client.New(ts.URL, "test-key", notes)
	ctrl := dashboard.New(api, notes, view.NewDocument(), view.NewChartRenderer())
	h := NewUIHandler(ctrl, notes)

	app := fiber.New()
	ui := app.Group("/ui")
	ui.Post("/section/:name", h.ShowSection)
	ui.Get("/section/:name", h.GetSection)
	ui.Get("/notifications", h.Notifications)
	ui.Post("/search", h.Search)
	ui.Post("/scans", h.StartScan)
	ui.Get("/scans/:id/modal", h.ScanModal)
	ui.Get("/scans/:id/logs", h.LogsModal)
	ui.Post("/modal/dismiss", h.DismissModal)
	return app, ctrl, notes
}

func TestShowSectionSwitchesActive(t *testing.T) {
	app, ctrl, _ := newUIApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/ui/section/scans", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "scans", ctrl.ActiveSection())
	assert.Equal(t, []string{"scans"}, ctrl.Document().VisibleSections())

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "list.example.com")
}

func TestShowSectionUnknownIs404(t *testing.T) {
	app, ctrl, _ := newUIApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/ui/section/bogus", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "dashboard", ctrl.ActiveSection(), "unknown section must not change state")
}

func TestNotificationsEndpoint(t *testing.T) {
	app, _, notes := newUIApp(t)
	notes.Notify("hello", notify.SeverityInfo)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ui/notifications", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var active []notify.Notification
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&active))
	require.Len(t, active, 1)
	assert.Equal(t, "hello", active[0].Message)
}

func TestSearchEndpointReturnsRows(t *testing.T) {
	app, _, _ := newUIApp(t)

	req := httptest.NewRequest(http.MethodPost, "/ui/search", strings.NewReader(`{"q": "example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "found.example.com")
}

func TestScanModalLifecycle(t *testing.T) {
	app, ctrl, _ := newUIApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ui/scans/3/modal", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "detail.example.com")

	// dismiss twice; both succeed
	for i := 0; i < 2; i++ {
		resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/ui/modal/dismiss", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}

	html, _ := ctrl.Document().Region("modal-root")
	assert.Empty(t, html)
}

func TestLogsModalEndpoint(t *testing.T) {
	app, _, _ := newUIApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ui/scans/3/logs", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "probe")
}
