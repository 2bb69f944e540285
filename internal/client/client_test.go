package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/security-scanner/dashboard/internal/notify"
)

func TestCallSuccess(t *testing.T) {
	var gotKey, gotContentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_scans": 3}`))
	}))
	defer ts.Close()

	center := notify.New()
	c := New(ts.URL, "secret-key", center)

	raw, err := c.Call(context.Background(), http.MethodGet, "/api/stats/", nil)
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 3, decoded["total_scans"])
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "application/json", gotContentType)
	assert.Empty(t, center.Active(), "successful calls must not notify")
}

func TestCallNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "nope"}`, http.StatusForbidden)
	}))
	defer ts.Close()

	center := notify.New()
	c := New(ts.URL, "secret-key", center)

	_, err := c.Call(context.Background(), http.MethodGet, "/api/scans/", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Forbidden", apiErr.Status)
	assert.Contains(t, apiErr.Body, "nope")

	active := center.Active()
	require.Len(t, active, 1, "exactly one notification per failure")
	assert.Equal(t, notify.SeverityError, active[0].Severity)
	assert.Contains(t, active[0].Message, "403")
}

func TestCallNetworkFailure(t *testing.T) {
	center := notify.New()
	c := New("http://127.0.0.1:1", "secret-key", center)

	_, err := c.Call(context.Background(), http.MethodGet, "/api/stats/", nil)
	require.Error(t, err)
	require.Len(t, center.Active(), 1)
	assert.Equal(t, notify.SeverityError, center.Active()[0].Severity)
}

func TestSearchEncodesQuery(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := New(ts.URL, "k", notify.New())
	scans, err := c.Search(context.Background(), "example.com path?x=1")
	require.NoError(t, err)
	assert.Empty(t, scans)
	assert.Equal(t, "example.com path?x=1", gotQuery)
}

func TestExportReportFilename(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/scans/42/export/", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(`{"report": true}`))
	}))
	defer ts.Close()

	c := New(ts.URL, "k", notify.New())
	blob, filename, err := c.ExportReport(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "scan_42_report.json", filename)
	assert.JSONEq(t, `{"report": true}`, string(blob))
}
