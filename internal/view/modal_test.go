package view

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/security-scanner/dashboard/internal/models"
)

func newModalDocument() *Document {
	doc := NewDocument()
	doc.RegisterRegion("modal-root")
	return doc
}

func TestMountAndDismiss(t *testing.T) {
	doc := newModalDocument()

	mounted := Mount(doc, Modal{Title: "Scan Details", Body: "<p>body</p>"})
	html, ok := doc.Region("modal-root")
	require.True(t, ok)
	assert.Contains(t, html, "Scan Details")
	assert.Contains(t, html, "<p>body</p>")

	mounted.Dismiss()
	html, _ = doc.Region("modal-root")
	assert.Empty(t, html)
}

func TestDismissFromEveryAffordanceTearsDownOnce(t *testing.T) {
	doc := newModalDocument()
	mounted := Mount(doc, Modal{Title: "t", Body: "b"})

	// close button, backdrop click, escape key all funnel here
	mounted.Dismiss()

	// a later mount must survive redundant dismissals of the old overlay
	Mount(doc, Modal{Title: "second", Body: "still here"})
	mounted.Dismiss()
	mounted.Dismiss()

	html, _ := doc.Region("modal-root")
	assert.Contains(t, html, "still here")
}

func TestScanDetailModalContent(t *testing.T) {
	started := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	report, _ := json.Marshal([]map[string]any{
		{"alert": "XSS", "risk": "High", "url": "https://example.com/q"},
	})

	scan := &models.Scan{
		ID:                    42,
		TargetURL:             "https://example.com",
		Engine:                models.EngineZAP,
		Status:                models.StatusCompleted,
		StartTime:             &started,
		FindingsCount:         5,
		CriticalFindingsCount: 1,
		ReportJSON:            report,
	}

	modal := ScanDetailModal(scan)
	assert.Equal(t, "Scan Details - https://example.com", modal.Title)
	assert.Contains(t, modal.Body, "42")
	assert.Contains(t, modal.Body, "zap")
	assert.Contains(t, modal.Body, "Total Findings: <strong>5</strong>")
	assert.Contains(t, modal.Body, "Critical Findings: <strong>1</strong>")
	assert.Contains(t, modal.Body, "N/A") // end time missing
	assert.Contains(t, modal.Body, "XSS")
	assert.Contains(t, modal.Body, "Detailed Report")
}

func TestScanDetailModalWithoutReport(t *testing.T) {
	scan := &models.Scan{ID: 1, TargetURL: "https://example.com", Status: models.StatusInProgress}
	modal := ScanDetailModal(scan)
	assert.NotContains(t, modal.Body, "Detailed Report")
}

func TestLogsModalContent(t *testing.T) {
	ts := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	logs := []models.LogEntry{
		{Timestamp: &ts, Level: models.LogLevelInfo, Message: "scan started"},
		{Timestamp: &ts, Level: "TRACE", Message: "odd level", Context: map[string]any{"port": float64(443)}},
	}

	modal := LogsModal(7, logs)
	assert.Equal(t, "Scan Logs - Scan #7", modal.Title)
	assert.Contains(t, modal.Body, "scan started")
	assert.Contains(t, modal.Body, "bg-info")
	// unmapped level gets the neutral badge and the context is JSON
	assert.Contains(t, modal.Body, "bg-secondary")
	assert.Contains(t, modal.Body, `{&#34;port&#34;:443}`)
}
