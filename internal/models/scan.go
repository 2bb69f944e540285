package models

import (
	"encoding/json"
	"time"
)

// Engines supported by the scanning backend.
const (
	EngineZAP    = "zap"
	EngineNmap   = "nmap"
	EngineSQLMap = "sqlmap"
	EngineWapiti = "wapiti"
)

// Engines lists the valid engine values in display order.
var Engines = []string{EngineZAP, EngineNmap, EngineSQLMap, EngineWapiti}

// ValidEngine reports whether e is one of the supported engines.
func ValidEngine(e string) bool {
	for _, known := range Engines {
		if e == known {
			return true
		}
	}
	return false
}

// Scan statuses as reported by the backend.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusCancelled  = "CANCELLED"
)

// Scan is a single scan record owned by the backend. The dashboard never
// mutates a Scan, it only re-fetches it.
type Scan struct {
	ID                    int             `json:"id"`
	TargetURL             string          `json:"target_url"`
	Engine                string          `json:"engine"`
	Status                string          `json:"status"`
	StartTime             *time.Time      `json:"start_time,omitempty"`
	EndTime               *time.Time      `json:"end_time,omitempty"`
	FindingsCount         int             `json:"findings_count"`
	CriticalFindingsCount int             `json:"critical_findings_count"`
	ReportJSON            json.RawMessage `json:"report_json,omitempty"`
	ErrorMessage          *string         `json:"error_message,omitempty"`
}

// Template is a named, reusable scan configuration.
type Template struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Engine string `json:"engine"`
}

// Log levels emitted by the backend.
const (
	LogLevelInfo    = "INFO"
	LogLevelWarning = "WARNING"
	LogLevelError   = "ERROR"
	LogLevelDebug   = "DEBUG"
)

// LogEntry is one line of a scan's execution log, ordered by timestamp
// ascending as returned by the backend.
type LogEntry struct {
	Timestamp *time.Time     `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
}

// Stats is the aggregate counters panel plus the per-engine breakdown.
type Stats struct {
	TotalScans       int           `json:"total_scans"`
	CompletedScans   int           `json:"completed_scans"`
	InProgressScans  int           `json:"in_progress_scans"`
	CriticalFindings int           `json:"critical_findings"`
	EngineBreakdown  []EngineCount `json:"engine_breakdown,omitempty"`
	DailyActivity    []int         `json:"daily_activity,omitempty"`
}

type EngineCount struct {
	Engine string `json:"engine"`
	Count  int    `json:"count"`
}

// CreateScanRequest is the scan submission body.
type CreateScanRequest struct {
	TargetURL  string         `json:"target_url"`
	Engine     string         `json:"engine"`
	TemplateID *int           `json:"template_id,omitempty"`
	Options    map[string]any `json:"options,omitempty"`
}

// CreateScanResponse is the minimal backend reply to a submission.
type CreateScanResponse struct {
	ID     int    `json:"id"`
	Status string `json:"status,omitempty"`
}
