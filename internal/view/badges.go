package view

import (
	"fmt"
	"html"
	"time"

	"github.com/security-scanner/dashboard/internal/models"
)

var statusBadgeClasses = map[string]string{
	models.StatusPending:    "bg-secondary",
	models.StatusInProgress: "bg-warning",
	models.StatusCompleted:  "bg-success",
	models.StatusFailed:     "bg-danger",
	models.StatusCancelled:  "bg-dark",
}

// StatusBadgeClass maps a scan status to its badge style. Unknown statuses
// get the neutral style rather than an error.
func StatusBadgeClass(status string) string {
	if class, ok := statusBadgeClasses[status]; ok {
		return class
	}
	return "bg-secondary"
}

// StatusBadge renders the badge element for a status.
func StatusBadge(status string) string {
	return fmt.Sprintf(`<span class="badge %s">%s</span>`, StatusBadgeClass(status), html.EscapeString(status))
}

// EngineBadge renders the badge element for an engine.
func EngineBadge(engine string) string {
	return fmt.Sprintf(`<span class="badge bg-secondary">%s</span>`, html.EscapeString(engine))
}

var logLevelBadgeClasses = map[string]string{
	models.LogLevelInfo:    "info",
	models.LogLevelWarning: "warning",
	models.LogLevelError:   "danger",
	models.LogLevelDebug:   "secondary",
}

// LogLevelBadgeClass maps a log level to its badge style with a neutral
// fallback for unmapped levels.
func LogLevelBadgeClass(level string) string {
	if class, ok := logLevelBadgeClasses[level]; ok {
		return class
	}
	return "secondary"
}

// FormatDate renders a nullable timestamp. A missing timestamp is the
// literal "N/A"; otherwise the output carries a date and a time portion.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02") + " " + t.Format("15:04:05")
}
