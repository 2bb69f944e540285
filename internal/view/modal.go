package view

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/security-scanner/dashboard/internal/models"
)

// modalRegion is where the currently open overlay lives in the document.
const modalRegion = "modal-root"

// Modal is a value describing a transient overlay: it only touches the
// document when mounted.
type Modal struct {
	Title string
	Body  string
}

// Mounted is a modal that has been inserted into the document. Dismissal
// tears it down exactly once no matter how many affordances trigger it.
type Mounted struct {
	doc  *Document
	once sync.Once
}

// Mount inserts the modal into the document's overlay region.
func Mount(doc *Document, m Modal) *Mounted {
	var b strings.Builder
	b.WriteString(`<div class="modal-dialog"><div class="modal-content">`)
	fmt.Fprintf(&b, `<div class="modal-header"><h5 class="modal-title">%s</h5>`, html.EscapeString(m.Title))
	b.WriteString(`<button type="button" class="btn-close" data-action="dismiss"></button></div>`)
	fmt.Fprintf(&b, `<div class="modal-body">%s</div>`, m.Body)
	b.WriteString(`</div></div>`)

	doc.SetRegion(modalRegion, b.String())
	return &Mounted{doc: doc}
}

// Dismiss removes the overlay and frees its region. Safe to call from every
// dismissal path; only the first call has an effect.
func (m *Mounted) Dismiss() {
	m.once.Do(func() {
		m.doc.SetRegion(modalRegion, "")
	})
}

// ScanDetailModal summarises one scan: identity, status, engine, timestamps,
// findings counts, and the pretty-printed report when present.
func ScanDetailModal(scan *models.Scan) Modal {
	var b strings.Builder

	b.WriteString(`<h6>Basic Information</h6><table class="table table-sm">`)
	fmt.Fprintf(&b, "<tr><td>ID:</td><td>%d</td></tr>", scan.ID)
	fmt.Fprintf(&b, "<tr><td>Status:</td><td>%s</td></tr>", StatusBadge(scan.Status))
	fmt.Fprintf(&b, "<tr><td>Engine:</td><td>%s</td></tr>", html.EscapeString(scan.Engine))
	fmt.Fprintf(&b, "<tr><td>Started:</td><td>%s</td></tr>", FormatDate(scan.StartTime))
	fmt.Fprintf(&b, "<tr><td>Completed:</td><td>%s</td></tr>", FormatDate(scan.EndTime))
	b.WriteString("</table>")

	b.WriteString(`<h6>Findings Summary</h6><div class="alert alert-info">`)
	fmt.Fprintf(&b, "Total Findings: <strong>%d</strong><br>", scan.FindingsCount)
	fmt.Fprintf(&b, "Critical Findings: <strong>%d</strong>", scan.CriticalFindingsCount)
	b.WriteString("</div>")

	if scan.ErrorMessage != nil && *scan.ErrorMessage != "" {
		fmt.Fprintf(&b, `<div class="alert alert-danger">%s</div>`, html.EscapeString(*scan.ErrorMessage))
	}

	if findings := models.FindingsFromReport(scan.ReportJSON); len(findings) > 0 {
		b.WriteString(`<h6>Findings</h6><table class="table table-sm"><thead><tr><th>Name</th><th>Severity</th><th>URL</th></tr></thead><tbody>`)
		for _, f := range findings {
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>",
				html.EscapeString(f.Name), html.EscapeString(f.Severity), html.EscapeString(f.URL))
		}
		b.WriteString("</tbody></table>")
	}

	if len(scan.ReportJSON) > 0 {
		b.WriteString(`<h6>Detailed Report</h6>`)
		fmt.Fprintf(&b, `<pre class="bg-light p-3 rounded"><code>%s</code></pre>`,
			html.EscapeString(prettyJSON(scan.ReportJSON)))
	}

	return Modal{
		Title: "Scan Details - " + scan.TargetURL,
		Body:  b.String(),
	}
}

// LogsModal renders a scan's execution log in backend order.
func LogsModal(scanID int, logs []models.LogEntry) Modal {
	var b strings.Builder
	b.WriteString(`<table class="table table-sm"><thead><tr><th>Timestamp</th><th>Level</th><th>Message</th><th>Context</th></tr></thead><tbody>`)
	for _, entry := range logs {
		context := ""
		if entry.Context != nil {
			if encoded, err := json.Marshal(entry.Context); err == nil {
				context = string(encoded)
			}
		}
		fmt.Fprintf(&b, `<tr><td>%s</td><td><span class="badge bg-%s">%s</span></td><td>%s</td><td>%s</td></tr>`,
			FormatDate(entry.Timestamp),
			LogLevelBadgeClass(entry.Level),
			html.EscapeString(entry.Level),
			html.EscapeString(entry.Message),
			html.EscapeString(context))
	}
	b.WriteString("</tbody></table>")

	return Modal{
		Title: fmt.Sprintf("Scan Logs - Scan #%d", scanID),
		Body:  b.String(),
	}
}

func prettyJSON(raw json.RawMessage) string {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw)
	}
	pretty, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(pretty)
}
