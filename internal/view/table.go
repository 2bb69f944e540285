package view

import (
	"fmt"
	"html"
	"strings"

	"github.com/security-scanner/dashboard/internal/models"
)

// previewLimit caps the dashboard's recent-scans table.
const previewLimit = 10

// RenderScanPreview renders the dashboard preview rows: the first ten scans
// in the order received, with view and download actions.
func RenderScanPreview(scans []models.Scan) string {
	if len(scans) > previewLimit {
		scans = scans[:previewLimit]
	}
	return renderScanRows(scans, false)
}

// RenderScanListing renders the full listing: every scan, with the logs
// action added.
func RenderScanListing(scans []models.Scan) string {
	return renderScanRows(scans, true)
}

func renderScanRows(scans []models.Scan, full bool) string {
	var b strings.Builder
	for _, scan := range scans {
		target := html.EscapeString(scan.TargetURL)

		b.WriteString("<tr>")
		fmt.Fprintf(&b, "<td>%d</td>", scan.ID)
		fmt.Fprintf(&b, `<td><a href="%s" target="_blank" rel="noopener">%s</a></td>`, target, target)
		fmt.Fprintf(&b, "<td>%s</td>", EngineBadge(scan.Engine))
		fmt.Fprintf(&b, "<td>%s</td>", StatusBadge(scan.Status))

		b.WriteString("<td>")
		fmt.Fprintf(&b, `<span class="badge bg-info">%d</span>`, scan.FindingsCount)
		if scan.CriticalFindingsCount > 0 {
			fmt.Fprintf(&b, `<span class="badge bg-danger ms-1">%d</span>`, scan.CriticalFindingsCount)
		}
		b.WriteString("</td>")

		fmt.Fprintf(&b, "<td>%s</td>", FormatDate(scan.StartTime))

		b.WriteString("<td>")
		fmt.Fprintf(&b, `<button class="btn btn-sm btn-outline-primary" data-action="view" data-scan-id="%d">View</button>`, scan.ID)
		fmt.Fprintf(&b, `<button class="btn btn-sm btn-outline-success" data-action="download" data-scan-id="%d">Report</button>`, scan.ID)
		if full {
			fmt.Fprintf(&b, `<button class="btn btn-sm btn-outline-info" data-action="logs" data-scan-id="%d">Logs</button>`, scan.ID)
		}
		b.WriteString("</td>")

		b.WriteString("</tr>")
	}
	return b.String()
}

// RenderTemplateOptions renders the template selector options for the
// new-scan form, led by the no-template choice.
func RenderTemplateOptions(templates []models.Template) string {
	var b strings.Builder
	b.WriteString(`<option value="">No Template</option>`)
	for _, t := range templates {
		fmt.Fprintf(&b, `<option value="%d">%s (%s)</option>`,
			t.ID, html.EscapeString(t.Name), html.EscapeString(t.Engine))
	}
	return b.String()
}
