package models

import "encoding/json"

// Finding is a single reported issue inside a completed scan's report.
// Findings have no identity of their own beyond position in the report.
type Finding struct {
	Name        string `json:"name"`
	Severity    string `json:"severity"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// rawFinding accepts the key variants the engines emit. ZAP reports use
// alert/risk, the other engines name/severity.
type rawFinding struct {
	Alert       string `json:"alert"`
	Name        string `json:"name"`
	Risk        string `json:"risk"`
	Severity    string `json:"severity"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// FindingsFromReport decodes the findings list out of a report payload.
// Reports that are not a list of findings (nmap/sqlmap summaries, wapiti
// objects) yield nil.
func FindingsFromReport(report json.RawMessage) []Finding {
	if len(report) == 0 {
		return nil
	}
	var raw []rawFinding
	if err := json.Unmarshal(report, &raw); err != nil {
		return nil
	}
	findings := make([]Finding, 0, len(raw))
	for _, r := range raw {
		f := Finding{
			Name:        r.Name,
			Severity:    r.Severity,
			URL:         r.URL,
			Description: r.Description,
		}
		if f.Name == "" {
			f.Name = r.Alert
		}
		if f.Name == "" {
			f.Name = "Finding"
		}
		if f.Severity == "" {
			f.Severity = r.Risk
		}
		if f.Severity == "" {
			f.Severity = "Info"
		}
		findings = append(findings, f)
	}
	return findings
}
