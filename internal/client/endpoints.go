package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/security-scanner/dashboard/internal/models"
)

// Stats fetches the aggregate counters and engine breakdown.
func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	raw, err := c.Call(ctx, http.MethodGet, "/api/stats/", nil)
	if err != nil {
		return nil, err
	}
	var stats models.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return &stats, nil
}

// Scans fetches the scan listing in backend order.
func (c *Client) Scans(ctx context.Context) ([]models.Scan, error) {
	raw, err := c.Call(ctx, http.MethodGet, "/api/scans/", nil)
	if err != nil {
		return nil, err
	}
	var scans []models.Scan
	if err := json.Unmarshal(raw, &scans); err != nil {
		return nil, fmt.Errorf("decode scans: %w", err)
	}
	return scans, nil
}

// Scan fetches a single scan, including report_json once complete.
func (c *Client) Scan(ctx context.Context, id int) (*models.Scan, error) {
	raw, err := c.Call(ctx, http.MethodGet, fmt.Sprintf("/api/scans/%d/", id), nil)
	if err != nil {
		return nil, err
	}
	var scan models.Scan
	if err := json.Unmarshal(raw, &scan); err != nil {
		return nil, fmt.Errorf("decode scan %d: %w", id, err)
	}
	return &scan, nil
}

// CreateScan submits a new scan.
func (c *Client) CreateScan(ctx context.Context, req models.CreateScanRequest) (*models.CreateScanResponse, error) {
	raw, err := c.Call(ctx, http.MethodPost, "/api/scans/create/", req)
	if err != nil {
		return nil, err
	}
	var created models.CreateScanResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("decode create response: %w", err)
	}
	return &created, nil
}

// Logs fetches a scan's log entries, timestamp ascending.
func (c *Client) Logs(ctx context.Context, id int) ([]models.LogEntry, error) {
	raw, err := c.Call(ctx, http.MethodGet, fmt.Sprintf("/api/scans/%d/logs/", id), nil)
	if err != nil {
		return nil, err
	}
	var logs []models.LogEntry
	if err := json.Unmarshal(raw, &logs); err != nil {
		return nil, fmt.Errorf("decode logs for scan %d: %w", id, err)
	}
	return logs, nil
}

// Templates fetches the reusable scan configurations.
func (c *Client) Templates(ctx context.Context) ([]models.Template, error) {
	raw, err := c.Call(ctx, http.MethodGet, "/api/templates/", nil)
	if err != nil {
		return nil, err
	}
	var templates []models.Template
	if err := json.Unmarshal(raw, &templates); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}
	return templates, nil
}

// Search runs a free-text query over the scan collection.
func (c *Client) Search(ctx context.Context, query string) ([]models.Scan, error) {
	raw, err := c.Call(ctx, http.MethodGet, "/api/search/?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	var scans []models.Scan
	if err := json.Unmarshal(raw, &scans); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}
	return scans, nil
}

// ExportReport fetches the downloadable report blob for a scan and suggests
// a filename for it.
func (c *Client) ExportReport(ctx context.Context, id int) ([]byte, string, error) {
	raw, err := c.Call(ctx, http.MethodGet, fmt.Sprintf("/api/scans/%d/export/?format=json", id), nil)
	if err != nil {
		return nil, "", err
	}
	return raw, fmt.Sprintf("scan_%d_report.json", id), nil
}
