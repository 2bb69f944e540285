package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/security-scanner/dashboard/internal/client"
	"github.com/security-scanner/dashboard/internal/models"
	"github.com/security-scanner/dashboard/internal/notify"
	"github.com/security-scanner/dashboard/internal/view"
)

// Sections are the top-level views of the dashboard, in navigation order.
var Sections = []string{"dashboard", "scans", "templates", "scheduled", "bulk", "reports"}

// Stat counter regions on the dashboard section.
const (
	regionTotalScans       = "total-scans"
	regionCompletedScans   = "completed-scans"
	regionInProgressScans  = "in-progress-scans"
	regionCriticalFindings = "critical-findings"
	regionRecentScans      = "recent-scans-body"
	regionAllScans         = "all-scans-body"
	regionTemplateOptions  = "template-options"
	regionPageTitle        = "page-title"
)

// Controller drives the section state machine and owns all document
// mutation. It is constructed once in cmd/server and passed to everything
// that needs it; there is no package-level instance.
type Controller struct {
	api    *client.Client
	notes  *notify.Center
	doc    *view.Document
	charts *view.ChartRenderer
	log    *logrus.Entry

	// refreshDelay is the pause between a successful scan submission and
	// the follow-up refresh of the active section.
	refreshDelay time.Duration

	mu     sync.Mutex
	active string
	modal  *view.Mounted
}

// New builds the controller and registers every region the dashboard writes
// to. The initial active section is the dashboard itself.
func New(api *client.Client, notes *notify.Center, doc *view.Document, charts *view.ChartRenderer) *Controller {
	for _, section := range Sections {
		doc.RegisterSection(section)
	}
	for _, region := range []string{
		regionTotalScans, regionCompletedScans, regionInProgressScans,
		regionCriticalFindings, regionRecentScans, regionAllScans,
		regionTemplateOptions, regionPageTitle, "modal-root",
	} {
		doc.RegisterRegion(region)
	}
	doc.ShowOnly("dashboard")
	doc.SetNavActive("dashboard")
	doc.SetRegion(regionPageTitle, "Dashboard")

	return &Controller{
		api:          api,
		notes:        notes,
		doc:          doc,
		charts:       charts,
		log:          logrus.WithField("component", "dashboard"),
		refreshDelay: time.Second,
		active:       "dashboard",
	}
}

// Init performs the first-load work: templates for the new-scan form and the
// dashboard section itself.
func (c *Controller) Init(ctx context.Context) {
	c.loadTemplates(ctx)
	if err := c.LoadDashboard(ctx); err != nil {
		c.log.WithError(err).Error("initial dashboard load failed")
	}
}

// ActiveSection returns the section the poller should refresh.
func (c *Controller) ActiveSection() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Document exposes the render target for the HTTP layer.
func (c *Controller) Document() *view.Document {
	return c.doc
}

// ShowSection hides every section container, reveals the named one, moves
// the navigation highlight to the triggering element, updates the page
// title, and loads the section's data. The trigger is passed explicitly by
// the caller; an empty trigger highlights the section's own nav entry.
func (c *Controller) ShowSection(ctx context.Context, name, trigger string) {
	if trigger == "" {
		trigger = name
	}

	c.doc.ShowOnly(name)
	c.doc.SetNavActive(trigger)
	c.doc.SetRegion(regionPageTitle, titleCase(name))

	c.mu.Lock()
	c.active = name
	c.mu.Unlock()

	switch name {
	case "dashboard":
		if err := c.LoadDashboard(ctx); err != nil {
			c.log.WithError(err).Error("dashboard load failed")
		}
	case "scans":
		if err := c.LoadScans(ctx); err != nil {
			c.log.WithError(err).Error("scan listing load failed")
		}
	case "templates":
		c.loadTemplates(ctx)
	case "scheduled", "bulk", "reports":
		// Populated independently; nothing to fetch yet.
	}
}

// LoadDashboard refreshes the dashboard section. Stats and the scan list are
// fetched concurrently and the update is applied only when both succeed; a
// failed cycle leaves the previous render in place.
func (c *Controller) LoadDashboard(ctx context.Context) error {
	var (
		stats *models.Stats
		scans []models.Scan
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = c.api.Stats(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		scans, err = c.api.Scans(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load dashboard: %w", err)
	}

	c.doc.SetRegion(regionTotalScans, strconv.Itoa(stats.TotalScans))
	c.doc.SetRegion(regionCompletedScans, strconv.Itoa(stats.CompletedScans))
	c.doc.SetRegion(regionInProgressScans, strconv.Itoa(stats.InProgressScans))
	c.doc.SetRegion(regionCriticalFindings, strconv.Itoa(stats.CriticalFindings))
	c.doc.SetRegion(regionRecentScans, view.RenderScanPreview(scans))

	c.charts.Render(view.ChartSlotActivity, view.ActivityChart(stats))
	c.charts.Render(view.ChartSlotEngine, view.EngineChart(stats))
	return nil
}

// LoadScans refreshes the full scan listing.
func (c *Controller) LoadScans(ctx context.Context) error {
	scans, err := c.api.Scans(ctx)
	if err != nil {
		return fmt.Errorf("load scans: %w", err)
	}
	c.doc.SetRegion(regionAllScans, view.RenderScanListing(scans))
	return nil
}

// SectionHTML composes a section's current contents from its regions. The
// boolean is false for sections that do not exist.
func (c *Controller) SectionHTML(name string) (string, bool) {
	switch name {
	case "dashboard":
		total, _ := c.doc.Region(regionTotalScans)
		completed, _ := c.doc.Region(regionCompletedScans)
		inProgress, _ := c.doc.Region(regionInProgressScans)
		critical, _ := c.doc.Region(regionCriticalFindings)
		rows, _ := c.doc.Region(regionRecentScans)
		return fmt.Sprintf(
			`<div class="row">`+
				`<div class="card"><span id="total-scans">%s</span> Total Scans</div>`+
				`<div class="card"><span id="completed-scans">%s</span> Completed</div>`+
				`<div class="card"><span id="in-progress-scans">%s</span> In Progress</div>`+
				`<div class="card"><span id="critical-findings">%s</span> Critical Findings</div>`+
				`</div>`+
				`<table class="table"><tbody id="recent-scans-body">%s</tbody></table>`,
			total, completed, inProgress, critical, rows), true
	case "scans":
		rows, _ := c.doc.Region(regionAllScans)
		return `<table class="table table-striped"><tbody id="all-scans-body">` + rows + `</tbody></table>`, true
	default:
		html, ok := c.doc.Region(name + "-section")
		return html, ok
	}
}

// Refresh reloads whatever the active section displays. Sections without a
// loader are left alone.
func (c *Controller) Refresh(ctx context.Context) {
	switch c.ActiveSection() {
	case "dashboard":
		if err := c.LoadDashboard(ctx); err != nil {
			c.log.WithError(err).Error("refresh: dashboard load failed")
		}
	case "scans":
		if err := c.LoadScans(ctx); err != nil {
			c.log.WithError(err).Error("refresh: scan listing load failed")
		}
	}
}

// StartScan submits a new scan. The options text is free-form JSON typed by
// the operator; invalid input degrades to an empty options object. On
// success the new scan id is announced and the active section refreshes
// shortly after, giving the backend a moment to register the scan.
func (c *Controller) StartScan(ctx context.Context, targetURL, engine, templateID, optionsText string) error {
	req := models.CreateScanRequest{
		TargetURL: targetURL,
		Engine:    engine,
		Options:   c.ParseOptions(optionsText),
	}
	if templateID != "" {
		if id, err := strconv.Atoi(templateID); err == nil {
			req.TemplateID = &id
		}
	}

	created, err := c.api.CreateScan(ctx, req)
	if err != nil {
		c.notes.Notify("Failed to start scan", notify.SeverityError)
		return err
	}

	c.notes.Notify(fmt.Sprintf("Scan started successfully! ID: %d", created.ID), notify.SeveritySuccess)
	time.AfterFunc(c.refreshDelay, func() {
		c.Refresh(context.Background())
	})
	return nil
}

// ParseOptions decodes the free-form options field. Blank input is an empty
// configuration; invalid JSON also degrades to empty but tells the operator.
func (c *Controller) ParseOptions(text string) map[string]any {
	if strings.TrimSpace(text) == "" {
		return map[string]any{}
	}
	var options map[string]any
	if err := json.Unmarshal([]byte(text), &options); err != nil {
		c.notes.Notify("Invalid JSON in options field", notify.SeverityError)
		return map[string]any{}
	}
	return options
}

// Search replaces the full listing with the query's results. A blank query
// is a no-op; a failed search leaves the listing untouched.
func (c *Controller) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	results, err := c.api.Search(ctx, query)
	if err != nil {
		c.notes.Notify("Search failed", notify.SeverityError)
		return err
	}
	c.doc.SetRegion(regionAllScans, view.RenderScanListing(results))
	return nil
}

// ViewScan fetches one scan and mounts its detail modal.
func (c *Controller) ViewScan(ctx context.Context, id int) error {
	scan, err := c.api.Scan(ctx, id)
	if err != nil {
		c.notes.Notify("Failed to load scan details", notify.SeverityError)
		return err
	}
	c.mountModal(view.ScanDetailModal(scan))
	return nil
}

// ViewLogs fetches a scan's log stream and mounts the logs modal.
func (c *Controller) ViewLogs(ctx context.Context, id int) error {
	logs, err := c.api.Logs(ctx, id)
	if err != nil {
		c.notes.Notify("Failed to load logs", notify.SeverityError)
		return err
	}
	c.mountModal(view.LogsModal(id, logs))
	return nil
}

// DismissModal tears down the open modal, if any. Idempotent.
func (c *Controller) DismissModal() {
	c.mu.Lock()
	modal := c.modal
	c.modal = nil
	c.mu.Unlock()

	if modal != nil {
		modal.Dismiss()
	}
}

func (c *Controller) mountModal(m view.Modal) {
	c.DismissModal()
	mounted := view.Mount(c.doc, m)

	c.mu.Lock()
	c.modal = mounted
	c.mu.Unlock()
}

func (c *Controller) loadTemplates(ctx context.Context) {
	templates, err := c.api.Templates(ctx)
	if err != nil {
		c.log.WithError(err).Error("template load failed")
		return
	}
	c.doc.SetRegion(regionTemplateOptions, view.RenderTemplateOptions(templates))
}

func titleCase(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
