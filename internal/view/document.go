package view

import "sync"

// Document is the render target for the dashboard: a registry of named
// regions holding rendered HTML, plus per-section visibility. Writes to a
// region that was never registered are silently dropped, which is how a stale
// update lands after the corresponding UI has gone away.
type Document struct {
	mu        sync.RWMutex
	regions   map[string]string
	sections  []string
	visible   map[string]bool
	navActive string
}

func NewDocument() *Document {
	return &Document{
		regions: make(map[string]string),
		visible: make(map[string]bool),
	}
}

// RegisterRegion makes a named region available for updates.
func (d *Document) RegisterRegion(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.regions[name]; !ok {
		d.regions[name] = ""
	}
}

// RegisterSection adds a section container. Sections start hidden.
func (d *Document) RegisterSection(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.visible[name]; ok {
		return
	}
	d.sections = append(d.sections, name)
	d.visible[name] = false
	d.regions[name+"-section"] = ""
}

// SetRegion replaces a region's content. Unknown regions are a no-op.
func (d *Document) SetRegion(name, html string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.regions[name]; !ok {
		return
	}
	d.regions[name] = html
}

// Region returns a region's content and whether the region exists.
func (d *Document) Region(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	html, ok := d.regions[name]
	return html, ok
}

// ShowOnly hides every section container and reveals the named one.
func (d *Document) ShowOnly(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, section := range d.sections {
		d.visible[section] = section == name
	}
}

// VisibleSections returns the currently revealed section names.
func (d *Document) VisibleSections() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []string
	for _, section := range d.sections {
		if d.visible[section] {
			out = append(out, section)
		}
	}
	return out
}

// SetNavActive records which navigation element carries the highlight.
func (d *Document) SetNavActive(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.navActive = name
}

func (d *Document) NavActive() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.navActive
}
