package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity selects the visual style of a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

var styleClasses = map[Severity]string{
	SeverityInfo:    "alert-info",
	SeveritySuccess: "alert-success",
	SeverityError:   "alert-danger",
}

// StyleClass returns the alert style for the severity, falling back to the
// info style for anything unrecognised.
func (s Severity) StyleClass() string {
	if class, ok := styleClasses[s]; ok {
		return class
	}
	return styleClasses[SeverityInfo]
}

// DefaultTTL is how long a notification stays on screen.
const DefaultTTL = 5 * time.Second

// Notification is one transient user-facing message.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Style     string    `json:"style"`
	CreatedAt time.Time `json:"created_at"`
}

// Center holds the currently visible notifications. Every notification is
// removed automatically after the TTL; manual dismissal before that is safe
// because removal is idempotent.
type Center struct {
	ttl time.Duration

	mu     sync.Mutex
	order  []uuid.UUID
	active map[uuid.UUID]Notification
	timers map[uuid.UUID]*time.Timer
}

func New() *Center {
	return NewWithTTL(DefaultTTL)
}

func NewWithTTL(ttl time.Duration) *Center {
	return &Center{
		ttl:    ttl,
		active: make(map[uuid.UUID]Notification),
		timers: make(map[uuid.UUID]*time.Timer),
	}
}

// Notify inserts a notification and schedules its automatic removal.
func (c *Center) Notify(message string, severity Severity) uuid.UUID {
	n := Notification{
		ID:        uuid.New(),
		Message:   message,
		Severity:  severity,
		Style:     severity.StyleClass(),
		CreatedAt: time.Now(),
	}

	c.mu.Lock()
	c.active[n.ID] = n
	c.order = append(c.order, n.ID)
	c.timers[n.ID] = time.AfterFunc(c.ttl, func() { c.Dismiss(n.ID) })
	c.mu.Unlock()

	return n.ID
}

// Dismiss removes a notification. Dismissing an already-removed notification
// is a no-op, so the expiry timer firing after a manual dismissal is harmless.
func (c *Center) Dismiss(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.active[id]; !ok {
		return
	}
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	delete(c.active, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Active returns the visible notifications in insertion order.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, 0, len(c.order))
	for _, id := range c.order {
		if n, ok := c.active[id]; ok {
			out = append(out, n)
		}
	}
	return out
}
