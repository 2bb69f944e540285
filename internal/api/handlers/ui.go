package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/security-scanner/dashboard/internal/dashboard"
	"github.com/security-scanner/dashboard/internal/notify"
)

// UIHandler serves the dashboard's partial updates: section switches,
// rendered fragments, notifications, modals, search and scan submission.
type UIHandler struct {
	ctrl  *dashboard.Controller
	notes *notify.Center
}

func NewUIHandler(ctrl *dashboard.Controller, notes *notify.Center) *UIHandler {
	return &UIHandler{ctrl: ctrl, notes: notes}
}

// ShowSection switches the active section and returns its container HTML.
func (h *UIHandler) ShowSection(c *fiber.Ctx) error {
	name := c.Params("name")
	if !validSection(name) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown section"})
	}

	h.ctrl.ShowSection(c.Context(), name, c.Query("trigger"))

	html, _ := h.ctrl.SectionHTML(name)
	return c.Type("html").SendString(html)
}

// GetSection returns a section's current HTML without switching.
func (h *UIHandler) GetSection(c *fiber.Ctx) error {
	name := c.Params("name")
	html, ok := h.ctrl.SectionHTML(name)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown section"})
	}
	return c.Type("html").SendString(html)
}

// Notifications lists the currently visible notifications.
func (h *UIHandler) Notifications(c *fiber.Ctx) error {
	return c.JSON(h.notes.Active())
}

// Search runs a scan search and returns the refreshed listing rows.
func (h *UIHandler) Search(c *fiber.Ctx) error {
	var body struct {
		Q string `json:"q"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.ctrl.Search(c.Context(), body.Q); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "search failed"})
	}

	html, _ := h.ctrl.Document().Region("all-scans-body")
	return c.Type("html").SendString(html)
}

// StartScan accepts the new-scan form fields and submits the scan.
func (h *UIHandler) StartScan(c *fiber.Ctx) error {
	err := h.ctrl.StartScan(
		c.Context(),
		c.FormValue("target_url"),
		c.FormValue("engine"),
		c.FormValue("template_id"),
		c.FormValue("options"),
	)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to start scan"})
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// ScanModal mounts and returns the scan detail modal.
func (h *UIHandler) ScanModal(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid scan id"})
	}
	if err := h.ctrl.ViewScan(c.Context(), id); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to load scan details"})
	}
	html, _ := h.ctrl.Document().Region("modal-root")
	return c.Type("html").SendString(html)
}

// LogsModal mounts and returns the logs modal.
func (h *UIHandler) LogsModal(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid scan id"})
	}
	if err := h.ctrl.ViewLogs(c.Context(), id); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to load logs"})
	}
	html, _ := h.ctrl.Document().Region("modal-root")
	return c.Type("html").SendString(html)
}

// DismissModal tears down the open modal. Safe to call repeatedly.
func (h *UIHandler) DismissModal(c *fiber.Ctx) error {
	h.ctrl.DismissModal()
	return c.SendStatus(fiber.StatusNoContent)
}

func validSection(name string) bool {
	for _, section := range dashboard.Sections {
		if name == section {
			return true
		}
	}
	return false
}
