package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/security-scanner/dashboard/internal/client"
	"github.com/security-scanner/dashboard/internal/models"
)

// VaptHandler is the thin relay in front of the scanning backend: it
// validates scan submissions, forwards them with the injected API key, and
// renders scan payloads back without interpretation.
type VaptHandler struct {
	api *client.Client
	log *logrus.Entry
}

func NewVaptHandler(api *client.Client) *VaptHandler {
	return &VaptHandler{
		api: api,
		log: logrus.WithField("component", "vapt-handler"),
	}
}

// StartScan accepts the scan-start form. Invalid input redirects back to the
// form with the prior input preserved; backend failures carry the backend's
// error body; success redirects to the scan detail view.
func (h *VaptHandler) StartScan(c *fiber.Ctx) error {
	targetURL := c.FormValue("target_url")
	engine := c.FormValue("engine")

	if !validTargetURL(targetURL) {
		return redirectBack(c, targetURL, engine, "target_url must be a valid URL")
	}
	if !models.ValidEngine(engine) {
		return redirectBack(c, targetURL, engine, fmt.Sprintf("unknown engine %q", engine))
	}

	created, err := h.api.CreateScan(c.Context(), models.CreateScanRequest{
		TargetURL: targetURL,
		Engine:    engine,
	})
	if err != nil {
		message := "Failed to start scan"
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Body != "" {
			message = "Failed to start scan: " + apiErr.Body
		}
		h.log.WithError(err).Warn("scan submission rejected by backend")
		return redirectBack(c, targetURL, engine, message)
	}

	return c.Redirect(
		fmt.Sprintf("/vapt/scan/%d?status=%s", created.ID, url.QueryEscape("Scan started")),
		fiber.StatusSeeOther,
	)
}

// GetScan renders the raw scan payload for an id, or the fetch error.
func (h *VaptHandler) GetScan(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid scan id"})
	}

	scan, err := h.api.Scan(c.Context(), id)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return c.Status(apiErr.StatusCode).JSON(fiber.Map{"error": "Failed to fetch scan: " + apiErr.Body})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to fetch scan"})
	}

	return c.JSON(scan)
}

// DownloadReport streams the exported report blob with a download filename.
func (h *VaptHandler) DownloadReport(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid scan id"})
	}

	blob, filename, err := h.api.ExportReport(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to download report"})
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(blob)
}

func validTargetURL(raw string) bool {
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func redirectBack(c *fiber.Ctx, targetURL, engine, message string) error {
	values := url.Values{}
	values.Set("error", message)
	values.Set("target_url", targetURL)
	values.Set("engine", engine)
	return c.Redirect("/?"+values.Encode(), fiber.StatusSeeOther)
}
