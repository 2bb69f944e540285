package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/security-scanner/dashboard/internal/notify"
)

// APIError is a non-success response from the backend.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// Notifier is the slice of the notification center the client needs.
type Notifier interface {
	Notify(message string, severity notify.Severity) uuid.UUID
}

// Client wraps every request to the scanning backend with the API key and
// JSON content type. Every failed call produces exactly one user-visible
// notification in addition to the returned error; there are no retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	notifier   Notifier
	log        *logrus.Entry
}

func New(baseURL, apiKey string, notifier Notifier) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		notifier:   notifier,
		log:        logrus.WithField("component", "client"),
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // scans can be slow to respond
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Call issues a single request against the backend and returns the raw
// response body on success.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).Errorf("%s %s failed", method, endpoint)
		c.notifier.Notify(fmt.Sprintf("API Error: %v", err), notify.SeverityError)
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.WithError(err).Errorf("%s %s: read response", method, endpoint)
		c.notifier.Notify(fmt.Sprintf("API Error: %v", err), notify.SeverityError)
		return nil, fmt.Errorf("%s %s: read response: %w", method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(data),
		}
		c.log.WithField("status", resp.StatusCode).Errorf("%s %s failed", method, endpoint)
		c.notifier.Notify(fmt.Sprintf("API Error: %v", apiErr), notify.SeverityError)
		return nil, apiErr
	}

	return json.RawMessage(data), nil
}
