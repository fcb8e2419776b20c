// Package relay implements the HTTP client side of the print relay protocol.
// The POS server never touches printer hardware for remote targets: it posts
// structured jobs to a relay agent running on the machine the printer is
// plugged into, and the agent renders and spools them.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/comandero/pos-api/internal/domain/enum"
	"github.com/comandero/pos-api/pkg/receipt"
)

// DefaultTimeout bounds every relay call. A slow or unreachable relay must
// degrade to a logged print failure, never hold an order request open.
const DefaultTimeout = 10 * time.Second

// Job is the wire format of POST /print/job.
type Job struct {
	Type    enum.DocumentKind  `json:"type"`
	Payload receipt.JobPayload `json:"payload"`
	Driver  string             `json:"driver,omitempty"`
	Feed    *int               `json:"feed,omitempty"`
	Cut     *bool              `json:"cut,omitempty"`
}

// Result is the relay's answer to any print request.
type Result struct {
	OK     bool   `json:"ok"`
	Driver string `json:"driver,omitempty"`
	Error  string `json:"error,omitempty"`
}

// HealthInfo is the body of GET /health.
type HealthInfo struct {
	Status         string   `json:"status"`
	Version        string   `json:"version"`
	DefaultPrinter string   `json:"default_printer"`
	Printers       []string `json:"printers"`
	Timestamp      string   `json:"timestamp"`
}

// printersResponse is the body of GET /printers.
type printersResponse struct {
	OK       bool     `json:"ok"`
	Printers []string `json:"printers"`
	Count    int      `json:"count"`
}

// Client talks to one relay agent.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a relay client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// Health checks the relay and returns its advertised state.
func (c *Client) Health(ctx context.Context) (*HealthInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay: health check failed for %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("relay: health check returned status %d", resp.StatusCode)
	}
	var info HealthInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("relay: invalid health response: %w", err)
	}
	return &info, nil
}

// Printers lists the printers the relay can reach.
func (c *Client) Printers(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/printers", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay: listing printers failed for %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()
	var body printersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("relay: invalid printers response: %w", err)
	}
	return body.Printers, nil
}

// PrintJob posts a generic job to /print/job. A non-2xx answer or a body with
// ok=false both count as failures.
func (c *Client) PrintJob(ctx context.Context, job Job) (*Result, error) {
	return c.post(ctx, "/print/job", job)
}

// PrintRaw sends pre-rendered text through the legacy /print/raw endpoint.
func (c *Client) PrintRaw(ctx context.Context, driver, content string, feed int, cut bool) (*Result, error) {
	body := map[string]interface{}{
		"driver":  driver,
		"content": content,
		"feed":    feed,
		"cut":     cut,
	}
	return c.post(ctx, "/print/raw", body)
}

// PrintPedido sends an order document through the legacy /print/pedido
// endpoint, kept for relay agents that predate /print/job.
func (c *Client) PrintPedido(ctx context.Context, driver string, orderID uint, content string) (*Result, error) {
	body := map[string]interface{}{
		"driver":    driver,
		"pedido_id": orderID,
		"contenido": content,
	}
	return c.post(ctx, "/print/pedido", body)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*Result, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay: POST %s failed for %s: %w", path, c.baseURL, err)
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("relay: invalid response from %s: status %d", path, resp.StatusCode)
	}
	if !result.OK {
		if result.Error == "" {
			result.Error = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return &result, fmt.Errorf("relay: %s", result.Error)
	}
	return &result, nil
}
