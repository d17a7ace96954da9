// v1
// internal/coordinator/client.go

// Package coordinator is the HTTP client both node agents poll the remote
// coordinator with. Every call can fail (timeout, bad status, malformed
// payload); callers treat any error as "no new state this tick".
package coordinator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"smartenv/nodes/internal/reconcile"
	"smartenv/nodes/internal/wire"
)

// ErrMalformed tags replies that arrived but did not decode, so callers can
// count them apart from transport failures.
var ErrMalformed = errors.New("malformed payload")

// Doer is satisfied by *http.Client and by the breaker-wrapped client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to one coordinator on behalf of one device.
type Client struct {
	base   string
	device string
	hc     Doer
	lg     *slog.Logger
}

func New(base, device string, hc Doer, lg *slog.Logger) *Client {
	return &Client{base: base, device: device, hc: hc, lg: lg}
}

// PushTelemetry posts the current sensor snapshot.
func (c *Client) PushTelemetry(ctx context.Context, t wire.Telemetry) error {
	return c.post(ctx, "/sensor_data", t, nil)
}

// PendingRequest polls for a sensor-data request. ok is false when nothing
// is waiting; transport and decode failures return an error.
func (c *Client) PendingRequest(ctx context.Context) (reconcile.PendingRequest, bool, error) {
	var reply wire.PendingRequestReply
	if err := c.get(ctx, "/get_pending_request", &reply); err != nil {
		return reconcile.PendingRequest{}, false, err
	}
	if reply.RequestID == "" {
		return reconcile.PendingRequest{}, false, nil
	}
	return reconcile.PendingRequest{ID: reply.RequestID}, true, nil
}

// ProvideSensorData services a pending request with a fresh snapshot.
func (c *Client) ProvideSensorData(ctx context.Context, requestID string, t wire.Telemetry) error {
	return c.post(ctx, "/provide_sensor_data/"+requestID, t, nil)
}

// Commands fetches this device's pending command bundle. ok is false when
// the bundle is empty.
func (c *Client) Commands(ctx context.Context) (wire.CommandReply, bool, error) {
	var reply wire.CommandReply
	if err := c.get(ctx, "/get_commands/"+c.device, &reply); err != nil {
		return wire.CommandReply{}, false, err
	}
	if reply.Empty() {
		return wire.CommandReply{}, false, nil
	}
	return reply, true, nil
}

// Suggestion fetches the current suggestion text for the display.
func (c *Client) Suggestion(ctx context.Context) (string, error) {
	var reply wire.SuggestionReply
	if err := c.get(ctx, "/current_activity", &reply); err != nil {
		return "", err
	}
	return reply.Suggestion, nil
}

// Acknowledge clears an applied bundle on the coordinator. Fire-and-forget:
// a failure is logged and dropped, the next poll resyncs state.
func (c *Client) Acknowledge(ctx context.Context, requestID string) {
	ack := wire.AckRequest{Device: c.device, RequestID: requestID}
	if err := c.post(ctx, "/commands/ack", ack, nil); err != nil {
		c.lg.Warn("acknowledge failed", "request_id", requestID, "error", err)
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.CopyN(io.Discard, resp.Body, 512)
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	if out == nil {
		_, _ = io.CopyN(io.Discard, resp.Body, 512)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: %w: %v", req.Method, req.URL.Path, ErrMalformed, err)
	}
	return nil
}
