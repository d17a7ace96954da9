// v1
// internal/agent/sensornode.go

// Package agent holds the two node loops. Each loop runs bounded-duration
// ticks with no overlap: remote calls are synchronous and every failure
// degrades to "nothing new this tick".
package agent

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"smartenv/nodes/internal/coordinator"
	"smartenv/nodes/internal/metrics"
	"smartenv/nodes/internal/periph"
	"smartenv/nodes/internal/reconcile"
	"smartenv/nodes/internal/sensor"
	"smartenv/nodes/internal/wire"
)

// sensorCoordinator is the slice of the coordinator client the sensor loop
// uses. The small interface lets tests inject canned behavior.
type sensorCoordinator interface {
	PushTelemetry(ctx context.Context, t wire.Telemetry) error
	PendingRequest(ctx context.Context) (reconcile.PendingRequest, bool, error)
	ProvideSensorData(ctx context.Context, requestID string, t wire.Telemetry) error
	Suggestion(ctx context.Context) (string, error)
}

// TelemetryPublisher is the optional MQTT fan-out.
type TelemetryPublisher interface {
	Publish(t wire.Telemetry)
}

// Frame is the display buffer slice the loops need.
type Frame interface {
	SetText(text string) bool
	Lines() []string
}

// SensorNode polls the coordinator, services pending sensor-data requests,
// and keeps the display frame in sync with the suggestion text.
type SensorNode struct {
	device   string
	client   sensorCoordinator
	source   sensor.Source
	frame    Frame
	display  periph.Renderer
	pub      TelemetryPublisher
	met      *metrics.Registry
	lg       *slog.Logger
	interval time.Duration

	session reconcile.Session
}

func NewSensorNode(device string, client sensorCoordinator, source sensor.Source, frame Frame,
	display periph.Renderer, pub TelemetryPublisher, met *metrics.Registry,
	lg *slog.Logger, interval time.Duration) *SensorNode {
	return &SensorNode{
		device: device, client: client, source: source, frame: frame,
		display: display, pub: pub, met: met, lg: lg, interval: interval,
	}
}

// Run ticks until the context is cancelled.
func (n *SensorNode) Run(ctx context.Context) {
	n.lg.Info("sensor node start", "device", n.device, "interval", n.interval.String())
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()
	for {
		n.Tick(ctx)
		select {
		case <-ctx.Done():
			n.lg.Info("sensor node stop")
			return
		case <-ticker.C:
		}
	}
}

// Tick performs one loop iteration: read, push, service pending request,
// refresh suggestion, redraw. The display render is last so it always
// reflects the fully processed state of this tick.
func (n *SensorNode) Tick(ctx context.Context) {
	n.met.Inc(metrics.Ticks)

	reading := n.source.Read().Normalized()
	tel := wire.Telemetry{
		Device:      n.device,
		Temperature: reading.Temperature,
		Humidity:    reading.Humidity,
		Light:       reading.Light,
		Touch:       reading.Touch,
	}

	if err := n.client.PushTelemetry(ctx, tel); err != nil {
		n.met.Inc(failureCounter(err))
		n.lg.Warn("telemetry push failed", "error", err)
	} else {
		n.met.Inc(metrics.TelemetryPushed)
	}

	if n.pub != nil {
		n.pub.Publish(tel)
	}

	n.servicePendingRequest(ctx, tel)
	n.refreshSuggestion(ctx)

	n.display.Render(n.frame.Lines())
	n.met.Inc(metrics.Renders)
}

func (n *SensorNode) servicePendingRequest(ctx context.Context, tel wire.Telemetry) {
	req, ok, err := n.client.PendingRequest(ctx)
	if err != nil {
		n.met.Inc(failureCounter(err))
		n.lg.Warn("pending request poll failed", "error", err)
		return
	}
	if !ok {
		return
	}
	next, act := n.session.ReconcileRequest(req)
	if act == reconcile.NoOp {
		return
	}
	if err := n.client.ProvideSensorData(ctx, req.ID, tel); err != nil {
		// marker not committed: the same id is retried next tick
		n.met.Inc(metrics.TransportFailures)
		n.lg.Warn("provide sensor data failed", "request_id", req.ID, "error", err)
		return
	}
	n.session = next
	n.met.Inc(metrics.RequestsServiced)
	n.lg.Info("pending request serviced", "request_id", req.ID)
}

func (n *SensorNode) refreshSuggestion(ctx context.Context) {
	text, err := n.client.Suggestion(ctx)
	if err != nil {
		n.met.Inc(failureCounter(err))
		n.lg.Warn("suggestion fetch failed", "error", err)
		return
	}
	next, act := n.session.ReconcileSuggestion(text)
	if act == reconcile.NoOp {
		return
	}
	n.session = next
	n.frame.SetText(text)
	n.lg.Info("suggestion updated", "text", text)
}

// Session exposes the loop's reconciliation state for status reporting.
func (n *SensorNode) Session() reconcile.Session { return n.session }

// failureCounter separates replies that did not decode from transport-level
// failures when counting a failed coordinator call.
func failureCounter(err error) string {
	if errors.Is(err, coordinator.ErrMalformed) {
		return metrics.MalformedPayloads
	}
	return metrics.TransportFailures
}
