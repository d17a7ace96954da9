// v1
// internal/agent/actuatornode.go
package agent

import (
	"context"
	"log/slog"
	"time"

	"smartenv/nodes/internal/actuate"
	"smartenv/nodes/internal/metrics"
	"smartenv/nodes/internal/periph"
	"smartenv/nodes/internal/reconcile"
	"smartenv/nodes/internal/wire"
)

// actuatorCoordinator is the slice of the coordinator client the actuator
// loop uses.
type actuatorCoordinator interface {
	Commands(ctx context.Context) (wire.CommandReply, bool, error)
	Acknowledge(ctx context.Context, requestID string)
}

// ActuatorNode polls for command bundles and drives the RGB LED, buzzer, and
// OLED accordingly.
type ActuatorNode struct {
	device   string
	client   actuatorCoordinator
	applier  *actuate.Applier
	frame    Frame
	display  periph.Renderer
	met      *metrics.Registry
	lg       *slog.Logger
	interval time.Duration

	session reconcile.Session
}

func NewActuatorNode(device string, client actuatorCoordinator, applier *actuate.Applier,
	frame Frame, display periph.Renderer, met *metrics.Registry,
	lg *slog.Logger, interval time.Duration) *ActuatorNode {
	return &ActuatorNode{
		device: device, client: client, applier: applier, frame: frame,
		display: display, met: met, lg: lg, interval: interval,
	}
}

// Run ticks until the context is cancelled.
func (n *ActuatorNode) Run(ctx context.Context) {
	n.lg.Info("actuator node start", "device", n.device, "interval", n.interval.String())
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()
	for {
		n.Tick(ctx)
		select {
		case <-ctx.Done():
			n.lg.Info("actuator node stop")
			return
		case <-ticker.C:
		}
	}
}

// Tick fetches at most one bundle, applies it once per distinct bundle id,
// acknowledges it, and redraws the display last.
func (n *ActuatorNode) Tick(ctx context.Context) {
	n.met.Inc(metrics.Ticks)

	reply, ok, err := n.client.Commands(ctx)
	if err != nil {
		n.met.Inc(failureCounter(err))
		n.lg.Warn("command poll failed", "error", err)
	} else if ok {
		n.applyBundle(ctx, reply)
	}

	n.display.Render(n.frame.Lines())
	n.met.Inc(metrics.Renders)
}

func (n *ActuatorNode) applyBundle(ctx context.Context, reply wire.CommandReply) {
	// A bundle without an id comes from a clear-on-read coordinator and is
	// applied unconditionally; dedup only gates identified bundles.
	if reply.RequestID != "" {
		next, act := n.session.ReconcileBundle(reply.RequestID)
		if act == reconcile.NoOp {
			n.met.Inc(metrics.BundlesDeduped)
			return
		}
		n.session = next
	}

	if reply.RGBColor != "" {
		if !n.applier.ApplyColor(reply.RGBColor) {
			n.met.Inc(metrics.UnknownCommands)
		}
	}
	if reply.BuzzerAction != "" {
		if !n.applier.ApplyBuzzer(reply.BuzzerAction) {
			n.met.Inc(metrics.UnknownCommands)
		}
	}
	if text := bundleText(reply); text != "" {
		n.frame.SetText(text)
	}
	n.met.Inc(metrics.BundlesApplied)
	n.lg.Info("bundle applied", "request_id", reply.RequestID,
		"rgb", reply.RGBColor, "buzzer", reply.BuzzerAction)

	if reply.RequestID != "" {
		n.client.Acknowledge(ctx, reply.RequestID)
	}
}

// bundleText picks the display text carried by a bundle: explicit OLED text
// wins over the suggestion, which wins over a chat response.
func bundleText(reply wire.CommandReply) string {
	switch {
	case reply.OLEDText != "":
		return reply.OLEDText
	case reply.Suggestion != "":
		return reply.Suggestion
	default:
		return reply.Response
	}
}

// Session exposes the loop's reconciliation state for status reporting.
func (n *ActuatorNode) Session() reconcile.Session { return n.session }
