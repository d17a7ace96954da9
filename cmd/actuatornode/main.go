// v1
// cmd/actuatornode/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartenv/nodes/internal/actuate"
	"smartenv/nodes/internal/agent"
	"smartenv/nodes/internal/breaker"
	"smartenv/nodes/internal/config"
	"smartenv/nodes/internal/coordinator"
	"smartenv/nodes/internal/display"
	"smartenv/nodes/internal/httpapi"
	"smartenv/nodes/internal/logging"
	"smartenv/nodes/internal/metrics"
	"smartenv/nodes/internal/periph"
)

func main() {
	lg, lf := logging.Init("actuatornode")
	defer func(lf *os.File) {
		err := lf.Close()
		if err != nil {
			lg.Error("log file close", "error", err)
		}
	}(lf)
	lg.Info("actuatornode v1 starting (command polling, RGB/buzzer/OLED)")

	cfg, err := config.LoadActuatorNode()
	if err != nil {
		lg.Error("config", "error", err)
		os.Exit(1)
	}
	lg.Info("config loaded", "device", cfg.DeviceID, "coordinator", cfg.CoordinatorURL,
		"sink", cfg.Sink, "interval", cfg.PollInterval.String())

	var channels periph.ChannelWriter
	var buzzer periph.Pulser
	var render periph.Renderer
	switch cfg.Sink {
	case "serial":
		sink, err := periph.OpenSerialSink(cfg.SerialPort, cfg.SerialBaud, lg)
		if err != nil {
			lg.Error("serial sink", "error", err)
			os.Exit(1)
		}
		channels, buzzer, render = sink, sink, sink
	default:
		sink := periph.NewLogSink(lg)
		channels, buzzer, render = sink, sink, sink
	}

	hc := breaker.NewHTTPClient("coordinator", breaker.Config{
		MaxFailures:  cfg.BreakerMaxFailures,
		ResetTimeout: cfg.BreakerResetTimeout,
	}, cfg.CoordinatorURL+"/health", &http.Client{Timeout: cfg.HTTPTimeout}, lg)
	client := coordinator.New(cfg.CoordinatorURL, cfg.DeviceID, hc, lg)

	frame := display.NewFrame(cfg.OLEDLines, cfg.OLEDCols)
	met := metrics.NewRegistry()
	applier := actuate.NewApplier(channels, buzzer, lg)
	node := agent.NewActuatorNode(cfg.DeviceID, client, applier, frame, render, met, lg, cfg.PollInterval)

	srv := httpapi.New(cfg.HTTPBind, lg, met.Snapshot, frame.Lines)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			lg.Error("admin http", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go node.Run(ctx)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	cancel()
	sh, c := context.WithTimeout(context.Background(), 5*time.Second)
	defer c()
	_ = srv.Stop(sh)
	lg.Info("actuatornode v1 stopped")
}
