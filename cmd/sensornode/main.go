// v1
// cmd/sensornode/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartenv/nodes/internal/agent"
	"smartenv/nodes/internal/breaker"
	"smartenv/nodes/internal/config"
	"smartenv/nodes/internal/coordinator"
	"smartenv/nodes/internal/display"
	"smartenv/nodes/internal/httpapi"
	"smartenv/nodes/internal/logging"
	"smartenv/nodes/internal/metrics"
	"smartenv/nodes/internal/periph"
	"smartenv/nodes/internal/sensor"
	"smartenv/nodes/internal/telemetry"
)

func main() {
	lg, lf := logging.Init("sensornode")
	defer func(lf *os.File) {
		err := lf.Close()
		if err != nil {
			lg.Error("log file close", "error", err)
		}
	}(lf)
	lg.Info("sensornode v1 starting (telemetry push, pending-request servicing, suggestion display)")

	cfg, err := config.LoadSensorNode()
	if err != nil {
		lg.Error("config", "error", err)
		os.Exit(1)
	}
	lg.Info("config loaded", "device", cfg.DeviceID, "coordinator", cfg.CoordinatorURL,
		"source", cfg.Source, "interval", cfg.PollInterval.String())

	var source sensor.Source
	switch cfg.Source {
	case "serial":
		source, err = sensor.OpenSerialSource(cfg.SerialPort, cfg.SerialBaud, lg)
		if err != nil {
			lg.Error("serial source", "error", err)
			os.Exit(1)
		}
	default:
		source = sensor.NewSimSource(time.Now().UnixNano(), true)
	}

	var pub agent.TelemetryPublisher
	if cfg.MQTTBroker != "" {
		mp, err := telemetry.NewMQTTPublisher(cfg.MQTTBroker, cfg.DeviceID, cfg.MQTTTopic, lg)
		if err != nil {
			lg.Error("mqtt", "error", err)
			os.Exit(1)
		}
		defer mp.Close()
		pub = mp
	}

	hc := breaker.NewHTTPClient("coordinator", breaker.Config{
		MaxFailures:  cfg.BreakerMaxFailures,
		ResetTimeout: cfg.BreakerResetTimeout,
	}, cfg.CoordinatorURL+"/health", &http.Client{Timeout: cfg.HTTPTimeout}, lg)
	client := coordinator.New(cfg.CoordinatorURL, cfg.DeviceID, hc, lg)

	frame := display.NewFrame(cfg.OLEDLines, cfg.OLEDCols)
	met := metrics.NewRegistry()

	node := agent.NewSensorNode(cfg.DeviceID, client, source, frame,
		periph.NewLogSink(lg), pub, met, lg, cfg.PollInterval)

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
	lg.Info("sensornode v1 stopped")
}
