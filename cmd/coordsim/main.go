// v1
// cmd/coordsim/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"

	"smartenv/nodes/internal/config"
	"smartenv/nodes/internal/coordsim"
	"smartenv/nodes/internal/logging"
)

func main() {
	lg, lf := logging.Init("coordsim")
	defer func(lf *os.File) {
		err := lf.Close()
		if err != nil {
			lg.Error("log file close", "error", err)
		}
	}(lf)
	lg.Info("coordsim v1 starting (device endpoints, operator endpoints, journal, history)")

	cfg, err := config.LoadCoordsim()
	if err != nil {
		lg.Error("config", "error", err)
		os.Exit(1)
	}
	lg.Info("config loaded", "bind", cfg.HTTPBind, "kafka", cfg.KafkaBrokers, "history", cfg.PostgresDSN != "")

	journal := coordsim.NewJournal(cfg.KafkaBrokers, cfg.JournalTopic, lg)
	defer journal.Close()

	history, err := coordsim.OpenHistory(cfg.PostgresDSN, lg)
	if err != nil {
		lg.Error("history", "error", err)
		os.Exit(1)
	}
	defer history.Close()

	sim := coordsim.NewServer(coordsim.NewStore(), journal, history, lg)
	h := handlers.RecoveryHandler(handlers.RecoveryLogger(&recoveryLogger{lg: lg}))(
		handlers.LoggingHandler(os.Stdout, sim.Router()))
	srv := &http.Server{Addr: cfg.HTTPBind, Handler: h}

	go func() {
		lg.Info("http start", "bind", cfg.HTTPBind)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Error("http", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	sh, c := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer c()
	_ = srv.Shutdown(sh)
	lg.Info("coordsim v1 stopped")
}

// recoveryLogger adapts slog to the handlers.RecoveryHandlerLogger shape.
type recoveryLogger struct {
	lg *slog.Logger
}

func (r *recoveryLogger) Println(v ...any) {
	r.lg.Error("handler panic", "detail", v)
}
