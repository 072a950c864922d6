package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jxsim-x/skillstack-learning-tracker/internal/bootstrap"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/httpapi"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/pkg/buildinfo"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/pkg/config"
)

const srvShutdownTimeout = 5 * time.Second

func main() {
	cfgPath := flag.String("config", "", "path to config file (optional)")
	listenAddr := flag.String("listen", "", "listen address override, e.g. 127.0.0.1:8000")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	config.SetupLogger(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, err := bootstrap.NewCore(cfg, *cfgPath)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer core.Close()

	slog.Info("skillstack starting",
		"name", cfg.App.Name,
		"version", buildinfo.Version,
		"db", cfg.Storage.DBPath,
		"ai_configured", core.Provider.Configured(),
	)

	addr := cfg.Server.ListenAddr
	if *listenAddr != "" {
		addr = *listenAddr
	}

	srv, err := httpapi.Start(ctx, core, httpapi.Options{ListenAddr: addr})
	if err != nil {
		slog.Error("start http api failed", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	slog.Info("shutting down", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), srvShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("shutdown incomplete", "error", err)
	}
}
