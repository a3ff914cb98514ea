package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"github.com/adibhanna/coachlix/internal/config"
	"github.com/adibhanna/coachlix/internal/logging"
	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/planserver"
	"github.com/adibhanna/coachlix/internal/planstore"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default ~/.coachlix/config.yaml)")
	seedPath := flag.String("seed", "", "plan JSON document to store before serving")
	flag.Parse()

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			log.Fatalf("locating config: %s", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	closer := logging.Setup(logging.SetupParams{
		LogLevel:      cfg.Logging.Level,
		LogFormatJSON: cfg.Logging.JSON,
	})
	defer closer.Close()

	store, err := planstore.Open(cfg.Server.DBPath)
	if err != nil {
		log.Fatalf("failed to open plan store: %s", err)
	}
	defer store.Close()
	log.WithField("path", cfg.Server.DBPath).Info("plan store opened")

	if *seedPath != "" {
		if err := seed(store, *seedPath); err != nil {
			log.Fatalf("failed to seed plan: %s", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := planserver.NewMetrics("coachlix", "planserver", reg)

	if cfg.Server.Token == "" {
		log.Warn("server.token is empty, requests are not authenticated")
	}
	srv := planserver.New(store, cfg.Server.Token, metrics, reg, log.StandardLogger())

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", httpSrv.Addr).Info("plan server starting")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server error: %s", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.WithField("signal", sig.String()).Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown error: %s", err)
	}
	log.Info("server stopped")
}

func seed(store *planstore.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var p models.Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stored, err := store.Put(ctx, &p)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"plan_id": stored.Identifier(), "name": stored.Name}).Info("plan seeded")
	return nil
}
