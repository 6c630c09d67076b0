package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BankToken/circuit-breakers/config"
	"github.com/BankToken/circuit-breakers/internal/events"
	"github.com/BankToken/circuit-breakers/internal/httpserver"
	"github.com/BankToken/circuit-breakers/internal/probe"
	"github.com/BankToken/circuit-breakers/pkg/circuitbreaker"
	cbprom "github.com/BankToken/circuit-breakers/pkg/circuitbreaker/prometheus"
	"github.com/BankToken/circuit-breakers/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cooldown, err := time.ParseDuration(cfg.Breaker.Cooldown)
	if err != nil {
		log.Error("Invalid cooldown", slog.Any("err", err))
		os.Exit(1)
	}

	interval, err := time.ParseDuration(cfg.Probe.Interval)
	if err != nil {
		log.Error("Invalid probe interval", slog.Any("err", err))
		os.Exit(1)
	}

	collector := events.NewCollector(1000, log)
	collector.Start(ctx)

	notifier := circuitbreaker.MultiNotifier(
		collector,
		cbprom.NewNotifier(prometheus.DefaultRegisterer),
	)

	registry, err := circuitbreaker.NewRegistry(
		uint8(cfg.Breaker.FailureThreshold), cooldown,
		circuitbreaker.WithNotifier(notifier),
	)
	if err != nil {
		log.Error("Failed to create breaker registry", slog.Any("err", err))
		os.Exit(1)
	}

	dependencies, err := buildDependencies(cfg)
	if err != nil {
		log.Error("Failed to resolve dependencies", slog.Any("err", err))
		os.Exit(1)
	}

	for _, dep := range dependencies {
		go probe.Watch(ctx, dep, registry.GetBreaker(dep.Name), interval, log)
	}

	mux := http.NewServeMux()
	mux.Handle("/status", collector.Handler())
	mux.Handle("/breakers", breakersHandler(registry))
	mux.Handle("/metrics", promhttp.Handler())

	srv, err := httpserver.New(cfg.Server.Address, mux)
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	log.Info("Circuit breaker daemon started",
		slog.String("address", cfg.Server.Address),
		slog.Int("dependencies", len(dependencies)))

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error running server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func buildDependencies(cfg *config.Config) ([]probe.Dependency, error) {
	var dependencies []probe.Dependency

	for _, dep := range cfg.Dependencies {
		u, err := url.Parse(dep.URL)
		if err != nil {
			slog.Error("Failed to parse URL",
				slog.String("dependency", dep.Name),
				slog.String("url", dep.URL),
				slog.String("error", err.Error()))
			continue
		}

		dependencies = append(dependencies, probe.Dependency{
			Name: dep.Name,
			URL:  u,
		})
	}

	if len(dependencies) == 0 {
		return nil, os.ErrInvalid
	}

	return dependencies, nil
}

func breakersHandler(registry *circuitbreaker.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := registry.Stats()

		states := make(map[string]string, len(stats))
		for name, state := range stats {
			states[name] = state.String()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(states); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}
