package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"passguard/internal/breach"
	"passguard/internal/breach/httptransport"
	"passguard/internal/evaluation"
	"passguard/internal/evaluation/handler"
	evalmetrics "passguard/internal/evaluation/metrics"
	httpapi "passguard/internal/http"
	"passguard/internal/platform/config"
	"passguard/internal/platform/httpserver"
	"passguard/internal/platform/logger"
	"passguard/internal/platform/metrics"
	"passguard/pkg/platform/circuit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "passguard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	handlerChain, err := buildHandler(cfg, log)
	if err != nil {
		return err
	}
	srv := httpserver.New(cfg.Server, handlerChain)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting passguard",
			"addr", cfg.Server.Addr,
			"breach_range_url", cfg.Breach.RangeURL,
			"breach_padding", cfg.Breach.Padding,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// buildHandler assembles the evaluation stack behind the HTTP router.
func buildHandler(cfg *config.Config, log *slog.Logger) (http.Handler, error) {
	registry := metrics.NewRegistry()

	breaker := circuit.New("breach-range",
		circuit.WithFailureThreshold(cfg.Breach.BreakerThreshold),
		circuit.WithSuccessThreshold(cfg.Breach.BreakerSuccessThreshold),
		circuit.WithCooldown(cfg.Breach.BreakerCooldown),
	)

	transport, err := httptransport.New(httptransport.Config{
		BaseURL:             cfg.Breach.RangeURL,
		Timeout:             cfg.Breach.Timeout,
		UserAgent:           cfg.Breach.UserAgent,
		Padding:             cfg.Breach.Padding,
		MaxIdleConnsPerHost: 8,
	},
		httptransport.WithBreaker(breaker),
		httptransport.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("breach transport: %w", err)
	}

	checker, err := breach.New(transport,
		breach.WithTimeout(cfg.Breach.Timeout),
		breach.WithPaddedResponses(transport.Padded()),
		breach.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("breach checker: %w", err)
	}

	service, err := evaluation.New(checker,
		evaluation.WithLogger(log),
		evaluation.WithMetrics(evalmetrics.New(registry)),
	)
	if err != nil {
		return nil, fmt.Errorf("evaluation service: %w", err)
	}

	return httpapi.NewRouter(log, registry, transport, handler.New(service, log)), nil
}
