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

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	httpapi "pharmafinder/internal/http"
	idservice "pharmafinder/internal/identity/service"
	jwttoken "pharmafinder/internal/jwt_token"
	"pharmafinder/internal/platform/config"
	"pharmafinder/internal/platform/httpserver"
	"pharmafinder/internal/platform/logger"
	"pharmafinder/internal/platform/metrics"
	riderhandler "pharmafinder/internal/rider/handler"
	riderservice "pharmafinder/internal/rider/service"
	"pharmafinder/pkg/platform/audit/publisher"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close(log)

	m := metrics.New()
	auditPublisher := publisher.NewPublisher(b.auditStore,
		publisher.WithAsyncBuffer(cfg.Kafka.AuditBuffer),
		publisher.WithLogger(log),
		publisher.WithAppendTimeout(cfg.Kafka.AppendTimeout),
	)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := auditPublisher.Close(closeCtx); err != nil {
			log.Warn("audit publisher close", "error", err)
		}
	}()

	identity := idservice.New(b.accounts, idservice.WithLogger(log))
	opts := []riderservice.Option{
		riderservice.WithLogger(log),
		riderservice.WithMetrics(m),
		riderservice.WithAuditPublisher(auditPublisher),
		riderservice.WithInventory(identity, b.profiles),
	}
	if cfg.Riders.OrphanCleanup {
		opts = append(opts, riderservice.WithOrphanCleanup(identity))
	}
	riders, err := riderservice.New(b.admins, identity, b.profiles, opts...)
	if err != nil {
		return fmt.Errorf("build rider service: %w", err)
	}

	jwtService := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
	router := httpapi.NewRouter(httpapi.Deps{
		Riders:        riderhandler.New(riders, log),
		Validator:     jwttoken.NewJWTServiceAdapter(jwtService),
		Logger:        log,
		Metrics:       m,
		Gatherer:      prometheus.DefaultGatherer,
		OpsAdminToken: cfg.OpsAdminToken,
		Checks:        b.healthChecks(),
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting pharmafinder", "addr", cfg.Addr, "admin_registry", cfg.Riders.AdminBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
