package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/rebate-service/internal/app/rebate/catalog"
	"github.com/light-bringer/rebate-service/internal/config"
	"github.com/light-bringer/rebate-service/internal/pkg/logger"
	"github.com/light-bringer/rebate-service/internal/pkg/metrics"
	"github.com/light-bringer/rebate-service/internal/pkg/telemetry"
	"github.com/light-bringer/rebate-service/internal/services"
	grpcrebate "github.com/light-bringer/rebate-service/internal/transport/grpc/rebate"
	httptransport "github.com/light-bringer/rebate-service/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	log.Info().
		Str("backend", cfg.StoreBackend).
		Str("grpc_port", cfg.GRPCPort).
		Str("http_port", cfg.HTTPPort).
		Msg("starting rebate service")

	// 2. Tracing and metrics
	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: "rebate-service",
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.NewPrometheusRecorder(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	// 3. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, log, recorder)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	if cfg.CatalogFile != "" {
		if err := seedCatalog(ctx, cfg.CatalogFile, serviceOpts, log); err != nil {
			return err
		}
	}

	// 4. gRPC server
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcrebate.RecoveryInterceptor(log)))
	grpcrebate.RegisterRebateServiceServer(grpcServer, serviceOpts.GRPCHandler)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	// 5. HTTP server
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httptransport.NewRouter(serviceOpts.HTTPHandler, registry, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.GRPCPort).Msg("gRPC server listening")
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		log.Info().Str("port", cfg.HTTPPort).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 6. Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down gracefully")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(sctx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown")
		}
		grpcServer.GracefulStop()
		return nil
	})

	return g.Wait()
}

func seedCatalog(ctx context.Context, path string, opts *services.ServiceOptions, log zerolog.Logger) error {
	cat, err := catalog.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := catalog.NewSeeder(opts.Catalog, log).Seed(ctx, cat); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}
