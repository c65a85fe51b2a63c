package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	vetserver "github.com/Apurer/go-vet-office/go"

	recordworkflows "github.com/Apurer/go-vet-office/internal/domains/records/adapters/workflows"
	recordsports "github.com/Apurer/go-vet-office/internal/domains/records/ports"
	platformobservability "github.com/Apurer/go-vet-office/internal/platform/observability"
)

const serviceName = "vet-office-api"

// Run boots the vet office HTTP API with observability, repositories, and
// workflows wired. It returns once ctx is cancelled and the server drained.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, cleanup := BuildServices(ctx, cfg.PostgresDSN, instruments)
	defer cleanup()

	var recordWorkflows recordsports.WorkflowOrchestrator = recordworkflows.NewInlineRecordWorkflows(services.Records)
	if temporalClient, err := DialTemporal(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, persisting records inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		recordWorkflows = recordworkflows.NewTemporalRecordWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := vetserver.ApiHandleFunctions{
		OwnerAPI:  vetserver.NewOwnerAPI(services.Owners),
		PetAPI:    vetserver.NewPetAPI(services.Pets),
		RecordAPI: vetserver.NewRecordAPI(services.Records, recordWorkflows),
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router := vetserver.NewRouterWithGinEngine(engine, handlers)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("vet office API listening", slog.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("vet office API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down vet office API", slog.Duration("timeout", cfg.ShutdownTimeout))
	drainCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
