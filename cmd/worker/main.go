package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-vet-office/internal/app/api"
	platformobservability "github.com/Apurer/go-vet-office/internal/platform/observability"
	recordactivities "github.com/Apurer/go-vet-office/internal/platform/temporal/activities/records"
	recordworkflows "github.com/Apurer/go-vet-office/internal/platform/temporal/workflows/records"
)

func main() {
	ctx := context.Background()
	const serviceName = "vet-office-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, cleanup := api.BuildServices(ctx, cfg.PostgresDSN, instruments)
	defer cleanup()
	if !services.Postgres {
		logger.Warn("worker persists records in memory; the API will not see them")
	}
	activities := recordactivities.NewActivities(services.Records)

	temporalClient, err := api.DialTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, recordworkflows.RecordSubmissionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(recordworkflows.RecordSubmissionWorkflow, workflow.RegisterOptions{Name: recordworkflows.RecordSubmissionWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistRecord, activity.RegisterOptions{Name: recordactivities.PersistRecordActivityName})

	logger.Info("worker listening", slog.String("taskQueue", recordworkflows.RecordSubmissionTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
