package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/app/gateway"
	platformobservability "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/observability"
	platformtemporal "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/temporal"
	orderactivities "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/temporal/workflows/orders"
)

const serviceName = "order-gateway-worker"

// Run hosts the order submission workflow and activities until ctx is done.
func Run(ctx context.Context, cfg gateway.Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.ObservabilityOptions(serviceName))
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

	orderService, cleanup, err := gateway.BuildOrderService(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()
	activities := orderactivities.NewActivities(orderService)

	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   cfg.Temporal.Address,
		Namespace: cfg.Temporal.Namespace,
		Disabled:  cfg.Temporal.Disabled,
	}, instruments, "temporal-worker")
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.SubmissionTaskQueue, worker.Options{})
	Register(w, activities)

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.SubmissionTaskQueue), slog.String("namespace", cfg.Temporal.Namespace))
	stop := make(chan interface{})
	go func() {
		<-ctx.Done()
		close(stop)
	}()
	if err := w.Run(stop); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Temporal worker stopped")
	return nil
}

type registry interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// Register adds the order submission workflow and activities to r.
func Register(r registry, activities *orderactivities.Activities) {
	r.RegisterWorkflowWithOptions(orderworkflows.SubmissionWorkflow, workflow.RegisterOptions{Name: orderworkflows.SubmissionWorkflowName})
	r.RegisterActivityWithOptions(activities.SubmitPayload, activity.RegisterOptions{Name: orderactivities.SubmitPayloadActivityName})
}
