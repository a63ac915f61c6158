package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application/types"
	orderactivities "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/temporal/activities/orders"
)

// SubmissionRetryPolicy governs redelivery of a failed distributor call.
var SubmissionRetryPolicy = temporal.RetryPolicy{
	InitialInterval:    2 * time.Second,
	BackoffCoefficient: 2.0,
	MaximumInterval:    30 * time.Second,
	MaximumAttempts:    5,
	NonRetryableErrorTypes: []string{
		orderactivities.ConfigurationErrorType,
		orderactivities.ValidationErrorType,
	},
}

// RunOrderSubmissionSequence submits one payload under SubmissionRetryPolicy.
func RunOrderSubmissionSequence(ctx workflow.Context, input orderactivities.SubmitPayloadInput) (*orderstypes.SubmissionResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order submission sequence started", "poNumber", input.PONumber)
	policy := SubmissionRetryPolicy
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy:         &policy,
	}

	var result orderstypes.SubmissionResult
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), orderactivities.SubmitPayloadActivityName, input).Get(ctx, &result)
	if err != nil {
		logger.Error("order submission sequence failed", "poNumber", input.PONumber, "error", err)
		return nil, err
	}
	logger.Info("order submission sequence completed", "poNumber", input.PONumber)
	return &result, nil
}
