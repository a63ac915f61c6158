package orders

import (
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application/types"
	orderactivities "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/temporal/activities/orders"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/platform/temporal/sequences"
)

const (
	// SubmissionWorkflowName is the public identifier for registering the workflow.
	SubmissionWorkflowName = "orders.workflows.Submission"
	// SubmissionTaskQueue is the queue consumed by the order submission worker.
	SubmissionTaskQueue = "ORDER_SUBMISSION"
)

// SubmissionWorkflowInput captures a pass-through order payload.
type SubmissionWorkflowInput struct {
	Command orderactivities.SubmitPayloadInput
	TraceID string
}

// SubmissionWorkflow delivers an order payload to the distributor with retries.
func SubmissionWorkflow(ctx workflow.Context, input SubmissionWorkflowInput) (*orderstypes.SubmissionResult, error) {
	logger := workflow.GetLogger(ctx)
	po := input.Command.PONumber
	logger.Info("SubmissionWorkflow started", withTraceID(input.TraceID, "poNumber", po)...)
	result, err := sequences.RunOrderSubmissionSequence(ctx, input.Command)
	if err != nil {
		logger.Error("SubmissionWorkflow failed", withTraceID(input.TraceID, "poNumber", po, "error", err)...)
		return nil, err
	}
	logger.Info("SubmissionWorkflow completed", withTraceID(input.TraceID, "poNumber", po)...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
