package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	ordersapp "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application"
	orderstypes "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application/types"
	ordersdomain "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
	orderactivities "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.SubmissionWorkflows = (*TemporalSubmissionWorkflows)(nil)
	_ ports.SubmissionWorkflows = (*InlineSubmissionWorkflows)(nil)
)

// TemporalSubmissionWorkflows starts order submission workflows on a Temporal cluster.
type TemporalSubmissionWorkflows struct {
	client    client.Client
	taskQueue string
}

func NewTemporalSubmissionWorkflows(c client.Client) *TemporalSubmissionWorkflows {
	return &TemporalSubmissionWorkflows{client: c, taskQueue: orderworkflows.SubmissionTaskQueue}
}

// SubmitDurably starts the submission workflow and waits for its result.
// Resubmitting the same PO number while a run is open joins that run.
func (o *TemporalSubmissionWorkflows) SubmitDurably(ctx context.Context, payload json.RawMessage) (*orderstypes.SubmissionResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal submission workflows not configured")
	}
	if err := ordersapp.ValidatePayload(payload); err != nil {
		return nil, err
	}
	po := ordersapp.PayloadPONumber(payload)
	workflowID := BuildSubmissionWorkflowID(po, payload)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	input := orderworkflows.SubmissionWorkflowInput{
		Command: orderactivities.SubmitPayloadInput{Payload: payload, PONumber: po},
		TraceID: workflowTraceID(ctx),
	}
	run, err := o.client.ExecuteWorkflow(ctx, options, orderworkflows.SubmissionWorkflowName, input)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var result orderstypes.SubmissionResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, orderactivities.FromApplicationError(err)
	}
	return &result, nil
}

// InlineSubmissionWorkflows submits once through the service, for
// development or when Temporal is unavailable.
type InlineSubmissionWorkflows struct {
	service ports.Service
}

func NewInlineSubmissionWorkflows(service ports.Service) *InlineSubmissionWorkflows {
	return &InlineSubmissionWorkflows{service: service}
}

func (o *InlineSubmissionWorkflows) SubmitDurably(ctx context.Context, payload json.RawMessage) (*orderstypes.SubmissionResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline submission workflows not configured")
	}
	return o.service.SubmitPayload(ctx, ordersdomain.KindDurable, payload)
}

// BuildSubmissionWorkflowID derives a deterministic workflow id from the PO
// number, or from the payload digest when there is none.
func BuildSubmissionWorkflowID(poNumber string, payload json.RawMessage) string {
	if po := strings.TrimSpace(poNumber); po != "" {
		return fmt.Sprintf("order-submission-%s", po)
	}
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("order-submission-%s", hex.EncodeToString(sum[:8]))
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
