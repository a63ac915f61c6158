package orders

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application/types"
	ordersdomain "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
	orderactivities "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/temporal/activities/orders"
	apierrors "github.com/thegunfirm/Mag-Lock-sub017/internal/shared/errors"
)

type scriptedService struct {
	errs  []error
	calls int
	kinds []ordersdomain.SubmissionKind
}

func (s *scriptedService) SubmitDemo(context.Context, orderstypes.DemoInput) (*orderstypes.SubmissionResult, error) {
	return nil, errors.New("not used")
}

func (s *scriptedService) SubmitPayload(_ context.Context, kind ordersdomain.SubmissionKind, payload json.RawMessage) (*orderstypes.SubmissionResult, error) {
	s.calls++
	s.kinds = append(s.kinds, kind)
	if s.calls <= len(s.errs) && s.errs[s.calls-1] != nil {
		return nil, s.errs[s.calls-1]
	}
	return &orderstypes.SubmissionResult{Sent: payload, Result: json.RawMessage(`{"status":"accepted"}`)}, nil
}

func (s *scriptedService) SubmitPayloadOnce(ctx context.Context, kind ordersdomain.SubmissionKind, _ string, payload json.RawMessage) (*orderstypes.SubmissionResult, error) {
	return s.SubmitPayload(ctx, kind, payload)
}

func (s *scriptedService) ListSubmissions(context.Context, int) ([]ordersdomain.SubmissionEntry, error) {
	return nil, nil
}

func newEnv(t *testing.T, svc *scriptedService) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(SubmissionWorkflow, workflow.RegisterOptions{Name: SubmissionWorkflowName})
	env.RegisterActivityWithOptions(orderactivities.NewActivities(svc).SubmitPayload, activity.RegisterOptions{Name: orderactivities.SubmitPayloadActivityName})
	return env
}

func input() SubmissionWorkflowInput {
	return SubmissionWorkflowInput{Command: orderactivities.SubmitPayloadInput{
		Payload:  json.RawMessage(`{"poNumber":"PO-1","items":[{"partNumber":"AAC17-22G3","quantity":1}]}`),
		PONumber: "PO-1",
	}}
}

func TestSubmissionWorkflow_Succeeds(t *testing.T) {
	svc := &scriptedService{}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(SubmissionWorkflowName, input())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result orderstypes.SubmissionResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.JSONEq(t, `{"status":"accepted"}`, string(result.Result))
	require.Equal(t, []ordersdomain.SubmissionKind{ordersdomain.KindDurable}, svc.kinds)
}

func TestSubmissionWorkflow_RetriesSubmissionFailures(t *testing.T) {
	svc := &scriptedService{errs: []error{
		&apierrors.SubmissionError{StatusCode: 502, Err: errors.New("bad gateway")},
		&apierrors.SubmissionError{Err: errors.New("connection reset")},
	}}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(SubmissionWorkflowName, input())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	require.Equal(t, 3, svc.calls)
}

func TestSubmissionWorkflow_GivesUpAfterMaxAttempts(t *testing.T) {
	fail := &apierrors.SubmissionError{StatusCode: 503, Err: errors.New("unavailable")}
	svc := &scriptedService{errs: []error{fail, fail, fail, fail, fail, fail}}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(SubmissionWorkflowName, input())

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	require.Equal(t, 5, svc.calls)

	mapped := orderactivities.FromApplicationError(err)
	var subErr *apierrors.SubmissionError
	require.ErrorAs(t, mapped, &subErr)
	require.Equal(t, 503, subErr.StatusCode)
}

func TestSubmissionWorkflow_ConfigurationErrorIsNotRetried(t *testing.T) {
	svc := &scriptedService{errs: []error{apierrors.NewConfigurationError("TGF_API_KEY")}}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(SubmissionWorkflowName, input())

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	require.Equal(t, 1, svc.calls)

	mapped := orderactivities.FromApplicationError(err)
	require.True(t, apierrors.IsConfiguration(mapped))
	require.EqualError(t, mapped, "TGF_API_KEY is not configured")
}
