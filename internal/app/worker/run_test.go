package worker

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	orderactivities "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/temporal/workflows/orders"
)

func TestRegister_WiresWorkflowAndActivity(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	Register(env, orderactivities.NewActivities(nil))

	env.ExecuteWorkflow(orderworkflows.SubmissionWorkflowName, orderworkflows.SubmissionWorkflowInput{
		Command: orderactivities.SubmitPayloadInput{PONumber: "PO-1"},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.ErrorContains(t, env.GetWorkflowError(), "order submit activity not initialized")
}
