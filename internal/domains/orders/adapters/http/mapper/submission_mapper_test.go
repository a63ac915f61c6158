package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
)

func TestFromSubmission(t *testing.T) {
	entry := domain.SubmissionEntry{
		ID:        "a1",
		Kind:      domain.KindRaw,
		PONumber:  "PO-1",
		Outcome:   domain.OutcomeFailed,
		Error:     "order submission failed with HTTP 502: bad gateway",
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(FromSubmission(entry))
	require.NoError(t, err)
	require.JSONEq(t, `{
		"id":"a1","kind":"raw","poNumber":"PO-1","parts":[],"outcome":"failed",
		"error":"order submission failed with HTTP 502: bad gateway",
		"createdAt":"2024-06-01T12:00:00Z"
	}`, string(body))
}

func TestFromSubmissionList_NeverNil(t *testing.T) {
	require.NotNil(t, FromSubmissionList(nil))
	require.Empty(t, FromSubmissionList(nil))
}
