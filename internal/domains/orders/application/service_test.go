package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ordersmemory "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/adapters/memory"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application/types"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
	apierrors "github.com/thegunfirm/Mag-Lock-sub017/internal/shared/errors"
)

type fakeSubmitter struct {
	orders   []domain.OrderRecord
	payloads []json.RawMessage
	err      error
}

func (f *fakeSubmitter) SubmitOrder(_ context.Context, order *domain.OrderRecord) (*domain.Receipt, error) {
	f.orders = append(f.orders, *order)
	if f.err != nil {
		return nil, f.err
	}
	sent, _ := json.Marshal(map[string]string{"poNumber": order.PONumber})
	return &domain.Receipt{Sent: sent, Response: json.RawMessage(`{"status":"accepted"}`)}, nil
}

func (f *fakeSubmitter) SubmitPayload(_ context.Context, payload json.RawMessage) (*domain.Receipt, error) {
	f.payloads = append(f.payloads, payload)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Receipt{Sent: payload, Response: json.RawMessage(`{"status":"accepted"}`)}, nil
}

func newTestService(sub *fakeSubmitter) (*Service, *ordersmemory.Journal) {
	journal := ordersmemory.NewJournal()
	builder := NewBuilder(BuilderDefaults{}, WithClock(fixedClock(1700000000000)))
	return NewService(builder, sub, WithJournal(journal), WithServiceClock(func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	})), journal
}

func TestSubmitDemo_AnnotatesPONumber(t *testing.T) {
	sub := &fakeSubmitter{}
	svc, journal := newTestService(sub)

	result, err := svc.SubmitDemo(context.Background(), types.DemoInput{AccountID: "99901", PONumber: "PO-X"})
	require.NoError(t, err)
	require.Len(t, sub.orders, 1)
	require.Equal(t, "PO-X-ACC99901-MAP60742", sub.orders[0].PONumber)
	require.JSONEq(t, `{"status":"accepted"}`, string(result.Result))

	entries, err := journal.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, domain.KindDemo, entries[0].Kind)
	require.Equal(t, domain.OutcomeSent, entries[0].Outcome)
	require.Equal(t, []string{DefaultPartNumber}, entries[0].Parts)
}

func TestSubmitDemo_GeneratesPOAndUnknownAccount(t *testing.T) {
	sub := &fakeSubmitter{}
	svc, _ := newTestService(sub)

	_, err := svc.SubmitDemo(context.Background(), types.DemoInput{AccountID: "55555"})
	require.NoError(t, err)
	require.Equal(t, "PO-55555-1700000000000-ACC55555-MAPunknown", sub.orders[0].PONumber)
}

func TestSubmitDemo_DefaultAccount(t *testing.T) {
	sub := &fakeSubmitter{}
	svc, _ := newTestService(sub)

	_, err := svc.SubmitDemo(context.Background(), types.DemoInput{})
	require.NoError(t, err)
	require.Equal(t, "PO-99901-1700000000000-ACC99901-MAP60742", sub.orders[0].PONumber)
}

func TestSubmitDemo_FailureIsJournaledAndReturned(t *testing.T) {
	sub := &fakeSubmitter{err: &apierrors.SubmissionError{StatusCode: 503, Err: errors.New("unavailable")}}
	svc, journal := newTestService(sub)

	_, err := svc.SubmitDemo(context.Background(), types.DemoInput{PONumber: "PO-1"})
	require.Error(t, err)
	require.True(t, apierrors.IsSubmission(err))

	entries, _ := journal.Recent(context.Background(), 10)
	require.Len(t, entries, 1)
	require.Equal(t, domain.OutcomeFailed, entries[0].Outcome)
	require.Contains(t, entries[0].Error, "HTTP 503")
}

func TestSubmitPayload_ForwardsUnmodified(t *testing.T) {
	sub := &fakeSubmitter{}
	svc, journal := newTestService(sub)

	payload := json.RawMessage(`{"poNumber":"PO-RAW","items":[{"partNumber":"P1","quantity":3}],"extra":true}`)
	result, err := svc.SubmitPayload(context.Background(), domain.KindRaw, payload)
	require.NoError(t, err)
	require.Equal(t, string(payload), string(sub.payloads[0]))
	require.JSONEq(t, string(payload), string(result.Sent))

	entries, _ := journal.Recent(context.Background(), 10)
	require.Equal(t, "PO-RAW", entries[0].PONumber)
	require.Equal(t, []string{"P1"}, entries[0].Parts)
}

func TestSubmitPayload_EmptyObjectForwarded(t *testing.T) {
	sub := &fakeSubmitter{}
	svc, _ := newTestService(sub)

	_, err := svc.SubmitPayload(context.Background(), "", json.RawMessage(`{}`))
	require.NoError(t, err)
	require.Equal(t, `{}`, string(sub.payloads[0]))
}

func TestSubmitPayload_RejectsUnstructuredBodies(t *testing.T) {
	for _, body := range []string{"null", "", "42", `"text"`, "true", "{not json"} {
		sub := &fakeSubmitter{}
		svc, _ := newTestService(sub)
		_, err := svc.SubmitPayload(context.Background(), domain.KindRaw, json.RawMessage(body))
		require.Error(t, err, "body %q", body)
		require.True(t, apierrors.IsValidation(err))
		require.Equal(t, InvalidBodyMessage, err.Error())
		require.Empty(t, sub.payloads)
	}
}

func TestListSubmissions_ClampsLimit(t *testing.T) {
	sub := &fakeSubmitter{}
	svc, _ := newTestService(sub)
	for i := 0; i < 3; i++ {
		_, err := svc.SubmitPayload(context.Background(), domain.KindRaw, json.RawMessage(`[]`))
		require.NoError(t, err)
	}
	list, err := svc.ListSubmissions(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	list, err = svc.ListSubmissions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

type failingJournal struct{ *ordersmemory.Journal }

func (failingJournal) Append(context.Context, domain.SubmissionEntry) error {
	return errors.New("disk full")
}

func TestSubmit_JournalFailureDoesNotFailSubmission(t *testing.T) {
	sub := &fakeSubmitter{}
	svc := NewService(NewBuilder(BuilderDefaults{}), sub, WithJournal(failingJournal{ordersmemory.NewJournal()}))

	_, err := svc.SubmitPayload(context.Background(), domain.KindRaw, json.RawMessage(`{}`))
	require.NoError(t, err)
}
