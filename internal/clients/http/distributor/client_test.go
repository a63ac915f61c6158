package distributor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apierrors "github.com/thegunfirm/Mag-Lock-sub017/internal/shared/errors"
)

func newTestClient(t *testing.T, url, apiKey string) *Client {
	t.Helper()
	client, err := NewClient(Config{OrderURL: url, APIKey: apiKey}, nil)
	require.NoError(t, err)
	return client
}

func TestSubmit_MissingAPIKeyFailsBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "")
	_, err := client.Submit(context.Background(), json.RawMessage(`{}`))

	require.Error(t, err)
	require.True(t, apierrors.IsConfiguration(err))
	require.Equal(t, "TGF_API_KEY is not configured", err.Error())
	require.Zero(t, calls.Load())
	require.False(t, client.Configured())
}

func TestSubmit_SendsHeadersAndBodyVerbatim(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "secret-key", r.Header.Get("TGF-API-KEY"))
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orderId":991,"status":"queued"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "secret-key")
	resp, err := client.Submit(context.Background(), json.RawMessage(`{"a":1}`))

	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, string(gotBody))
	require.JSONEq(t, `{"orderId":991,"status":"queued"}`, string(resp))
}

func TestSubmitOrder_WireNames(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "k")
	sent, resp, err := client.SubmitOrder(context.Background(), OrderPayload{
		StoreName:   "TheGunFirm",
		ShipToStore: "N",
		POSFlag:     "I",
		PONumber:    "PO-1",
		Items:       []PayloadItem{{PartNumber: "P1", Quantity: 1}},
		FillOrKill:  1,
	})
	require.NoError(t, err)
	require.Equal(t, "null", string(resp))
	require.Contains(t, string(sent), `"shipAccount":""`)

	for _, key := range []string{
		"storeName", "address1", "address2", "city", "state", "zip", "shipToStore",
		"shipAccount", "shipFFL", "contactNum", "posFlag", "poNumber", "email", "items", "fillOrKill",
	} {
		require.Contains(t, got, key)
	}
	require.Len(t, got, 15)
	require.Equal(t, float64(1), got["fillOrKill"])
}

func TestSubmit_Non2xxIsSubmissionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid FFL"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "k")
	_, err := client.Submit(context.Background(), json.RawMessage(`{}`))

	var subErr *apierrors.SubmissionError
	require.ErrorAs(t, err, &subErr)
	require.Equal(t, http.StatusUnprocessableEntity, subErr.StatusCode)
	require.Contains(t, err.Error(), "invalid FFL")
}

func TestSubmit_NotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "k")
	_, err := client.Submit(context.Background(), json.RawMessage(`{}`))
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestSubmit_TimeoutIsSubmissionError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := NewClient(Config{OrderURL: server.URL, APIKey: "k", Timeout: 50 * time.Millisecond}, nil)
	require.NoError(t, err)

	_, err = client.Submit(context.Background(), json.RawMessage(`{}`))
	require.True(t, apierrors.IsSubmission(err))
}

func TestSubmit_NonJSONResponseIsQuoted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "k")
	resp, err := client.Submit(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)
	require.Equal(t, `"OK"`, string(resp))
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{}, nil)
	require.NoError(t, err)
	require.Equal(t, DefaultOrderURL, client.orderURL)
	require.Equal(t, DefaultTimeout, client.timeout)

	_, err = NewClient(Config{OrderURL: "engine.local/orders"}, nil)
	require.Error(t, err)
}
