package gatewayserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	ordershttpmapper "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application"
	orderstypes "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application/types"
	ordersdomain "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
	ordersports "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
)

const (
	IdempotencyKeyHeader   = "Idempotency-Key"
	IdempotentReplayHeader = "Idempotent-Replayed"
	// MaxPayloadBytes caps order bodies accepted for forwarding.
	MaxPayloadBytes = 1 << 20
)

// OrdersAPI wires HTTP transport with the orders service and durable workflows.
type OrdersAPI struct {
	service   ordersports.Service
	workflows ordersports.SubmissionWorkflows
}

func NewOrdersAPI(service ordersports.Service, workflows ordersports.SubmissionWorkflows) OrdersAPI {
	return OrdersAPI{service: service, workflows: workflows}
}

type submissionResponse struct {
	OK     bool            `json:"ok"`
	Sent   json.RawMessage `json:"sent"`
	Result json.RawMessage `json:"result"`
}

func respondSubmission(c *gin.Context, result *orderstypes.SubmissionResult) {
	c.JSON(http.StatusOK, submissionResponse{OK: true, Sent: orNull(result.Sent), Result: orNull(result.Result)})
}

func orNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}

// Get /orders/engine/demo
// Builds and submits a sample order
func (api *OrdersAPI) SubmitDemoOrder(c *gin.Context) {
	if api.service == nil {
		DefaultHandleFunc(c)
		return
	}
	input := orderstypes.DemoInput{
		AccountID: strings.TrimSpace(c.Query("account")),
		PONumber:  strings.TrimSpace(c.Query("po")),
	}
	result, err := api.service.SubmitDemo(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSubmission(c, result)
}

// Post /orders/engine
// Forwards a caller-supplied payload unmodified
func (api *OrdersAPI) SubmitOrder(c *gin.Context) {
	if api.service == nil {
		DefaultHandleFunc(c)
		return
	}
	payload, ok := readPayload(c)
	if !ok {
		return
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	result, err := api.service.SubmitPayloadOnce(c.Request.Context(), ordersdomain.KindRaw, key, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if result.Replayed {
		c.Header(IdempotentReplayHeader, "true")
	}
	respondSubmission(c, result)
}

// Post /orders/engine/durable
// Forwards a payload under the durable retry policy
func (api *OrdersAPI) SubmitOrderDurably(c *gin.Context) {
	if api.workflows == nil {
		DefaultHandleFunc(c)
		return
	}
	payload, ok := readPayload(c)
	if !ok {
		return
	}
	result, err := api.workflows.SubmitDurably(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSubmission(c, result)
}

// Get /orders/engine/submissions
// Lists recent submission attempts, newest first
func (api *OrdersAPI) ListSubmissions(c *gin.Context) {
	if api.service == nil {
		DefaultHandleFunc(c)
		return
	}
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondBadRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}
	entries, err := api.service.ListSubmissions(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "submissions": ordershttpmapper.FromSubmissionList(entries)})
}

func readPayload(c *gin.Context) (json.RawMessage, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxPayloadBytes)
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondFailure(c, http.StatusRequestEntityTooLarge, "request body exceeds 1 MiB")
			return nil, false
		}
		respondBadRequest(c, ordersapp.InvalidBodyMessage)
		return nil, false
	}
	if err := ordersapp.ValidatePayload(body); err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return json.RawMessage(body), true
}
