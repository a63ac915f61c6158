package gatewayserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestInfo_ListsEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, "http://127.0.0.1:1/api/orders", "")

	rec := do(router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		OK        bool     `json:"ok"`
		Service   string   `json:"service"`
		Endpoints []string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.OK)
	require.Equal(t, "order-gateway", resp.Service)
	require.Contains(t, resp.Endpoints, "POST /orders/engine")
	require.Contains(t, resp.Endpoints, "GET /orders/engine/demo")
}

func TestHealth_ReportsPresenceOnly(t *testing.T) {
	router, _ := newTestRouter(t, "http://127.0.0.1:1/api/orders", "")

	rec := do(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ok":true,"secrets":{"TGF_API_KEY":"set"}}`, rec.Body.String())
}

func TestUnwiredAPIsAnswerNotImplemented(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{})

	rec := do(router, http.MethodGet, "/images/resolve?ref=A_1.jpg", "")
	require.Equal(t, http.StatusNotImplemented, rec.Code)
	require.JSONEq(t, `{"ok":false,"error":"not implemented"}`, rec.Body.String())
}
