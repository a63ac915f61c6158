package gatewayserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouterWithGinEngine adds the gateway routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes whose API was not wired.
func DefaultHandleFunc(c *gin.Context) {
	respondFailure(c, http.StatusNotImplemented, "not implemented")
}

type ApiHandleFunctions struct {
	// Routes for the InfoAPI part of the API
	InfoAPI InfoAPI
	// Routes for the OrdersAPI part of the API
	OrdersAPI OrdersAPI
	// Routes for the ImagesAPI part of the API
	ImagesAPI ImagesAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Info",
			http.MethodGet,
			"/",
			handleFunctions.InfoAPI.Info,
		},
		{
			"Health",
			http.MethodGet,
			"/health",
			handleFunctions.InfoAPI.Health,
		},
		{
			"SubmitDemoOrder",
			http.MethodGet,
			"/orders/engine/demo",
			handleFunctions.OrdersAPI.SubmitDemoOrder,
		},
		{
			"SubmitOrder",
			http.MethodPost,
			"/orders/engine",
			handleFunctions.OrdersAPI.SubmitOrder,
		},
		{
			"SubmitOrderDurably",
			http.MethodPost,
			"/orders/engine/durable",
			handleFunctions.OrdersAPI.SubmitOrderDurably,
		},
		{
			"ListSubmissions",
			http.MethodGet,
			"/orders/engine/submissions",
			handleFunctions.OrdersAPI.ListSubmissions,
		},
		{
			"ResolveImage",
			http.MethodGet,
			"/images/resolve",
			handleFunctions.ImagesAPI.ResolveImage,
		},
		{
			"RedirectImage",
			http.MethodGet,
			"/images/url",
			handleFunctions.ImagesAPI.RedirectImage,
		},
	}
}

// Endpoints lists "METHOD pattern" for every registered route.
func Endpoints() []string {
	routes := getRoutes(ApiHandleFunctions{})
	out := make([]string, 0, len(routes))
	for _, r := range routes {
		out = append(out, r.Method+" "+r.Pattern)
	}
	return out
}
