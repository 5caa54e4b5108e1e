package handlers

import (
	"net/http"
	"sort"
	"strings"

	"ecoatlas/internal/observability"
	"ecoatlas/internal/version"

	"github.com/gin-gonic/gin"
)

// RouteInfo represents information about a single route
type RouteInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// APIIndex is the body of GET /api.
type APIIndex struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Build     version.Build     `json:"build"`
	Endpoints map[string]string `json:"endpoints"`
	Routes    []RouteInfo       `json:"routes"`
}

// RouteListingHandler answers GET /api with the collections and every
// registered API route.
type RouteListingHandler struct {
	serviceName string
	prefix      string
	routes      []RouteInfo
}

// NewRouteListingHandler creates a route listing for routes under prefix.
func NewRouteListingHandler(serviceName, prefix string) *RouteListingHandler {
	return &RouteListingHandler{
		serviceName: serviceName,
		prefix:      prefix,
		routes:      []RouteInfo{},
	}
}

// CollectRoutes snapshots the engine's routes under the prefix. Call it after
// every API route is registered.
func (h *RouteListingHandler) CollectRoutes(engine *gin.Engine) {
	h.routes = []RouteInfo{}
	for _, route := range engine.Routes() {
		if !strings.HasPrefix(route.Path, h.prefix) {
			continue
		}
		h.routes = append(h.routes, RouteInfo{Method: route.Method, Path: route.Path})
	}

	sort.Slice(h.routes, func(i, j int) bool {
		if h.routes[i].Path == h.routes[j].Path {
			return h.routes[i].Method < h.routes[j].Method
		}
		return h.routes[i].Path < h.routes[j].Path
	})
}

// GetAPIIndex handles GET /api.
func (h *RouteListingHandler) GetAPIIndex(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_api_index")
	defer observability.FinishSpan(span, nil)

	respondData(c, http.StatusOK, APIIndex{
		Message: "Welcome to the " + h.serviceName + " API",
		Version: version.Version,
		Build:   version.Current(),
		Endpoints: map[string]string{
			"problems":  h.prefix + "/problems",
			"solutions": h.prefix + "/solutions",
			"ideas":     h.prefix + "/ideas",
			"stats":     h.prefix + "/stats",
		},
		Routes: h.routes,
	}, "")
}
