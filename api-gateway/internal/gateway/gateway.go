package gateway

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const CorrelationHeader = "X-Correlation-Id"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	MarketSvcURL    string
	MenuSvcURL      string
	RateSvcURL      string
	AnalyticsSvcURL string
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	correlationID := r.Header.Get(CorrelationHeader)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	log.Printf("[api-gateway] %s %s -> %s (%s)", r.Method, r.URL.Path, targetURL, correlationID)

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		log.Printf("[api-gateway] failed to create request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}
	req.Header.Set(CorrelationHeader, correlationID)

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("[api-gateway] failed to proxy to %s: %v", targetURL, err)
		w.Header().Set(CorrelationHeader, correlationID)
		writeError(w, http.StatusBadGateway, "Service unavailable")
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.Header().Set(CorrelationHeader, correlationID)
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("[api-gateway] failed to copy response: %v", err)
	}
}

// Upstream picks the service that owns path, or "" when none does.
func (g *Gateway) Upstream(path string) string {
	switch {
	case hasSegmentPrefix(path, "/api/analytics"):
		return g.config.AnalyticsSvcURL
	case hasSegmentPrefix(path, "/api/restaurants") && strings.HasSuffix(strings.TrimRight(path, "/"), "/analytics"):
		return g.config.AnalyticsSvcURL
	case hasSegmentPrefix(path, "/api/ratings"):
		return g.config.RateSvcURL
	case hasSegmentPrefix(path, "/api/restaurants"):
		return g.config.MenuSvcURL
	case hasSegmentPrefix(path, "/api/auth"),
		hasSegmentPrefix(path, "/api/orders"),
		hasSegmentPrefix(path, "/api/restaurant/orders"),
		hasSegmentPrefix(path, "/api/driver"),
		hasSegmentPrefix(path, "/api/wallet"):
		return g.config.MarketSvcURL
	}
	return ""
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	target := g.Upstream(r.URL.Path)
	if target == "" {
		log.Printf("[api-gateway] unmatched route: %s %s", r.Method, r.URL.Path)
		writeError(w, http.StatusNotFound, "API route not found")
		return
	}
	g.ProxyRequest(w, r, target)
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
