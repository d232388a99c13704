package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"food-delivery/api-gateway/internal/gateway"
	"food-delivery/api-gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testConfig = gateway.Config{
	MarketSvcURL:    "http://market-svc",
	MenuSvcURL:      "http://menu-svc",
	RateSvcURL:      "http://rate-svc",
	AnalyticsSvcURL: "http://analytics-svc",
}

func okResponse(body string) *http.Response {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_Upstream(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil)

	tests := []struct {
		path     string
		expected string
	}{
		{"/api/auth/login", "http://market-svc"},
		{"/api/orders", "http://market-svc"},
		{"/api/orders/12/qrcode", "http://market-svc"},
		{"/api/restaurant/orders/4/status", "http://market-svc"},
		{"/api/driver/orders", "http://market-svc"},
		{"/api/wallet/topup", "http://market-svc"},
		{"/api/restaurants", "http://menu-svc"},
		{"/api/restaurants/3/menu/9", "http://menu-svc"},
		{"/api/restaurants/3/analytics", "http://analytics-svc"},
		{"/api/analytics/top-restaurants", "http://analytics-svc"},
		{"/api/ratings/check/order/5", "http://rate-svc"},
		{"/api/walletx", ""},
		{"/api/unknown", ""},
		{"/index.html", ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.path, func(t *testing.T) {
			assert.Equal(t, testCase.expected, gw.Upstream(testCase.path))
		})
	}
}

func TestGateway_ProxiesWithCorrelationID(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient)

	var upstream *http.Request
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		upstream = req
		return true
	})).Return(okResponse(`{"success":true,"data":[{"id":1,"name":"Pizza"}]}`), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/10/menu?available=true", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Pizza")
	assert.Equal(t, "http://menu-svc/api/restaurants/10/menu?available=true", upstream.URL.String())
	assert.Equal(t, "Bearer abc", upstream.Header.Get("Authorization"))
	assert.NotEmpty(t, upstream.Header.Get(gateway.CorrelationHeader))
	assert.Equal(t, upstream.Header.Get(gateway.CorrelationHeader), rr.Header().Get(gateway.CorrelationHeader))
}

func TestGateway_KeepsIncomingCorrelationID(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient)

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get(gateway.CorrelationHeader) == "trace-1"
	})).Return(okResponse(`{"success":true}`), nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
	req.Header.Set(gateway.CorrelationHeader, "trace-1")
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "trace-1", rr.Header().Get(gateway.CorrelationHeader))
}

func TestGateway_UnknownAPI(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":false`)
}

func TestGateway_UpstreamUnavailable(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/ratings/order/5/summary", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "Service unavailable")
	assert.NotEmpty(t, rr.Header().Get(gateway.CorrelationHeader))
}

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := gateway.NewRateLimiter(1, 2)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	other.RemoteAddr = "10.0.0.2:5000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRateLimiter_Sweep(t *testing.T) {
	limiter := gateway.NewRateLimiter(1, 1)
	limiter.Allow("10.0.0.1")

	assert.Equal(t, 0, limiter.Sweep(time.Hour))
	assert.Equal(t, 1, limiter.Sweep(-time.Second))
}
