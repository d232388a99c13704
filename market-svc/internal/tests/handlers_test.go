package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-delivery/auth"
	httpapi "food-delivery/market-svc/internal/api/http"
	"food-delivery/market-svc/internal/domain"
	"food-delivery/market-svc/internal/mocks"
	"food-delivery/market-svc/internal/service"
	"food-delivery/orderstatus"
	"food-delivery/wallet"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type testServer struct {
	router   *mux.Router
	issuer   *auth.Issuer
	orders   *mocks.OrderService
	wallets  *mocks.WalletService
	accounts *mocks.AccountService
}

func newTestServer() *testServer {
	s := &testServer{
		issuer:   auth.NewIssuer([]byte("test-secret"), time.Hour),
		orders:   new(mocks.OrderService),
		wallets:  new(mocks.WalletService),
		accounts: new(mocks.AccountService),
	}
	s.router = mux.NewRouter()
	httpapi.NewHandler(s.orders, s.wallets, s.accounts, s.issuer).RegisterRoutes(s.router)
	return s
}

func (s *testServer) token(userID int, role string, restaurantID int) string {
	token, _ := s.issuer.Issue(userID, role, restaurantID)
	return token
}

func (s *testServer) do(method, path, token string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	return env
}

func customerClaims(userID int) interface{} {
	return mock.MatchedBy(func(c *auth.Claims) bool { return c.UserID == userID && c.Role == auth.RoleCustomer })
}

func TestCreateOrderHandler(t *testing.T) {
	tests := []struct {
		name         string
		role         string
		noToken      bool
		prepareMocks func(s *testServer)
		wantCode     int
		wantMessage  string
	}{
		{
			name:     "missing token",
			noToken:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "restaurant cannot order",
			role:     auth.RoleRestaurant,
			wantCode: http.StatusForbidden,
		},
		{
			name: "created",
			role: auth.RoleCustomer,
			prepareMocks: func(s *testServer) {
				s.orders.On("Create", mock.Anything, 1, mock.AnythingOfType("domain.CreateOrderRequest"), "abc-123").
					Return(&domain.Order{ID: 42, Status: orderstatus.Pending, TotalPrice: 12}, nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "insufficient wallet balance",
			role: auth.RoleCustomer,
			prepareMocks: func(s *testServer) {
				s.orders.On("Create", mock.Anything, 1, mock.Anything, "abc-123").
					Return(nil, domain.ErrInsufficientBalance).Once()
			},
			wantCode:    http.StatusPaymentRequired,
			wantMessage: "insufficient wallet balance",
		},
		{
			name: "restaurant closed",
			role: auth.RoleCustomer,
			prepareMocks: func(s *testServer) {
				s.orders.On("Create", mock.Anything, 1, mock.Anything, "abc-123").
					Return(nil, service.ErrRestaurantClosed).Once()
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unexpected failure hides details",
			role: auth.RoleCustomer,
			prepareMocks: func(s *testServer) {
				s.orders.On("Create", mock.Anything, 1, mock.Anything, "abc-123").
					Return(nil, fmt.Errorf("pq: connection reset")).Once()
			},
			wantCode:    http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			s := newTestServer()
			if testCase.prepareMocks != nil {
				testCase.prepareMocks(s)
			}
			token := ""
			if !testCase.noToken {
				token = s.token(1, testCase.role, 3)
			}

			recorder := s.do(http.MethodPost, "/api/orders", token, map[string]interface{}{
				"restaurantId": 3,
				"items":        []map[string]interface{}{{"menuId": 7, "quantity": 2, "price": 3.5}},
				"totalPrice":   12.00,
			}, "Idempotency-Key", "abc-123")

			assert.Equal(t, testCase.wantCode, recorder.Code)
			env := decode(t, recorder)
			assert.Equal(t, recorder.Code < 300, env.Success)
			if testCase.wantMessage != "" {
				assert.Equal(t, testCase.wantMessage, env.Message)
			}
			s.orders.AssertExpectations(t)
		})
	}
}

func TestMyOrdersHandler_RouteIsNotShadowedByOrderID(t *testing.T) {
	s := newTestServer()
	s.orders.On("ListForCustomer", mock.Anything, 1).Return(nil, nil).Once()

	recorder := s.do(http.MethodGet, "/api/orders/user", s.token(1, auth.RoleCustomer, 0), nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	env := decode(t, recorder)
	assert.JSONEq(t, `[]`, string(env.Data))
	s.orders.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestRestaurantStatusHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         interface{}
		prepareMocks func(s *testServer)
		wantCode     int
		wantStatus   orderstatus.Status
	}{
		{
			name: "accepted",
			body: map[string]string{"status": "ACCEPTED"},
			prepareMocks: func(s *testServer) {
				s.orders.On("UpdateStatus", mock.Anything, mock.Anything, 5, "ACCEPTED").
					Return(&domain.Order{ID: 5, Status: orderstatus.Accepted}, nil).Once()
			},
			wantCode:   http.StatusOK,
			wantStatus: orderstatus.Accepted,
		},
		{
			name: "illegal jump",
			body: map[string]string{"status": "DELIVERED"},
			prepareMocks: func(s *testServer) {
				s.orders.On("UpdateStatus", mock.Anything, mock.Anything, 5, "DELIVERED").
					Return(nil, &orderstatus.TransitionError{From: orderstatus.Pending, To: orderstatus.Delivered, Actor: orderstatus.ActorRestaurant}).Once()
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "lost race",
			body: map[string]string{"status": "PREPARING"},
			prepareMocks: func(s *testServer) {
				s.orders.On("UpdateStatus", mock.Anything, mock.Anything, 5, "PREPARING").
					Return(nil, domain.ErrStatusConflict).Once()
			},
			wantCode: http.StatusConflict,
		},
		{
			name:     "missing status",
			body:     map[string]string{},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			s := newTestServer()
			if testCase.prepareMocks != nil {
				testCase.prepareMocks(s)
			}

			recorder := s.do(http.MethodPatch, "/api/restaurant/orders/5/status", s.token(10, auth.RoleRestaurant, 3), testCase.body)

			assert.Equal(t, testCase.wantCode, recorder.Code)
			if testCase.wantStatus != "" {
				var order domain.Order
				require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &order))
				assert.Equal(t, testCase.wantStatus, order.Status)
			}
			s.orders.AssertExpectations(t)
		})
	}
}

func TestDriverRoutesRequireDriverRole(t *testing.T) {
	s := newTestServer()
	recorder := s.do(http.MethodPatch, "/api/driver/orders/5/status", s.token(1, auth.RoleCustomer, 0), map[string]string{"status": "PICKED_UP"})
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	s.orders.On("ListForDriver", mock.Anything, 20).Return([]domain.Order{{ID: 5, Status: orderstatus.Ready}}, nil).Once()
	recorder = s.do(http.MethodGet, "/api/driver/orders", s.token(20, auth.RoleDriver, 0), nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestCancelOrderHandler(t *testing.T) {
	s := newTestServer()
	s.orders.On("Cancel", mock.Anything, customerClaims(1), 5).
		Return(&domain.Order{ID: 5, Status: orderstatus.Cancelled, PaymentStatus: wallet.PaymentRefunded}, nil).Once()

	recorder := s.do(http.MethodPatch, "/api/orders/5/cancel", s.token(1, auth.RoleCustomer, 0), nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	var order domain.Order
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &order))
	assert.Equal(t, wallet.PaymentRefunded, order.PaymentStatus)
}

func TestQRCodeHandler(t *testing.T) {
	s := newTestServer()
	s.orders.On("QRCode", mock.Anything, customerClaims(1), 5).Return([]byte("\x89PNG"), nil).Once()

	recorder := s.do(http.MethodGet, "/api/orders/5/qrcode", s.token(1, auth.RoleCustomer, 0), nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	assert.Equal(t, []byte("\x89PNG"), recorder.Body.Bytes())
}

func TestWalletHandlers(t *testing.T) {
	s := newTestServer()
	token := s.token(1, auth.RoleCustomer, 0)

	recorder := s.do(http.MethodGet, "/api/wallet/check-balance?amount=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	s.wallets.On("CheckBalance", mock.Anything, 1, 17.0).
		Return(&domain.BalanceCheck{Balance: 10, Required: 17, Sufficient: false}, nil).Once()
	recorder = s.do(http.MethodGet, "/api/wallet/check-balance?amount=17", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var check domain.BalanceCheck
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &check))
	assert.False(t, check.Sufficient)

	s.wallets.On("TopUp", mock.Anything, 1, -3.0).Return(nil, service.ErrInvalidAmount).Once()
	recorder = s.do(http.MethodPost, "/api/wallet/topup", token, map[string]float64{"amount": -3})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	guard := wallet.NewGuard(decimal.NewFromFloat(check.Balance))
	err := guard.Check(wallet.Wallet, decimal.RequireFromString("12.00"), wallet.FlatDeliveryFee)
	assert.EqualError(t, err, "insufficient wallet balance: balance 10.00, required 17.00")
	s.wallets.AssertExpectations(t)
}

func TestAuthHandlers(t *testing.T) {
	s := newTestServer()

	s.accounts.On("Login", mock.Anything, "ann@example.com", "wrong").Return(nil, service.ErrInvalidCredentials).Once()
	recorder := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ann@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	s.accounts.On("Register", mock.Anything, mock.MatchedBy(func(r service.RegisterRequest) bool { return r.Email == "ann@example.com" })).
		Return(nil, domain.ErrEmailTaken).Once()
	recorder = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"name": "Ann", "email": "ann@example.com", "password": "secret-password"})
	assert.Equal(t, http.StatusConflict, recorder.Code)

	s.accounts.On("Register", mock.Anything, service.RegisterRequest{
		Name: "Mallory", Email: "mallory@example.com", Password: "secret-password", Role: auth.RoleRestaurant,
	}).Return(&service.Session{Token: "t", User: &domain.User{ID: 12, Role: auth.RoleRestaurant}}, nil).Once()
	recorder = s.do(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name": "Mallory", "email": "mallory@example.com", "password": "secret-password", "role": "restaurant", "restaurantId": 3,
	})
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "restaurantId")

	recorder = s.do(http.MethodPost, "/api/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	s.accounts.On("Refresh", mock.Anything, 12).Return(&service.Session{Token: "fresh"}, nil).Once()
	recorder = s.do(http.MethodPost, "/api/auth/refresh", s.token(12, auth.RoleRestaurant, 0), nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "fresh", mustToken(t, recorder))

	s.accounts.AssertExpectations(t)
}

func mustToken(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var session service.Session
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &session))
	return session.Token
}
