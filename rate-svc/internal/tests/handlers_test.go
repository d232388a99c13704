package tests

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-delivery/auth"
	httpapi "food-delivery/rate-svc/internal/api/http"
	"food-delivery/rate-svc/internal/domain"
	"food-delivery/rate-svc/internal/mocks"
	"food-delivery/rate-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var issuer = auth.NewIssuer([]byte("test-secret"), time.Hour)

func setupTestRouter(mockSvc *mocks.RatingServiceInterface) *mux.Router {
	r := mux.NewRouter()
	httpapi.NewHandler(mockSvc, issuer).RegisterRoutes(r)
	return r
}

func bearer(userID int, role string) string {
	token, _ := issuer.Issue(userID, role, 0)
	return "Bearer " + token
}

func TestHandler_createRating(t *testing.T) {
	mockSvc := mocks.NewRatingServiceInterface(t)
	router := setupTestRouter(mockSvc)

	tests := []struct {
		name         string
		path         string
		payload      string
		auth         string
		prepareMocks func()
		expectedCode int
		expectedBody string
	}{
		{
			name:    "success",
			path:    "/api/ratings/restaurant",
			payload: `{"orderId":99,"rating":5,"comment":"Great!"}`,
			auth:    bearer(1, auth.RoleCustomer),
			prepareMocks: func() {
				mockSvc.On("Submit", mock.Anything, mock.Anything, domain.TargetRestaurant, domain.RatingRequest{OrderID: 99, Rating: 5, Comment: "Great!"}).
					Return(&domain.Rating{ID: 1, OrderID: 99, TargetType: domain.TargetRestaurant, TargetID: 10, Rating: 5}, nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"targetId":10`,
		},
		{
			name:         "invalid_json",
			path:         "/api/ratings/order",
			payload:      `{bad}`,
			auth:         bearer(1, auth.RoleCustomer),
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "duplicate",
			path:    "/api/ratings/order",
			payload: `{"orderId":99,"rating":4}`,
			auth:    bearer(1, auth.RoleCustomer),
			prepareMocks: func() {
				mockSvc.On("Submit", mock.Anything, mock.Anything, domain.TargetOrder, mock.Anything).
					Return(nil, service.ErrDuplicateRating).Once()
			},
			expectedCode: http.StatusConflict,
			expectedBody: `"success":false`,
		},
		{
			name:    "driver_missing",
			path:    "/api/ratings/driver",
			payload: `{"orderId":99,"rating":4}`,
			auth:    bearer(1, auth.RoleCustomer),
			prepareMocks: func() {
				mockSvc.On("Submit", mock.Anything, mock.Anything, domain.TargetDriver, mock.Anything).
					Return(nil, service.ErrNoDriver).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "driver_role_rejected",
			path:         "/api/ratings/order",
			payload:      `{"orderId":99,"rating":4}`,
			auth:         bearer(20, auth.RoleDriver),
			prepareMocks: func() {},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "no_token",
			path:         "/api/ratings/order",
			payload:      `{"orderId":99,"rating":4}`,
			prepareMocks: func() {},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()

			req := httptest.NewRequest("POST", testCase.path, bytes.NewBufferString(testCase.payload))
			req.Header.Set("Content-Type", "application/json")
			if testCase.auth != "" {
				req.Header.Set("Authorization", testCase.auth)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, testCase.expectedCode, w.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, w.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_checkRating(t *testing.T) {
	mockSvc := mocks.NewRatingServiceInterface(t)
	router := setupTestRouter(mockSvc)

	mockSvc.On("Check", mock.Anything, mock.MatchedBy(func(c *auth.Claims) bool { return c.UserID == 1 }), domain.TargetOrder, 99).
		Return(true, nil).Once()

	req := httptest.NewRequest("GET", "/api/ratings/check/order/99", nil)
	req.Header.Set("Authorization", bearer(1, auth.RoleCustomer))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"rated":true}}`, w.Body.String())
}

func TestHandler_getSummary(t *testing.T) {
	mockSvc := mocks.NewRatingServiceInterface(t)
	router := setupTestRouter(mockSvc)

	mockSvc.On("Summary", mock.Anything, domain.TargetRestaurant, 10).
		Return(&domain.Summary{TargetType: domain.TargetRestaurant, TargetID: 10, Average: 4.5, Count: 2}, nil).Once()

	req := httptest.NewRequest("GET", "/api/ratings/restaurant/10/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"average":4.5`)
}
