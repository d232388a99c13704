package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), time.Hour)

	token, err := issuer.Issue(42, RoleRestaurant, 7)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, RoleRestaurant, claims.Role)
	assert.Equal(t, 7, claims.RestaurantID)
}

func TestIssuer_RejectsExpiredAndForeignTokens(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := issuer.Issue(1, RoleCustomer, 0)
	require.NoError(t, err)

	fresh := NewIssuer([]byte("secret"), time.Minute)
	_, err = fresh.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewIssuer([]byte("other"), time.Minute)
	foreign, err := other.Issue(1, RoleCustomer, 0)
	require.NoError(t, err)
	_, err = fresh.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), time.Hour)
	customerToken, _ := issuer.Issue(1, RoleCustomer, 0)
	restaurantToken, _ := issuer.Issue(2, RoleRestaurant, 5)

	r := mux.NewRouter()
	protected := r.PathPrefix("/api/restaurant").Subrouter()
	protected.Use(issuer.Middleware, RequireRole(RoleRestaurant))
	protected.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		claims, ok := FromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, 5, claims.RestaurantID)
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{name: "missing header", header: "", wantCode: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", wantCode: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", wantCode: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + customerToken, wantCode: http.StatusForbidden},
		{name: "allowed", header: "Bearer " + restaurantToken, wantCode: http.StatusNoContent},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/restaurant/orders", nil)
			if testCase.header != "" {
				req.Header.Set("Authorization", testCase.header)
			}
			recorder := httptest.NewRecorder()
			r.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.wantCode, recorder.Code)
		})
	}
}

func TestPassword(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
}
