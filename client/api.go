package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrUnauthorized is returned after the server rejected the session. The
// stored token has already been deleted; the caller must log in again.
var ErrUnauthorized = errors.New("session expired, please log in again")

// APIError is a non-2xx response other than a session 401.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

type TokenStore interface {
	Token() string
	SetToken(token string)
	DeleteToken()
}

type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *MemoryTokenStore) DeleteToken() {
	s.SetToken("")
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// API talks to the REST backend. baseURL includes the /api prefix.
type API struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

func NewAPI(baseURL string, tokens TokenStore, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	return &API{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient, tokens: tokens}
}

func (a *API) do(ctx context.Context, method, path string, body, out interface{}, headers map[string]string) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := a.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		log.Printf("[client] %s %s failed: %v", method, path, err)
		return err
	}
	defer resp.Body.Close()

	// A 401 from login means bad credentials, not an expired session.
	if resp.StatusCode == http.StatusUnauthorized && path != loginPath {
		a.tokens.DeleteToken()
		return ErrUnauthorized
	}

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, decodeErr)
	}
	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

const loginPath = "/auth/login"

func (a *API) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	body := map[string]string{"email": email, "password": password}
	if err := a.do(ctx, http.MethodPost, loginPath, body, &session, nil); err != nil {
		return nil, err
	}
	a.tokens.SetToken(session.Token)
	return &session, nil
}

// RefreshSession reissues the token for the current user, e.g. after a
// restaurant owner creates their restaurant.
func (a *API) RefreshSession(ctx context.Context) (*Session, error) {
	var session Session
	if err := a.do(ctx, http.MethodPost, "/auth/refresh", nil, &session, nil); err != nil {
		return nil, err
	}
	a.tokens.SetToken(session.Token)
	return &session, nil
}

// CreateOrder submits an order. Reusing idempotencyKey for a retry returns
// the order created by the first attempt instead of placing a second one.
func (a *API) CreateOrder(ctx context.Context, req CreateOrderRequest, idempotencyKey string) (*Order, error) {
	var order Order
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}
	if err := a.do(ctx, http.MethodPost, "/orders", req, &order, headers); err != nil {
		return nil, err
	}
	return &order, nil
}

func (a *API) MyOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := a.do(ctx, http.MethodGet, "/orders/user", nil, &orders, nil)
	return orders, err
}

func (a *API) Order(ctx context.Context, id int) (*Order, error) {
	var order Order
	if err := a.do(ctx, http.MethodGet, "/orders/"+strconv.Itoa(id), nil, &order, nil); err != nil {
		return nil, err
	}
	return &order, nil
}

func (a *API) CancelOrder(ctx context.Context, id int) (*Order, error) {
	var order Order
	if err := a.do(ctx, http.MethodPatch, "/orders/"+strconv.Itoa(id)+"/cancel", nil, &order, nil); err != nil {
		return nil, err
	}
	return &order, nil
}

func (a *API) RestaurantOrders(ctx context.Context, status string) ([]Order, error) {
	path := "/restaurant/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var orders []Order
	err := a.do(ctx, http.MethodGet, path, nil, &orders, nil)
	return orders, err
}

func (a *API) UpdateOrderStatus(ctx context.Context, id int, status string) (*Order, error) {
	var order Order
	body := map[string]string{"status": status}
	if err := a.do(ctx, http.MethodPatch, "/restaurant/orders/"+strconv.Itoa(id)+"/status", body, &order, nil); err != nil {
		return nil, err
	}
	return &order, nil
}

func (a *API) Wallet(ctx context.Context) (*Wallet, error) {
	var w Wallet
	if err := a.do(ctx, http.MethodGet, "/wallet", nil, &w, nil); err != nil {
		return nil, err
	}
	return &w, nil
}

func (a *API) CheckBalance(ctx context.Context, amount float64) (*BalanceCheck, error) {
	var check BalanceCheck
	path := "/wallet/check-balance?amount=" + strconv.FormatFloat(amount, 'f', 2, 64)
	if err := a.do(ctx, http.MethodGet, path, nil, &check, nil); err != nil {
		return nil, err
	}
	return &check, nil
}

func (a *API) TopUp(ctx context.Context, amount float64) (*Wallet, error) {
	var w Wallet
	if err := a.do(ctx, http.MethodPost, "/wallet/topup", map[string]float64{"amount": amount}, &w, nil); err != nil {
		return nil, err
	}
	return &w, nil
}

func (a *API) SubmitRating(ctx context.Context, kind RatingType, req RatingRequest) error {
	return a.do(ctx, http.MethodPost, "/ratings/"+string(kind), req, nil, nil)
}

// CheckRating reports whether the caller already rated targetID, which is
// the order the rating was given for.
func (a *API) CheckRating(ctx context.Context, kind RatingType, targetID int) (bool, error) {
	var result struct {
		Rated bool `json:"rated"`
	}
	err := a.do(ctx, http.MethodGet, "/ratings/check/"+string(kind)+"/"+strconv.Itoa(targetID), nil, &result, nil)
	return result.Rated, err
}

func (a *API) Menu(ctx context.Context, restaurantID int) ([]MenuItem, error) {
	var items []MenuItem
	err := a.do(ctx, http.MethodGet, "/restaurants/"+strconv.Itoa(restaurantID)+"/menu", nil, &items, nil)
	return items, err
}
