package mocks

import (
	"context"

	"food-delivery/market-svc/internal/domain"
	"food-delivery/orderstatus"

	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (_m *OrderRepository) GetRestaurant(ctx context.Context, restaurantID int) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) MenuPrices(ctx context.Context, restaurantID int, menuIDs []int) (map[int]domain.MenuPrice, error) {
	ret := _m.Called(ctx, restaurantID, menuIDs)
	var r0 map[int]domain.MenuPrice
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[int]domain.MenuPrice)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	ret := _m.Called(ctx, order)
	return ret.Error(0)
}

func (_m *OrderRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	ret := _m.Called(ctx, orderID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) ListByCustomer(ctx context.Context, customerID int) ([]domain.Order, error) {
	ret := _m.Called(ctx, customerID)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) ListByRestaurant(ctx context.Context, restaurantID int, status orderstatus.Status) ([]domain.Order, error) {
	ret := _m.Called(ctx, restaurantID, status)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) ListForDriver(ctx context.Context, driverID int) ([]domain.Order, error) {
	ret := _m.Called(ctx, driverID)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) TransitionStatus(ctx context.Context, change domain.StatusChange) (*domain.Order, error) {
	ret := _m.Called(ctx, change)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	ret := _m.Called(ctx, orderID, qr)
	return ret.Error(0)
}

func (_m *OrderRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	ret := _m.Called(ctx, orderID)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

type WalletRepository struct {
	mock.Mock
}

func (_m *WalletRepository) GetWallet(ctx context.Context, userID int) (*domain.Wallet, error) {
	ret := _m.Called(ctx, userID)
	var r0 *domain.Wallet
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Wallet)
	}
	return r0, ret.Error(1)
}

func (_m *WalletRepository) TopUp(ctx context.Context, userID int, amount float64) (*domain.Wallet, error) {
	ret := _m.Called(ctx, userID, amount)
	var r0 *domain.Wallet
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Wallet)
	}
	return r0, ret.Error(1)
}

func (_m *WalletRepository) ListTransactions(ctx context.Context, userID int) ([]domain.WalletTransaction, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.WalletTransaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.WalletTransaction)
	}
	return r0, ret.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func (_m *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

func (_m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ret := _m.Called(ctx, email)
	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	ret := _m.Called(ctx, userID)
	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

type OrderCache struct {
	mock.Mock
}

func (_m *OrderCache) ReserveIdempotencyKey(ctx context.Context, customerID int, key string) (int, bool, error) {
	ret := _m.Called(ctx, customerID, key)
	return ret.Int(0), ret.Bool(1), ret.Error(2)
}

func (_m *OrderCache) CompleteIdempotencyKey(ctx context.Context, customerID int, key string, orderID int) error {
	ret := _m.Called(ctx, customerID, key, orderID)
	return ret.Error(0)
}

func (_m *OrderCache) ReleaseIdempotencyKey(ctx context.Context, customerID int, key string) error {
	ret := _m.Called(ctx, customerID, key)
	return ret.Error(0)
}

func (_m *OrderCache) SetStatus(ctx context.Context, orderID int, status orderstatus.Status) error {
	ret := _m.Called(ctx, orderID, status)
	return ret.Error(0)
}

func (_m *OrderCache) GetStatus(ctx context.Context, orderID int) (orderstatus.Status, error) {
	ret := _m.Called(ctx, orderID)
	return ret.Get(0).(orderstatus.Status), ret.Error(1)
}

type EventPublisher struct {
	mock.Mock
}

func (_m *EventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func (_m *QRGenerator) Generate(orderID int) ([]byte, error) {
	ret := _m.Called(orderID)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}
