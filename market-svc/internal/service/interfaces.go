package service

import (
	"context"

	"food-delivery/auth"
	"food-delivery/market-svc/internal/domain"
	"food-delivery/orderstatus"
)

type OrderServiceInterface interface {
	Create(ctx context.Context, customerID int, req domain.CreateOrderRequest, idempotencyKey string) (*domain.Order, error)
	Get(ctx context.Context, claims *auth.Claims, orderID int) (*domain.Order, error)
	Status(ctx context.Context, claims *auth.Claims, orderID int) (orderstatus.Status, error)
	ListForCustomer(ctx context.Context, customerID int) ([]domain.Order, error)
	ListForRestaurant(ctx context.Context, restaurantID int, status string) ([]domain.Order, error)
	ListForDriver(ctx context.Context, driverID int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, claims *auth.Claims, orderID int, target string) (*domain.Order, error)
	Cancel(ctx context.Context, claims *auth.Claims, orderID int) (*domain.Order, error)
	QRCode(ctx context.Context, claims *auth.Claims, orderID int) ([]byte, error)
}

type WalletServiceInterface interface {
	Get(ctx context.Context, userID int) (*domain.Wallet, error)
	CheckBalance(ctx context.Context, userID int, amount float64) (*domain.BalanceCheck, error)
	TopUp(ctx context.Context, userID int, amount float64) (*domain.Wallet, error)
	Transactions(ctx context.Context, userID int) ([]domain.WalletTransaction, error)
}

type AccountServiceInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Refresh(ctx context.Context, userID int) (*Session, error)
}

type OrderRepository interface {
	GetRestaurant(ctx context.Context, restaurantID int) (*domain.Restaurant, error)
	MenuPrices(ctx context.Context, restaurantID int, menuIDs []int) (map[int]domain.MenuPrice, error)
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int) ([]domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID int, status orderstatus.Status) ([]domain.Order, error)
	ListForDriver(ctx context.Context, driverID int) ([]domain.Order, error)
	TransitionStatus(ctx context.Context, change domain.StatusChange) (*domain.Order, error)
	SaveQRCode(ctx context.Context, orderID int, qr []byte) error
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
}

type WalletRepository interface {
	GetWallet(ctx context.Context, userID int) (*domain.Wallet, error)
	TopUp(ctx context.Context, userID int, amount float64) (*domain.Wallet, error)
	ListTransactions(ctx context.Context, userID int) ([]domain.WalletTransaction, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int) (*domain.User, error)
}

type OrderCache interface {
	ReserveIdempotencyKey(ctx context.Context, customerID int, key string) (existingOrderID int, reserved bool, err error)
	CompleteIdempotencyKey(ctx context.Context, customerID int, key string, orderID int) error
	ReleaseIdempotencyKey(ctx context.Context, customerID int, key string) error
	SetStatus(ctx context.Context, orderID int, status orderstatus.Status) error
	GetStatus(ctx context.Context, orderID int) (orderstatus.Status, error)
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type TokenIssuer interface {
	Issue(userID int, role string, restaurantID int) (string, error)
}

var (
	_ OrderServiceInterface   = (*OrderService)(nil)
	_ WalletServiceInterface  = (*WalletService)(nil)
	_ AccountServiceInterface = (*AccountService)(nil)
)
