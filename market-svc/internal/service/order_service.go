package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"food-delivery/auth"
	"food-delivery/cart"
	"food-delivery/market-svc/internal/domain"
	"food-delivery/orderstatus"
	"food-delivery/wallet"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOrder        = errors.New("invalid order payload")
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrRestaurantClosed    = errors.New("restaurant is not accepting orders")
	ErrItemUnavailable     = errors.New("menu item is unavailable")
	ErrPriceMismatch       = errors.New("order total does not match current menu prices")
	ErrDuplicateSubmission = errors.New("order with this idempotency key is already being placed")
	ErrOrderNotFound       = errors.New("order not found")
	ErrForbidden           = errors.New("not allowed to access this order")
)

// priceTolerance absorbs float rounding in client-computed totals.
var priceTolerance = decimal.RequireFromString("0.01")

type OrderService struct {
	repo           OrderRepository
	cache          OrderCache
	publisher      EventPublisher
	qrEncoder      QRGenerator
	deliveryFee    decimal.Decimal
	commissionRate decimal.Decimal
	now            func() time.Time
}

func NewOrderService(repo OrderRepository, cache OrderCache, publisher EventPublisher, qr QRGenerator, commissionRate float64) *OrderService {
	return &OrderService{
		repo:           repo,
		cache:          cache,
		publisher:      publisher,
		qrEncoder:      qr,
		deliveryFee:    wallet.FlatDeliveryFee,
		commissionRate: decimal.NewFromFloat(commissionRate),
		now:            time.Now,
	}
}

func (s *OrderService) Create(ctx context.Context, customerID int, req domain.CreateOrderRequest, idempotencyKey string) (*domain.Order, error) {
	method, err := validateCreate(req)
	if err != nil {
		return nil, err
	}

	if idempotencyKey != "" && s.cache != nil {
		existingID, reserved, err := s.cache.ReserveIdempotencyKey(ctx, customerID, idempotencyKey)
		if err != nil {
			log.Printf("[market-svc] idempotency reserve failed for customer %d: %v", customerID, err)
		} else if existingID > 0 {
			return s.repo.GetOrder(ctx, existingID)
		} else if !reserved {
			return nil, ErrDuplicateSubmission
		}
	}

	order, err := s.place(ctx, customerID, req, method)
	if err != nil {
		if idempotencyKey != "" && s.cache != nil {
			_ = s.cache.ReleaseIdempotencyKey(ctx, customerID, idempotencyKey)
		}
		return nil, err
	}

	if idempotencyKey != "" && s.cache != nil {
		if err := s.cache.CompleteIdempotencyKey(ctx, customerID, idempotencyKey, order.ID); err != nil {
			log.Printf("[market-svc] idempotency complete failed for order %d: %v", order.ID, err)
		}
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err == nil {
			if err := s.repo.SaveQRCode(ctx, order.ID, qr); err != nil {
				log.Printf("WARNING: Failed to store QR code for order %d: %v", order.ID, err)
			}
		} else {
			log.Printf("WARNING: Failed to generate QR code: %v", err)
		}
	}

	s.afterStatusChange(ctx, domain.EventOrderCreated, order)
	return order, nil
}

func validateCreate(req domain.CreateOrderRequest) (wallet.PaymentMethod, error) {
	if req.RestaurantID <= 0 || len(req.Items) == 0 {
		return "", fmt.Errorf("%w: restaurant and at least one item are required", ErrInvalidOrder)
	}
	if req.DeliveryAddress == "" {
		return "", fmt.Errorf("%w: delivery address is required", ErrInvalidOrder)
	}
	seen := make(map[int]bool, len(req.Items))
	for _, item := range req.Items {
		if item.MenuID <= 0 || item.Quantity <= 0 {
			return "", fmt.Errorf("%w: menu item %d has quantity %d", ErrInvalidOrder, item.MenuID, item.Quantity)
		}
		if seen[item.MenuID] {
			return "", fmt.Errorf("%w: menu item %d listed twice", ErrInvalidOrder, item.MenuID)
		}
		seen[item.MenuID] = true
	}
	method, err := wallet.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	return method, nil
}

// place prices the order from the menu and stores it. Wallet orders are
// debited in the same transaction by the repository.
func (s *OrderService) place(ctx context.Context, customerID int, req domain.CreateOrderRequest, method wallet.PaymentMethod) (*domain.Order, error) {
	restaurant, err := s.repo.GetRestaurant(ctx, req.RestaurantID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}
	if !restaurant.IsOpen {
		return nil, ErrRestaurantClosed
	}

	menuIDs := make([]int, 0, len(req.Items))
	for _, item := range req.Items {
		menuIDs = append(menuIDs, item.MenuID)
	}
	prices, err := s.repo.MenuPrices(ctx, req.RestaurantID, menuIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu prices: %w", err)
	}

	subtotal := decimal.Zero
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		menu, ok := prices[item.MenuID]
		if !ok || !menu.Available || menu.RestaurantID != req.RestaurantID {
			return nil, fmt.Errorf("%w: %d", ErrItemUnavailable, item.MenuID)
		}
		price := cart.SafePrice(menu.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		items = append(items, domain.OrderItem{
			MenuID:   item.MenuID,
			ItemName: menu.Name,
			Quantity: item.Quantity,
			Price:    price.InexactFloat64(),
		})
	}

	total := cart.OrderTotal(subtotal, s.deliveryFee)
	if req.TotalPrice > 0 && cart.SafePrice(req.TotalPrice).Sub(total).Abs().GreaterThan(priceTolerance) {
		return nil, fmt.Errorf("%w: expected %s", ErrPriceMismatch, total.StringFixed(2))
	}

	paymentStatus := wallet.PaymentPending
	if method == wallet.Wallet {
		paymentStatus = wallet.PaymentPaid
	}

	now := s.now()
	order := &domain.Order{
		CustomerID:           customerID,
		RestaurantID:         req.RestaurantID,
		Restaurant:           &domain.Party{ID: restaurant.ID, Name: restaurant.Name},
		Items:                items,
		TotalPrice:           total.Round(2).InexactFloat64(),
		DeliveryFee:          s.deliveryFee.InexactFloat64(),
		Commission:           subtotal.Mul(s.commissionRate).Round(2).InexactFloat64(),
		Status:               orderstatus.Pending,
		PaymentMethod:        method,
		PaymentStatus:        paymentStatus,
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryLat:          req.DeliveryLat,
		DeliveryLng:          req.DeliveryLng,
		DeliveryInstructions: req.DeliveryInstructions,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, claims *auth.Claims, orderID int) (*domain.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canView(claims, order) {
		return nil, ErrForbidden
	}
	return order, nil
}

// Status reports the stored order status. The row is loaded anyway for the
// visibility check, so it is authoritative; a stale cache entry is rewritten.
func (s *OrderService) Status(ctx context.Context, claims *auth.Claims, orderID int) (orderstatus.Status, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return "", err
	}
	if !canView(claims, order) {
		return "", ErrForbidden
	}
	if s.cache != nil {
		if cached, err := s.cache.GetStatus(ctx, orderID); err != nil || cached != order.Status {
			if err := s.cache.SetStatus(ctx, orderID, order.Status); err != nil {
				log.Printf("[market-svc] failed to cache status of order %d: %v", orderID, err)
			}
		}
	}
	return order.Status, nil
}

func (s *OrderService) ListForCustomer(ctx context.Context, customerID int) ([]domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *OrderService) ListForRestaurant(ctx context.Context, restaurantID int, status string) ([]domain.Order, error) {
	var filter orderstatus.Status
	if status != "" {
		parsed, err := orderstatus.Parse(status)
		if err != nil {
			return nil, err
		}
		filter = parsed
	}
	return s.repo.ListByRestaurant(ctx, restaurantID, filter)
}

func (s *OrderService) ListForDriver(ctx context.Context, driverID int) ([]domain.Order, error) {
	return s.repo.ListForDriver(ctx, driverID)
}

// UpdateStatus applies a transition requested by the caller's role. The
// stored status only changes if it still equals the status that was checked.
func (s *OrderService) UpdateStatus(ctx context.Context, claims *auth.Claims, orderID int, target string) (*domain.Order, error) {
	to, err := orderstatus.Parse(target)
	if err != nil {
		return nil, err
	}
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	actor, err := actorFor(claims, order, to)
	if err != nil {
		return nil, err
	}
	if err := orderstatus.CanTransition(order.Status, to, actor); err != nil {
		return nil, err
	}

	change := domain.StatusChange{OrderID: orderID, From: order.Status, To: to}
	if actor == orderstatus.ActorDriver && to == orderstatus.PickedUp {
		driverID := claims.UserID
		change.DriverID = &driverID
	}
	if to == orderstatus.Cancelled && order.PaymentMethod == wallet.Wallet && order.PaymentStatus == wallet.PaymentPaid {
		change.Refund = true
	}

	updated, err := s.repo.TransitionStatus(ctx, change)
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	log.Printf("[market-svc] order %d %s -> %s by %s %d", orderID, change.From, to, actor, claims.UserID)
	s.afterStatusChange(ctx, domain.EventOrderStatusChanged, updated)
	return updated, nil
}

func (s *OrderService) Cancel(ctx context.Context, claims *auth.Claims, orderID int) (*domain.Order, error) {
	return s.UpdateStatus(ctx, claims, orderID, string(orderstatus.Cancelled))
}

func (s *OrderService) QRCode(ctx context.Context, claims *auth.Claims, orderID int) ([]byte, error) {
	if _, err := s.Get(ctx, claims, orderID); err != nil {
		return nil, err
	}
	qr, err := s.repo.GetQRCode(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		regenerated, err := s.qrEncoder.Generate(orderID)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SaveQRCode(ctx, orderID, regenerated); err != nil {
			log.Printf("WARNING: Failed to cache regenerated QR code: %v", err)
		}
		return regenerated, nil
	}
	return qr, nil
}

func (s *OrderService) load(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) afterStatusChange(ctx context.Context, eventType string, order *domain.Order) {
	if s.cache != nil {
		if err := s.cache.SetStatus(ctx, order.ID, order.Status); err != nil {
			log.Printf("[market-svc] failed to cache status of order %d: %v", order.ID, err)
		}
	}
	if s.publisher == nil {
		return
	}
	event := domain.OrderEvent{
		Type:         eventType,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		CustomerID:   order.CustomerID,
		DriverID:     order.DriverID,
		Status:       order.Status,
		TotalPrice:   order.TotalPrice,
		Timestamp:    s.now(),
	}
	if eventType == domain.EventOrderCreated {
		event.Items = order.Items
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("[market-svc] failed to publish %s for order %d: %v", eventType, order.ID, err)
	}
}

func canView(claims *auth.Claims, order *domain.Order) bool {
	switch claims.Role {
	case auth.RoleCustomer:
		return order.CustomerID == claims.UserID
	case auth.RoleRestaurant:
		return order.RestaurantID == claims.RestaurantID
	case auth.RoleDriver:
		if order.DriverID != nil {
			return *order.DriverID == claims.UserID
		}
		return order.Status == orderstatus.Ready
	}
	return false
}

// actorFor maps the caller onto the order, rejecting callers who do not own
// their side of it. Any driver may claim a READY order that has no driver.
func actorFor(claims *auth.Claims, order *domain.Order, to orderstatus.Status) (orderstatus.Actor, error) {
	switch claims.Role {
	case auth.RoleRestaurant:
		if order.RestaurantID != claims.RestaurantID {
			return "", ErrForbidden
		}
		return orderstatus.ActorRestaurant, nil
	case auth.RoleCustomer:
		if order.CustomerID != claims.UserID {
			return "", ErrForbidden
		}
		return orderstatus.ActorCustomer, nil
	case auth.RoleDriver:
		if order.DriverID == nil && order.Status == orderstatus.Ready && to == orderstatus.PickedUp {
			return orderstatus.ActorDriver, nil
		}
		if order.DriverID == nil || *order.DriverID != claims.UserID {
			return "", ErrForbidden
		}
		return orderstatus.ActorDriver, nil
	}
	return "", ErrForbidden
}
