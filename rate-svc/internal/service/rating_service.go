package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"food-delivery/auth"
	"food-delivery/orderstatus"
	"food-delivery/rate-svc/internal/domain"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrUnknownType     = errors.New("unknown rating type")
	ErrOrderNotFound   = errors.New("order not found")
	ErrForbidden       = errors.New("only the customer who placed the order can rate it")
	ErrNotDelivered    = errors.New("order must be delivered before it can be rated")
	ErrNoDriver        = errors.New("order has no driver to rate")
	ErrDuplicateRating = errors.New("you already rated this")
)

type RatingService struct {
	repository RatingRepository
	markers    RatingMarkers
	publisher  RatingPublisher
	now        func() time.Time
}

func NewRatingService(repository RatingRepository, markers RatingMarkers, publisher RatingPublisher) *RatingService {
	return &RatingService{
		repository: repository,
		markers:    markers,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Submit records one rating per customer, type and order. The order must
// belong to the caller and be delivered.
func (s *RatingService) Submit(ctx context.Context, claims *auth.Claims, kind domain.RatingType, req domain.RatingRequest) (*domain.Rating, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, kind)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if req.OrderID <= 0 {
		return nil, ErrOrderNotFound
	}

	order, err := s.repository.GetOrderInfo(ctx, req.OrderID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order.CustomerID != claims.UserID {
		return nil, ErrForbidden
	}
	if order.Status != orderstatus.Delivered {
		return nil, ErrNotDelivered
	}
	targetID, err := targetOf(kind, order)
	if err != nil {
		return nil, err
	}

	if rated, _ := s.markers.IsRated(ctx, claims.UserID, kind, order.ID); rated {
		return nil, ErrDuplicateRating
	}

	rating := &domain.Rating{
		UserID:     claims.UserID,
		OrderID:    order.ID,
		TargetType: kind,
		TargetID:   targetID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	if err := s.repository.InsertRating(ctx, rating); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			_ = s.markers.MarkRated(ctx, claims.UserID, kind, order.ID)
			return nil, ErrDuplicateRating
		}
		return nil, err
	}

	_ = s.markers.MarkRated(ctx, claims.UserID, kind, order.ID)

	if s.publisher != nil {
		err := s.publisher.PublishRating(ctx, domain.RatingEvent{
			Type:       domain.EventNewRating,
			TargetType: kind,
			TargetID:   targetID,
			OrderID:    order.ID,
			UserID:     claims.UserID,
			Rating:     rating.Rating,
			Timestamp:  s.now(),
		})
		if err != nil {
			log.Printf("[rate-svc] publish rating %d failed: %v", rating.ID, err)
		}
	}

	return rating, nil
}

// Check reports whether the caller already rated the given order for kind.
func (s *RatingService) Check(ctx context.Context, claims *auth.Claims, kind domain.RatingType, orderID int) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownType, kind)
	}
	if rated, _ := s.markers.IsRated(ctx, claims.UserID, kind, orderID); rated {
		return true, nil
	}
	rated, err := s.repository.HasRated(ctx, claims.UserID, kind, orderID)
	if err != nil {
		return false, err
	}
	if rated {
		_ = s.markers.MarkRated(ctx, claims.UserID, kind, orderID)
	}
	return rated, nil
}

func (s *RatingService) Summary(ctx context.Context, kind domain.RatingType, targetID int) (*domain.Summary, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, kind)
	}
	counts, err := s.repository.Distribution(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	summary := &domain.Summary{
		TargetType:   kind,
		TargetID:     targetID,
		Distribution: map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
	}
	total := 0
	for stars, n := range counts {
		summary.Distribution[strconv.Itoa(stars)] = n
		summary.Count += n
		total += stars * n
	}
	if summary.Count > 0 {
		summary.Average = math.Round(float64(total)/float64(summary.Count)*100) / 100
	}
	return summary, nil
}

func targetOf(kind domain.RatingType, order *domain.OrderInfo) (int, error) {
	switch kind {
	case domain.TargetRestaurant:
		return order.RestaurantID, nil
	case domain.TargetDriver:
		if order.DriverID == nil {
			return 0, ErrNoDriver
		}
		return *order.DriverID, nil
	}
	return order.ID, nil
}
