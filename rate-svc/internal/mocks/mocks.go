package mocks

import (
	"context"

	"food-delivery/auth"
	"food-delivery/rate-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type RatingServiceInterface struct {
	mock.Mock
}

func (_m *RatingServiceInterface) Submit(ctx context.Context, claims *auth.Claims, kind domain.RatingType, req domain.RatingRequest) (*domain.Rating, error) {
	ret := _m.Called(ctx, claims, kind, req)
	var r0 *domain.Rating
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Rating)
	}
	return r0, ret.Error(1)
}

func (_m *RatingServiceInterface) Check(ctx context.Context, claims *auth.Claims, kind domain.RatingType, orderID int) (bool, error) {
	ret := _m.Called(ctx, claims, kind, orderID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *RatingServiceInterface) Summary(ctx context.Context, kind domain.RatingType, targetID int) (*domain.Summary, error) {
	ret := _m.Called(ctx, kind, targetID)
	var r0 *domain.Summary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Summary)
	}
	return r0, ret.Error(1)
}

func NewRatingServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *RatingServiceInterface {
	m := &RatingServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type RatingRepository struct {
	mock.Mock
}

func (_m *RatingRepository) GetOrderInfo(ctx context.Context, orderID int) (*domain.OrderInfo, error) {
	ret := _m.Called(ctx, orderID)
	var r0 *domain.OrderInfo
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.OrderInfo)
	}
	return r0, ret.Error(1)
}

func (_m *RatingRepository) InsertRating(ctx context.Context, rating *domain.Rating) error {
	ret := _m.Called(ctx, rating)
	return ret.Error(0)
}

func (_m *RatingRepository) HasRated(ctx context.Context, userID int, kind domain.RatingType, orderID int) (bool, error) {
	ret := _m.Called(ctx, userID, kind, orderID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *RatingRepository) Distribution(ctx context.Context, kind domain.RatingType, targetID int) (map[int]int, error) {
	ret := _m.Called(ctx, kind, targetID)
	var r0 map[int]int
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[int]int)
	}
	return r0, ret.Error(1)
}

func NewRatingRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *RatingRepository {
	m := &RatingRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type RatingMarkers struct {
	mock.Mock
}

func (_m *RatingMarkers) IsRated(ctx context.Context, userID int, kind domain.RatingType, orderID int) (bool, error) {
	ret := _m.Called(ctx, userID, kind, orderID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *RatingMarkers) MarkRated(ctx context.Context, userID int, kind domain.RatingType, orderID int) error {
	ret := _m.Called(ctx, userID, kind, orderID)
	return ret.Error(0)
}

func NewRatingMarkers(t interface {
	mock.TestingT
	Cleanup(func())
}) *RatingMarkers {
	m := &RatingMarkers{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type RatingPublisher struct {
	mock.Mock
}

func (_m *RatingPublisher) PublishRating(ctx context.Context, event domain.RatingEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func NewRatingPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *RatingPublisher {
	m := &RatingPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
