package tests

import (
	"context"
	"regexp"
	"testing"
	"time"

	"food-delivery/menu-svc/internal/domain"
	"food-delivery/menu-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var menuItemRowColumns = []string{"id", "restaurant_id", "name", "description", "category", "price", "image_url", "is_available", "created_at"}

func newMockRepo(t *testing.T) (*storage.PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewPostgresRepository(db), mock
}

func TestPostgresRepository_ListRestaurants_Filters(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	open := true

	mock.ExpectQuery(regexp.QuoteMeta("FROM restaurants WHERE is_open = $1 AND name ILIKE $2 ORDER BY avg_rating DESC, name")).
		WithArgs(true, "%pizza%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "address", "description", "image_url", "is_open", "avg_rating", "rating_count", "created_at"}).
			AddRow(3, 50, "Luigi's", "Main St", "", "", true, "4.50", 12, now).
			AddRow(4, nil, "Pizza Hut", "", "", "", true, "0", 0, now))

	restaurants, err := repo.ListRestaurants(context.Background(), domain.RestaurantFilter{IsOpen: &open, Search: "pizza"})

	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	assert.Equal(t, 4.5, restaurants[0].AvgRating)
	require.NotNil(t, restaurants[0].OwnerID)
	assert.Equal(t, 50, *restaurants[0].OwnerID)
	assert.Nil(t, restaurants[1].OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListMenuItems_AvailableOnly(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM menu_items WHERE restaurant_id = $1 AND is_available ORDER BY category, name")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(menuItemRowColumns).
			AddRow(7, 3, "Margherita", "", "Pizza", "3.50", "", true, now))

	items, err := repo.ListMenuItems(context.Background(), 3, true)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3.5, items[0].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListMenuItems_EmptyIsNotNil(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM menu_items WHERE restaurant_id = $1 ORDER BY")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(menuItemRowColumns))

	items, err := repo.ListMenuItems(context.Background(), 3, false)

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestPostgresRepository_SetMenuItemAvailability_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE menu_items SET is_available = $1 WHERE id = $2 AND restaurant_id = $3 RETURNING")).
		WithArgs(false, 7, 3).
		WillReturnRows(sqlmock.NewRows(menuItemRowColumns))

	_, err := repo.SetMenuItemAvailability(context.Background(), 3, 7, false)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteMenuItem_ReferencedByOrders(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM menu_items WHERE id = $1 AND restaurant_id = $2")).
		WithArgs(7, 3).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.DeleteMenuItem(context.Background(), 3, 7)

	assert.ErrorIs(t, err, domain.ErrInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpdateRestaurant_NoRows(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE restaurants SET name = $1")).
		WithArgs("Luigi's", "", "", "", true, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRestaurant(context.Background(), &domain.Restaurant{ID: 3, Name: "Luigi's", IsOpen: true})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
