package admin

import (
	"context"
	"testing"
	"time"

	"grambazaar/database/repository/memstore"
	"grambazaar/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview(t *testing.T) {
	ctx := context.Background()
	products := memstore.NewProductRepo()
	users := memstore.NewUserRepo()
	bookings := memstore.NewBookingRepo()
	news := memstore.NewNewsRepo()

	require.NoError(t, products.Create(ctx, &models.Product{ID: "p1", Name: "Millet", Price: 50}))
	require.NoError(t, users.Create(ctx, &models.User{ID: "u1", Name: "Asha", Email: "asha@example.com"}))
	require.NoError(t, bookings.Create(ctx, &models.Booking{
		ID: "b1", UserID: "u1", Status: models.BookingPending,
		Items: []models.BookingItem{{ProductID: "p1", Name: "Millet", Price: 50, Quantity: 3}},
	}))
	require.NoError(t, bookings.Create(ctx, &models.Booking{
		ID: "b2", UserID: "u1", Status: models.BookingApproved,
		Items: []models.BookingItem{{ProductID: "p1", Name: "Millet", Price: 12.5, Quantity: 2}},
	}))
	require.NoError(t, news.Create(ctx, &models.News{ID: "n1", Title: "Harvest fair", Date: time.Now()}))

	svc := &DefaultAdminService{Products: products, Users: users, Bookings: bookings, News: news}
	out, err := svc.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.Products)
	assert.Equal(t, int64(1), out.Users)
	assert.Equal(t, int64(2), out.Bookings)
	assert.Equal(t, int64(1), out.News)
	assert.Equal(t, 175.0, out.Revenue)

	require.Len(t, out.Activities, 4)
	for i := 1; i < len(out.Activities); i++ {
		assert.False(t, out.Activities[i].Date.After(out.Activities[i-1].Date))
	}
}
