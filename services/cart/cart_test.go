package cart

import (
	"context"
	"testing"

	"grambazaar/database/repository/memstore"
	"grambazaar/models"
	"grambazaar/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = models.Identity{UserID: "alice", Role: models.RoleUser}

func newTestService(t *testing.T) (*DefaultCartService, *memstore.ProductRepo) {
	t.Helper()
	products := memstore.NewProductRepo()
	ctx := context.Background()
	require.NoError(t, products.Create(ctx, &models.Product{ID: "p1", Name: "Millet", Price: 50}))
	require.NoError(t, products.Create(ctx, &models.Product{ID: "p2", Name: "Honey", Price: 30}))
	return NewCartService(memstore.NewCartRepo(), products), products
}

func TestGetCart_EmptyWhenMissing(t *testing.T) {
	svc, _ := newTestService(t)

	c, err := svc.GetCart(context.Background(), alice)
	require.NoError(t, err)
	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)
}

func TestAddItems_MergesDuplicateProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItems(ctx, alice, []models.CartItemInput{{ProductID: "p1", Quantity: 2}})
	require.NoError(t, err)
	c, err := svc.AddItems(ctx, alice, []models.CartItemInput{{ProductID: "p1", Quantity: 3}})
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestAddItems_DefaultQuantityAndOrder(t *testing.T) {
	svc, _ := newTestService(t)

	c, err := svc.AddItems(context.Background(), alice, []models.CartItemInput{
		{ProductID: "p2"},
		{ProductID: "p1", Quantity: 4},
	})
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	assert.Equal(t, "p2", c.Items[0].ProductID)
	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, 4, c.Items[1].Quantity)
}

func TestAddItems_MergeKeepsSnapshot(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItems(ctx, alice, []models.CartItemInput{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	p, err := products.GetByID(ctx, "p1")
	require.NoError(t, err)
	p.Price = 999
	p.Name = "Renamed"
	require.NoError(t, products.Update(ctx, p))

	c, err := svc.AddItems(ctx, alice, []models.CartItemInput{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, 50.0, c.Items[0].Price)
	assert.Equal(t, "Millet", c.Items[0].Name)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestAddItems_UnknownProductLeavesCartUnchanged(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItems(ctx, alice, []models.CartItemInput{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	_, err = svc.AddItems(ctx, alice, []models.CartItemInput{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "ghost", Quantity: 1},
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	c, err := svc.GetCart(ctx, alice)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestAddItems_NegativeQuantity(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItems(context.Background(), alice, []models.CartItemInput{{ProductID: "p1", Quantity: -2}})
	assert.Equal(t, utils.KindInvalid, utils.KindOf(err))
}

func TestUpdateQuantity_Floor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.AddItems(ctx, alice, []models.CartItemInput{{ProductID: "p1", Quantity: 3}})
	require.NoError(t, err)

	for _, q := range []int{0, -1} {
		_, err := svc.UpdateQuantity(ctx, alice, "p1", q)
		assert.Equal(t, utils.KindInvalid, utils.KindOf(err))
	}

	c, err := svc.GetCart(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Items[0].Quantity)

	c, err = svc.UpdateQuantity(ctx, alice, "p1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Items[0].Quantity)
}

func TestUpdateQuantity_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpdateQuantity(ctx, alice, "p1", 2)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	_, err = svc.AddItems(ctx, alice, []models.CartItemInput{{ProductID: "p1"}})
	require.NoError(t, err)
	_, err = svc.UpdateQuantity(ctx, alice, "p2", 2)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestRemoveItem(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.AddItems(ctx, alice, []models.CartItemInput{{ProductID: "p1"}, {ProductID: "p2"}})
	require.NoError(t, err)

	c, err := svc.RemoveItem(ctx, alice, "p1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)

	_, err = svc.RemoveItem(ctx, alice, "p1")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestClearCart_Idempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.ClearCart(ctx, alice))

	_, err := svc.AddItems(ctx, alice, []models.CartItemInput{{ProductID: "p1"}})
	require.NoError(t, err)
	require.NoError(t, svc.ClearCart(ctx, alice))
	require.NoError(t, svc.ClearCart(ctx, alice))

	c, err := svc.GetCart(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	bob := models.Identity{UserID: "bob", Role: models.RoleUser}

	_, err := svc.AddItems(ctx, alice, []models.CartItemInput{{ProductID: "p1"}})
	require.NoError(t, err)

	c, err := svc.GetCart(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}
