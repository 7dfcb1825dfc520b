package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotal(t *testing.T) {
	items := []BookingItem{
		{ProductID: "a", Price: 50, Quantity: 2},
		{ProductID: "b", Price: 30, Quantity: 1},
	}
	assert.Equal(t, 130.0, ComputeTotal(items))
}

func TestComputeTotal_FractionalPrices(t *testing.T) {
	items := []BookingItem{
		{Price: 0.1, Quantity: 3},
		{Price: 19.99, Quantity: 2},
	}
	assert.Equal(t, 40.28, ComputeTotal(items))
}

func TestComputeTotal_Empty(t *testing.T) {
	assert.Equal(t, 0.0, ComputeTotal(nil))
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(13000), ToMinorUnits(130))
	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
	assert.Equal(t, int64(1), ToMinorUnits(0.005))
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, BookingCancelled.Valid())
	assert.False(t, BookingStatus("Shipped").Valid())
	assert.True(t, PaymentRefunded.Valid())
	assert.False(t, PaymentStatus("completed").Valid())
}

func TestIdentityCanAccess(t *testing.T) {
	owner := Identity{UserID: "u1", Role: RoleUser}
	other := Identity{UserID: "u2", Role: RoleUser}
	admin := Identity{UserID: "a1", Role: RoleAdmin}

	assert.True(t, owner.CanAccess("u1"))
	assert.False(t, other.CanAccess("u1"))
	assert.True(t, admin.CanAccess("u1"))
	assert.True(t, SystemIdentity.CanAccess("u1"))
	assert.False(t, Identity{}.CanAccess(""))
}
