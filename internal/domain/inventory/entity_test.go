package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

func TestInventory_CanDeduct(t *testing.T) {
	inv := NewInventory(1, 5)

	assert.True(t, inv.CanDeduct(5))
	assert.False(t, inv.CanDeduct(6))
	assert.False(t, inv.CanDeduct(0))
}

func TestLogs(t *testing.T) {
	d := NewDeductLog(3, 2, 10, 99)
	assert.Equal(t, ChangeTypeDeduct, d.ChangeType)
	assert.Equal(t, -2, d.Quantity)
	assert.Equal(t, 8, d.AfterStock)
	assert.Equal(t, uint(99), *d.OrderID)

	r := NewRestockLog(3, 4, 8, "weekly")
	assert.Equal(t, 12, r.AfterStock)
	assert.Nil(t, r.OrderID)

	a := NewAdjustLog(3, 12, 7, "count")
	assert.Equal(t, -5, a.Quantity)
}

func TestInsufficient(t *testing.T) {
	err := Insufficient(42, 5, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, "Insufficient stock for product variant 42: available 5, requested 6",
		apperrors.GetAppError(err).Message)
}
