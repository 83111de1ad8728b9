package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ngocchau04/ktpm-webbansach/models"
)

func TestValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		models.OrderPending,
		models.OrderProcessing,
		models.OrderCompleted,
		models.OrderCancel,
	} {
		assert.True(t, models.ValidOrderStatus(status), status)
	}

	for _, status := range []string{"", "shipped", "PENDING", "done"} {
		assert.False(t, models.ValidOrderStatus(status), status)
	}
}

func TestCanTransitionOrder(t *testing.T) {
	allowed := []struct{ from, to string }{
		{models.OrderPending, models.OrderProcessing},
		{models.OrderPending, models.OrderCancel},
		{models.OrderProcessing, models.OrderCompleted},
	}
	for _, tc := range allowed {
		assert.True(t, models.CanTransitionOrder(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{models.OrderPending, models.OrderCompleted},
		{models.OrderProcessing, models.OrderCancel},
		{models.OrderProcessing, models.OrderPending},
		{models.OrderCompleted, models.OrderCancel},
		{models.OrderCompleted, models.OrderPending},
		{models.OrderCancel, models.OrderPending},
		{models.OrderCancel, models.OrderCompleted},
		{models.OrderPending, "shipped"},
	}
	for _, tc := range denied {
		assert.False(t, models.CanTransitionOrder(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestVoucherUsable(t *testing.T) {
	now := time.Now()

	voucher := models.Voucher{Quantity: 1, ExpireAt: now.Add(time.Hour)}
	assert.True(t, voucher.Usable(now))

	expired := models.Voucher{Quantity: 1, ExpireAt: now.Add(-time.Hour)}
	assert.False(t, expired.Usable(now))

	exhausted := models.Voucher{Quantity: 0, ExpireAt: now.Add(time.Hour)}
	assert.False(t, exhausted.Usable(now))
}
