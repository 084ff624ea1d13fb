package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdStatus(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, AdStatusUnverified.Valid())
		assert.True(t, AdStatusApproved.Valid())
		assert.True(t, AdStatusRejected.Valid())
		assert.False(t, AdStatus("archived").Valid())
		assert.False(t, AdStatus("").Valid())
	})

	t.Run("ScanAndValue", func(t *testing.T) {
		var s AdStatus
		require.NoError(t, s.Scan("approved"))
		assert.Equal(t, AdStatusApproved, s)

		require.NoError(t, s.Scan([]byte("rejected")))
		assert.Equal(t, AdStatusRejected, s)

		v, err := AdStatusUnverified.Value()
		require.NoError(t, err)
		assert.Equal(t, "unverified", v)

		_, err = AdStatus("bogus").Value()
		assert.Error(t, err)
	})
}

func TestAdCanTransitionTo(t *testing.T) {
	cases := []struct {
		name    string
		from    AdStatus
		to      AdStatus
		allowed bool
	}{
		{"UnverifiedToApproved", AdStatusUnverified, AdStatusApproved, true},
		{"UnverifiedToRejected", AdStatusUnverified, AdStatusRejected, true},
		{"UnverifiedToUnverified", AdStatusUnverified, AdStatusUnverified, false},
		{"ApprovedToRejected", AdStatusApproved, AdStatusRejected, false},
		{"ApprovedToApproved", AdStatusApproved, AdStatusApproved, false},
		{"RejectedToApproved", AdStatusRejected, AdStatusApproved, false},
		{"RejectedToRejected", AdStatusRejected, AdStatusRejected, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ad := &Ad{Status: tc.from}
			assert.Equal(t, tc.allowed, ad.CanTransitionTo(tc.to))
		})
	}
}

func TestAdIsBookable(t *testing.T) {
	assert.False(t, (&Ad{Status: AdStatusUnverified}).IsBookable())
	assert.True(t, (&Ad{Status: AdStatusApproved}).IsBookable())
	assert.False(t, (&Ad{Status: AdStatusRejected}).IsBookable())
}

func TestOrderStatus(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, OrderStatusPending.Valid())
		assert.True(t, OrderStatusApproved.Valid())
		assert.True(t, OrderStatusRejected.Valid())
		assert.False(t, OrderStatus("cancelled").Valid())
	})

	t.Run("ScanAndValue", func(t *testing.T) {
		var s OrderStatus
		require.NoError(t, s.Scan("pending"))
		assert.Equal(t, OrderStatusPending, s)

		v, err := OrderStatusApproved.Value()
		require.NoError(t, err)
		assert.Equal(t, "approved", v)

		_, err = OrderStatus("").Value()
		assert.Error(t, err)
	})
}

func TestOrderCanTransitionTo(t *testing.T) {
	cases := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"PendingToApproved", OrderStatusPending, OrderStatusApproved, true},
		{"PendingToRejected", OrderStatusPending, OrderStatusRejected, true},
		{"ApprovedToRejected", OrderStatusApproved, OrderStatusRejected, true},
		{"RejectedToApproved", OrderStatusRejected, OrderStatusApproved, true},
		{"ApprovedToApproved", OrderStatusApproved, OrderStatusApproved, false},
		{"RejectedToRejected", OrderStatusRejected, OrderStatusRejected, false},
		{"AnyToPending", OrderStatusApproved, OrderStatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := &AdOrder{Status: tc.from}
			assert.Equal(t, tc.allowed, order.CanTransitionTo(tc.to))
		})
	}
}

func TestScreenBookable(t *testing.T) {
	assert.True(t, (&Screen{PricePerTime: 10}).Bookable())
	assert.False(t, (&Screen{PricePerTime: 0}).Bookable())
	assert.False(t, (&Screen{PricePerTime: -1}).Bookable())
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "businesses", Business{}.TableName())
	assert.Equal(t, "admins", Admin{}.TableName())
	assert.Equal(t, "categories", Category{}.TableName())
	assert.Equal(t, "business_categories", BusinessCategory{}.TableName())
	assert.Equal(t, "addresses", Address{}.TableName())
	assert.Equal(t, "screens", Screen{}.TableName())
	assert.Equal(t, "ads", Ad{}.TableName())
	assert.Equal(t, "ad_categories", AdCategory{}.TableName())
	assert.Equal(t, "ad_orders", AdOrder{}.TableName())
	assert.Equal(t, "incomes", Income{}.TableName())
	assert.Equal(t, "image_assets", ImageAsset{}.TableName())
}
