package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus_CanBeUpdatedTo(t *testing.T) {
	testCases := []struct {
		from     PaymentStatus
		to       PaymentStatus
		expected bool
	}{
		{PaymentStatusPending, PaymentStatusPaid, true},
		{PaymentStatusPending, PaymentStatusFailed, true},
		{PaymentStatusPending, PaymentStatusRefunded, false},
		{PaymentStatusPending, PaymentStatusPending, false},
		{PaymentStatusPaid, PaymentStatusFailed, true},
		{PaymentStatusPaid, PaymentStatusRefunded, true},
		{PaymentStatusPaid, PaymentStatusPending, false},
		{PaymentStatusFailed, PaymentStatusPaid, false},
		{PaymentStatusFailed, PaymentStatusRefunded, false},
		{PaymentStatusRefunded, PaymentStatusPaid, false},
		{PaymentStatusRefunded, PaymentStatusFailed, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.from.CanBeUpdatedTo(tc.to))
		})
	}
}

func TestPaymentStatus_IsTerminal(t *testing.T) {
	assert.False(t, PaymentStatusPending.IsTerminal())
	assert.False(t, PaymentStatusPaid.IsTerminal())
	assert.True(t, PaymentStatusFailed.IsTerminal())
	assert.True(t, PaymentStatusRefunded.IsTerminal())
}

func TestPaymentStatusFromProvider(t *testing.T) {
	testCases := []struct {
		provider string
		expected PaymentStatus
		ok       bool
	}{
		{"COMPLETED", PaymentStatusPaid, true},
		{"DENIED", PaymentStatusFailed, true},
		{"DECLINED", PaymentStatusFailed, true},
		{"FAILED", PaymentStatusFailed, true},
		{"REFUNDED", PaymentStatusRefunded, true},
		{"PENDING", PaymentStatusPending, true},
		{"APPROVED", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.provider, func(t *testing.T) {
			status, ok := PaymentStatusFromProvider(tc.provider)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, status)
		})
	}
}

func TestNewPaymentStatus(t *testing.T) {
	status, err := NewPaymentStatus("paid")
	assert.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, status)

	_, err = NewPaymentStatus("captured")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.EqualError(t, err, `invalid payment status: "captured"`)
}

func TestOrderEventQuery_Normalize(t *testing.T) {
	q := OrderEventQuery{}
	q.Normalize()
	assert.Equal(t, DefaultEventPageLimit, q.Limit)

	q = OrderEventQuery{Limit: 5000}
	q.Normalize()
	assert.Equal(t, MaxEventPageLimit, q.Limit)

	q = OrderEventQuery{Limit: 25}
	q.Normalize()
	assert.Equal(t, 25, q.Limit)
}
