package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	t.Run("generated id", func(t *testing.T) {
		env, err := NewEnvelope("ORDER1", "CHECKOUT.ORDER.APPROVED", map[string]any{"id": "WH-1"})

		require.NoError(t, err)
		assert.NotEmpty(t, env.EventID)
		assert.Equal(t, "ORDER1", env.Key)
		assert.False(t, env.Timestamp.IsZero())
	})

	t.Run("provider id wins", func(t *testing.T) {
		env, err := NewEnvelope("ORDER1", "CHECKOUT.ORDER.APPROVED", map[string]any{}, WithEventID("WH-1"))

		require.NoError(t, err)
		assert.Equal(t, "WH-1", env.EventID)
	})

	t.Run("empty provider id keeps generated", func(t *testing.T) {
		env, err := NewEnvelope("ORDER1", "CHECKOUT.ORDER.APPROVED", map[string]any{}, WithEventID(""))

		require.NoError(t, err)
		assert.NotEmpty(t, env.EventID)
	})
}

func TestDecodeEnvelope(t *testing.T) {
	testCases := []struct {
		name      string
		value     string
		expectErr bool
	}{
		{
			name:  "valid",
			value: `{"event_id":"WH-1","key":"ORDER1","type":"PAYMENT.CAPTURE.DENIED","payload":{"id":"WH-1"}}`,
		},
		{name: "not json", value: `{`, expectErr: true},
		{name: "missing type", value: `{"event_id":"WH-1","payload":{}}`, expectErr: true},
		{name: "missing payload", value: `{"event_id":"WH-1","type":"PAYMENT.CAPTURE.DENIED"}`, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env, err := DecodeEnvelope([]byte(tc.value))

			if tc.expectErr {
				assert.ErrorIs(t, err, ErrInvalidEnvelope)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "WH-1", env.EventID)
			assert.JSONEq(t, `{"id":"WH-1"}`, string(env.Payload))
		})
	}
}
