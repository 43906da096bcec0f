package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderPaid, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderShipped, false},
		{OrderPending, OrderDelivered, false},
		{OrderPaid, OrderShipped, true},
		{OrderPaid, OrderCancelled, true},
		{OrderPaid, OrderRefunded, true},
		{OrderPaid, OrderPending, false},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderCancelled, false},
		{OrderDelivered, OrderRefunded, false},
		{OrderCancelled, OrderPaid, false},
		{OrderRefunded, OrderPending, false},
	}

	for _, c := range cases {
		require.Equal(t, c.allowed, c.from.CanTransition(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	require.False(t, OrderPending.IsTerminal())
	require.False(t, OrderPaid.IsTerminal())
	require.False(t, OrderShipped.IsTerminal())
	require.True(t, OrderDelivered.IsTerminal())
	require.True(t, OrderCancelled.IsTerminal())
	require.True(t, OrderRefunded.IsTerminal())
}
