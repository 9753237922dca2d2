package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatusClosed(t *testing.T) {
	require.False(t, OrderStatusOpen.Closed())
	require.False(t, OrderStatusInProgress.Closed())
	require.False(t, OrderStatusAwaitingPart.Closed())
	require.True(t, OrderStatusDone.Closed())
	require.True(t, OrderStatusDelivered.Closed())
}

func TestOrderValidate(t *testing.T) {
	o := Order{ID: 1, Code: "OS-0001", Status: OrderStatusOpen}
	require.NoError(t, o.Validate())

	bad := []Order{
		{Code: "OS-0001", Status: OrderStatusOpen},
		{ID: 1, Status: OrderStatusOpen},
		{ID: 1, Code: "OS-0001", Status: "BROKEN"},
	}
	for _, o := range bad {
		require.ErrorIs(t, o.Validate(), ErrMalformedOrder)
	}
}

func TestPartEntryWarrantyCostsNothing(t *testing.T) {
	part := &Part{ID: 3, Code: "FLT-01", UnitCost: 25}

	paid := PartEntry{PartID: 3, Part: part, Quantity: 2}
	require.Equal(t, 25.0, paid.UnitCost())
	require.Equal(t, 50.0, paid.Total())

	warranty := PartEntry{PartID: 3, Part: part, Quantity: 2, IsWarranty: true}
	require.Equal(t, 0.0, warranty.UnitCost())
	require.Equal(t, 0.0, warranty.Total())

	// A missing catalog row cannot be priced.
	orphan := PartEntry{PartID: 3, Quantity: 2}
	require.Equal(t, 0.0, orphan.Total())
}

func TestOrderTotals(t *testing.T) {
	o := Order{
		Labor: []LaborEntry{{Hours: 1.5}, {Hours: 0.5}},
		Parts: []PartEntry{
			{Part: &Part{UnitCost: 10}, Quantity: 3},
			{Part: &Part{UnitCost: 99}, Quantity: 1, IsWarranty: true},
		},
	}
	require.Equal(t, 2.0, o.LaborTotalHours())
	require.Equal(t, 30.0, o.PartsTotal())
}
