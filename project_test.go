package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestProjectRowsPreservesLengthAndOrder(t *testing.T) {
	rows := []remoteRow{
		{ID: "c", ProductName: "Gamma"},
		{ID: "a", ProductName: "Alpha"},
		{ID: "b", ProductName: "Beta"},
	}
	out, _ := projectRows(rows)
	require.Len(t, out, len(rows))
	for i, row := range rows {
		require.Equal(t, row.ID, out[i].id)
		require.Equal(t, row.ProductName, out[i].productName)
	}
}

func TestProjectRowsStockDelta(t *testing.T) {
	rows := []remoteRow{
		{ID: "short", Quantity: floatPtr(5), StockAvailable: floatPtr(3)},
		{ID: "exact", Quantity: floatPtr(4), StockAvailable: floatPtr(4)},
		{ID: "plenty", Quantity: floatPtr(2), StockAvailable: floatPtr(10)},
	}
	out, anyWarning := projectRows(rows)
	require.True(t, anyWarning)

	require.Equal(t, -2.0, out[0].stockDelta)
	require.True(t, out[0].lowStock)
	require.Equal(t, 0.0, out[1].stockDelta)
	require.False(t, out[1].lowStock)
	require.Equal(t, 8.0, out[2].stockDelta)
	require.False(t, out[2].lowStock)
}

func TestProjectRowsOversoldScenario(t *testing.T) {
	rows := []remoteRow{{
		ID:             "a",
		ProductName:    "X",
		UnitPrice:      10,
		Quantity:       floatPtr(5),
		StockAvailable: floatPtr(3),
	}}
	out, anyWarning := projectRows(rows)
	require.Len(t, out, 1)
	require.Equal(t, -2.0, out[0].stockDelta)
	require.True(t, out[0].lowStock)
	require.True(t, anyWarning)
}

func TestProjectRowsMissingValuesCountAsZero(t *testing.T) {
	rows := []remoteRow{
		{ID: "no-qty", StockAvailable: floatPtr(3)},
		{ID: "no-stock", Quantity: floatPtr(2)},
		{ID: "neither"},
	}
	out, anyWarning := projectRows(rows)

	// Delta arithmetic treats absence as zero…
	require.Equal(t, 3.0, out[0].stockDelta)
	require.Equal(t, -2.0, out[1].stockDelta)
	require.Equal(t, 0.0, out[2].stockDelta)
	require.True(t, anyWarning)

	// …while the displayed fields keep the absence.
	require.Nil(t, out[0].quantity)
	require.Nil(t, out[1].stockAvailable)
	require.Nil(t, out[2].quantity)
	require.Nil(t, out[2].stockAvailable)
}

func TestProjectRowsNoWarnings(t *testing.T) {
	rows := []remoteRow{
		{ID: "a", Quantity: floatPtr(1), StockAvailable: floatPtr(1)},
		{ID: "b"},
	}
	out, anyWarning := projectRows(rows)
	require.False(t, anyWarning)
	for _, row := range out {
		require.False(t, row.lowStock)
	}
}

func TestProjectRowsDoesNotMutateInput(t *testing.T) {
	quantity := floatPtr(5)
	rows := []remoteRow{{ID: "a", Quantity: quantity, StockAvailable: floatPtr(3)}}
	_, _ = projectRows(rows)
	require.Equal(t, "a", rows[0].ID)
	require.Same(t, quantity, rows[0].Quantity)
	require.Equal(t, 5.0, *rows[0].Quantity)
}

func TestProjectRowsEmptyInput(t *testing.T) {
	out, anyWarning := projectRows(nil)
	require.Empty(t, out)
	require.False(t, anyWarning)
}
