package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanColumnsStandardViewer(t *testing.T) {
	labels := labelsForLocale("en")
	cols := planColumns(viewerContext{elevated: false}, labels)
	require.Len(t, cols, 6)

	wantFields := []string{"productName", "unitPrice", "totalPrice", "quantity", "stockAvailable"}
	for i, field := range wantFields {
		require.Equal(t, field, cols[i].fieldKey)
		require.NotEqual(t, kindAction, cols[i].kind)
	}
	require.Equal(t, kindAction, cols[5].kind)
	require.Equal(t, actionDeleteLine, cols[5].actionName)
}

func TestPlanColumnsElevatedViewer(t *testing.T) {
	labels := labelsForLocale("en")
	cols := planColumns(viewerContext{elevated: true}, labels)
	require.Len(t, cols, 7)
	require.Equal(t, actionViewProduct, cols[6].actionName)
	require.Equal(t, kindAction, cols[6].kind)

	// The leading columns must not move when the role flag flips.
	base := planColumns(viewerContext{elevated: false}, labels)
	require.Equal(t, base, cols[:6])
}

func TestPlanColumnsValueKinds(t *testing.T) {
	cols := planColumns(viewerContext{}, labelsForLocale("en"))
	require.Equal(t, kindText, cols[0].kind)
	require.Equal(t, kindCurrency, cols[1].kind)
	require.Equal(t, kindCurrency, cols[2].kind)
	require.Equal(t, kindInteger, cols[3].kind)
	require.True(t, cols[3].warnStyled)
	require.Equal(t, kindInteger, cols[4].kind)
}

func TestPlanColumnsFrenchLabels(t *testing.T) {
	cols := planColumns(viewerContext{elevated: true}, labelsForLocale("fr"))
	require.Equal(t, "Nom du produit", cols[0].label)
	require.Equal(t, "Prix unitaire", cols[1].label)
	require.Equal(t, "Prix total", cols[2].label)
	require.Equal(t, "Quantité", cols[3].label)
	require.Equal(t, "Stock restant", cols[4].label)
	require.Equal(t, "Supprimer", cols[5].label)
	require.Equal(t, "Voir produit", cols[6].label)
}

func TestLabelsForLocaleFallsBackToEnglish(t *testing.T) {
	require.Equal(t, labelsForLocale("en"), labelsForLocale("de"))
	require.Equal(t, labelsForLocale("fr"), labelsForLocale(" FR "))
}
