package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProductCardStockPlaceholder(t *testing.T) {
	labels := labelsForLocale("en")

	card := productCard(productDetail{ID: "PROD-2", Name: "Untracked"}, labels)
	require.Contains(t, card, "n/a")

	stock := 3.0
	card = productCard(productDetail{
		ID:          "PROD-1",
		Name:        "Widget",
		Stock:       &stock,
		Description: "A widget.",
	}, labels)
	require.Contains(t, card, "Widget")
	require.Contains(t, card, "3")
}

func TestNavigateMovesFocusPreviewDoesNot(t *testing.T) {
	store := newTestStore(t)
	seedTestOpportunity(t, store)
	nav := &storeNavigator{store: store}

	msg, ok := nav.NavigateToDetail("PROD-1")().(productDetailMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	require.True(t, msg.focus)
	require.Equal(t, "Widget", msg.detail.Name)

	msg, ok = nav.PreviewDetail("PROD-1")().(productDetailMsg)
	require.True(t, ok)
	require.False(t, msg.focus)

	require.Nil(t, nav.PreviewDetail(""))
	require.Nil(t, nav.NavigateToDetail(" "))
}
