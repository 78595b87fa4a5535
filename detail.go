package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type productDetailMsg struct {
	ref    string
	detail productDetail
	err    error

	// focus moves the cursor to the preview column once the card lands;
	// highlight-driven previews leave focus where it is.
	focus bool
}

// storeNavigator realizes record-detail navigation inside the terminal: the
// product card is loaded from the store and rendered into the preview
// column. Navigation is fire-and-forget for the dispatcher; load failures
// surface only in the preview.
type storeNavigator struct {
	store *dealStore
}

func (n *storeNavigator) NavigateToDetail(ref string) tea.Cmd {
	return n.detailCmd(ref, true)
}

// PreviewDetail loads the card for the highlighted row without stealing
// focus from the table.
func (n *storeNavigator) PreviewDetail(ref string) tea.Cmd {
	return n.detailCmd(ref, false)
}

func (n *storeNavigator) detailCmd(ref string, focus bool) tea.Cmd {
	if n == nil || n.store == nil || strings.TrimSpace(ref) == "" {
		return nil
	}
	store := n.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
		defer cancel()
		detail, err := store.ProductDetail(ctx, ref)
		return productDetailMsg{ref: ref, detail: detail, err: err, focus: focus}
	}
}

func productCard(detail productDetail, labels labelSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", detail.Name)
	fmt.Fprintf(&b, "`%s`\n\n", detail.ID)
	if detail.Stock != nil {
		fmt.Fprintf(&b, "**%s:** %s\n\n", labels.StockAvailable, formatCount(detail.Stock))
	} else {
		fmt.Fprintf(&b, "**%s:** n/a\n\n", labels.StockAvailable)
	}
	if strings.TrimSpace(detail.Description) != "" {
		b.WriteString(detail.Description)
		b.WriteString("\n")
	}
	return renderMarkdown(b.String())
}
