package main

// valueKind tells the renderer how to format a column's cells.
type valueKind int

const (
	kindText valueKind = iota
	kindCurrency
	kindInteger
	kindAction
)

const (
	actionDeleteLine  = "delete_line"
	actionViewProduct = "view_product"
)

// columnSpec describes one grid column. Data columns carry a fieldKey;
// action columns carry an actionName and a key hint instead.
type columnSpec struct {
	label      string
	fieldKey   string
	kind       valueKind
	actionName string
	keyHint    string

	// warnStyled columns render the low-stock marker on flagged rows.
	warnStyled bool
}

// viewerContext is resolved once per session; the role flag gates the
// trailing "view product" action column.
type viewerContext struct {
	elevated    bool
	displayName string
}

// planColumns builds the ordered column list for a viewer. The order of the
// leading six columns is fixed regardless of role; row-action dispatch is
// keyed by action name, never by position, so the conditional column may
// only ever be appended at the tail.
func planColumns(ctx viewerContext, labels labelSet) []columnSpec {
	cols := []columnSpec{
		{label: labels.ProductName, fieldKey: "productName", kind: kindText},
		{label: labels.UnitPrice, fieldKey: "unitPrice", kind: kindCurrency},
		{label: labels.TotalPrice, fieldKey: "totalPrice", kind: kindCurrency},
		{label: labels.Quantity, fieldKey: "quantity", kind: kindInteger, warnStyled: true},
		{label: labels.StockAvailable, fieldKey: "stockAvailable", kind: kindInteger},
		{label: labels.DeleteLine, kind: kindAction, actionName: actionDeleteLine, keyHint: "d"},
	}
	if ctx.elevated {
		cols = append(cols, columnSpec{
			label:      labels.ViewProduct,
			kind:       kindAction,
			actionName: actionViewProduct,
			keyHint:    "v",
		})
	}
	return cols
}
