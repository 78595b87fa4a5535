package main

// displayRow is the render-ready projection of a remoteRow. The set is
// recomputed in full on every load; rows are never patched in place.
type displayRow struct {
	id             string
	productName    string
	productRef     string
	unitPrice      float64
	totalPrice     float64
	quantity       *float64
	stockAvailable *float64

	// stockDelta is stockAvailable - quantity with absent values counted
	// as zero. lowStock marks rows whose delta went negative.
	stockDelta float64
	lowStock   bool
}

// projectRows maps remote rows to display rows, preserving order, and
// reports whether any row is short on stock. The input is not modified.
func projectRows(rows []remoteRow) ([]displayRow, bool) {
	out := make([]displayRow, len(rows))
	anyWarning := false
	for i, r := range rows {
		delta := floatOrZero(r.StockAvailable) - floatOrZero(r.Quantity)
		row := displayRow{
			id:             r.ID,
			productName:    r.ProductName,
			productRef:     r.ProductRef,
			unitPrice:      r.UnitPrice,
			totalPrice:     r.TotalPrice,
			quantity:       r.Quantity,
			stockAvailable: r.StockAvailable,
			stockDelta:     delta,
			lowStock:       delta < 0,
		}
		if row.lowStock {
			anyWarning = true
		}
		out[i] = row
	}
	return out, anyWarning
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
