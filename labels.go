package main

import "strings"

// labelSet holds the localized column labels and action captions for one
// locale.
type labelSet struct {
	ProductName    string
	UnitPrice      string
	TotalPrice     string
	Quantity       string
	StockAvailable string
	DeleteLine     string
	ViewProduct    string
}

var labelSets = map[string]labelSet{
	"en": {
		ProductName:    "Product",
		UnitPrice:      "Unit price",
		TotalPrice:     "Total price",
		Quantity:       "Quantity",
		StockAvailable: "Stock left",
		DeleteLine:     "Delete",
		ViewProduct:    "View product",
	},
	"fr": {
		ProductName:    "Nom du produit",
		UnitPrice:      "Prix unitaire",
		TotalPrice:     "Prix total",
		Quantity:       "Quantité",
		StockAvailable: "Stock restant",
		DeleteLine:     "Supprimer",
		ViewProduct:    "Voir produit",
	},
}

func labelsForLocale(locale string) labelSet {
	key := strings.ToLower(strings.TrimSpace(locale))
	if set, ok := labelSets[key]; ok {
		return set
	}
	return labelSets["en"]
}
