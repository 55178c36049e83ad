// Package pricing calcule le récapitulatif d'un panier : sous-total, remise,
// taxe et total. Les montants sont calculés en décimal et arrondis au centime.
package pricing

import (
	"scoop_storefront/internal/models"

	"github.com/shopspring/decimal"
)

// TaxRate est le taux de taxe fixe appliqué après remise
var TaxRate = decimal.NewFromFloat(0.10)

type Summary struct {
	Subtotal        float64 `json:"subtotal"`
	DiscountPercent float64 `json:"discountPercent"`
	DiscountAmount  float64 `json:"discountAmount"`
	TaxableSubtotal float64 `json:"taxableSubtotal"`
	Tax             float64 `json:"tax"`
	Total           float64 `json:"total"`
	ItemCount       int     `json:"itemCount"`
}

// Calculate applique subtotal → remise → taxe → total.
// discountPercent est une fraction (0.10 pour 10%).
func Calculate(items []models.CartItem, discountPercent float64) Summary {
	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
		count += item.Quantity
	}
	subtotal = subtotal.Round(2)

	pct := decimal.NewFromFloat(discountPercent)
	discount := subtotal.Mul(pct).Round(2)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(TaxRate).Round(2)
	total := taxable.Add(tax)

	return Summary{
		Subtotal:        subtotal.InexactFloat64(),
		DiscountPercent: discountPercent,
		DiscountAmount:  discount.InexactFloat64(),
		TaxableSubtotal: taxable.InexactFloat64(),
		Tax:             tax.InexactFloat64(),
		Total:           total.InexactFloat64(),
		ItemCount:       count,
	}
}
