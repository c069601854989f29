package models

import "github.com/shopspring/decimal"

// TotalValue sums price * quantity over products without float drift.
func TotalValue(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return total
}
