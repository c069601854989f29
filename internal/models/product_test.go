package models

import "testing"

func TestProduct_IsLowStock(t *testing.T) {
	tests := []struct {
		quantity, threshold int
		want                bool
	}{
		{3, 5, true},
		{5, 5, true},
		{6, 5, false},
		{0, 0, true},
	}
	for _, tt := range tests {
		p := Product{Quantity: tt.quantity, MinStockThreshold: tt.threshold}
		if got := p.IsLowStock(); got != tt.want {
			t.Errorf("IsLowStock(%d, %d) = %v, want %v", tt.quantity, tt.threshold, got, tt.want)
		}
	}
}

func TestTotalValue(t *testing.T) {
	products := []Product{
		{Price: 0.1, Quantity: 3},
		{Price: 0.2, Quantity: 3},
		{Price: 19.99, Quantity: 0},
	}
	if got := TotalValue(products).String(); got != "0.9" {
		t.Errorf("expected 0.9, got %s", got)
	}
	if got := TotalValue(nil).String(); got != "0" {
		t.Errorf("expected 0 for no products, got %s", got)
	}
}
