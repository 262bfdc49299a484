package types_test

import (
	"testing"

	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
		wantErr  bool
	}{
		{"valid", 1850, "USD", false},
		{"zero amount is valid", 0, "USD", false},
		{"negative amount is valid", -100, "USD", false},
		{"missing currency", 100, "", true},
		{"short currency", 100, "US", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := types.NewMoney(tt.amount, tt.currency)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMoney(%d, %q) error = %v, wantErr %v", tt.amount, tt.currency, err, tt.wantErr)
			}
		})
	}
}

func TestMoney_Add(t *testing.T) {
	usd := func(amount int64) types.Money {
		m, err := types.NewMoney(amount, "USD")
		if err != nil {
			t.Fatalf("failed to create money: %v", err)
		}
		return m
	}

	sum, err := usd(1200).Add(usd(650))
	if err != nil {
		t.Fatalf("failed to add: %v", err)
	}
	if sum.Amount() != 1850 || sum.Currency() != "USD" {
		t.Errorf("expected 1850 USD, got %s", sum)
	}
}

func TestMoney_Add_FromZeroAdoptsCurrency(t *testing.T) {
	item, err := types.NewMoney(450, "EUR")
	if err != nil {
		t.Fatalf("failed to create money: %v", err)
	}

	var total types.Money
	total, err = total.Add(item)
	if err != nil {
		t.Fatalf("failed to add to zero value: %v", err)
	}
	if !total.Equals(item) {
		t.Errorf("expected %s, got %s", item, total)
	}
}

func TestMoney_Add_MixedCurrencies(t *testing.T) {
	usd, _ := types.NewMoney(100, "USD")
	eur, _ := types.NewMoney(100, "EUR")

	if _, err := usd.Add(eur); err == nil {
		t.Error("expected an error adding different currencies")
	}
}

func TestMoney_IsZero(t *testing.T) {
	var unpriced types.Money
	if !unpriced.IsZero() {
		t.Error("expected the zero value to be unpriced")
	}

	free, err := types.NewMoney(0, "USD")
	if err != nil {
		t.Fatalf("failed to create money: %v", err)
	}
	if free.IsZero() {
		t.Error("a zero amount with a currency is a computed price, not unpriced")
	}
}
