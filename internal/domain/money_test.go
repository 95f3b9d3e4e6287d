package domain_test

import (
	"testing"

	"github.com/nikolayk812/vibe-vault/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func TestMoney_Round(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		unit   currency.Unit
		want   string
	}{
		{
			name:   "usd rounds to cents",
			amount: "75.5892",
			unit:   currency.USD,
			want:   "75.59",
		},
		{
			name:   "jpy has no minor units",
			amount: "1234.5",
			unit:   currency.JPY,
			want:   "1235",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.NewMoney(decimal.RequireFromString(tt.amount), tt.unit)
			assert.Equal(t, tt.want, m.Round().Amount.String())
		})
	}
}

func TestMoney_String(t *testing.T) {
	m := domain.NewMoney(decimal.RequireFromString("0.8"), currency.USD)
	assert.Equal(t, "0.80 USD", m.String())
}

func TestMoney_AddMismatchPanics(t *testing.T) {
	usd := domain.NewMoney(decimal.NewFromInt(1), currency.USD)
	eur := domain.NewMoney(decimal.NewFromInt(1), currency.EUR)

	assert.Panics(t, func() { usd.Add(eur) })
}
