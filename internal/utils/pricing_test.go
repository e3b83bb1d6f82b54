package utils

import (
	"testing"

	"pujcovna-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTierDailyPrice(t *testing.T) {
	eq := &domain.Equipment{
		Price1To3Days:  100,
		Price4To7Days:  80,
		Price8PlusDays: 60,
	}

	tests := []struct {
		name     string
		days     int32
		expected int32
	}{
		{"One day uses first tier", 1, 100},
		{"Three days still first tier", 3, 100},
		{"Four days moves to middle tier", 4, 80},
		{"Seven days still middle tier", 7, 80},
		{"Eight days moves to last tier", 8, 60},
		{"Long rental stays on last tier", 30, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TierDailyPrice(eq, tt.days))
		})
	}
}

func TestLineTotals(t *testing.T) {
	t.Run("Rental scales with days and quantity", func(t *testing.T) {
		price, deposit := LineTotals(80, 500, 4, 2)
		assert.Equal(t, int32(640), price)
		assert.Equal(t, int32(1000), deposit)
	})

	t.Run("Deposit is independent of days", func(t *testing.T) {
		_, d1 := LineTotals(80, 500, 1, 3)
		_, d2 := LineTotals(80, 500, 14, 3)
		assert.Equal(t, d1, d2)
	})
}

func TestReservationTotals(t *testing.T) {
	items := []domain.ReservationItem{
		{TotalPrice: 640, Deposit: 500, Quantity: 2},
		{TotalPrice: 300, Deposit: 200, Quantity: 1},
	}

	price, deposit := ReservationTotals(items)
	assert.Equal(t, int32(940), price)
	assert.Equal(t, int32(1200), deposit)
}
