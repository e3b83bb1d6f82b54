package utils

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedNow(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, 6, 15, 12, 0, 0, 0, time.UTC)
	}
}

func TestOrderNumberGenerator_Seed(t *testing.T) {
	t.Run("Continues after highest current-year sequence", func(t *testing.T) {
		g := NewOrderNumberGeneratorAt(fixedNow(2024))
		g.Seed([]string{"P2024001", "P2024002", "P2023099"})
		assert.Equal(t, "P2024003", g.Next())
	})

	t.Run("Starts at one with no current-year history", func(t *testing.T) {
		g := NewOrderNumberGeneratorAt(fixedNow(2024))
		g.Seed([]string{"P2023098", "P2023099"})
		assert.Equal(t, "P2024001", g.Next())
	})

	t.Run("Ignores unparsable numbers", func(t *testing.T) {
		g := NewOrderNumberGeneratorAt(fixedNow(2024))
		g.Seed([]string{"P2024007", "P2024xyz", "INV-42"})
		assert.Equal(t, "P2024008", g.Next())
	})
}

func TestOrderNumberGenerator_Next(t *testing.T) {
	t.Run("Strictly increasing within a year", func(t *testing.T) {
		g := NewOrderNumberGeneratorAt(fixedNow(2024))
		g.Seed(nil)
		assert.Equal(t, "P2024001", g.Next())
		assert.Equal(t, "P2024002", g.Next())
		assert.Equal(t, "P2024003", g.Next())
	})

	t.Run("Sequence restarts on year rollover", func(t *testing.T) {
		year := 2024
		g := NewOrderNumberGeneratorAt(func() time.Time {
			return time.Date(year, 12, 31, 23, 0, 0, 0, time.UTC)
		})
		g.Seed([]string{"P2024041"})
		assert.Equal(t, "P2024042", g.Next())
		year = 2025
		assert.Equal(t, "P2025001", g.Next())
	})

	t.Run("Unique under concurrent allocation", func(t *testing.T) {
		g := NewOrderNumberGeneratorAt(fixedNow(2024))
		g.Seed(nil)

		const n = 100
		var wg sync.WaitGroup
		results := make(chan string, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- g.Next()
			}()
		}
		wg.Wait()
		close(results)

		seen := make(map[string]bool, n)
		for num := range results {
			assert.False(t, seen[num], fmt.Sprintf("duplicate order number %s", num))
			seen[num] = true
		}
		assert.Len(t, seen, n)
	})
}

func TestPaymentSymbol(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"P2024003", "2024003"},
		{"P20240031234567", "2024003123"},
		{"PONLYLETTERS", "000"},
		{"", "000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, PaymentSymbol(tt.in))
		})
	}
}
