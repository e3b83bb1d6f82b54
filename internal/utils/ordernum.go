package utils

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// OrderNumberGenerator hands out order numbers of the form
// P<4-digit year><3-digit sequence>, e.g. P2026003. The sequence is scoped
// to the calendar year and seeded from durable history at startup; the
// database UNIQUE constraint on order_number is the cross-process backstop.
type OrderNumberGenerator struct {
	mu      sync.Mutex
	year    int
	counter int
	now     func() time.Time
}

func NewOrderNumberGenerator() *OrderNumberGenerator {
	return &OrderNumberGenerator{counter: 1, now: time.Now}
}

// NewOrderNumberGeneratorAt pins the generator's notion of "now", for tests.
func NewOrderNumberGeneratorAt(now func() time.Time) *OrderNumberGenerator {
	return &OrderNumberGenerator{counter: 1, now: now}
}

// Seed scans existing order numbers and positions the counter one past the
// highest sequence seen for the current year. Numbers from other years and
// unparsable values are ignored.
func (g *OrderNumberGenerator) Seed(existing []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	year := g.now().Year()
	prefix := fmt.Sprintf("P%d", year)
	max := 0
	for _, num := range existing {
		if !strings.HasPrefix(num, prefix) {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(num, prefix))
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	g.year = year
	g.counter = max + 1
}

// Next allocates the next order number. If the calendar year has rolled over
// since the last allocation the sequence restarts at 1.
func (g *OrderNumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	year := g.now().Year()
	if year != g.year {
		g.year = year
		g.counter = 1
	}
	num := fmt.Sprintf("P%d%03d", year, g.counter)
	g.counter++
	return num
}

// PaymentSymbol derives the numeric variable symbol for bank reconciliation
// from an order or invoice number: non-digits stripped, at most 10 digits,
// "000" when nothing remains.
func PaymentSymbol(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	symbol := b.String()
	if len(symbol) > 10 {
		symbol = symbol[:10]
	}
	if symbol == "" {
		symbol = "000"
	}
	return symbol
}
