package utils

import (
	"pujcovna-backend/internal/domain"
)

// TierDailyPrice resolves which of the three daily-rate brackets applies to
// a rental of the given length. The brackets partition all day counts >= 1:
// 1-3 days, 4-7 days, 8 and more.
func TierDailyPrice(eq *domain.Equipment, days int32) int32 {
	switch {
	case days <= 3:
		return eq.Price1To3Days
	case days <= 7:
		return eq.Price4To7Days
	default:
		return eq.Price8PlusDays
	}
}

// LineTotals computes the rental price and deposit of one cart line.
// Rental is dailyPrice x days x quantity; the deposit scales with quantity
// only and is refundable, so it stays out of the rental price.
func LineTotals(dailyPrice, deposit, days, quantity int32) (totalPrice, totalDeposit int32) {
	return dailyPrice * days * quantity, deposit * quantity
}

// ReservationTotals sums line totals into the aggregates stored on the
// reservation header.
func ReservationTotals(items []domain.ReservationItem) (totalPrice, totalDeposit int32) {
	for _, it := range items {
		totalPrice += it.TotalPrice
		totalDeposit += it.Deposit * it.Quantity
	}
	return totalPrice, totalDeposit
}
