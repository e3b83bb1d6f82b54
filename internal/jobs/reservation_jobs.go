package jobs

import (
	"context"

	"pujcovna-backend/internal/clock"
	"pujcovna-backend/internal/logger"
)

// SweepReservationStatuses advances stored reservation statuses past their
// calendar boundaries: PENDING becomes LOANED once the rental has started,
// and PENDING or LOANED become RETURNED once it has ended. CANCELLED rows
// are never touched. The same derivation runs lazily on reads; this sweep
// keeps rows current even when nobody lists them.
func (jr *JobRunner) SweepReservationStatuses() {
	jr.runWithRecovery("SweepReservationStatuses", func() {
		ctx := context.Background()
		today := clock.Today(jr.clk)

		loaned, err := jr.sweep(ctx,
			`UPDATE reservations
			 SET status = 'LOANED'
			 WHERE status = 'PENDING'
			   AND date_from <= $1
			   AND date_to >= $1`, today)
		if err != nil {
			logger.Error("Failed to mark started reservations as loaned", "error", err)
			return
		}

		returned, err := jr.sweep(ctx,
			`UPDATE reservations
			 SET status = 'RETURNED'
			 WHERE status IN ('PENDING', 'LOANED')
			   AND date_to < $1`, today)
		if err != nil {
			logger.Error("Failed to mark ended reservations as returned", "error", err)
			return
		}

		logger.Info("Reservation statuses swept", "loaned", loaned, "returned", returned)
	})
}

func (jr *JobRunner) sweep(ctx context.Context, query, today string) (int64, error) {
	result, err := jr.db.ExecContext(ctx, query, today)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
