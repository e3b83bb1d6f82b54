package postgres

import (
	"context"
	"database/sql"

	"pujcovna-backend/internal/domain"
	"pujcovna-backend/internal/repository"
)

type reservationItemRepository struct {
	db *sql.DB
}

func NewReservationItemRepository(db *sql.DB) repository.ReservationItemRepository {
	return &reservationItemRepository{db: db}
}

const reservationItemColumns = `id, reservation_id, equipment_id, date_from, date_to, days, quantity, daily_price, total_price, deposit`

func (r *reservationItemRepository) Create(ctx context.Context, item *domain.ReservationItem) error {
	query := `INSERT INTO reservation_items (reservation_id, equipment_id, date_from, date_to, days, quantity, daily_price, total_price, deposit)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		item.ReservationID, item.EquipmentID, item.DateFrom, item.DateTo,
		item.Days, item.Quantity, item.DailyPrice, item.TotalPrice, item.Deposit,
	).Scan(&item.ID)
}

func (r *reservationItemRepository) ListByReservation(ctx context.Context, reservationID int32) ([]domain.ReservationItem, error) {
	query := `SELECT ` + reservationItemColumns + ` FROM reservation_items WHERE reservation_id = $1 ORDER BY id ASC`
	return r.queryItems(ctx, query, reservationID)
}

func (r *reservationItemRepository) ListByEquipment(ctx context.Context, equipmentID int32) ([]domain.ReservationItem, error) {
	query := `SELECT ` + reservationItemColumns + ` FROM reservation_items WHERE equipment_id = $1`
	return r.queryItems(ctx, query, equipmentID)
}

func (r *reservationItemRepository) ReplaceForReservation(ctx context.Context, reservationID int32, items []domain.ReservationItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reservation_items WHERE reservation_id = $1`, reservationID); err != nil {
		return err
	}
	for i := range items {
		items[i].ReservationID = reservationID
		err := tx.QueryRowContext(ctx,
			`INSERT INTO reservation_items (reservation_id, equipment_id, date_from, date_to, days, quantity, daily_price, total_price, deposit)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
			items[i].ReservationID, items[i].EquipmentID, items[i].DateFrom, items[i].DateTo,
			items[i].Days, items[i].Quantity, items[i].DailyPrice, items[i].TotalPrice, items[i].Deposit,
		).Scan(&items[i].ID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *reservationItemRepository) queryItems(ctx context.Context, query string, arg any) ([]domain.ReservationItem, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ReservationItem
	for rows.Next() {
		var it domain.ReservationItem
		if err := rows.Scan(
			&it.ID, &it.ReservationID, &it.EquipmentID, &it.DateFrom, &it.DateTo,
			&it.Days, &it.Quantity, &it.DailyPrice, &it.TotalPrice, &it.Deposit); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
