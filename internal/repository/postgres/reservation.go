package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pujcovna-backend/internal/domain"
	"pujcovna-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, equipment_id, date_from, date_to, customer_name, customer_email, customer_phone, customer_address, customer_note, pickup_location, total_price, total_deposit, order_number, invoice_number, status, quantity, created_at`

func scanReservation(row interface{ Scan(...any) error }) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	var note sql.NullString
	err := row.Scan(
		&res.ID, &res.EquipmentID, &res.DateFrom, &res.DateTo,
		&res.CustomerName, &res.CustomerEmail, &res.CustomerPhone, &res.CustomerAddress,
		&note, &res.PickupLocation, &res.TotalPrice, &res.TotalDeposit,
		&res.OrderNumber, &res.InvoiceNumber, &res.Status, &res.Quantity, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	res.CustomerNote = note.String
	return res, nil
}

// CreateWithItems checks availability per line and inserts header plus items
// in one SERIALIZABLE transaction, so a conflicting concurrent booking either
// serializes behind this one or aborts it. No partially-written reservation
// is ever visible.
func (r *reservationRepository) CreateWithItems(ctx context.Context, res *domain.Reservation, items []domain.ReservationItem) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin reservation transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		var name string
		var stock int32
		err := tx.QueryRowContext(ctx,
			`SELECT name, stock FROM equipment WHERE id = $1`, item.EquipmentID,
		).Scan(&name, &stock)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrEquipmentNotFound
		}
		if err != nil {
			return err
		}

		var reserved int32
		// Closed-interval overlap; items of cancelled reservations still
		// occupy stock, so there is no status filter here.
		err = tx.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(quantity), 0) FROM reservation_items
			 WHERE equipment_id = $1 AND date_from <= $2 AND date_to >= $3`,
			item.EquipmentID, item.DateTo, item.DateFrom,
		).Scan(&reserved)
		if err != nil {
			return err
		}

		available := stock - reserved
		if available < 0 {
			available = 0
		}
		if available < item.Quantity {
			return &domain.AvailabilityError{EquipmentName: name, Requested: item.Quantity, Available: available}
		}
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO reservations (equipment_id, date_from, date_to, customer_name, customer_email, customer_phone, customer_address, customer_note, pickup_location, total_price, total_deposit, order_number, status, quantity, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id, created_at`,
		res.EquipmentID, res.DateFrom, res.DateTo, res.CustomerName, res.CustomerEmail,
		res.CustomerPhone, res.CustomerAddress, nullableString(res.CustomerNote), res.PickupLocation,
		res.TotalPrice, res.TotalDeposit, res.OrderNumber, res.Status, res.Quantity, time.Now(),
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}

	for i := range items {
		items[i].ReservationID = res.ID
		err := tx.QueryRowContext(ctx,
			`INSERT INTO reservation_items (reservation_id, equipment_id, date_from, date_to, days, quantity, daily_price, total_price, deposit)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
			items[i].ReservationID, items[i].EquipmentID, items[i].DateFrom, items[i].DateTo,
			items[i].Days, items[i].Quantity, items[i].DailyPrice, items[i].TotalPrice, items[i].Deposit,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("insert reservation item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReservationNotFound
	}
	return res, err
}

func (r *reservationRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE order_number = $1`, orderNumber)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReservationNotFound
	}
	return res, err
}

func (r *reservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func (r *reservationRepository) ListOrderNumbers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT order_number FROM reservations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *reservationRepository) UpdateDatesQuantity(ctx context.Context, id int32, dateFrom, dateTo string, quantity int32) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET date_from = $1, date_to = $2, quantity = $3 WHERE id = $4`,
		dateFrom, dateTo, quantity, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *reservationRepository) UpdateTotals(ctx context.Context, id int32, totalPrice, totalDeposit int32) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET total_price = $1, total_deposit = $2 WHERE id = $3`,
		totalPrice, totalDeposit, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reservation_items WHERE reservation_id = $1`, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrReservationNotFound
	}
	return tx.Commit()
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
