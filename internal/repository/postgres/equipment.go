package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pujcovna-backend/internal/domain"
	"pujcovna-backend/internal/repository"

	"github.com/lib/pq"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `INSERT INTO equipment (name, description, price_1_to_3_days, price_4_to_7_days, price_8_plus_days, deposit, stock, image_url, sort_order, categories)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		eq.Name, eq.Description, eq.Price1To3Days, eq.Price4To7Days, eq.Price8PlusDays,
		eq.Deposit, eq.Stock, eq.ImageURL, eq.SortOrder, pq.Array(eq.Categories),
	).Scan(&eq.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	query := `SELECT id, name, description, price_1_to_3_days, price_4_to_7_days, price_8_plus_days, deposit, stock, image_url, sort_order, categories
	          FROM equipment WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&eq.ID, &eq.Name, &eq.Description, &eq.Price1To3Days, &eq.Price4To7Days, &eq.Price8PlusDays,
		&eq.Deposit, &eq.Stock, &eq.ImageURL, &eq.SortOrder, pq.Array(&eq.Categories))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *equipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	query := `SELECT id, name, description, price_1_to_3_days, price_4_to_7_days, price_8_plus_days, deposit, stock, image_url, sort_order, categories
	          FROM equipment ORDER BY sort_order ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		var eq domain.Equipment
		if err := rows.Scan(
			&eq.ID, &eq.Name, &eq.Description, &eq.Price1To3Days, &eq.Price4To7Days, &eq.Price8PlusDays,
			&eq.Deposit, &eq.Stock, &eq.ImageURL, &eq.SortOrder, pq.Array(&eq.Categories)); err != nil {
			return nil, err
		}
		items = append(items, eq)
	}
	return items, rows.Err()
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	query := `UPDATE equipment SET name=$1, description=$2, price_1_to_3_days=$3, price_4_to_7_days=$4, price_8_plus_days=$5, deposit=$6, stock=$7, image_url=$8, sort_order=$9, categories=$10
	          WHERE id=$11`
	result, err := r.db.ExecContext(ctx, query,
		eq.Name, eq.Description, eq.Price1To3Days, eq.Price4To7Days, eq.Price8PlusDays,
		eq.Deposit, eq.Stock, eq.ImageURL, eq.SortOrder, pq.Array(eq.Categories), eq.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrEquipmentNotFound
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrEquipmentNotFound
	}
	return nil
}

func (r *equipmentRepository) UpdateSortOrders(ctx context.Context, orders []domain.SortOrderUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, o := range orders {
		if _, err := tx.ExecContext(ctx, `UPDATE equipment SET sort_order = $1 WHERE id = $2`, o.SortOrder, o.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
