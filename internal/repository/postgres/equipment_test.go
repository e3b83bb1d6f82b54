package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"pujcovna-backend/internal/domain"
	"pujcovna-backend/internal/repository/postgres"
)

func TestEquipmentRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "description", "price_1_to_3_days", "price_4_to_7_days", "price_8_plus_days", "deposit", "stock", "image_url", "sort_order", "categories"}).
			AddRow(1, "Stan pro 4 osoby", "Kupolový stan", 300, 250, 200, 1000, 3, "/uploads/stan.jpg", 1, pq.Array([]string{"stany"}))

		mock.ExpectQuery("SELECT (.+) FROM equipment WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		eq, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Stan pro 4 osoby", eq.Name)
		assert.Equal(t, int32(250), eq.Price4To7Days)
		assert.Equal(t, []string{"stany"}, eq.Categories)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM equipment WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrEquipmentNotFound)
	})
}

func TestEquipmentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewEquipmentRepository(db)
	ctx := context.Background()

	eq := &domain.Equipment{
		Name:           "Vařič",
		Description:    "Plynový vařič",
		Price1To3Days:  100,
		Price4To7Days:  80,
		Price8PlusDays: 60,
		Deposit:        500,
		Stock:          2,
		ImageURL:       "/uploads/varic.jpg",
		SortOrder:      5,
		Categories:     []string{"vareni"},
	}

	mock.ExpectQuery("INSERT INTO equipment").
		WithArgs(eq.Name, eq.Description, eq.Price1To3Days, eq.Price4To7Days, eq.Price8PlusDays,
			eq.Deposit, eq.Stock, eq.ImageURL, eq.SortOrder, pq.Array(eq.Categories)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	err = repo.Create(ctx, eq)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), eq.ID)
}

func TestEquipmentRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE equipment SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, &domain.Equipment{ID: 42, Name: "X", ImageURL: "/x.jpg", Categories: []string{"a"}})
		assert.ErrorIs(t, err, domain.ErrEquipmentNotFound)
	})
}

func TestEquipmentRepository_UpdateSortOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewEquipmentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE equipment SET sort_order").
		WithArgs(int32(1), int32(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE equipment SET sort_order").
		WithArgs(int32(2), int32(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.UpdateSortOrders(ctx, []domain.SortOrderUpdate{
		{ID: 5, SortOrder: 1},
		{ID: 3, SortOrder: 2},
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
