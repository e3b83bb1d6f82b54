package repository

import (
	"context"

	"pujcovna-backend/internal/domain"
)

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id int32) error
	UpdateSortOrders(ctx context.Context, orders []domain.SortOrderUpdate) error
}

type ReservationRepository interface {
	// CreateWithItems inserts the reservation header and all items inside a
	// single serializable transaction, re-checking availability for every
	// line against committed state. On conflict it returns a
	// *domain.AvailabilityError and nothing is persisted.
	CreateWithItems(ctx context.Context, res *domain.Reservation, items []domain.ReservationItem) error

	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListOrderNumbers(ctx context.Context) ([]string, error)
	UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) error
	UpdateDatesQuantity(ctx context.Context, id int32, dateFrom, dateTo string, quantity int32) error
	UpdateTotals(ctx context.Context, id int32, totalPrice, totalDeposit int32) error

	// Delete removes the reservation and all its items; both succeed or the
	// operation fails.
	Delete(ctx context.Context, id int32) error
}

type ReservationItemRepository interface {
	Create(ctx context.Context, item *domain.ReservationItem) error
	ListByReservation(ctx context.Context, reservationID int32) ([]domain.ReservationItem, error)

	// ListByEquipment returns every persisted item for the equipment,
	// regardless of the parent reservation's status.
	ListByEquipment(ctx context.Context, equipmentID int32) ([]domain.ReservationItem, error)

	// ReplaceForReservation deletes all items of a reservation and inserts
	// the given ones, atomically.
	ReplaceForReservation(ctx context.Context, reservationID int32, items []domain.ReservationItem) error
}
