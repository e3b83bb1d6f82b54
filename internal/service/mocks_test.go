package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pujcovna-backend/internal/domain"
)

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) List(ctx context.Context) ([]domain.Equipment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) UpdateSortOrders(ctx context.Context, orders []domain.SortOrderUpdate) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) CreateWithItems(ctx context.Context, res *domain.Reservation, items []domain.ReservationItem) error {
	args := m.Called(ctx, res, items)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Reservation, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) List(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListOrderNumbers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockReservationRepo) UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockReservationRepo) UpdateDatesQuantity(ctx context.Context, id int32, dateFrom, dateTo string, quantity int32) error {
	args := m.Called(ctx, id, dateFrom, dateTo, quantity)
	return args.Error(0)
}
func (m *MockReservationRepo) UpdateTotals(ctx context.Context, id int32, totalPrice, totalDeposit int32) error {
	args := m.Called(ctx, id, totalPrice, totalDeposit)
	return args.Error(0)
}
func (m *MockReservationRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReservationItemRepo
type MockReservationItemRepo struct {
	mock.Mock
}

func (m *MockReservationItemRepo) Create(ctx context.Context, item *domain.ReservationItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockReservationItemRepo) ListByReservation(ctx context.Context, reservationID int32) ([]domain.ReservationItem, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).([]domain.ReservationItem), args.Error(1)
}
func (m *MockReservationItemRepo) ListByEquipment(ctx context.Context, equipmentID int32) ([]domain.ReservationItem, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).([]domain.ReservationItem), args.Error(1)
}
func (m *MockReservationItemRepo) ReplaceForReservation(ctx context.Context, reservationID int32, items []domain.ReservationItem) error {
	args := m.Called(ctx, reservationID, items)
	return args.Error(0)
}

// MockContractGenerator
type MockContractGenerator struct {
	mock.Mock
}

func (m *MockContractGenerator) Generate(data ContractData) ([]byte, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, msg EmailMessage) bool {
	args := m.Called(ctx, msg)
	return args.Bool(0)
}
func (m *MockEmailService) SendContractEmails(ctx context.Context, customerEmail, customerName, orderNumber string, pdf []byte) (bool, bool) {
	args := m.Called(ctx, customerEmail, customerName, orderNumber, pdf)
	return args.Bool(0), args.Bool(1)
}
