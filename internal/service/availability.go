package service

import (
	"context"
	"errors"

	"pujcovna-backend/internal/domain"
	"pujcovna-backend/internal/repository"
	"pujcovna-backend/internal/utils"
)

type availabilityService struct {
	equipmentRepo repository.EquipmentRepository
	itemRepo      repository.ReservationItemRepository
}

func NewAvailabilityService(
	equipmentRepo repository.EquipmentRepository,
	itemRepo repository.ReservationItemRepository,
) AvailabilityService {
	return &availabilityService{
		equipmentRepo: equipmentRepo,
		itemRepo:      itemRepo,
	}
}

func (s *availabilityService) GetAvailableQuantity(ctx context.Context, equipmentID int32, dateFrom, dateTo string) (int32, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if errors.Is(err, domain.ErrEquipmentNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	reqFrom, err := utils.ParseDate(dateFrom)
	if err != nil {
		return 0, err
	}
	reqTo, err := utils.ParseDate(dateTo)
	if err != nil {
		return 0, err
	}

	// Every persisted item counts, including those of cancelled
	// reservations; see the availability notes in DESIGN.md.
	items, err := s.itemRepo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return 0, err
	}

	var reserved int32
	for _, item := range items {
		itemFrom, err := utils.ParseDate(item.DateFrom)
		if err != nil {
			continue
		}
		itemTo, err := utils.ParseDate(item.DateTo)
		if err != nil {
			continue
		}
		if utils.Overlaps(reqFrom, reqTo, itemFrom, itemTo) {
			qty := item.Quantity
			if qty < 1 {
				qty = 1
			}
			reserved += qty
		}
	}

	available := eq.Stock - reserved
	if available < 0 {
		available = 0
	}
	return available, nil
}

func (s *availabilityService) CheckAvailability(ctx context.Context, equipmentID int32, dateFrom, dateTo string) (bool, error) {
	qty, err := s.GetAvailableQuantity(ctx, equipmentID, dateFrom, dateTo)
	if err != nil {
		return false, err
	}
	return qty > 0, nil
}

func (s *availabilityService) ListEquipmentReservations(ctx context.Context, equipmentID int32) ([]domain.ReservationItem, error) {
	return s.itemRepo.ListByEquipment(ctx, equipmentID)
}
